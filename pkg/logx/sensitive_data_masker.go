package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// Bot API token in request lines and URLs.
	regexp.MustCompile(`(/bot)\d+:[\w-]+(/)`),
	// Form and JSON fields.
	regexp.MustCompile(`(?s)("chat_id":\s?)-?\d+()`),
	regexp.MustCompile(`(chat_id=)-?\d+(&|$)`),
	regexp.MustCompile(`(?s)("[Tt]oken":\s?").+?(")`),
}

// SensitiveDataMasker hides the bot token and destination chat in dumped
// HTTP traffic.
type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
