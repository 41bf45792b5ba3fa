package deal

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
)

var (
	errNoDigits    = errors.New("no digits in price")
	errUnknownUnit = errors.New("unknown price unit")
)

//nolint:gochecknoglobals
var (
	hundred    = decimal.NewFromInt(100)
	priceToken = regexp.MustCompile(`\d(?:[\d.,]*\d)?`)
)

// parsePrice переводит цену источника в десятичное значение в основных единицах.
func parsePrice(p entity.RawPrice) (decimal.Decimal, error) {
	value := strings.TrimSpace(p.Value)

	switch p.Unit {
	case entity.UnitMinor:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("minor units %q: %w", value, err)
		}
		return d.Shift(-2), nil
	case entity.UnitDecimal:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("decimal %q: %w", value, err)
		}
		return d, nil
	case entity.UnitText:
		return parseTextPrice(value)
	default:
		return decimal.Zero, errUnknownUnit
	}
}

// parseTextPrice разбирает цену со страницы: "R$ 1.234,56", "$1,234.56", "59,99 €".
// Из нескольких чисел берётся первое с разделителем ("12x R$ 9,99" даёт 9,99),
// иначе первое. Минус перед числом или символом валюты делает цену отрицательной.
func parseTextPrice(text string) (decimal.Decimal, error) {
	tokens := priceToken.FindAllStringIndex(text, -1)
	if len(tokens) == 0 {
		return decimal.Zero, fmt.Errorf("text %q: %w", text, errNoDigits)
	}

	token, found := lo.Find(tokens, func(loc []int) bool {
		return strings.ContainsAny(text[loc[0]:loc[1]], ",.")
	})
	if !found {
		token = tokens[0]
	}

	d, err := decimal.NewFromString(normalizeSeparators(text[token[0]:token[1]]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("text %q: %w", text, err)
	}

	if negativePrefix(text[:token[0]]) {
		d = d.Neg()
	}

	return d, nil
}

func negativePrefix(prefix string) bool {
	prefix = strings.TrimRightFunc(prefix, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) || unicode.IsUpper(r)
	})

	return strings.HasSuffix(prefix, "-") || strings.HasSuffix(prefix, "−")
}

// normalizeSeparators оставляет точку только как десятичный разделитель.
// При двух видах разделителей десятичным считается последний; одиночный
// разделитель с ровно тремя цифрами после него считается разрядным.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		return singleSeparator(s, ",")
	case lastDot >= 0:
		return singleSeparator(s, ".")
	default:
		return s
	}
}

func singleSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, "")
	}

	idx := strings.Index(s, sep)
	if len(s)-idx-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}

	return strings.Replace(s, sep, ".", 1)
}

// DiscountPercent считает скидку по ценам; вычисленное значение важнее
// сообщённого источником. Результат всегда в [0, 100].
func DiscountPercent(original, current decimal.Decimal, reported *int) int {
	if current.GreaterThan(original) {
		return 0
	}

	if !original.IsPositive() {
		if reported != nil && current.IsZero() {
			return clampPercent(*reported)
		}
		return 0
	}

	percent := hundred.Mul(decimal.NewFromInt(1).Sub(current.Div(original))).Round(0)

	return clampPercent(int(percent.IntPart()))
}

func clampPercent(p int) int {
	return min(max(p, 0), 100)
}
