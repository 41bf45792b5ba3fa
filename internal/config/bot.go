package config

const (
	NotifierTelegram = "telegram"
	NotifierConsole  = "console"
)

type Bot struct {
	Notifier string `env:"NOTIFIER" envDefault:"telegram" validate:"oneof=telegram console"`
	Token    string `env:"BOT_TOKEN" json:"-" validate:"required_if=Notifier telegram"`
	ChatID   int64  `env:"BOT_CHAT_ID" validate:"required_if=Notifier telegram"`
}
