package notifier

import (
	"context"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/deal"
	"deal_radar/pkg/contextx"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

type TelegramOptions struct {
	// HTTPClient carries the logging transport; nil uses telego's default caller.
	HTTPClient *http.Client
	// APIServer overrides https://api.telegram.org.
	APIServer string
}

func NewTelegramBot(token string, chatID int64, opts TelegramOptions) (*TelegramBot, error) {
	botOpts := []telego.BotOption{telego.WithDiscardLogger()}

	if opts.HTTPClient != nil {
		botOpts = append(botOpts, telego.WithHTTPClient(opts.HTTPClient))
	}

	if opts.APIServer != "" {
		botOpts = append(botOpts, telego.WithAPIServer(opts.APIServer))
	}

	bot, err := telego.NewBot(token, botOpts...)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InvalidConfiguration, "create bot")
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Send отправляет сообщение в чат с HTML-разметкой.
func (b *TelegramBot) Send(ctx context.Context, message entity.Message) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		truncate(message.Text, deal.MaxMessageLength),
	).WithParseMode(telego.ModeHTML)

	sent, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return domain.WrapError(err, errcodes.NotificationFailed, "send message")
	}

	logger(ctx).Debug("message sent",
		slog.Int(logx.FieldMessageID, sent.MessageID),
		slog.String(logx.FieldMessageKind, message.Kind.String()),
	)

	return nil
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)

	return string(runes[:limit-1]) + "…"
}
