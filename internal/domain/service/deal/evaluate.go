package deal

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
)

// MaxMessageLength задаёт предел длины текста сообщения Telegram.
const MaxMessageLength = 4096

//nolint:gochecknoglobals
var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Evaluator решает, о чём сообщить по Deal, и форматирует текст.
type Evaluator struct {
	defaultCurrency string
	maxLength       int
}

func NewEvaluator(defaultCurrency string) Evaluator {
	return Evaluator{
		defaultCurrency: defaultCurrency,
		maxLength:       MaxMessageLength,
	}
}

func (e Evaluator) WithMaxLength(n int) Evaluator {
	if n > 0 {
		e.maxLength = n
	}
	return e
}

// Evaluate зависит только от Deal.
func (e Evaluator) Evaluate(d entity.Deal) entity.Message {
	msg := entity.Message{
		Game:  d.GameName,
		Store: d.Store,
	}
	store := html.EscapeString(d.Store.DisplayName())

	switch {
	case !d.Found && d.Reason == "":
		msg.Kind = entity.MessageNotFound
		msg.Text = e.fit(func(game string) string {
			return fmt.Sprintf("🔎 %s: not found on %s.", html.EscapeString(game), store)
		}, d.GameName)
	case !d.Found:
		msg.Kind = entity.MessageLookupFailed
		msg.Text = e.fit(func(reason string) string {
			return fmt.Sprintf("⚠️ %s: could not check %s: %s", html.EscapeString(d.GameName), store, html.EscapeString(reason))
		}, d.Reason)
	case !d.HasPrices():
		msg.Kind = entity.MessageFreeOrUnlisted
		msg.Text = e.fit(func(title string) string {
			return fmt.Sprintf("🎮 <b>%s</b> (%s): free or no price listed.", html.EscapeString(title), store)
		}, d.Title())
	case d.DiscountPercent > 0:
		msg.Kind = entity.MessagePromotion
		// Ссылку не обрезаем: если она не помещается даже с минимальным названием, сообщение уходит без неё.
		withLink := d.URL != "" && utf8.RuneCountInString(e.promotion(d, "…", store, true)) <= e.maxLength
		msg.Text = e.fit(func(title string) string {
			return e.promotion(d, title, store, withLink)
		}, d.Title())
	default:
		msg.Kind = entity.MessageNoPromotion
		msg.Text = e.fit(func(title string) string {
			return fmt.Sprintf("❌ %s (%s): no promotion. Current price: %s",
				html.EscapeString(title), store, e.money(d.Currency, d.CurrentPrice.Decimal))
		}, d.Title())
	}

	return msg
}

// Diagnostic сообщает о проблеме со списком игр или конфигурацией.
func (e Evaluator) Diagnostic(err error) entity.Message {
	code, _ := domain.GetCode(err)

	var text string

	switch code {
	case errcodes.GameListMissing:
		text = "⚠️ ERROR: the games file was not found."
	case errcodes.GameListEmpty:
		text = "⚠️ ERROR: no games are listed in the games file."
	default:
		text = e.fit(func(reason string) string {
			return "⚠️ ERROR: could not read the game list: " + html.EscapeString(reason)
		}, err.Error())
	}

	return entity.Message{
		Kind: entity.MessageDiagnostic,
		Text: text,
	}
}

func (e Evaluator) promotion(d entity.Deal, title, store string, withLink bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔥 <b>%s</b> (%s)\n", html.EscapeString(title), store)
	fmt.Fprintf(&b, "💵 Original price: %s\n", e.money(d.Currency, d.OriginalPrice.Decimal))
	fmt.Fprintf(&b, "💲 Discounted price: %s\n", e.money(d.Currency, d.CurrentPrice.Decimal))
	fmt.Fprintf(&b, "📉 Discount: %d%%", d.DiscountPercent)

	if withLink {
		fmt.Fprintf(&b, "\n🔗 <a href=\"%s\">View on %s</a>", html.EscapeString(d.URL), store)
	}

	return b.String()
}

func (e Evaluator) money(currency string, amount decimal.Decimal) string {
	symbol := e.defaultCurrency
	if currency != "" {
		symbol = currency
		if s, ok := currencySymbols[currency]; ok {
			symbol = s
		}
	}

	if symbol == "" {
		return amount.StringFixed(2)
	}

	return html.EscapeString(symbol) + " " + amount.StringFixed(2)
}

// fit укорачивает переменную часть сообщения, пока текст не уложится в предел.
func (e Evaluator) fit(render func(string) string, value string) string {
	text := render(value)
	runes := []rune(value)

	for utf8.RuneCountInString(text) > e.maxLength && len(runes) > 0 {
		over := utf8.RuneCountInString(text) - e.maxLength
		runes = runes[:max(len(runes)-over-1, 0)]
		text = render(string(runes) + "…")
	}

	if utf8.RuneCountInString(text) > e.maxLength {
		text = string([]rune(text)[:e.maxLength])
	}

	return text
}
