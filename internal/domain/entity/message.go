package entity

type MessageKind int

const (
	MessageNotFound MessageKind = iota + 1
	MessageLookupFailed
	MessageFreeOrUnlisted
	MessagePromotion
	MessageNoPromotion
	MessageDiagnostic
)

func (k MessageKind) String() string {
	switch k {
	case MessageNotFound:
		return "not-found"
	case MessageLookupFailed:
		return "lookup-failed"
	case MessageFreeOrUnlisted:
		return "free-or-unlisted"
	case MessagePromotion:
		return "promotion"
	case MessageNoPromotion:
		return "no-promotion"
	case MessageDiagnostic:
		return "diagnostic"
	default:
		return "unknown"
	}
}

// Message содержит готовый к отправке текст в HTML-разметке Telegram.
type Message struct {
	Kind  MessageKind
	Game  string
	Store Store
	Text  string
}
