package logx

const (
	FieldAppName        = "app-name"
	FieldAppVersion     = "app-version"
	FieldDurationMs     = "duration-ms"
	FieldError          = "error"
	FieldGame           = "game"
	FieldGames          = "games"
	FieldHTTPMethod     = "http-method"
	FieldHTTPRequest    = "http-request"
	FieldHTTPResponse   = "http-response"
	FieldIP             = "ip"
	FieldMessageID      = "message-id"
	FieldMessageKind    = "message-kind"
	FieldMessages       = "messages"
	FieldRequestBody    = "request-body"
	FieldRequestID      = "request-id"
	FieldResponseBody   = "response-body"
	FieldResponseStatus = "response-status"
	FieldStack          = "stack"
	FieldStore          = "store"
	FieldStores         = "stores"
	FieldTraceID        = "trace-id"
	FieldURL            = "url"
)
