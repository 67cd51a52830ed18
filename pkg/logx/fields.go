package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"

	// Domain fields.
	FieldActor      = "actor"
	FieldBetID      = "bet-id"
	FieldBookmaker  = "bookmaker"
	FieldChatID     = "chat-id"
	FieldCount      = "count"
	FieldEdge       = "edge"
	FieldFixtureID  = "fixture-id"
	FieldLeague     = "league"
	FieldMarket     = "market"
	FieldMessageID  = "message-id"
	FieldOdds       = "odds"
	FieldQueueDepth = "queue-depth"
	FieldResult     = "result"
	FieldSelection  = "selection"
	FieldStatus     = "status"
	FieldTask       = "task"
)
