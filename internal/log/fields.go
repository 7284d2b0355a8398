package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldUserAgent     = "user_agent"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldEmail         = "email"
	FieldTransactionID = "transaction_id"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldEventID       = "event_id"
	FieldAction        = "action"
	FieldDocumentKey   = "key"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStore     = "store"
	ComponentDirectory = "directory"
	ComponentLedger    = "ledger"
	ComponentEvents    = "events"
	ComponentWorker    = "worker"
	ComponentExport    = "export"
	ComponentRateLimit = "rate_limit"
)

// Operations defines standard operation names
const (
	OpRegister     = "register"
	OpAuthenticate = "authenticate"
	OpSignIn       = "sign_in"
	OpSignOut      = "sign_out"
	OpAppend       = "append"
	OpDelete       = "delete"
	OpErase        = "erase"
	OpList         = "list"
	OpAggregate    = "aggregate"
	OpExport       = "export"
	OpShutdown     = "shutdown"
	OpStartup      = "startup"
)
