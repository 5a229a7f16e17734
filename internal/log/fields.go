package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldClientIP     = "client_ip"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldUserAgent    = "user_agent"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldDate         = "date"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldCategory     = "category"
	FieldAmountCents  = "amount_cents"
	FieldExpenseID    = "expense_id"
	FieldDeletedCount = "deleted_count"
	FieldBatchSize    = "batch_size"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentMirror  = "mirror"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpInsert    = "insert"
	OpFetch     = "fetch"
	OpDelete    = "delete"
	OpAggregate = "aggregate"
	OpPublish   = "publish"
	OpConsume   = "consume"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
