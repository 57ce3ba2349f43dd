package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCategory   = "category"
	FieldExpenseID  = "expense_id"
	FieldAmount     = "amount"
	FieldBudget     = "budget"
	FieldTable      = "table"
	FieldRow        = "row"
	FieldBackend    = "backend"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentBudget   = "budget"
	ComponentRowStore = "rowstore"
	ComponentCharts   = "charts"
)

// Operations defines standard operation names.
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpUpdate   = "update"
	OpLoad     = "load"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
