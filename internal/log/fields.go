package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldWorkbook  = "workbook"
	FieldSheet     = "sheet"
	FieldView      = "view"
	FieldRows      = "rows"
	FieldMonths    = "months"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReports = "reports"
	ComponentSource  = "source"
)
