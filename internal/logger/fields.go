package logger

// Standard field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"

	FieldDurationMS = "duration_ms"
	FieldError      = "error"

	FieldCount   = "count"
	FieldRows    = "rows"
	FieldRecords = "records"
	FieldMatches = "matches"

	FieldFile    = "file"
	FieldAddress = "address"

	FieldRegion = "region"
	FieldYear   = "year"
	FieldScope  = "scope"
)
