package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"

	FieldExpenseID   = "expense_id"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldCount       = "count"
	FieldBackend     = "backend"
	FieldDBPath      = "db_path"
	FieldFile        = "file"
	FieldLine        = "line"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStorage = "storage"
	ComponentStore   = "store"
	ComponentCSV     = "csv"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpDelete  = "delete"
	OpImport  = "import"
	OpExport  = "export"
	OpList    = "list"
	OpSummary = "summary"
	OpLoad    = "load"
	OpSave    = "save"
)
