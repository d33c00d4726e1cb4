package logging

// Field names shared by every component so log output stays filterable.
const (
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldReason        = "reason"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldFile          = "file_path"
	FieldDelimiter     = "delimiter"
	FieldOutputFile    = "output_file"
	FieldTransactionID = "transaction_id"
	FieldDescription   = "description"
	FieldKey           = "key"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldCategoryID    = "category_id"
	FieldStrategy      = "strategy"
	FieldProvider      = "provider"
	FieldModel         = "model"
	FieldScore         = "score"
	FieldUsage         = "usage_count"
	FieldPeriod        = "period"
)
