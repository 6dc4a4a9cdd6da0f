package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldStore         = "store"
	FieldTransactionID = "transaction_id"
	FieldIndex         = "index"
	FieldCategory      = "category"
	FieldPaymentMethod = "payment_method"
	FieldRecipient     = "recipient"
	FieldAmount        = "amount"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldCount         = "count"
	FieldLine          = "line"
	FieldFormat        = "format"
	FieldOutputFile    = "output_file"
)
