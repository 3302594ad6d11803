package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldCategory     = "category"
	FieldEntryDesc    = "entry_description"
	FieldEntryIndex   = "entry_index"
	FieldAmountCents  = "amount_cents"
	FieldBalanceCents = "balance_cents"
	FieldSavingsCents = "savings_cents"
	FieldArchive      = "archive"
	FieldFile         = "file"
	FieldMonth        = "month"
	FieldYear         = "year"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentLedger = "ledger"
	ComponentStore  = "store"
	ComponentTUI    = "tui"
	ComponentCache  = "cache"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpAdd      = "add"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpDeposit  = "deposit"
	OpRollover = "rollover"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
