package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldSessionID   = "session_id"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldState       = "state"
	FieldSelector    = "selector"
	FieldKind        = "kind"
	FieldLabel       = "label"
	FieldAmount      = "amount"
	FieldBalance     = "balance"
	FieldRef         = "ref"
	FieldBackend     = "backend"
	FieldRecordCount = "record_count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentConsole = "console"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAddIncome  = "add_income"
	OpAddExpense = "add_expense"
	OpBalance    = "balance"
	OpList       = "list"
	OpPublish    = "publish"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(kind, label string, amount float64) LogFields {
	f[FieldKind] = kind
	f[FieldLabel] = label
	f[FieldAmount] = amount
	return f
}

// WithBalance adds balance field
func (f LogFields) WithBalance(balance float64) LogFields {
	f[FieldBalance] = balance
	return f
}

// WithRef adds the journal reference of a stored record
func (f LogFields) WithRef(ref string) LogFields {
	f[FieldRef] = ref
	return f
}

// WithRecordCount adds record count field
func (f LogFields) WithRecordCount(n int) LogFields {
	f[FieldRecordCount] = n
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
