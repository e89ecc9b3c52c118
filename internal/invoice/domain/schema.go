package domain

import "strings"

// Form field names as submitted by the invoice form. The record's id
// and date are never form fields; drafts carrying them have those keys
// ignored like any other unrecognized key.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Default violation messages. Operators can override them through the
// forms config file.
const (
	MsgSelectCustomer = "Please select a customer"
	MsgAmountPositive = "Please enter an amount greater than 0"
	MsgSelectStatus   = "Please select an invoice status"
	MsgAmountTooLarge = "Amount exceeds the allowed maximum"
)

// Draft is the raw, untyped form submission for a create or update.
type Draft map[string]string

// FieldErrors maps a field name to its violation messages in rule
// order. A field may accumulate more than one violation.
type FieldErrors map[string][]string

// ValidatedInvoice is the typed, coerced result of a passing draft.
// Amount is still in major units here; minor units are derived later.
type ValidatedInvoice struct {
	CustomerID string
	Amount     Amount
	Status     InvoiceStatus
}

// Rule pairs a predicate with the message reported when it fails. The
// predicate sees the trimmed raw value and must not perform I/O.
type Rule struct {
	Check   func(raw string) bool
	Message string
}

// Field is an ordered rule list for one form field.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is the declarative shape of the invoice form. Applying it is
// a pure function of the draft.
type Schema struct {
	fields []Field
}

// SchemaConfig customizes messages and optional extra constraints.
// Zero values keep the defaults.
type SchemaConfig struct {
	CustomerMessage  string
	AmountMessage    string
	StatusMessage    string
	MaxAmountCents   int64
	MaxAmountMessage string
}

// DefaultSchema returns the built-in invoice form schema.
func DefaultSchema() Schema {
	return NewSchema(SchemaConfig{})
}

// NewSchema builds the invoice form schema with the given overrides.
func NewSchema(cfg SchemaConfig) Schema {
	customerMsg := fallback(cfg.CustomerMessage, MsgSelectCustomer)
	amountMsg := fallback(cfg.AmountMessage, MsgAmountPositive)
	statusMsg := fallback(cfg.StatusMessage, MsgSelectStatus)

	amountRules := []Rule{
		{Check: positiveAmount, Message: amountMsg},
	}
	if cfg.MaxAmountCents > 0 {
		limit := cfg.MaxAmountCents
		amountRules = append(amountRules, Rule{
			Check: func(raw string) bool {
				amount, ok := ParseAmount(raw)
				if !ok {
					// Coercion failures are the positive rule's to report.
					return true
				}
				return amount.Cents() <= limit
			},
			Message: fallback(cfg.MaxAmountMessage, MsgAmountTooLarge),
		})
	}

	return Schema{fields: []Field{
		{Name: FieldCustomerID, Rules: []Rule{
			{Check: notEmpty, Message: customerMsg},
		}},
		{Name: FieldAmount, Rules: amountRules},
		{Name: FieldStatus, Rules: []Rule{
			{Check: ValidStatus, Message: statusMsg},
		}},
	}}
}

// Validate applies every rule to the draft. On any violation it
// returns the field-keyed error report and no value; otherwise the
// coerced record. Keys the schema does not name are ignored.
func (s Schema) Validate(draft Draft) (ValidatedInvoice, FieldErrors) {
	errs := FieldErrors{}
	for _, field := range s.fields {
		raw := strings.TrimSpace(draft[field.Name])
		for _, rule := range field.Rules {
			if !rule.Check(raw) {
				errs[field.Name] = append(errs[field.Name], rule.Message)
			}
		}
	}
	if len(errs) > 0 {
		return ValidatedInvoice{}, errs
	}

	amount, _ := ParseAmount(strings.TrimSpace(draft[FieldAmount]))
	return ValidatedInvoice{
		CustomerID: strings.TrimSpace(draft[FieldCustomerID]),
		Amount:     amount,
		Status:     InvoiceStatus(strings.TrimSpace(draft[FieldStatus])),
	}, nil
}

func notEmpty(raw string) bool {
	return raw != ""
}

func positiveAmount(raw string) bool {
	amount, ok := ParseAmount(raw)
	return ok && amount.Positive()
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
