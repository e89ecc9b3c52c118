package domain

import "fmt"

// Operation names a mutation for outcome messages.
type Operation string

const (
	OpCreate Operation = "Create"
	OpUpdate Operation = "Update"
	OpDelete Operation = "Delete"
)

type outcomeState int

const (
	stateSucceeded outcomeState = iota
	stateValidationFailed
	statePersistenceFailed
)

// MutationOutcome is the three-way terminal state of a mutation.
// Expected failures travel as values; nothing is panicked across the
// service boundary. Exactly one of the predicates is true.
type MutationOutcome struct {
	state outcomeState

	// Errors is set only on validation failure.
	Errors FieldErrors `json:"errors,omitempty"`
	// Message is the caller-facing summary, empty on success.
	Message string `json:"message,omitempty"`
}

// Succeeded is the outcome that triggers post-success effects.
func Succeeded() MutationOutcome {
	return MutationOutcome{state: stateSucceeded}
}

// ValidationFailed reports field-scoped, user-correctable violations.
func ValidationFailed(op Operation, errs FieldErrors) MutationOutcome {
	return MutationOutcome{
		state:   stateValidationFailed,
		Errors:  errs,
		Message: fmt.Sprintf("Missing Fields. Failed to %s Invoice.", op),
	}
}

// PersistenceFailed reports a store fault. The fields were fine, so no
// field errors are attached; the underlying cause stays swallowed at
// the gateway.
func PersistenceFailed(op Operation) MutationOutcome {
	return MutationOutcome{
		state:   statePersistenceFailed,
		Message: fmt.Sprintf("Database Error: Failed to %s Invoice.", op),
	}
}

func (o MutationOutcome) Succeeded() bool {
	return o.state == stateSucceeded
}

func (o MutationOutcome) ValidationFailed() bool {
	return o.state == stateValidationFailed
}

func (o MutationOutcome) PersistenceFailed() bool {
	return o.state == statePersistenceFailed
}
