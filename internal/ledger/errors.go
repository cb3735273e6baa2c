package ledger

import "fmt"

// ValidationError rejects user input. It is never fatal.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError means an operation named a bill that is no longer in the
// list it expected.
type NotFoundError struct {
	Bill Bill
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bill %q not found", e.Bill.Name)
}
