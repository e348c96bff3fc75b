package orders

import "fmt"

// ValidationError means the input was malformed or incomplete. Never
// retried; the message names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError means the referenced document does not exist or is not
// owned by the caller. The two cases are indistinguishable on purpose so
// existence never leaks across tenants.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InsufficientStockError means the requested quantity exceeded what the
// validation read saw. Available is what the caller can still order.
type InsufficientStockError struct {
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// ConflictError means the conditional decrement lost a race after the
// validation pass had already approved the item. Callers display it like
// an InsufficientStockError; it exists separately so races are countable.
type ConflictError struct {
	ProductName string
	Requested   int64
	Available   int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("stock changed while placing order for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
