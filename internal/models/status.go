package models

// Status is the lifecycle state of an order. The canonical vocabulary is
// the five values below; StatusCompleted is a legacy value written by older
// clients that used a three-state vocabulary and is treated as fulfilled.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"

	// StatusCompleted is the legacy 3-state fulfilled value. It is
	// accepted in stored data but not on writes.
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the canonical five statuses accepted
// on writes. Any valid status may be set from any other; the state machine
// is deliberately unrestricted.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ValidFilter reports whether s may be used as a read-path status filter.
// Read paths additionally accept the legacy completed value so rows
// written under the 3-state vocabulary stay reachable; writes stay
// restricted to the canonical five.
func (s Status) ValidFilter() bool {
	return s.Valid() || s == StatusCompleted
}

// Fulfilled reports whether the order counts as realized revenue. This is
// the filter every financial report uses.
func (s Status) Fulfilled() bool {
	return s == StatusDelivered || s == StatusCompleted
}

// Simplified maps the canonical vocabulary onto the 3-state view
// (pending|completed|cancelled) that some consumers expect. All
// pre-fulfillment states collapse to pending.
func (s Status) Simplified() Status {
	switch s {
	case StatusDelivered, StatusCompleted:
		return StatusCompleted
	case StatusCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// FulfilledStatuses lists the stored status values that count as revenue,
// for use in store-level filters.
func FulfilledStatuses() []string {
	return []string{string(StatusDelivered), string(StatusCompleted)}
}
