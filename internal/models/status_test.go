package models

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%q should be a recognized status", s)
		}
	}
	for _, s := range []Status{"", "completed", "PENDING", "refunded"} {
		if s.Valid() {
			t.Errorf("%q should not be accepted on writes", s)
		}
	}
}

func TestStatusValidFilter(t *testing.T) {
	// Legacy completed rows exist in the store; the read-path filter must
	// keep them reachable even though writes reject the value.
	if !StatusCompleted.ValidFilter() {
		t.Error("completed must be usable as a read filter")
	}
	if StatusCompleted.Valid() {
		t.Error("completed must still be rejected on writes")
	}
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !s.ValidFilter() {
			t.Errorf("%q should be a valid read filter", s)
		}
	}
	for _, s := range []Status{"refunded", "COMPLETED", "x"} {
		if s.ValidFilter() {
			t.Errorf("%q should not be a valid read filter", s)
		}
	}
}

func TestStatusFulfilled(t *testing.T) {
	if !StatusDelivered.Fulfilled() {
		t.Error("delivered orders are realized revenue")
	}
	if !StatusCompleted.Fulfilled() {
		t.Error("legacy completed orders are realized revenue")
	}
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusCancelled} {
		if s.Fulfilled() {
			t.Errorf("%q must not count as revenue", s)
		}
	}
}

func TestStatusSimplified(t *testing.T) {
	cases := map[Status]Status{
		StatusPending:    StatusPending,
		StatusProcessing: StatusPending,
		StatusShipped:    StatusPending,
		StatusDelivered:  StatusCompleted,
		StatusCompleted:  StatusCompleted,
		StatusCancelled:  StatusCancelled,
	}
	for in, want := range cases {
		if got := in.Simplified(); got != want {
			t.Errorf("Simplified(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	it := OrderItem{Quantity: 3, PriceCents: 1099}
	if got := it.SubtotalCents(); got != 3297 {
		t.Errorf("subtotal = %d, want 3297", got)
	}
}
