package models

// Order statuses. Orders move forward through the chain
// pending -> ordered -> shipped -> delivered, with cancelled as the only
// side exit. Delivered and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusOrdered   = "ordered"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// statusRank orders the forward chain. Cancelled has no rank because it is
// never part of forward progression.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusOrdered:   1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

// OrderStatuses lists every valid status value
var OrderStatuses = []string{
	StatusPending,
	StatusOrdered,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsValidStatus reports whether s is a recognized order status
func IsValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order at status current may move to
// requested. It is total over the status values and never panics:
//   - forward moves are legal iff requested ranks strictly above current
//   - cancellation is legal from pending, ordered and shipped only
//   - nothing leaves cancelled or delivered (except delivered's own
//     position at the top of the chain already forbids forward moves)
func CanTransition(current, requested string) bool {
	if current == StatusCancelled {
		return false
	}
	if requested == StatusCancelled {
		return current != StatusDelivered
	}
	curRank, ok := statusRank[current]
	if !ok {
		return false
	}
	reqRank, ok := statusRank[requested]
	if !ok {
		return false
	}
	return reqRank > curRank
}

// TransitionError returns the human-readable rule violated by an illegal
// transition, suitable for showing to the operator verbatim. Returns ""
// when the transition is legal.
func TransitionError(current, requested string) string {
	if CanTransition(current, requested) {
		return ""
	}
	if current == StatusCancelled {
		return "You cannot reactivate a cancelled order."
	}
	if requested == StatusCancelled {
		return "You cannot cancel an order that has already been delivered."
	}
	if !IsValidStatus(requested) {
		return "Unknown order status: " + requested
	}
	return "Cannot revert order status. Orders must move forward (Pending → Ordered → Shipped → Delivered)."
}
