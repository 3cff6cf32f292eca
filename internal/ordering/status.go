// Package ordering holds the order status vocabulary and its transition
// rules. Statuses are stored and transported as strings for compatibility
// with existing clients, but all comparisons are case-insensitive and go
// through this package.
package ordering

import (
	"strings"
)

type Status string

const (
	StatusPending        Status = "Pending"
	StatusToPay          Status = "To Pay"
	StatusDelivered      Status = "Delivered"
	StatusReadyForPickup Status = "Ready for Pick Up"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"

	// Issue-reported statuses, entered only via ticket submission.
	StatusMissingItem   Status = "Missing Item Reported"
	StatusWrongItem     Status = "Wrong Item Reported"
	StatusDamagedItem   Status = "Damaged Item Reported"
	StatusNotDelivered  Status = "Order Not Delivered"
	StatusIssueReported Status = "Issue Reported"
)

// Initial picks the status for a freshly placed order. Orders paid through
// an external processor start in To Pay and move on only after capture; the
// match on the payment method is case-insensitive by contract.
func Initial(paymentMethod string) Status {
	if strings.EqualFold(paymentMethod, "paypal") {
		return StatusToPay
	}
	return StatusPending
}

// CancellableFrom lists the statuses an order may be cancelled from.
// Only pending orders can be cancelled.
func CancellableFrom() []Status {
	return []Status{StatusPending}
}

// CompletableFrom lists the statuses an order may be marked received from.
func CompletableFrom() []Status {
	return []Status{StatusDelivered, StatusReadyForPickup}
}

// Is reports whether s equals target ignoring case.
func Is(s, target Status) bool {
	return strings.EqualFold(string(s), string(target))
}

// reasonStatus maps a ticket reason to the status the referenced order moves
// to. Unlisted reasons fall back to the generic Issue Reported.
var reasonStatus = map[string]Status{
	"Missing part of the order": StatusMissingItem,
	"Sent the wrong item":       StatusWrongItem,
	"Damaged item":              StatusDamagedItem,
	"Food not delivered":        StatusNotDelivered,
}

// ForReason returns the order status a ticket reason maps to.
func ForReason(reason string) Status {
	if s, ok := reasonStatus[reason]; ok {
		return s
	}
	return StatusIssueReported
}
