package stripe

import (
	"strings"

	"prologue-backend/internal/domain/subscriptions"
)

// MapSubscriptionStatus normalizes a vendor subscription status into the
// platform's status vocabulary. A subscription that is still active but
// scheduled to cancel maps to the dedicated canceled-at-period-end state.
func MapSubscriptionStatus(vendorStatus string, cancelAtPeriodEnd bool) string {
	s := strings.TrimSpace(vendorStatus)
	if cancelAtPeriodEnd && (s == "active" || s == "trialing") {
		return subscriptions.StatusCancelAtPeriodEnd
	}
	switch s {
	case "active", "trialing":
		return subscriptions.StatusActive
	case "paused":
		return subscriptions.StatusPaused
	case "past_due", "unpaid", "incomplete":
		return subscriptions.StatusPastDue
	case "canceled", "incomplete_expired":
		return subscriptions.StatusCancelled
	default:
		return s
	}
}
