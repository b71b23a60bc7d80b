package stripe

import (
	"testing"

	"prologue-backend/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
)

func TestMapSubscriptionStatus(t *testing.T) {
	tests := []struct {
		vendorStatus      string
		cancelAtPeriodEnd bool
		want              string
	}{
		{"active", false, subscriptions.StatusActive},
		{"trialing", false, subscriptions.StatusActive},
		{"active", true, subscriptions.StatusCancelAtPeriodEnd},
		{"trialing", true, subscriptions.StatusCancelAtPeriodEnd},
		{"paused", false, subscriptions.StatusPaused},
		{"past_due", false, subscriptions.StatusPastDue},
		{"unpaid", false, subscriptions.StatusPastDue},
		{"incomplete", false, subscriptions.StatusPastDue},
		{"canceled", false, subscriptions.StatusCancelled},
		{"canceled", true, subscriptions.StatusCancelled},
		{"incomplete_expired", false, subscriptions.StatusCancelled},
		{" active ", false, subscriptions.StatusActive},
		{"something_new", false, "something_new"},
	}

	for _, tt := range tests {
		got := MapSubscriptionStatus(tt.vendorStatus, tt.cancelAtPeriodEnd)
		assert.Equal(t, tt.want, got, "status %q cancelAtPeriodEnd=%v", tt.vendorStatus, tt.cancelAtPeriodEnd)
	}
}
