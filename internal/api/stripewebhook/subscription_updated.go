package stripewebhooks

import (
	"strconv"
	"time"

	"prologue-backend/database"
	"prologue-backend/internal/domain/subscriptions"
	stripeinfra "prologue-backend/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	row, ok := findSubscription(sub)
	if !ok {
		// Acknowledge to avoid vendor retries if the pair was deleted.
		return nil
	}

	status := stripeinfra.MapSubscriptionStatus(string(sub.Status), sub.CancelAtPeriodEnd)
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	return database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"status":             status,
			"current_period_end": periodEnd,
			"updated_at":         time.Now(),
		}).Error
}

// findSubscription locates the local row for a vendor subscription, by the
// vendor id first and the (member, athlete) metadata pair as fallback.
func findSubscription(sub *stripe.Subscription) (*subscriptions.Subscription, bool) {
	var row subscriptions.Subscription
	if err := database.DB.Where("stripe_subscription_id = ?", sub.ID).First(&row).Error; err == nil {
		return &row, true
	}

	memberID := idFromMetadata(sub.Metadata, "member_id")
	athleteID := idFromMetadata(sub.Metadata, "athlete_id")
	if memberID == 0 || athleteID == 0 {
		return nil, false
	}
	if err := database.DB.
		Where("member_id = ? AND athlete_id = ?", memberID, athleteID).
		First(&row).Error; err != nil {
		return nil, false
	}
	return &row, true
}

func idFromMetadata(md map[string]string, key string) uint {
	if md == nil {
		return 0
	}
	s := md[key]
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
