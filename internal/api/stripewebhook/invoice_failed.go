package stripewebhooks

import (
	"time"

	"prologue-backend/database"
	"prologue-backend/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
)

func handleInvoicePaymentFailed(inv *stripe.Invoice) error {
	if inv.Subscription == nil || inv.Subscription.ID == "" {
		return nil
	}

	var row subscriptions.Subscription
	if err := database.DB.
		Where("stripe_subscription_id = ?", inv.Subscription.ID).
		First(&row).Error; err != nil {
		return nil
	}
	if row.Status == subscriptions.StatusCancelled {
		return nil
	}

	return database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"status":     subscriptions.StatusPastDue,
			"updated_at": time.Now(),
		}).Error
}
