package stripewebhooks

import (
	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/payouts"

	"github.com/stripe/stripe-go/v75"
)

// handlePayoutStatus applies the webhook-driven status update, the only
// mutation a payout row sees after creation.
func handlePayoutStatus(eventType string, p *stripe.Payout) error {
	if p.ID == "" {
		return nil
	}

	var row payouts.Payout
	if err := database.DB.Where("stripe_payout_id = ?", p.ID).First(&row).Error; err != nil {
		// Payout issued outside the batch job (e.g. from the Stripe
		// dashboard); nothing to reconcile.
		return nil
	}

	status := payouts.StatusPaid
	notifType := notifications.TypePayoutPaid
	message := "Your payout has arrived"
	if eventType == "payout.failed" {
		status = payouts.StatusFailed
		notifType = notifications.TypePayoutFailed
		message = "A payout failed. Please check your bank details"
	}

	if row.Status == status {
		return nil
	}

	if err := database.DB.Model(&payouts.Payout{}).
		Where("id = ?", row.ID).
		Update("status", status).Error; err != nil {
		return err
	}

	notifications.Notify(database.DB, row.AthleteID, notifType, message)
	return nil
}
