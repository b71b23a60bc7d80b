package stripewebhooks

import (
	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

func handleAccountUpdated(acct *stripe.Account) error {
	if acct.ID == "" {
		return nil
	}

	var user users.User
	if err := database.DB.Where("stripe_account_id = ?", acct.ID).First(&user).Error; err != nil {
		// Not an account we track.
		return nil
	}

	becamePayoutCapable := !user.PayoutsEnabled && acct.PayoutsEnabled

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"payouts_enabled":   acct.PayoutsEnabled,
			"details_submitted": acct.DetailsSubmitted,
		}).Error; err != nil {
		return err
	}

	if becamePayoutCapable {
		notifications.Notify(database.DB, user.ID, notifications.TypeOnboardingComplete,
			"Your payout account is ready. You can now receive payments")
	}
	return nil
}
