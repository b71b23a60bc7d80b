package stripewebhooks

import (
	"time"

	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/subscriptions"
	"prologue-backend/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

func handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	row, ok := findSubscription(sub)
	if !ok {
		return nil
	}
	if row.Status == subscriptions.StatusCancelled {
		return nil
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&subscriptions.Subscription{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{
				"status":     subscriptions.StatusCancelled,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		return tx.Model(&users.User{}).
			Where("id = ? AND subscribers > 0", row.AthleteID).
			UpdateColumn("subscribers", gorm.Expr("subscribers - ?", 1)).Error
	})
	if err != nil {
		return err
	}

	notifications.Notify(database.DB, row.MemberID, notifications.TypeSubscriptionCancelled,
		"Your subscription has ended")
	return nil
}
