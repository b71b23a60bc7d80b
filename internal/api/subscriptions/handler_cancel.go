package subscriptions

import (
	"net/http"
	"time"

	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/subscription"
)

// CancelSubscription cancels the authenticated member's subscription to a
// creator, either immediately or at the end of the current billing period.
// This endpoint and the webhook ingestors are the only two places status
// transitions happen.
func CancelSubscription(c *gin.Context) {
	var body struct {
		AthleteID   uint `json:"athlete_id"`
		AtPeriodEnd bool `json:"at_period_end"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.AthleteID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing athlete_id"})
		return
	}

	memberID := c.GetUint("user_id")
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var sub subscriptions.Subscription
	if err := database.DB.
		Where("member_id = ? AND athlete_id = ?", memberID, body.AthleteID).
		First(&sub).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription to this creator"})
		return
	}
	if sub.Status == subscriptions.StatusCancelled {
		c.JSON(http.StatusOK, gin.H{"message": "Subscription already cancelled"})
		return
	}

	newStatus := subscriptions.StatusCancelled
	if body.AtPeriodEnd {
		if _, err := subscription.Update(sub.StripeSubscriptionID, &stripe.SubscriptionParams{
			CancelAtPeriodEnd: stripe.Bool(true),
		}); err != nil {
			log.Error().Err(err).Str("subscription_id", sub.StripeSubscriptionID).Msg("cancel at period end failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule cancellation"})
			return
		}
		newStatus = subscriptions.StatusCancelAtPeriodEnd
	} else {
		if _, err := subscription.Cancel(sub.StripeSubscriptionID, nil); err != nil {
			log.Error().Err(err).Str("subscription_id", sub.StripeSubscriptionID).Msg("cancel failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
			return
		}
	}

	if err := database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cancelled at Stripe but could not update record"})
		return
	}

	notifications.Notify(database.DB, sub.AthleteID, notifications.TypeSubscriptionCancelled,
		"A member cancelled their subscription")

	c.JSON(http.StatusOK, gin.H{"status": newStatus})
}
