package subscriptions

import (
	"net/http"
	"strconv"

	"prologue-backend/config"
	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/subscriptions"
	"prologue-backend/internal/domain/users"
	"prologue-backend/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/paymentmethod"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"
)

// CreateSubscription subscribes the authenticated member to a creator at one
// of the three tiers. Funds split between the platform (flat fee percent) and
// the creator's connected account. The vendor customer is reused per
// (member, creator) pair and the subscription-create call carries an
// idempotency key, so a retried checkout is safe.
func CreateSubscription(c *gin.Context) {
	var body struct {
		AthleteID       uint   `json:"athlete_id"`
		Plan            string `json:"plan"`
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.AthleteID == 0 || body.PaymentMethodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing athlete_id, plan or payment_method_id"})
		return
	}
	if !subscriptions.ValidPlan(body.Plan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan must be basic, pro or premium"})
		return
	}

	memberID := c.GetUint("user_id")
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	if memberID == body.AthleteID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot subscribe to yourself"})
		return
	}

	var member users.User
	if err := database.DB.First(&member, memberID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var athlete users.User
	if err := database.DB.First(&athlete, body.AthleteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}
	if !athlete.HasPricing() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This creator has not configured pricing yet"})
		return
	}
	if athlete.StripeAccountID == nil || *athlete.StripeAccountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This creator cannot accept payments yet"})
		return
	}

	var existing subscriptions.Subscription
	err := database.DB.
		Where("member_id = ? AND athlete_id = ?", memberID, body.AthleteID).
		First(&existing).Error
	hasRow := err == nil
	if hasRow && subscriptions.IsEntitling(existing.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already subscribed to this creator"})
		return
	}

	// One vendor customer per (creator, member) pair, reused across retries.
	customerID := existing.StripeCustomerID
	if customerID == "" {
		cus, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(member.Email),
			Metadata: map[string]string{
				"member_id":  strconv.FormatUint(uint64(memberID), 10),
				"athlete_id": strconv.FormatUint(uint64(body.AthleteID), 10),
			},
		})
		if err != nil {
			log.Error().Err(err).Uint("member_id", memberID).Msg("stripe customer creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
			return
		}
		customerID = cus.ID
	}

	if _, err := paymentmethod.Attach(body.PaymentMethodID, &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}); err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("payment method attach failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not attach payment method"})
		return
	}
	if _, err := customer.Update(customerID, &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(body.PaymentMethodID),
		},
	}); err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("default payment method update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not set default payment method"})
		return
	}

	amountCents := tierAmountCents(&athlete, body.Plan)

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{
				PriceData: &stripe.SubscriptionItemPriceDataParams{
					Currency:   stripe.String("usd"),
					Product:    stripe.String(config.STRIPE_PLATFORM_PRODUCT_ID),
					UnitAmount: stripe.Int64(amountCents),
					Recurring: &stripe.SubscriptionItemPriceDataRecurringParams{
						Interval: stripe.String("month"),
					},
				},
			},
		},
		ApplicationFeePercent: stripe.Float64(subscriptions.PlatformFeePercent),
		TransferData: &stripe.SubscriptionTransferDataParams{
			Destination: stripe.String(*athlete.StripeAccountID),
		},
		DefaultPaymentMethod: stripe.String(body.PaymentMethodID),
		Metadata: map[string]string{
			"member_id":  strconv.FormatUint(uint64(memberID), 10),
			"athlete_id": strconv.FormatUint(uint64(body.AthleteID), 10),
			"plan":       body.Plan,
		},
	}
	params.SetIdempotencyKey(uuid.NewString())

	sub, err := subscription.New(params)
	if err != nil {
		log.Error().Err(err).Uint("member_id", memberID).Uint("athlete_id", body.AthleteID).
			Msg("stripe subscription creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if hasRow {
			if err := tx.Model(&subscriptions.Subscription{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"status":                 subscriptions.StatusActive,
					"plan":                   body.Plan,
					"stripe_customer_id":     customerID,
					"stripe_subscription_id": sub.ID,
				}).Error; err != nil {
				return err
			}
		} else {
			row := subscriptions.Subscription{
				MemberID:             memberID,
				AthleteID:            body.AthleteID,
				Status:               subscriptions.StatusActive,
				Plan:                 body.Plan,
				StripeCustomerID:     customerID,
				StripeSubscriptionID: sub.ID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		// Counter bump must be atomic, not read-modify-write.
		return tx.Model(&users.User{}).
			Where("id = ?", body.AthleteID).
			UpdateColumn("subscribers", gorm.Expr("subscribers + ?", 1)).Error
	})
	if err != nil {
		log.Error().Err(err).Str("subscription_id", sub.ID).Msg("failed to persist subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Subscription created but could not be saved"})
		return
	}

	monitoring.SubscriptionsCreatedTotal.WithLabelValues(body.Plan).Inc()
	notifications.Notify(database.DB, body.AthleteID, notifications.TypeSubscriptionCreated,
		member.Name+" subscribed to your "+body.Plan+" plan")

	c.JSON(http.StatusOK, gin.H{
		"status":                 subscriptions.StatusActive,
		"plan":                   body.Plan,
		"stripe_customer_id":     customerID,
		"stripe_subscription_id": sub.ID,
	})
}

func tierAmountCents(athlete *users.User, plan string) int64 {
	var price decimal.Decimal
	switch plan {
	case subscriptions.PlanBasic:
		price = *athlete.BasicPriceUSD
	case subscriptions.PlanPro:
		price = *athlete.ProPriceUSD
	case subscriptions.PlanPremium:
		price = *athlete.PremiumPriceUSD
	}
	return price.Mul(decimal.NewFromInt(100)).IntPart()
}
