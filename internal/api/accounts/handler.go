package accounts

import (
	"net/http"
	"strconv"

	"prologue-backend/config"
	"prologue-backend/database"
	"prologue-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/account"
	"github.com/stripe/stripe-go/v75/accountlink"
)

// CreateCoachAccount provisions an Express connected account for the
// authenticated creator and returns the hosted onboarding URL. Idempotent on
// the account itself: an existing account id is reused and only a fresh link
// is issued.
func CreateCoachAccount(c *gin.Context) {
	var body struct {
		Country string `json:"country"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid country"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if !user.IsCreator() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only athletes and coaches can receive payouts"})
		return
	}

	accountID := ""
	if user.StripeAccountID != nil && *user.StripeAccountID != "" {
		accountID = *user.StripeAccountID
	} else {
		acct, err := account.New(&stripe.AccountParams{
			Type:    stripe.String(string(stripe.AccountTypeExpress)),
			Country: stripe.String(body.Country),
			Email:   stripe.String(user.Email),
			Capabilities: &stripe.AccountCapabilitiesParams{
				CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
				Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
			},
			Metadata: map[string]string{
				"user_id": itoa(user.ID),
			},
		})
		if err != nil {
			log.Error().Err(err).Uint("user_id", user.ID).Msg("stripe account creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payout account"})
			return
		}

		if err := database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_account_id", acct.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store payout account"})
			return
		}
		accountID = acct.ID
	}

	url, err := onboardingURL(accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("account link creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create onboarding link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "account_id": accountID})
}

// OnboardingLink re-issues an onboarding URL. Account links are single-use
// and time-limited, so the dashboard calls this whenever the creator returns
// with onboarding still incomplete.
func OnboardingLink(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.StripeAccountID == nil || *user.StripeAccountID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No payout account yet (create one first)"})
		return
	}

	url, err := onboardingURL(*user.StripeAccountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", *user.StripeAccountID).Msg("account link creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create onboarding link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Refresh loops back to settings, return lands on the dashboard: the
// frontend reads those paths as "onboarding incomplete" vs "complete".
func onboardingURL(accountID string) (string, error) {
	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(config.APP_URL + "/settings/payouts?refresh=1"),
		ReturnURL:  stripe.String(config.APP_URL + "/dashboard?onboarding=complete"),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
