package earnings

import (
	"net/http"

	"prologue-backend/database"
	"prologue-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/balance"
	"github.com/stripe/stripe-go/v75/charge"
)

type balanceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type chargeDTO struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
	Created  int64   `json:"created"`
}

// GetAthleteEarnings reads the connected account's balance and recent
// charges. Read-only: calling it twice with no intervening mutation returns
// the same data.
func GetAthleteEarnings(c *gin.Context) {
	accountID := c.Query("accountId")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing accountId"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	// Creators can only read their own account.
	if c.GetString("role") != users.RoleAdmin {
		var user users.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if user.StripeAccountID == nil || *user.StripeAccountID != accountID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your payout account"})
			return
		}
	}

	balParams := &stripe.BalanceParams{}
	balParams.StripeAccount = stripe.String(accountID)
	bal, err := balance.Get(balParams)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("balance fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch balance"})
		return
	}

	available := []balanceDTO{}
	for _, a := range bal.Available {
		available = append(available, balanceDTO{Amount: float64(a.Amount) / 100.0, Currency: string(a.Currency)})
	}
	pending := []balanceDTO{}
	for _, a := range bal.Pending {
		pending = append(pending, balanceDTO{Amount: float64(a.Amount) / 100.0, Currency: string(a.Currency)})
	}

	chargeParams := &stripe.ChargeListParams{}
	chargeParams.StripeAccount = stripe.String(accountID)
	chargeParams.Limit = stripe.Int64(20)

	charges := []chargeDTO{}
	it := charge.List(chargeParams)
	for it.Next() {
		ch := it.Charge()
		charges = append(charges, chargeDTO{
			ID:       ch.ID,
			Amount:   float64(ch.Amount) / 100.0,
			Currency: string(ch.Currency),
			Status:   string(ch.Status),
			Created:  ch.Created,
		})
	}
	if err := it.Err(); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("charge list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch charges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available": available,
		"pending":   pending,
		"charges":   charges,
	})
}
