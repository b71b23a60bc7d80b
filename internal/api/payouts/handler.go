package payouts

import (
	"net/http"

	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/payouts"
	stripeinfra "prologue-backend/internal/infra/stripe"
	"prologue-backend/internal/logging"
	"prologue-backend/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// CreatePayouts runs the payout batch: every creator with a payout-capable
// account gets their full available balance paid out. Invoked by the external
// scheduler (or an admin) on a fixed cadence. Per-creator failures land in
// the results array and never abort the batch.
func CreatePayouts(c *gin.Context) {
	svc := payouts.NewService(database.DB, stripeinfra.ConnectBackend{}, logging.NewLogger("payouts"))

	results, err := svc.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enumerate creators"})
		return
	}

	for _, r := range results {
		monitoring.PayoutsTotal.WithLabelValues(r.Status).Inc()
		if r.Status == "success" {
			notifications.Notify(database.DB, r.AthleteID, notifications.TypePayoutPaid,
				"A payout for your available balance is on its way")
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListPayouts returns the creator's own payout audit trail.
func ListPayouts(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var rows []payouts.Payout
	if err := database.DB.
		Where("athlete_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payouts"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
