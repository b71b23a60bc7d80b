package pricing

import (
	"errors"
	"net/http"
	"time"

	"prologue-backend/database"
	pricingdomain "prologue-backend/internal/domain/pricing"
	"prologue-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpdatePricing applies a creator's new tier prices. The rolling-window rate
// limit and the tier ordering are both enforced before anything is written.
// The transaction takes a FOR UPDATE lock on the creator row before counting
// in-window changes, so two concurrent updates cannot both pass the window
// check and overshoot the limit.
func UpdatePricing(c *gin.Context) {
	var body pricingdomain.Tiers
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pricing payload"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	if err := pricingdomain.ValidateTiers(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if !user.IsCreator() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only athletes and coaches have pricing"})
		return
	}

	now := time.Now()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Serialize per creator: the second of two concurrent updates blocks
		// here and then sees the first one's Change row.
		var locked users.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, userID).Error; err != nil {
			return err
		}

		// Prune history that fell out of the window, then count what's left.
		cutoff := now.Add(-pricingdomain.Window)
		if err := tx.Where("user_id = ? AND changed_at <= ?", userID, cutoff).
			Delete(&pricingdomain.Change{}).Error; err != nil {
			return err
		}

		var history []pricingdomain.Change
		if err := tx.Where("user_id = ?", userID).Find(&history).Error; err != nil {
			return err
		}
		stamps := make([]time.Time, 0, len(history))
		for _, h := range history {
			stamps = append(stamps, h.ChangedAt)
		}
		if err := pricingdomain.CheckWindow(now, stamps); err != nil {
			return err
		}

		if err := tx.Model(&users.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"basic_price_usd":   body.Basic,
			"pro_price_usd":     body.Pro,
			"premium_price_usd": body.Premium,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&pricingdomain.Change{UserID: userID, ChangedAt: now}).Error
	})

	var limited pricingdomain.ErrRateLimited
	if errors.As(err, &limited) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":           limited.Error(),
			"days_until_next": limited.DaysUntilNext,
			"next_allowed_at": now.AddDate(0, 0, limited.DaysUntilNext).Format(time.RFC3339),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pricing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pricing updated",
		"pricing": body,
	})
}
