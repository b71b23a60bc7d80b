package middleware

import (
	"net/http"
	"strconv"

	"prologue-backend/database"
	"prologue-backend/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// RequireSubscriptionToAthlete gates a member's access to a creator's content
// on an entitling subscription to that creator. The creator and admins pass
// through. Expects an :id route param naming the athlete.
func RequireSubscriptionToAthlete() gin.HandlerFunc {
	return func(c *gin.Context) {
		athleteID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid athlete id"})
			return
		}
		athleteID := uint(athleteID64)

		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// Creators always see their own content.
		if userID == athleteID || c.GetString("role") == "admin" {
			c.Next()
			return
		}

		var sub subscriptions.Subscription
		if err := database.DB.
			Where("member_id = ? AND athlete_id = ?", userID, athleteID).
			First(&sub).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription not found or expired",
			})
			return
		}

		if !subscriptions.IsEntitling(sub.Status) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription is no longer active",
			})
			return
		}

		c.Next()
	}
}
