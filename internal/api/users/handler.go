package users

import (
	"net/http"

	"prologue-backend/config"
	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/posts"
	"prologue-backend/internal/domain/pricing"
	"prologue-backend/internal/domain/subscriptions"
	"prologue-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
	}

	database.DB.Model(&notifications.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Count(&resp.UnreadCount)

	if user.IsCreator() {
		creator := &CreatorDTO{
			StripeAccountID:  user.StripeAccountID,
			PayoutsEnabled:   user.PayoutsEnabled,
			DetailsSubmitted: user.DetailsSubmitted,
			Subscribers:      user.Subscribers,
		}
		if user.HasPricing() {
			creator.Pricing = &PricingDTO{
				Basic:   *user.BasicPriceUSD,
				Pro:     *user.ProPriceUSD,
				Premium: *user.PremiumPriceUSD,
			}
		}
		resp.Creator = creator
	}

	if user.Role == users.RoleMember {
		var subs []subscriptions.Subscription
		if err := database.DB.
			Preload("Athlete").
			Where("member_id = ?", user.ID).
			Order("created_at DESC").
			Find(&subs).Error; err == nil {
			for _, s := range subs {
				resp.Subscriptions = append(resp.Subscriptions, SubscriptionDTO{
					AthleteID:            s.AthleteID,
					AthleteName:          s.Athlete.Name,
					Status:               s.Status,
					Plan:                 s.Plan,
					StripeSubscriptionID: s.StripeSubscriptionID,
				})
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, "email_verification").First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}

// DeleteAccount removes the user and everything they own: posts,
// notifications, pricing history, tokens, and subscription rows on both
// sides (as member, and as the creator being subscribed to). Payout audit
// rows are kept for bookkeeping.
func DeleteAccount(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&posts.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&notifications.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&pricing.Change{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&users.VerificationToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ? OR athlete_id = ?", userID, userID).
			Delete(&subscriptions.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&users.User{}, userID).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("account deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
