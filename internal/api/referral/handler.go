package referral

import (
	"net/http"
	"strings"

	"prologue-backend/database"
	"prologue-backend/internal/domain/referral"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ValidateCode checks a referral code and redeems it. The format check runs
// before the database is touched; redemption bumps the use counter
// atomically.
func ValidateCode(c *gin.Context) {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(body.Code))
	if !referral.IsWellFormed(code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code format"})
		return
	}

	var row referral.Code
	if err := database.DB.Preload("Owner").Where("code = ? AND active = ?", code, true).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown or inactive code"})
		return
	}

	if err := database.DB.Model(&referral.Code{}).
		Where("id = ?", row.ID).
		UpdateColumn("uses", gorm.Expr("uses + ?", 1)).Error; err != nil {
		// The code is valid either way; a lost count is not worth failing
		// the signup flow over.
		log.Error().Err(err).Str("code", code).Msg("failed to bump referral use count")
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"owner_id":   row.OwnerID,
		"owner_name": row.Owner.Name,
	})
}
