package referral

import (
	"regexp"
	"time"

	"prologue-backend/internal/domain/users"
)

// Code is a creator-owned referral code. Redemption bumps Uses atomically.
type Code struct {
	ID      uint       `gorm:"primaryKey"`
	Code    string     `gorm:"type:varchar(16);not null;uniqueIndex:idx_referral_codes_code"`
	OwnerID uint       `gorm:"not null;index"`
	Owner   users.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Active  bool       `gorm:"not null;default:true"`
	Uses    int64      `gorm:"not null;default:0"`

	CreatedAt time.Time
}

var codePattern = regexp.MustCompile(`^[A-Z0-9]{4,16}$`)

// IsWellFormed checks the code shape before we touch the database.
func IsWellFormed(code string) bool {
	return codePattern.MatchString(code)
}
