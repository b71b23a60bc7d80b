package users

import "time"

// VerificationToken backs both email verification and password reset; Type
// distinguishes the two. Email-verification tokens have no expiry, reset
// tokens carry a short ExpiresAt checked at redemption.
type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
