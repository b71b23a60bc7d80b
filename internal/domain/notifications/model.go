package notifications

import (
	"time"

	"prologue-backend/internal/domain/users"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Notification types emitted by server-side triggers.
const (
	TypeSubscriptionCreated   = "subscription_created"
	TypeSubscriptionCancelled = "subscription_cancelled"
	TypePayoutPaid            = "payout_paid"
	TypePayoutFailed          = "payout_failed"
	TypeOnboardingComplete    = "onboarding_complete"
	TypeFeedbackResponse      = "feedback_response"
)

// Notification rows are created by server-side triggers only; the owning user
// may flip the read flag and nothing else.
type Notification struct {
	ID      uint       `gorm:"primaryKey"`
	UserID  uint       `gorm:"not null;index:idx_notifications_user"`
	User    users.User `gorm:"constraint:OnDelete:CASCADE"`
	Type    string     `gorm:"type:varchar(40);not null"`
	Message string     `gorm:"not null"`
	Read    bool       `gorm:"not null;default:false"`

	CreatedAt time.Time
}

// Notify inserts a notification for a user. Failures are logged and swallowed:
// a missing notification must never fail the triggering operation.
func Notify(db *gorm.DB, userID uint, typ, message string) {
	n := Notification{UserID: userID, Type: typ, Message: message}
	if err := db.Create(&n).Error; err != nil {
		log.Error().Err(err).Uint("user_id", userID).Str("type", typ).Msg("failed to create notification")
	}
}
