package subscriptions

import (
	"time"

	"prologue-backend/internal/domain/users"
)

// Subscription statuses. Transitions happen only through webhook events or
// the explicit cancel endpoint, never from arbitrary client writes.
const (
	StatusActive            = "active"
	StatusCancelled         = "cancelled"
	StatusPaused            = "paused"
	StatusCancelAtPeriodEnd = "canceled-at-period-end"
	StatusPastDue           = "past_due"
)

// PlatformFeePercent is the flat platform cut applied to every recurring
// charge; the remainder transfers to the creator's connected account.
const PlatformFeePercent = 15.0

// Plan tiers offered by every creator.
const (
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

// Subscription links a paying member to a creator. One row per
// (member, athlete) pair, mirroring a recurring Stripe subscription whose
// funds split between the platform and the creator's connected account.
type Subscription struct {
	ID        uint       `gorm:"primaryKey"`
	MemberID  uint       `gorm:"not null;uniqueIndex:idx_subscriptions_member_athlete,priority:1"`
	Member    users.User `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	AthleteID uint       `gorm:"not null;uniqueIndex:idx_subscriptions_member_athlete,priority:2"`
	Athlete   users.User `gorm:"foreignKey:AthleteID"`

	Status string `gorm:"type:varchar(32);not null;default:'active';index"`
	Plan   string `gorm:"type:varchar(16);not null"`

	StripeCustomerID     string `gorm:"column:stripe_customer_id;not null"`
	StripeSubscriptionID string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_subscriptions_stripe_id"`

	CurrentPeriodEnd *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsEntitling reports whether the subscription currently grants access to the
// creator's content.
func IsEntitling(status string) bool {
	switch status {
	case StatusActive, StatusCancelAtPeriodEnd:
		return true
	}
	return false
}

// ValidPlan reports whether the tier name is one of the three offered.
func ValidPlan(plan string) bool {
	switch plan {
	case PlanBasic, PlanPro, PlanPremium:
		return true
	}
	return false
}
