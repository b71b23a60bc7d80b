package users

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role constants (single source of truth)
const (
	RoleMember  = "member"
	RoleAthlete = "athlete"
	RoleCoach   = "coach"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'member'"`
	IsVerified   bool

	// Payout destination at Stripe. Nil until the creator starts onboarding;
	// payouts stay disabled until the account.updated webhook flips the flags.
	StripeAccountID  *string `gorm:"column:stripe_account_id;uniqueIndex:idx_users_stripe_account_id"`
	PayoutsEnabled   bool    `gorm:"column:payouts_enabled"`
	DetailsSubmitted bool    `gorm:"column:details_submitted"`
	BankAccountID    *string `gorm:"column:bank_account_id"`

	// Creator pricing in USD. Nil until configured; checkout requires all
	// three tiers to be present.
	BasicPriceUSD   *decimal.Decimal `gorm:"column:basic_price_usd;type:numeric(10,2)"`
	ProPriceUSD     *decimal.Decimal `gorm:"column:pro_price_usd;type:numeric(10,2)"`
	PremiumPriceUSD *decimal.Decimal `gorm:"column:premium_price_usd;type:numeric(10,2)"`

	// Maintained with an atomic SQL increment, never read-modify-write.
	Subscribers int64 `gorm:"column:subscribers;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCreator reports whether the user can configure pricing and receive payouts.
func (u *User) IsCreator() bool {
	return u.Role == RoleAthlete || u.Role == RoleCoach
}

// HasPricing reports whether all three tiers are configured.
func (u *User) HasPricing() bool {
	return u.BasicPriceUSD != nil && u.ProPriceUSD != nil && u.PremiumPriceUSD != nil
}
