package users

import "github.com/shopspring/decimal"

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

type PricingDTO struct {
	Basic   decimal.Decimal `json:"basic"`
	Pro     decimal.Decimal `json:"pro"`
	Premium decimal.Decimal `json:"premium"`
}

// CreatorDTO is present only for athlete/coach accounts.
type CreatorDTO struct {
	StripeAccountID  *string     `json:"stripe_account_id"`
	PayoutsEnabled   bool        `json:"payouts_enabled"`
	DetailsSubmitted bool        `json:"details_submitted"`
	Subscribers      int64       `json:"subscribers"`
	Pricing          *PricingDTO `json:"pricing"`
}

// SubscriptionDTO is one entry of a member's subscription list.
type SubscriptionDTO struct {
	AthleteID            uint   `json:"athlete_id"`
	AthleteName          string `json:"athlete_name"`
	Status               string `json:"status"`
	Plan                 string `json:"plan"`
	StripeSubscriptionID string `json:"stripe_subscription_id"`
}

type MeResponse struct {
	User          UserDTO           `json:"user"`
	Creator       *CreatorDTO       `json:"creator,omitempty"`
	Subscriptions []SubscriptionDTO `json:"subscriptions,omitempty"`
	UnreadCount   int64             `json:"unread_count"`
}
