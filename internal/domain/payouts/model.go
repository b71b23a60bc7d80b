package payouts

import "time"

// Vendor payout statuses mirrored locally. Rows are immutable after creation
// except for the webhook-driven status update.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
	StatusInTransit = "in_transit"
)

// Payout is the audit-trail record for one issued payout. AthleteID is a
// plain reference with no foreign key: audit rows outlive the creator's
// account on purpose.
type Payout struct {
	ID             uint   `gorm:"primaryKey"`
	StripePayoutID string `gorm:"column:stripe_payout_id;not null;uniqueIndex:idx_payouts_stripe_id"`
	AthleteID      uint   `gorm:"not null;index:idx_payouts_athlete"`
	AmountCents    int64  `gorm:"not null"`
	Currency       string `gorm:"type:varchar(8);not null;default:'usd'"`
	Status         string `gorm:"type:varchar(16);not null;default:'pending'"`
	ArrivalDate    time.Time
	CreatedAt      time.Time
}
