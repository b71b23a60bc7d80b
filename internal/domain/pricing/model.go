package pricing

import "time"

// Change records one accepted pricing update. The rolling-window guard reads
// these rows inside the same transaction that inserts the next one.
type Change struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_pricing_changes_user"`
	ChangedAt time.Time `gorm:"index"`
}
