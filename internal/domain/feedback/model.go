package feedback

import (
	"time"

	"prologue-backend/internal/domain/users"
)

const (
	StatusOpen      = "open"
	StatusResponded = "responded"
)

// PlatformFeedback is a user-authored report. Invariant: Status "responded"
// implies Response is non-nil and non-empty.
type PlatformFeedback struct {
	ID       uint       `gorm:"primaryKey"`
	UserID   uint       `gorm:"not null;index"`
	User     users.User `gorm:"constraint:OnDelete:CASCADE"`
	Category string     `gorm:"type:varchar(40);not null"`
	Message  string     `gorm:"not null"`
	Status   string     `gorm:"type:varchar(20);not null;default:'open'"`
	Response *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlatformUpdate is an admin-authored announcement shown to all users.
// AuthorID is a plain reference: announcements outlive their author's
// account.
type PlatformUpdate struct {
	ID       uint   `gorm:"primaryKey"`
	AuthorID uint   `gorm:"not null"`
	Title    string `gorm:"not null"`
	Body     string `gorm:"not null"`

	CreatedAt time.Time
}
