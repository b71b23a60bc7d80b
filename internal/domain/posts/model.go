package posts

import (
	"time"

	"prologue-backend/internal/domain/users"
)

// Post is a creator content entry. Access for members is gated on an
// entitling subscription to the author.
type Post struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index:idx_posts_user"`
	User      users.User `gorm:"constraint:OnDelete:CASCADE"`
	Title     string     `gorm:"not null"`
	Body      string
	Published bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
