package database

import (
	"fmt"
	"log"
	"os"

	"prologue-backend/internal/domain/feedback"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/payouts"
	"prologue-backend/internal/domain/posts"
	"prologue-backend/internal/domain/pricing"
	"prologue-backend/internal/domain/referral"
	"prologue-backend/internal/domain/subscriptions"
	"prologue-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},

		// billing
		&subscriptions.Subscription{},
		&payouts.Payout{},
		&pricing.Change{},

		// platform
		&notifications.Notification{},
		&feedback.PlatformFeedback{},
		&feedback.PlatformUpdate{},
		&referral.Code{},
		&posts.Post{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
