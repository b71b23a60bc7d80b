package admin

import (
	"net/http"
	"prologue-backend/database"
	"prologue-backend/internal/domain/payouts"
	"prologue-backend/internal/domain/subscriptions"
	"prologue-backend/internal/domain/users"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Lastname         string  `json:"lastname"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	IsVerified       bool    `json:"is_verified"`
	StripeAccountID  *string `json:"stripe_account_id,omitempty"`
	PayoutsEnabled   bool    `json:"payouts_enabled"`
	DetailsSubmitted bool    `json:"details_submitted"`
	Subscribers      int64   `json:"subscribers"`
	CreatedAt        string  `json:"created_at"`
}

type AdminPayout struct {
	ID             uint    `json:"id"`
	AthleteID      uint    `json:"athlete_id"`
	AthleteEmail   string  `json:"athlete_email"`
	StripePayoutID string  `json:"stripe_payout_id"`
	AmountUSD      float64 `json:"amount_usd"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers          int            `json:"total_users"`
	TotalCreators       int            `json:"total_creators"`
	ActiveSubscriptions int            `json:"active_subscriptions"`
	TotalPaidOutUSD     float64        `json:"total_paid_out_usd"`
	RecentPaidOutUSD    float64        `json:"recent_paid_out_usd"`
	UsersPerRole        map[string]int `json:"users_per_role"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	err := database.DB.Order("id").Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range all {
		adminUsers = append(adminUsers, AdminUser{
			ID:               u.ID,
			Name:             u.Name,
			Lastname:         u.Lastname,
			Email:            u.Email,
			Role:             u.Role,
			IsVerified:       u.IsVerified,
			StripeAccountID:  u.StripeAccountID,
			PayoutsEnabled:   u.PayoutsEnabled,
			DetailsSubmitted: u.DetailsSubmitted,
			Subscribers:      u.Subscribers,
			CreatedAt:        u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllPayouts(c *gin.Context) {
	type payoutRow struct {
		payouts.Payout
		AthleteEmail string
	}

	// Left join: audit rows for since-deleted creators still show up.
	var rows []payoutRow
	err := database.DB.
		Table("payouts").
		Select("payouts.*, users.email AS athlete_email").
		Joins("LEFT JOIN users ON users.id = payouts.athlete_id").
		Order("payouts.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payouts"})
		return
	}

	var result []AdminPayout
	for _, p := range rows {
		result = append(result, AdminPayout{
			ID:             p.ID,
			AthleteID:      p.AthleteID,
			AthleteEmail:   p.AthleteEmail,
			StripePayoutID: p.StripePayoutID,
			AmountUSD:      float64(p.AmountCents) / 100,
			Status:         p.Status,
			CreatedAt:      p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalCreators int64
	var activeSubs int64
	var totalCents int64
	var recentCents int64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&users.User{}).
		Where("role IN ?", []string{users.RoleAthlete, users.RoleCoach}).
		Count(&totalCreators)
	database.DB.Model(&subscriptions.Subscription{}).
		Where("status IN ?", []string{subscriptions.StatusActive, subscriptions.StatusCancelAtPeriodEnd}).
		Count(&activeSubs)
	database.DB.Model(&payouts.Payout{}).
		Where("status = ?", payouts.StatusPaid).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&totalCents)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&payouts.Payout{}).
		Where("status = ? AND created_at >= ?", payouts.StatusPaid, thirtyDaysAgo).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&recentCents)

	stats.TotalUsers = int(totalUsers)
	stats.TotalCreators = int(totalCreators)
	stats.ActiveSubscriptions = int(activeSubs)
	stats.TotalPaidOutUSD = float64(totalCents) / 100
	stats.RecentPaidOutUSD = float64(recentCents) / 100

	type RoleCount struct {
		Role  string
		Count int
	}
	var counts []RoleCount

	database.DB.
		Table("users").
		Select("role, COUNT(id) as count").
		Group("role").
		Scan(&counts)

	stats.UsersPerRole = map[string]int{}
	for _, rc := range counts {
		stats.UsersPerRole[rc.Role] = rc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var subs []subscriptions.Subscription
	if err := database.DB.Where("member_id = ? OR athlete_id = ?", user.ID, user.ID).Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"subscriptions": subs,
	})
}
