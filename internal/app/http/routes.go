package routes

import (
	accountsapi "prologue-backend/internal/api/accounts"
	adminapi "prologue-backend/internal/api/admin"
	authapi "prologue-backend/internal/api/auth"
	"prologue-backend/internal/api/earnings"
	"prologue-backend/internal/api/feedback"
	"prologue-backend/internal/api/lsqwebhook"
	"prologue-backend/internal/api/notifications"
	payoutsapi "prologue-backend/internal/api/payouts"
	"prologue-backend/internal/api/posts"
	pricingapi "prologue-backend/internal/api/pricing"
	referralapi "prologue-backend/internal/api/referral"
	stripewebhooks "prologue-backend/internal/api/stripewebhook"
	subscriptionsapi "prologue-backend/internal/api/subscriptions"
	updatesapi "prologue-backend/internal/api/updates"
	"prologue-backend/internal/api/users"
	"prologue-backend/internal/app/http/middleware"
	"prologue-backend/internal/monitoring"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", monitoring.Handler())

	// Webhooks verify their own signatures over the raw body, so they stay
	// outside the sanitization group.
	r.POST("/api/stripe/webhook", stripewebhooks.StripeWebhook)
	r.POST("/api/lemonsqueezy/webhook", lsqwebhook.LemonSqueezyWebhook)

	// ✅ Apply input sanitization to public routes only
	public := r.Group("/api")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/platform-updates", updatesapi.ListUpdates)
	public.POST("/referral/validate", referralapi.ValidateCode)

	// Authenticated
	auth := r.Group("/api")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.DELETE("/account", users.DeleteAccount)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.PUT("/pricing", pricingapi.UpdatePricing)
	auth.POST("/stripe/create-coach-account", accountsapi.CreateCoachAccount)
	auth.POST("/stripe/onboarding-link", accountsapi.OnboardingLink)
	auth.GET("/stripe/athlete-earnings", earnings.GetAthleteEarnings)
	auth.GET("/stripe/payouts", payoutsapi.ListPayouts)

	auth.POST("/stripe/create-subscription", subscriptionsapi.CreateSubscription)
	auth.POST("/stripe/cancel-subscription", subscriptionsapi.CancelSubscription)

	auth.GET("/notifications", notifications.ListNotifications)
	auth.POST("/notifications/:id/read", notifications.MarkRead)

	auth.POST("/platform-feedback", feedback.CreateFeedback)
	auth.GET("/platform-feedback", feedback.ListFeedback)

	auth.POST("/posts", posts.CreatePost)
	auth.DELETE("/posts/:id", posts.DeletePost)

	// Subscribed members only
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireSubscriptionToAthlete())
	subscribed.GET("/athletes/:id/posts", posts.ListAthletePosts)

	// Admin routes
	admin := r.Group("/api")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.POST("/stripe/create-payout", payoutsapi.CreatePayouts)
	admin.POST("/platform-updates", updatesapi.CreateUpdate)
	admin.POST("/platform-feedback/:id/respond", feedback.RespondToFeedback)
	admin.GET("/admin/dashboard", adminapi.AdminDashboard)
	admin.GET("/admin/users", adminapi.ListAllUsers)
	admin.GET("/admin/payouts", adminapi.ListAllPayouts)
	admin.GET("/admin/stats", adminapi.GetAdminStats)
	admin.GET("/admin/user/:id", adminapi.GetUserDetails)
}
