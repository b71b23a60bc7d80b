package lsqwebhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"prologue-backend/config"
	"prologue-backend/database"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/subscriptions"
	"prologue-backend/internal/domain/users"
	"prologue-backend/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// event is the slice of a LemonSqueezy webhook payload we care about. The
// (memberEmail, athleteId) pair rides in custom data set at checkout time.
type event struct {
	Meta struct {
		EventName  string `json:"event_name"`
		CustomData struct {
			// Custom data values arrive as strings.
			MemberEmail string `json:"memberEmail"`
			AthleteID   string `json:"athleteId"`
		} `json:"custom_data"`
	} `json:"meta"`
}

// LemonSqueezyWebhook ingests the secondary vendor's events. The X-Signature
// header carries an HMAC-SHA256 of the raw body; verification happens before
// any parsing and a mismatch is terminal for the delivery.
func LemonSqueezyWebhook(c *gin.Context) {
	secret := config.LEMONSQUEEZY_WEBHOOK_SECRET
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	payload, err := readRawBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	if !verifySignature(payload, c.GetHeader("X-Signature"), secret) {
		log.Warn().Msg("lemonsqueezy signature verification failed")
		monitoring.WebhookEventsTotal.WithLabelValues("lemonsqueezy", "unknown", "signature_failed").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Signature verification failed"})
		return
	}

	var ev event
	if err := json.Unmarshal(payload, &ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed payload"})
		return
	}

	switch ev.Meta.EventName {
	case "subscription_cancelled":
		handleStatusEvent(c, &ev, subscriptions.StatusCancelled, true)
	case "subscription_payment_success", "subscription_resumed":
		handleStatusEvent(c, &ev, subscriptions.StatusActive, false)
	default:
		monitoring.WebhookEventsTotal.WithLabelValues("lemonsqueezy", ev.Meta.EventName, "ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func handleStatusEvent(c *gin.Context, ev *event, status string, notify bool) {
	eventName := ev.Meta.EventName
	memberEmail := ev.Meta.CustomData.MemberEmail
	athleteID64, _ := strconv.ParseUint(ev.Meta.CustomData.AthleteID, 10, 64)
	athleteID := uint(athleteID64)

	if memberEmail == "" || athleteID == 0 {
		monitoring.WebhookEventsTotal.WithLabelValues("lemonsqueezy", eventName, "error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required custom data"})
		return
	}

	var member users.User
	if err := database.DB.Where("email = ?", memberEmail).First(&member).Error; err != nil {
		// Unknown pair: acknowledge so the vendor stops retrying, but never
		// write to a row that does not exist.
		log.Warn().Str("event", eventName).Str("member_email", memberEmail).
			Uint("athlete_id", athleteID).Msg("lemonsqueezy event for unknown member")
		monitoring.WebhookEventsTotal.WithLabelValues("lemonsqueezy", eventName, "ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "no matching member"})
		return
	}

	var sub subscriptions.Subscription
	if err := database.DB.
		Where("member_id = ? AND athlete_id = ?", member.ID, athleteID).
		First(&sub).Error; err != nil {
		log.Warn().Str("event", eventName).Uint("member_id", member.ID).
			Uint("athlete_id", athleteID).Msg("lemonsqueezy event for unknown subscription")
		monitoring.WebhookEventsTotal.WithLabelValues("lemonsqueezy", eventName, "ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "no matching subscription"})
		return
	}

	if err := database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error; err != nil {
		monitoring.WebhookEventsTotal.WithLabelValues("lemonsqueezy", eventName, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Event handling failed"})
		return
	}

	if notify {
		notifications.Notify(database.DB, sub.AthleteID, notifications.TypeSubscriptionCancelled,
			"A member cancelled their subscription")
	}

	monitoring.WebhookEventsTotal.WithLabelValues("lemonsqueezy", eventName, "handled").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// verifySignature compares the hex HMAC-SHA256 of the raw body in constant
// time.
func verifySignature(payload []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func readRawBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
