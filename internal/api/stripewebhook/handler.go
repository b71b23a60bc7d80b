package stripewebhooks

import (
	"encoding/json"
	"io"
	"net/http"

	"prologue-backend/config"
	"prologue-backend/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// StripeWebhook is the single ingest endpoint for the primary payments
// vendor. The signature is verified against the raw body before any parsing;
// each known event type performs exactly one targeted update. Unknown events
// are acknowledged so the vendor does not retry them.
func StripeWebhook(c *gin.Context) {
	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	payload, err := readRawBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Warn().Err(err).Msg("stripe signature verification failed")
		monitoring.WebhookEventsTotal.WithLabelValues("stripe", "unknown", "signature_failed").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		finish(c, string(event.Type), handleSubscriptionUpdated(&sub))

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		finish(c, string(event.Type), handleSubscriptionDeleted(&sub))

	case "account.updated":
		var acct stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse account"})
			return
		}
		finish(c, string(event.Type), handleAccountUpdated(&acct))

	case "payout.paid", "payout.failed":
		var p stripe.Payout
		if err := json.Unmarshal(event.Data.Raw, &p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payout"})
			return
		}
		finish(c, string(event.Type), handlePayoutStatus(string(event.Type), &p))

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse invoice"})
			return
		}
		finish(c, string(event.Type), handleInvoicePaymentFailed(&inv))

	default:
		// Acknowledge unknown events to avoid retries
		monitoring.WebhookEventsTotal.WithLabelValues("stripe", string(event.Type), "ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func finish(c *gin.Context, eventType string, err error) {
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("stripe webhook handler failed")
		monitoring.WebhookEventsTotal.WithLabelValues("stripe", eventType, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Event handling failed"})
		return
	}
	monitoring.WebhookEventsTotal.WithLabelValues("stripe", eventType, "handled").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func readRawBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
