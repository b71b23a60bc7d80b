package monitoring

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// WebhookEventsTotal counts webhook deliveries by vendor, event type and
	// outcome (handled, ignored, signature_failed, error).
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of webhook deliveries processed",
		},
		[]string{"vendor", "event", "outcome"},
	)

	// PayoutsTotal counts payout attempts from the batch job by outcome.
	PayoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payouts_total",
			Help: "Total number of payout attempts from the payout job",
		},
		[]string{"status"},
	)

	// SubscriptionsCreatedTotal counts successful checkouts by plan tier.
	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriptions_created_total",
			Help: "Total number of subscriptions created by plan",
		},
		[]string{"plan"},
	)
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
