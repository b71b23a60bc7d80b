package stripewebhooks

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prologue-backend/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v75/webhook"
)

const testSecret = "whsec_test_secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook", StripeWebhook)
	return r
}

func signedRequest(payload []byte, secret string) *http.Request {
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, secret)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature",
		fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig)))
	return req
}

func TestStripeWebhook_MissingSignature(t *testing.T) {
	config.STRIPE_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated","data":{"object":{}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Signature verification failed")
}

func TestStripeWebhook_WrongSecret(t *testing.T) {
	config.STRIPE_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated","data":{"object":{}}}`)
	req := signedRequest(payload, "whsec_some_other_secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStripeWebhook_TamperedBody(t *testing.T) {
	config.STRIPE_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated","data":{"object":{}}}`)
	req := signedRequest(payload, testSecret)
	tampered := bytes.Replace(payload, []byte("evt_1"), []byte("evt_2"), 1)
	req.Body = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(tampered)).Body

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStripeWebhook_UnknownEventAcknowledged(t *testing.T) {
	config.STRIPE_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"id":"evt_1","type":"some.future.event","data":{"object":{}}}`)
	req := signedRequest(payload, testSecret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

// Dispatch for the handled event types: objects with no id are acked without
// touching storage.
func TestStripeWebhook_KnownEventDispatch(t *testing.T) {
	config.STRIPE_WEBHOOK_SECRET = testSecret
	r := newRouter()

	for _, eventType := range []string{
		"customer.subscription.updated",
		"customer.subscription.deleted",
		"account.updated",
		"payout.paid",
		"payout.failed",
		"invoice.payment_failed",
	} {
		payload := []byte(`{"id":"evt_1","type":"` + eventType + `","data":{"object":{}}}`)
		req := signedRequest(payload, testSecret)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "event %s", eventType)
		assert.Contains(t, w.Body.String(), "received", "event %s", eventType)
	}
}

func TestStripeWebhook_SecretNotConfigured(t *testing.T) {
	config.STRIPE_WEBHOOK_SECRET = ""
	t.Cleanup(func() { config.STRIPE_WEBHOOK_SECRET = testSecret })
	r := newRouter()

	payload := []byte(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
