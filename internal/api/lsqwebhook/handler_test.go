package lsqwebhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"prologue-backend/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "lsq_test_secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/lemonsqueezy", LemonSqueezyWebhook)
	return r
}

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func post(r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/lemonsqueezy", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("X-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLemonSqueezyWebhook_MissingSignature(t *testing.T) {
	config.LEMONSQUEEZY_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"meta":{"event_name":"subscription_cancelled"}}`)
	w := post(r, payload, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Signature verification failed")
}

func TestLemonSqueezyWebhook_BadSignature(t *testing.T) {
	config.LEMONSQUEEZY_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"meta":{"event_name":"subscription_cancelled"}}`)
	w := post(r, payload, sign(payload, "wrong_secret"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLemonSqueezyWebhook_TamperedBody(t *testing.T) {
	config.LEMONSQUEEZY_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"meta":{"event_name":"subscription_cancelled"}}`)
	tampered := []byte(`{"meta":{"event_name":"subscription_resumed"}}`)
	w := post(r, tampered, sign(payload, testSecret))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLemonSqueezyWebhook_MissingCustomData(t *testing.T) {
	config.LEMONSQUEEZY_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"meta":{"event_name":"subscription_cancelled","custom_data":{}}}`)
	w := post(r, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required custom data")
}

func TestLemonSqueezyWebhook_UnknownEventAcknowledged(t *testing.T) {
	config.LEMONSQUEEZY_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`{"meta":{"event_name":"order_created","custom_data":{"memberEmail":"m@example.com","athleteId":"7"}}}`)
	w := post(r, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestLemonSqueezyWebhook_MalformedPayload(t *testing.T) {
	config.LEMONSQUEEZY_WEBHOOK_SECRET = testSecret
	r := newRouter()

	payload := []byte(`not json`)
	w := post(r, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed payload")
}
