package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adepa-shop/adepa/internal/shared/logger"
)

func testPaystack(t *testing.T, handler http.HandlerFunc) (*PaystackGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gw := NewPaystackGateway("sk_test_secret", 5*time.Second, logger.NewLogger(),
		WithPaystackBaseURL(server.URL))
	return gw, server
}

func TestPaystackGateway_Initialize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gw, _ := testPaystack(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
			w.Write([]byte(`{"status":true,"data":{"authorization_url":"https://checkout.paystack.com/abc","reference":"ref123"}}`))
		})

		result := gw.Initialize(context.Background(), InitializeRequest{
			Reference:   "ADP-1",
			AmountMinor: 10000,
			Currency:    "GHS",
			Email:       "kofi@example.com",
		})

		assert.True(t, result.Success)
		assert.Equal(t, "https://checkout.paystack.com/abc", result.RedirectURL)
		assert.Equal(t, "ref123", result.ProviderReference)
	})

	t.Run("gateway rejection", func(t *testing.T) {
		gw, _ := testPaystack(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":false,"message":"Invalid amount"}`))
		})

		result := gw.Initialize(context.Background(), InitializeRequest{
			AmountMinor: 0,
			Currency:    "GHS",
			Email:       "kofi@example.com",
		})

		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "Invalid amount")
	})

	t.Run("unreachable gateway returns failed result", func(t *testing.T) {
		gw := NewPaystackGateway("sk_test_secret", time.Second, logger.NewLogger(),
			WithPaystackBaseURL("http://127.0.0.1:1"))

		result := gw.Initialize(context.Background(), InitializeRequest{
			AmountMinor: 10000,
			Currency:    "GHS",
			Email:       "kofi@example.com",
		})

		assert.False(t, result.Success)
		assert.Equal(t, "payment gateway is unreachable", result.ErrorMessage)
	})

	t.Run("missing secret key", func(t *testing.T) {
		gw := NewPaystackGateway("", time.Second, logger.NewLogger())

		result := gw.Initialize(context.Background(), InitializeRequest{
			AmountMinor: 10000,
			Currency:    "GHS",
			Email:       "kofi@example.com",
		})

		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "not configured")
	})

	t.Run("missing email", func(t *testing.T) {
		gw := NewPaystackGateway("sk_test_secret", time.Second, logger.NewLogger())

		result := gw.Initialize(context.Background(), InitializeRequest{
			AmountMinor: 10000,
			Currency:    "GHS",
		})

		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "email")
	})
}

func TestPaystackGateway_Verify(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus VerifyStatus
		wantOK     bool
	}{
		{
			name:       "success reports amount",
			body:       `{"status":true,"data":{"id":42,"status":"success","reference":"ref123","amount":10000,"currency":"GHS"}}`,
			wantStatus: VerifyStatusSucceeded,
			wantOK:     true,
		},
		{
			name:       "pending stays pending",
			body:       `{"status":true,"data":{"status":"pending","reference":"ref123"}}`,
			wantStatus: VerifyStatusPending,
		},
		{
			name:       "ongoing maps to pending",
			body:       `{"status":true,"data":{"status":"ongoing","reference":"ref123"}}`,
			wantStatus: VerifyStatusPending,
		},
		{
			name:       "abandoned maps to failed",
			body:       `{"status":true,"data":{"status":"abandoned","reference":"ref123","gateway_response":"Abandoned"}}`,
			wantStatus: VerifyStatusFailed,
		},
		{
			name:       "unknown status maps to failed",
			body:       `{"status":true,"data":{"status":"weird_new_state","reference":"ref123"}}`,
			wantStatus: VerifyStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, _ := testPaystack(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/transaction/verify/ref123", r.URL.Path)
				w.Write([]byte(tt.body))
			})

			result := gw.Verify(context.Background(), "ref123")

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantOK, result.Success)
		})
	}

	t.Run("succeeded carries reported amount", func(t *testing.T) {
		gw, _ := testPaystack(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":true,"data":{"id":42,"status":"success","reference":"ref123","amount":10000,"currency":"GHS"}}`))
		})

		result := gw.Verify(context.Background(), "ref123")

		require.True(t, result.Success)
		assert.Equal(t, int64(10000), result.AmountMinor)
		assert.Equal(t, "GHS", result.Currency)
		assert.Equal(t, "42", result.TransactionID)
	})
}

func TestPaystackGateway_VerifyWebhookSignature(t *testing.T) {
	gw := NewPaystackGateway("sk_test_secret", time.Second, logger.NewLogger())
	payload := []byte(`{"event":"charge.success","data":{"reference":"ref123"}}`)

	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, gw.VerifyWebhookSignature(payload, signature))
	assert.False(t, gw.VerifyWebhookSignature(payload, "deadbeef"))
	assert.False(t, gw.VerifyWebhookSignature(payload, ""))

	unconfigured := NewPaystackGateway("", time.Second, logger.NewLogger())
	assert.False(t, unconfigured.VerifyWebhookSignature(payload, signature))
}
