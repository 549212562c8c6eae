package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adepa-shop/adepa/internal/shared/logger"
)

func testFlutterwave(t *testing.T, handler http.HandlerFunc) *FlutterwaveGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewFlutterwaveGateway("FLWSECK_TEST-abc", "my-verif-hash", 5*time.Second, logger.NewLogger(),
		WithFlutterwaveBaseURL(server.URL))
}

func TestFlutterwaveGateway_Initialize(t *testing.T) {
	t.Run("converts minor units to major", func(t *testing.T) {
		gw := testFlutterwave(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/payments", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "100.00", payload["amount"])
			assert.Equal(t, "GHS", payload["currency"])
			assert.Equal(t, "ADP-1", payload["tx_ref"])

			w.Write([]byte(`{"status":"success","data":{"link":"https://checkout.flutterwave.com/pay/abc"}}`))
		})

		result := gw.Initialize(context.Background(), InitializeRequest{
			Reference:   "ADP-1",
			AmountMinor: 10000,
			Currency:    "GHS",
			Email:       "ama@example.com",
		})

		assert.True(t, result.Success)
		assert.Equal(t, "https://checkout.flutterwave.com/pay/abc", result.RedirectURL)
		assert.Equal(t, "ADP-1", result.ProviderReference)
	})

	t.Run("gateway rejection", func(t *testing.T) {
		gw := testFlutterwave(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"error","message":"Invalid currency"}`))
		})

		result := gw.Initialize(context.Background(), InitializeRequest{
			Reference:   "ADP-1",
			AmountMinor: 10000,
			Currency:    "XXX",
			Email:       "ama@example.com",
		})

		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "Invalid currency")
	})
}

func TestFlutterwaveGateway_Verify(t *testing.T) {
	t.Run("successful converts major units back to minor", func(t *testing.T) {
		gw := testFlutterwave(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/transactions/verify_by_reference", r.URL.Path)
			assert.Equal(t, "ADP-1", r.URL.Query().Get("tx_ref"))
			w.Write([]byte(`{"status":"success","data":{"id":99,"tx_ref":"ADP-1","status":"successful","amount":100.0,"currency":"GHS"}}`))
		})

		result := gw.Verify(context.Background(), "ADP-1")

		require.True(t, result.Success)
		assert.Equal(t, VerifyStatusSucceeded, result.Status)
		assert.Equal(t, int64(10000), result.AmountMinor)
		assert.Equal(t, "GHS", result.Currency)
		assert.Equal(t, "99", result.TransactionID)
	})

	t.Run("pending", func(t *testing.T) {
		gw := testFlutterwave(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","data":{"tx_ref":"ADP-1","status":"pending"}}`))
		})

		result := gw.Verify(context.Background(), "ADP-1")

		assert.False(t, result.Success)
		assert.Equal(t, VerifyStatusPending, result.Status)
	})

	t.Run("unknown status maps to failed", func(t *testing.T) {
		gw := testFlutterwave(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","data":{"tx_ref":"ADP-1","status":"mystery"}}`))
		})

		result := gw.Verify(context.Background(), "ADP-1")

		assert.Equal(t, VerifyStatusFailed, result.Status)
		assert.Contains(t, result.ErrorMessage, "mystery")
	})
}

func TestFlutterwaveGateway_VerifyWebhookSignature(t *testing.T) {
	gw := NewFlutterwaveGateway("FLWSECK_TEST-abc", "my-verif-hash", time.Second, logger.NewLogger())
	payload := []byte(`{"event":"charge.completed"}`)

	assert.True(t, gw.VerifyWebhookSignature(payload, "my-verif-hash"))
	assert.False(t, gw.VerifyWebhookSignature(payload, "wrong-hash"))
	assert.False(t, gw.VerifyWebhookSignature(payload, ""))

	unconfigured := NewFlutterwaveGateway("FLWSECK_TEST-abc", "", time.Second, logger.NewLogger())
	assert.False(t, unconfigured.VerifyWebhookSignature(payload, "my-verif-hash"))
}
