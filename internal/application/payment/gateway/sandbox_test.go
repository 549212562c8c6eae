package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

func TestSandboxGateway_InitializeVerifyRoundTrip(t *testing.T) {
	gw := NewSandboxGateway(payment.ProviderPaystack, true, func(reference string) string {
		return "http://localhost:8080/api/v1/payments/mock/" + reference
	}, logger.NewLogger())

	initResult := gw.Initialize(context.Background(), InitializeRequest{
		AmountMinor: 10000,
		Currency:    "GHS",
		Email:       "kofi@example.com",
	})

	require.True(t, initResult.Success)
	assert.True(t, IsSandboxReference(initResult.ProviderReference))
	assert.Contains(t, initResult.RedirectURL, initResult.ProviderReference)

	verifyResult := gw.Verify(context.Background(), initResult.ProviderReference)

	require.True(t, verifyResult.Success)
	assert.Equal(t, VerifyStatusSucceeded, verifyResult.Status)
	assert.Equal(t, int64(10000), verifyResult.AmountMinor)
	assert.Equal(t, "GHS", verifyResult.Currency)
}

func TestSandboxGateway_Decline(t *testing.T) {
	gw := NewSandboxGateway(payment.ProviderPaystack, false, nil, logger.NewLogger())

	initResult := gw.Initialize(context.Background(), InitializeRequest{
		AmountMinor: 5000,
		Currency:    "GHS",
	})
	require.True(t, initResult.Success)

	verifyResult := gw.Verify(context.Background(), initResult.ProviderReference)

	assert.False(t, verifyResult.Success)
	assert.Equal(t, VerifyStatusFailed, verifyResult.Status)
}

func TestSandboxGateway_InvalidInput(t *testing.T) {
	gw := NewSandboxGateway(payment.ProviderPaystack, true, nil, logger.NewLogger())

	assert.False(t, gw.Initialize(context.Background(), InitializeRequest{AmountMinor: 0, Currency: "GHS"}).Success)
	assert.False(t, gw.Initialize(context.Background(), InitializeRequest{AmountMinor: 100}).Success)

	result := gw.Verify(context.Background(), "not-a-sandbox-reference")
	assert.False(t, result.Success)
	assert.Equal(t, VerifyStatusFailed, result.Status)
}

func TestBuildFromConfigs(t *testing.T) {
	newConfig := func(t *testing.T, key string, testMode bool, creds map[string]string) *payment.ProviderConfig {
		t.Helper()
		cfg, err := payment.NewProviderConfig(key, key, []string{"GHS"})
		require.NoError(t, err)
		cfg.SetTestMode(testMode)
		if creds != nil {
			cfg.SaveCredentials(creds)
		}
		return cfg
	}

	t.Run("test mode selects sandbox", func(t *testing.T) {
		registry := BuildFromConfigs([]*payment.ProviderConfig{
			newConfig(t, payment.ProviderPaystack, true, map[string]string{CredentialSecretKey: "sk_live_x"}),
		}, BuilderOptions{Logger: logger.NewLogger()})

		gw, err := registry.Get(payment.ProviderPaystack)
		require.NoError(t, err)
		_, ok := gw.(*SandboxGateway)
		assert.True(t, ok)
	})

	t.Run("missing credentials selects sandbox", func(t *testing.T) {
		registry := BuildFromConfigs([]*payment.ProviderConfig{
			newConfig(t, payment.ProviderFlutterwave, false, nil),
		}, BuilderOptions{Logger: logger.NewLogger()})

		gw, err := registry.Get(payment.ProviderFlutterwave)
		require.NoError(t, err)
		_, ok := gw.(*SandboxGateway)
		assert.True(t, ok)
	})

	t.Run("live credentials select real adapter", func(t *testing.T) {
		registry := BuildFromConfigs([]*payment.ProviderConfig{
			newConfig(t, payment.ProviderPaystack, false, map[string]string{CredentialSecretKey: "sk_live_x"}),
		}, BuilderOptions{Logger: logger.NewLogger()})

		gw, err := registry.Get(payment.ProviderPaystack)
		require.NoError(t, err)
		_, ok := gw.(*PaystackGateway)
		assert.True(t, ok)
	})

	t.Run("unknown provider is skipped", func(t *testing.T) {
		registry := BuildFromConfigs([]*payment.ProviderConfig{
			newConfig(t, "stripe", false, nil),
		}, BuilderOptions{Logger: logger.NewLogger()})

		_, err := registry.Get("stripe")
		assert.Error(t, err)
	})
}
