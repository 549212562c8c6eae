package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adepa-shop/adepa/internal/application/payment/gateway"
	"github.com/adepa-shop/adepa/internal/application/payment/services"
	"github.com/adepa-shop/adepa/internal/domain/payment"
	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

const testCallbackBaseURL = "http://localhost:8080/checkout/confirm"

func enabledProvider(t *testing.T, key string, currencies ...string) *payment.ProviderConfig {
	t.Helper()
	return payment.ReconstructProviderConfig(payment.ProviderReconstructParams{
		ID:          1,
		Key:         key,
		DisplayName: key,
		Enabled:     true,
		Primary:     true,
		Priority:    1,
		Currencies:  currencies,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
}

func registryWith(gw gateway.Gateway) *gateway.Registry {
	registry := gateway.NewRegistry()
	registry.Register(gw)
	return registry
}

func processingTestIntent(t *testing.T, idempotencyKey string) *payment.PaymentIntent {
	t.Helper()
	reference := "ADP-ref-1"
	redirect := "https://checkout.paystack.com/stored"
	key := idempotencyKey
	return payment.ReconstructIntent(payment.IntentReconstructParams{
		ID:                7,
		SID:               "pi_stored",
		Provider:          payment.ProviderPaystack,
		ProviderReference: &reference,
		Amount:            vo.NewMoney(10000, "GHS"),
		Status:            vo.IntentStatusProcessing,
		RedirectURL:       &redirect,
		CallbackURL:       testCallbackBaseURL,
		IdempotencyKey:    &key,
		Version:           1,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	})
}

func TestInitializePaymentUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path moves intent to processing", func(t *testing.T) {
		providerRepo := new(mockProviderRepo)
		providerRepo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			enabledProvider(t, payment.ProviderPaystack, "GHS"),
		}, nil)

		intentRepo := new(mockIntentRepo)
		intentRepo.On("Create", ctx, mock.Anything).Return(nil)
		intentRepo.On("Update", ctx, mock.Anything).Return(nil)

		gw := &stubGateway{
			initializeFn: func(ctx context.Context, req gateway.InitializeRequest) *gateway.InitializeResult {
				assert.Equal(t, int64(10000), req.AmountMinor)
				assert.Equal(t, "GHS", req.Currency)
				assert.Equal(t, "ama@example.com", req.Email)
				assert.Contains(t, req.CallbackURL, "payment_intent=")
				return &gateway.InitializeResult{
					Success:           true,
					RedirectURL:       "https://checkout.paystack.com/abc",
					ProviderReference: req.Reference,
				}
			},
		}

		uc := NewInitializePaymentUseCase(
			intentRepo,
			services.NewProviderSelector(providerRepo, logger.NewLogger()),
			registryWith(gw),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor: 10000,
			Currency:    "GHS",
			Email:       "ama@example.com",
		})

		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, payment.ProviderPaystack, result.Provider)
		assert.Equal(t, "processing", result.Status)
		assert.Equal(t, "https://checkout.paystack.com/abc", result.RedirectURL)
		assert.NotEmpty(t, result.PaymentIntentSID)
		assert.NotEmpty(t, result.ProviderReference)
		intentRepo.AssertNumberOfCalls(t, "Create", 1)
		intentRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("no provider for currency persists nothing", func(t *testing.T) {
		providerRepo := new(mockProviderRepo)
		providerRepo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			enabledProvider(t, payment.ProviderPaystack, "GHS"),
		}, nil)

		intentRepo := new(mockIntentRepo)

		uc := NewInitializePaymentUseCase(
			intentRepo,
			services.NewProviderSelector(providerRepo, logger.NewLogger()),
			gateway.NewRegistry(),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor: 10000,
			Currency:    "USD",
			Email:       "ama@example.com",
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "no payment provider available for currency USD", result.ErrorMessage)
		intentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid amount rejected before selection", func(t *testing.T) {
		uc := NewInitializePaymentUseCase(
			new(mockIntentRepo),
			services.NewProviderSelector(new(mockProviderRepo), logger.NewLogger()),
			gateway.NewRegistry(),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor: 0,
			Currency:    "GHS",
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("idempotency key replays stored intent without a second gateway call", func(t *testing.T) {
		key := "idem-123"
		stored := processingTestIntent(t, key)

		providerRepo := new(mockProviderRepo)
		providerRepo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			enabledProvider(t, payment.ProviderPaystack, "GHS"),
		}, nil)

		intentRepo := new(mockIntentRepo)
		intentRepo.On("GetByIdempotencyKey", ctx, key).Return(stored, nil)

		gw := &stubGateway{
			initializeFn: func(ctx context.Context, req gateway.InitializeRequest) *gateway.InitializeResult {
				t.Fatal("gateway must not be called on replay")
				return nil
			},
		}

		uc := NewInitializePaymentUseCase(
			intentRepo,
			services.NewProviderSelector(providerRepo, logger.NewLogger()),
			registryWith(gw),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor:    10000,
			Currency:       "GHS",
			Email:          "ama@example.com",
			IdempotencyKey: &key,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "pi_stored", result.PaymentIntentSID)
		assert.Equal(t, "https://checkout.paystack.com/stored", result.RedirectURL)
		assert.Equal(t, "ADP-ref-1", result.ProviderReference)
		assert.Zero(t, gw.initializeCalls)
		intentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("replay of failed intent reports terminal state", func(t *testing.T) {
		key := "idem-failed"
		stored := payment.ReconstructIntent(payment.IntentReconstructParams{
			ID:             8,
			SID:            "pi_failed",
			Provider:       payment.ProviderPaystack,
			Amount:         vo.NewMoney(10000, "GHS"),
			Status:         vo.IntentStatusFailed,
			CallbackURL:    testCallbackBaseURL,
			IdempotencyKey: &key,
			CreatedAt:      time.Now().UTC(),
			UpdatedAt:      time.Now().UTC(),
		})

		providerRepo := new(mockProviderRepo)
		providerRepo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			enabledProvider(t, payment.ProviderPaystack, "GHS"),
		}, nil)

		intentRepo := new(mockIntentRepo)
		intentRepo.On("GetByIdempotencyKey", ctx, key).Return(stored, nil)

		uc := NewInitializePaymentUseCase(
			intentRepo,
			services.NewProviderSelector(providerRepo, logger.NewLogger()),
			gateway.NewRegistry(),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor:    10000,
			Currency:       "GHS",
			Email:          "ama@example.com",
			IdempotencyKey: &key,
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "payment intent already failed", result.ErrorMessage)
	})

	t.Run("duplicate key race falls back to stored intent", func(t *testing.T) {
		key := "idem-race"
		stored := processingTestIntent(t, key)

		providerRepo := new(mockProviderRepo)
		providerRepo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			enabledProvider(t, payment.ProviderPaystack, "GHS"),
		}, nil)

		intentRepo := new(mockIntentRepo)
		intentRepo.On("GetByIdempotencyKey", ctx, key).
			Return(nil, apperrors.NewNotFoundError("payment intent not found")).Once()
		intentRepo.On("Create", ctx, mock.Anything).
			Return(errors.New("Error 1062: Duplicate entry 'idem-race' for key 'idempotency_key'"))
		intentRepo.On("GetByIdempotencyKey", ctx, key).Return(stored, nil).Once()

		uc := NewInitializePaymentUseCase(
			intentRepo,
			services.NewProviderSelector(providerRepo, logger.NewLogger()),
			gateway.NewRegistry(),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor:    10000,
			Currency:       "GHS",
			Email:          "ama@example.com",
			IdempotencyKey: &key,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "pi_stored", result.PaymentIntentSID)
	})

	t.Run("gateway failure marks intent failed", func(t *testing.T) {
		providerRepo := new(mockProviderRepo)
		providerRepo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			enabledProvider(t, payment.ProviderPaystack, "GHS"),
		}, nil)

		var persisted *payment.PaymentIntent
		intentRepo := new(mockIntentRepo)
		intentRepo.On("Create", ctx, mock.Anything).Return(nil)
		intentRepo.On("Update", ctx, mock.Anything).Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*payment.PaymentIntent)
		}).Return(nil)

		gw := &stubGateway{
			initializeFn: func(ctx context.Context, req gateway.InitializeRequest) *gateway.InitializeResult {
				return &gateway.InitializeResult{Success: false, ErrorMessage: "card declined"}
			},
		}

		uc := NewInitializePaymentUseCase(
			intentRepo,
			services.NewProviderSelector(providerRepo, logger.NewLogger()),
			registryWith(gw),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor: 10000,
			Currency:    "GHS",
			Email:       "ama@example.com",
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "card declined", result.ErrorMessage)
		assert.Equal(t, "failed", result.Status)
		require.NotNil(t, persisted)
		assert.Equal(t, vo.IntentStatusFailed, persisted.Status())
	})

	t.Run("panicking gateway degrades to failed result", func(t *testing.T) {
		providerRepo := new(mockProviderRepo)
		providerRepo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			enabledProvider(t, payment.ProviderPaystack, "GHS"),
		}, nil)

		intentRepo := new(mockIntentRepo)
		intentRepo.On("Create", ctx, mock.Anything).Return(nil)
		intentRepo.On("Update", ctx, mock.Anything).Return(nil)

		gw := &stubGateway{
			initializeFn: func(ctx context.Context, req gateway.InitializeRequest) *gateway.InitializeResult {
				panic("nil dereference in adapter")
			},
		}

		uc := NewInitializePaymentUseCase(
			intentRepo,
			services.NewProviderSelector(providerRepo, logger.NewLogger()),
			registryWith(gw),
			testCallbackBaseURL,
			logger.NewLogger(),
		)

		result, err := uc.Execute(ctx, InitializePaymentCommand{
			AmountMinor: 10000,
			Currency:    "GHS",
			Email:       "ama@example.com",
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "payment gateway error", result.ErrorMessage)
	})
}
