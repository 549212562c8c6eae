package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

func stalePendingIntent(t *testing.T, sid string) *payment.PaymentIntent {
	t.Helper()
	return payment.ReconstructIntent(payment.IntentReconstructParams{
		ID:          1,
		SID:         sid,
		Provider:    payment.ProviderPaystack,
		Amount:      vo.NewMoney(10000, "GHS"),
		Status:      vo.IntentStatusPending,
		CallbackURL: testCallbackBaseURL,
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
		UpdatedAt:   time.Now().UTC().Add(-time.Hour),
	})
}

func TestExpirePaymentIntentsUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels stale pending intents", func(t *testing.T) {
		first := stalePendingIntent(t, "pi_old_1")
		second := stalePendingIntent(t, "pi_old_2")

		intentRepo := new(mockIntentRepo)
		intentRepo.On("GetPendingOlderThan", ctx, mock.AnythingOfType("time.Time")).
			Return([]*payment.PaymentIntent{first, second}, nil)
		intentRepo.On("Update", ctx, mock.Anything).Return(nil)

		uc := NewExpirePaymentIntentsUseCase(intentRepo, 30*time.Minute, logger.NewLogger())
		cancelled, err := uc.Execute(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, cancelled)
		assert.Equal(t, vo.IntentStatusCancelled, first.Status())
		assert.Equal(t, vo.IntentStatusCancelled, second.Status())
	})

	t.Run("nothing to expire", func(t *testing.T) {
		intentRepo := new(mockIntentRepo)
		intentRepo.On("GetPendingOlderThan", ctx, mock.AnythingOfType("time.Time")).
			Return([]*payment.PaymentIntent{}, nil)

		uc := NewExpirePaymentIntentsUseCase(intentRepo, 30*time.Minute, logger.NewLogger())
		cancelled, err := uc.Execute(ctx)

		require.NoError(t, err)
		assert.Zero(t, cancelled)
		intentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("persist failure skips the intent but continues", func(t *testing.T) {
		first := stalePendingIntent(t, "pi_old_1")
		second := stalePendingIntent(t, "pi_old_2")

		intentRepo := new(mockIntentRepo)
		intentRepo.On("GetPendingOlderThan", ctx, mock.AnythingOfType("time.Time")).
			Return([]*payment.PaymentIntent{first, second}, nil)
		intentRepo.On("Update", ctx, first).Return(errors.New("connection reset"))
		intentRepo.On("Update", ctx, second).Return(nil)

		uc := NewExpirePaymentIntentsUseCase(intentRepo, 30*time.Minute, logger.NewLogger())
		cancelled, err := uc.Execute(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, cancelled)
	})
}
