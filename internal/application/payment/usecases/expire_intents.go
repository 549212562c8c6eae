package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/biztime"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// ExpirePaymentIntentsUseCase sweeps pending intents older than the
// configured TTL into cancelled. Run by the scheduler; safe to re-run since
// MarkCancelled is a no-op on terminal intents.
type ExpirePaymentIntentsUseCase struct {
	intentRepo payment.IntentRepository
	ttl        time.Duration
	logger     logger.Interface
}

func NewExpirePaymentIntentsUseCase(
	intentRepo payment.IntentRepository,
	ttl time.Duration,
	logger logger.Interface,
) *ExpirePaymentIntentsUseCase {
	return &ExpirePaymentIntentsUseCase{
		intentRepo: intentRepo,
		ttl:        ttl,
		logger:     logger,
	}
}

// Execute returns how many intents were cancelled this sweep.
func (uc *ExpirePaymentIntentsUseCase) Execute(ctx context.Context) (int, error) {
	cutoff := biztime.NowUTC().Add(-uc.ttl)

	intents, err := uc.intentRepo.GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to load expirable intents", "error", err)
		return 0, fmt.Errorf("failed to load expirable intents: %w", err)
	}
	if len(intents) == 0 {
		return 0, nil
	}

	cancelled := 0
	for _, intent := range intents {
		if err := intent.MarkCancelled(); err != nil {
			uc.logger.Errorw("failed to cancel expired intent",
				"intent_sid", intent.SID(),
				"error", err,
			)
			continue
		}
		if err := uc.intentRepo.Update(ctx, intent); err != nil {
			uc.logger.Errorw("failed to persist cancelled intent",
				"intent_sid", intent.SID(),
				"error", err,
			)
			continue
		}
		cancelled++
		uc.logger.Debugw("payment intent expired",
			"intent_sid", intent.SID(),
			"created_at", intent.CreatedAt(),
		)
	}

	if cancelled > 0 {
		uc.logger.Infow("expired payment intents cancelled",
			"checked", len(intents),
			"cancelled", cancelled,
		)
	}
	return cancelled, nil
}
