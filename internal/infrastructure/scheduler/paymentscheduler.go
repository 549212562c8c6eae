// Package scheduler runs the background maintenance loops.
package scheduler

import (
	"context"
	"sync"
	"time"

	paymentUsecases "github.com/adepa-shop/adepa/internal/application/payment/usecases"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// PaymentScheduler periodically sweeps pending payment intents past their
// TTL into cancelled.
type PaymentScheduler struct {
	expireIntentsUC *paymentUsecases.ExpirePaymentIntentsUseCase
	logger          logger.Interface
	stopChan        chan struct{}
	stopOnce        sync.Once
	wg              sync.WaitGroup
	interval        time.Duration
}

func NewPaymentScheduler(
	expireIntentsUC *paymentUsecases.ExpirePaymentIntentsUseCase,
	logger logger.Interface,
) *PaymentScheduler {
	return &PaymentScheduler{
		expireIntentsUC: expireIntentsUC,
		logger:          logger,
		stopChan:        make(chan struct{}),
		interval:        5 * time.Minute,
	}
}

// Start launches the sweep loop and returns immediately.
func (s *PaymentScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting payment scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runExpireLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully and waits for the loop to finish.
// Safe to call multiple times.
func (s *PaymentScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping payment scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("payment scheduler stopped")
	})
}

func (s *PaymentScheduler) runExpireLoop(ctx context.Context) {
	// Run immediately on startup to clear any intents that expired while
	// the process was down.
	s.processExpiredIntents(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("payment scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.processExpiredIntents(ctx)
		}
	}
}

func (s *PaymentScheduler) processExpiredIntents(ctx context.Context) {
	startTime := time.Now()

	expiredCount, err := s.expireIntentsUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("failed to process expired payment intents",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if expiredCount > 0 {
		s.logger.Infow("expired payment intents processed",
			"count", expiredCount,
			"duration", time.Since(startTime),
		)
	}
}
