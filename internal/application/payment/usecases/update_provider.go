package usecases

import (
	"context"
	"fmt"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/db"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// UpdateProviderCommand toggles registry flags for one provider. Nil fields
// are left unchanged.
type UpdateProviderCommand struct {
	Key      string
	Enabled  *bool
	Primary  *bool
	TestMode *bool
	Priority *int
}

type UpdateProviderUseCase struct {
	providerRepo payment.ProviderRepository
	txManager    db.Transactor
	logger       logger.Interface
}

func NewUpdateProviderUseCase(
	providerRepo payment.ProviderRepository,
	txManager db.Transactor,
	logger logger.Interface,
) *UpdateProviderUseCase {
	return &UpdateProviderUseCase{
		providerRepo: providerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *UpdateProviderUseCase) Execute(ctx context.Context, cmd UpdateProviderCommand) (*ProviderDTO, error) {
	cfg, err := uc.providerRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("provider not found")
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.Enabled != nil {
			cfg.SetEnabled(*cmd.Enabled)
		}
		if cmd.TestMode != nil {
			cfg.SetTestMode(*cmd.TestMode)
		}
		if cmd.Priority != nil {
			cfg.SetPriority(*cmd.Priority)
		}
		if cmd.Primary != nil {
			if *cmd.Primary {
				// At most one primary per currency: demote every other
				// primary whose currency set overlaps, in the same
				// transaction as the promotion.
				if err := uc.demoteOverlappingPrimaries(txCtx, cfg); err != nil {
					return err
				}
			}
			cfg.SetPrimary(*cmd.Primary)
		}

		return uc.providerRepo.Update(txCtx, cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}

	uc.logger.Infow("provider config updated",
		"provider", cfg.Key(),
		"enabled", cfg.Enabled(),
		"primary", cfg.Primary(),
		"test_mode", cfg.TestMode(),
	)
	return toProviderDTO(cfg), nil
}

// SaveCredentials replaces the provider's credential bag. The shape is
// provider specific and stored opaquely.
func (uc *UpdateProviderUseCase) SaveCredentials(ctx context.Context, key string, credentials map[string]string) (*ProviderDTO, error) {
	cfg, err := uc.providerRepo.GetByKey(ctx, key)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("provider not found")
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}

	cfg.SaveCredentials(credentials)
	if err := uc.providerRepo.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save provider credentials: %w", err)
	}

	uc.logger.Infow("provider credentials updated", "provider", cfg.Key())
	return toProviderDTO(cfg), nil
}

func (uc *UpdateProviderUseCase) demoteOverlappingPrimaries(ctx context.Context, promoted *payment.ProviderConfig) error {
	all, err := uc.providerRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list providers: %w", err)
	}

	for _, other := range all {
		if other.Key() == promoted.Key() || !other.Primary() {
			continue
		}
		if !currenciesOverlap(promoted.Currencies(), other.Currencies()) {
			continue
		}
		other.SetPrimary(false)
		if err := uc.providerRepo.Update(ctx, other); err != nil {
			return fmt.Errorf("failed to demote provider %s: %w", other.Key(), err)
		}
		uc.logger.Infow("demoted overlapping primary provider",
			"demoted", other.Key(),
			"promoted", promoted.Key(),
		)
	}
	return nil
}

func currenciesOverlap(a, b []string) bool {
	for _, ca := range a {
		for _, cb := range b {
			if ca == cb {
				return true
			}
		}
	}
	return false
}
