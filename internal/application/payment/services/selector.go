// Package services holds the payment domain services shared across use
// cases: provider selection and the gateway registry glue.
package services

import (
	"context"
	"sort"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// ProviderSelector picks which gateway handles a payment. Precedence:
// caller-preferred provider if it is enabled and supports the currency,
// otherwise the primary provider for the currency, otherwise any enabled
// provider supporting the currency ordered by priority. Nil means no
// provider can serve the currency.
type ProviderSelector struct {
	providerRepo payment.ProviderRepository
	logger       logger.Interface
}

func NewProviderSelector(providerRepo payment.ProviderRepository, log logger.Interface) *ProviderSelector {
	return &ProviderSelector{
		providerRepo: providerRepo,
		logger:       log,
	}
}

// Select resolves the provider for a currency. preferred may be empty.
func (s *ProviderSelector) Select(ctx context.Context, currency, preferred string) (*payment.ProviderConfig, error) {
	enabled, err := s.providerRepo.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*payment.ProviderConfig, 0, len(enabled))
	for _, cfg := range enabled {
		if cfg.SupportsCurrency(currency) {
			candidates = append(candidates, cfg)
		}
	}
	if len(candidates) == 0 {
		s.logger.Warnw("no provider available for currency", "currency", currency)
		return nil, nil
	}

	if preferred != "" {
		for _, cfg := range candidates {
			if cfg.Key() == preferred {
				return cfg, nil
			}
		}
		s.logger.Infow("preferred provider unavailable, falling back",
			"preferred", preferred,
			"currency", currency,
		)
	}

	for _, cfg := range candidates {
		if cfg.Primary() {
			return cfg, nil
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority() < candidates[j].Priority()
	})
	return candidates[0], nil
}
