// Package seeds populates reference data on first boot.
package seeds

import (
	"context"
	"fmt"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

type providerSeed struct {
	key         string
	displayName string
	currencies  []string
	enabled     bool
	primary     bool
	priority    int
}

// Known gateways start disabled-for-live: test mode stays on until an admin
// saves real credentials.
var providerSeeds = []providerSeed{
	{
		key:         payment.ProviderPaystack,
		displayName: "Paystack",
		currencies:  []string{"GHS", "NGN", "ZAR", "USD"},
		enabled:     true,
		primary:     true,
		priority:    1,
	},
	{
		key:         payment.ProviderFlutterwave,
		displayName: "Flutterwave",
		currencies:  []string{"GHS", "NGN", "KES", "USD"},
		enabled:     true,
		priority:    2,
	},
	{
		key:         payment.ProviderMoolre,
		displayName: "Moolre",
		currencies:  []string{"GHS"},
		enabled:     false,
		priority:    3,
	},
}

// SeedProviders inserts the known provider rows when the table is empty.
// Existing rows are never touched; admin state survives restarts.
func SeedProviders(ctx context.Context, repo payment.ProviderRepository, log logger.Interface) error {
	existing, err := repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing providers: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, seed := range providerSeeds {
		cfg, err := payment.NewProviderConfig(seed.key, seed.displayName, seed.currencies)
		if err != nil {
			return fmt.Errorf("failed to build provider seed %s: %w", seed.key, err)
		}
		cfg.SetEnabled(seed.enabled)
		cfg.SetPrimary(seed.primary)
		cfg.SetTestMode(true)
		cfg.SetPriority(seed.priority)

		if err := repo.Create(ctx, cfg); err != nil {
			return fmt.Errorf("failed to seed provider %s: %w", seed.key, err)
		}
		log.Infow("seeded payment provider",
			"provider", seed.key,
			"enabled", seed.enabled,
			"primary", seed.primary,
		)
	}

	return nil
}
