package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// ProviderDTO is the admin read model. Credentials never leave the service;
// only their presence is reported.
type ProviderDTO struct {
	Key            string    `json:"key"`
	DisplayName    string    `json:"display_name"`
	Enabled        bool      `json:"enabled"`
	Primary        bool      `json:"primary"`
	TestMode       bool      `json:"test_mode"`
	Priority       int       `json:"priority"`
	Currencies     []string  `json:"currencies"`
	HasCredentials bool      `json:"has_credentials"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toProviderDTO(cfg *payment.ProviderConfig) *ProviderDTO {
	return &ProviderDTO{
		Key:            cfg.Key(),
		DisplayName:    cfg.DisplayName(),
		Enabled:        cfg.Enabled(),
		Primary:        cfg.Primary(),
		TestMode:       cfg.TestMode(),
		Priority:       cfg.Priority(),
		Currencies:     cfg.Currencies(),
		HasCredentials: len(cfg.Credentials()) > 0,
		UpdatedAt:      cfg.UpdatedAt(),
	}
}

type ListProvidersUseCase struct {
	providerRepo payment.ProviderRepository
	logger       logger.Interface
}

func NewListProvidersUseCase(providerRepo payment.ProviderRepository, logger logger.Interface) *ListProvidersUseCase {
	return &ListProvidersUseCase{
		providerRepo: providerRepo,
		logger:       logger,
	}
}

func (uc *ListProvidersUseCase) Execute(ctx context.Context) ([]*ProviderDTO, error) {
	configs, err := uc.providerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	dtos := make([]*ProviderDTO, 0, len(configs))
	for _, cfg := range configs {
		dtos = append(dtos, toProviderDTO(cfg))
	}
	return dtos, nil
}
