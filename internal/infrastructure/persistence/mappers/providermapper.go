package mappers

import (
	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
)

func ProviderConfigToModel(cfg *payment.ProviderConfig) *models.ProviderConfigModel {
	return &models.ProviderConfigModel{
		ID:          cfg.ID(),
		Key:         cfg.Key(),
		DisplayName: cfg.DisplayName(),
		Enabled:     cfg.Enabled(),
		IsPrimary:   cfg.Primary(),
		TestMode:    cfg.TestMode(),
		Priority:    cfg.Priority(),
		Currencies:  cfg.Currencies(),
		Credentials: cfg.Credentials(),
		CreatedAt:   cfg.CreatedAt(),
		UpdatedAt:   cfg.UpdatedAt(),
	}
}

func ProviderConfigToDomain(model *models.ProviderConfigModel) *payment.ProviderConfig {
	return payment.ReconstructProviderConfig(payment.ProviderReconstructParams{
		ID:          model.ID,
		Key:         model.Key,
		DisplayName: model.DisplayName,
		Enabled:     model.Enabled,
		Primary:     model.IsPrimary,
		TestMode:    model.TestMode,
		Priority:    model.Priority,
		Currencies:  model.Currencies,
		Credentials: model.Credentials,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	})
}
