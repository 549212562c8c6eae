package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/mappers"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
	"github.com/adepa-shop/adepa/internal/shared/db"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

var _ payment.ProviderRepository = (*ProviderRepository)(nil)

func (r *ProviderRepository) ListAll(ctx context.Context) ([]*payment.ProviderConfig, error) {
	var providerModels []models.ProviderConfigModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("priority ASC, provider_key ASC").
		Find(&providerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	return toProviderConfigs(providerModels), nil
}

func (r *ProviderRepository) ListEnabled(ctx context.Context) ([]*payment.ProviderConfig, error) {
	var providerModels []models.ProviderConfigModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("enabled = ?", true).
		Order("priority ASC, provider_key ASC").
		Find(&providerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list enabled providers: %w", err)
	}

	return toProviderConfigs(providerModels), nil
}

func (r *ProviderRepository) GetByKey(ctx context.Context, key string) (*payment.ProviderConfig, error) {
	var model models.ProviderConfigModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("provider_key = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("provider not found")
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return mappers.ProviderConfigToDomain(&model), nil
}

func (r *ProviderRepository) Create(ctx context.Context, provider *payment.ProviderConfig) error {
	model := mappers.ProviderConfigToModel(provider)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("provider already exists")
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}

	provider.SetID(model.ID)

	return nil
}

func (r *ProviderRepository) Update(ctx context.Context, provider *payment.ProviderConfig) error {
	model := mappers.ProviderConfigToModel(provider)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProviderConfigModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"enabled":     model.Enabled,
			"is_primary":  model.IsPrimary,
			"test_mode":   model.TestMode,
			"priority":    model.Priority,
			"currencies":  model.Currencies,
			"credentials": model.Credentials,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update provider: %w", result.Error)
	}

	return nil
}

func toProviderConfigs(providerModels []models.ProviderConfigModel) []*payment.ProviderConfig {
	configs := make([]*payment.ProviderConfig, 0, len(providerModels))
	for i := range providerModels {
		configs = append(configs, mappers.ProviderConfigToDomain(&providerModels[i]))
	}
	return configs
}
