// Package repository contains the gorm-backed implementations of the domain
// repository interfaces. All of them participate in context-carried
// transactions via db.GetTxFromContext.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/mappers"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
	"github.com/adepa-shop/adepa/internal/shared/biztime"
	"github.com/adepa-shop/adepa/internal/shared/db"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
)

type PaymentIntentRepository struct {
	db *gorm.DB
}

func NewPaymentIntentRepository(db *gorm.DB) *PaymentIntentRepository {
	return &PaymentIntentRepository{db: db}
}

var _ payment.IntentRepository = (*PaymentIntentRepository)(nil)

func (r *PaymentIntentRepository) Create(ctx context.Context, intent *payment.PaymentIntent) error {
	model := mappers.PaymentIntentToModel(intent)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return err
		}
		return fmt.Errorf("failed to create payment intent: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	intent.SetID(model.ID)

	return nil
}

func (r *PaymentIntentRepository) Update(ctx context.Context, intent *payment.PaymentIntent) error {
	model := mappers.PaymentIntentToModel(intent)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentIntentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":             model.Status,
			"provider_reference": model.ProviderReference,
			"redirect_url":       model.RedirectURL,
			"metadata":           model.Metadata,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment intent: %w", result.Error)
	}

	return nil
}

func (r *PaymentIntentRepository) GetByID(ctx context.Context, id uint) (*payment.PaymentIntent, error) {
	var model models.PaymentIntentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment intent not found")
		}
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	return mappers.PaymentIntentToDomain(&model)
}

func (r *PaymentIntentRepository) GetBySID(ctx context.Context, sid string) (*payment.PaymentIntent, error) {
	var model models.PaymentIntentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment intent not found")
		}
		return nil, fmt.Errorf("failed to get payment intent by sid: %w", err)
	}

	return mappers.PaymentIntentToDomain(&model)
}

func (r *PaymentIntentRepository) GetByProviderReference(ctx context.Context, provider, reference string) (*payment.PaymentIntent, error) {
	var model models.PaymentIntentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("provider = ? AND provider_reference = ?", provider, reference).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment intent not found")
		}
		return nil, fmt.Errorf("failed to get payment intent by provider reference: %w", err)
	}

	return mappers.PaymentIntentToDomain(&model)
}

func (r *PaymentIntentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*payment.PaymentIntent, error) {
	var model models.PaymentIntentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("idempotency_key = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment intent not found")
		}
		return nil, fmt.Errorf("failed to get payment intent by idempotency key: %w", err)
	}

	return mappers.PaymentIntentToDomain(&model)
}

// TransitionToSucceeded is the atomic guard for the settlement unit of work:
// only the caller whose conditional UPDATE touches a row may insert the
// settlement and mutate the order.
func (r *PaymentIntentRepository) TransitionToSucceeded(ctx context.Context, intentID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentIntentModel{}).
		Where("id = ? AND status <> ?", intentID, vo.IntentStatusSucceeded.String()).
		Updates(map[string]interface{}{
			"status":     vo.IntentStatusSucceeded.String(),
			"updated_at": biztime.NowUTC(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition payment intent: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *PaymentIntentRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*payment.PaymentIntent, error) {
	var intentModels []models.PaymentIntentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND created_at < ?", vo.IntentStatusPending.String(), cutoff).
		Order("created_at ASC").
		Find(&intentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get pending payment intents: %w", err)
	}

	intents := make([]*payment.PaymentIntent, 0, len(intentModels))
	for i := range intentModels {
		intent, err := mappers.PaymentIntentToDomain(&intentModels[i])
		if err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}

	return intents, nil
}
