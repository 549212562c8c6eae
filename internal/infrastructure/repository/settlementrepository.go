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

type SettlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

var _ payment.SettlementRepository = (*SettlementRepository)(nil)

func (r *SettlementRepository) Create(ctx context.Context, settlement *payment.Settlement) error {
	model := mappers.SettlementToModel(settlement)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		// The unique payment_intent_id index fires here when a concurrent
		// verification already captured this intent.
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("settlement already exists for payment intent")
		}
		return fmt.Errorf("failed to create settlement: %w", err)
	}

	settlement.SetID(model.ID)

	return nil
}

func (r *SettlementRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID uint) (*payment.Settlement, error) {
	var model models.SettlementModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("payment_intent_id = ?", paymentIntentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("settlement not found")
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return mappers.SettlementToDomain(&model)
}
