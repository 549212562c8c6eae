package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adepa-shop/adepa/internal/domain/order"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/mappers"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
	"github.com/adepa-shop/adepa/internal/shared/db"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ order.Repository = (*OrderRepository)(nil)

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return mappers.OrderToDomain(&model)
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}

	return nil
}
