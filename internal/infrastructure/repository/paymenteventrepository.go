package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/mappers"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
	"github.com/adepa-shop/adepa/internal/shared/db"
)

type PaymentEventRepository struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) *PaymentEventRepository {
	return &PaymentEventRepository{db: db}
}

var _ payment.EventRepository = (*PaymentEventRepository)(nil)

func (r *PaymentEventRepository) Append(ctx context.Context, event *payment.PaymentEvent) error {
	model := mappers.PaymentEventToModel(event)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append payment event: %w", err)
	}

	event.SetID(model.ID)

	return nil
}

func (r *PaymentEventRepository) ListByPaymentIntentID(ctx context.Context, paymentIntentID uint) ([]*payment.PaymentEvent, error) {
	var eventModels []models.PaymentEventModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("payment_intent_id = ?", paymentIntentID).
		Order("created_at ASC").
		Find(&eventModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment events: %w", err)
	}

	events := make([]*payment.PaymentEvent, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, mappers.PaymentEventToDomain(&eventModels[i]))
	}

	return events, nil
}
