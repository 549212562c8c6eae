package mappers

import (
	"fmt"

	"github.com/adepa-shop/adepa/internal/domain/order"
	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
)

func OrderToModel(o *order.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:            o.ID(),
		OrderNumber:   o.OrderNumber(),
		CustomerEmail: o.CustomerEmail(),
		Total:         o.Total().AmountMinor(),
		Currency:      o.Total().Currency(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	status := order.Status(model.Status)
	switch status {
	case order.StatusPending, order.StatusPaid, order.StatusCancelled:
	default:
		return nil, fmt.Errorf("invalid order status: %s", model.Status)
	}

	return order.Reconstruct(order.ReconstructParams{
		ID:            model.ID,
		OrderNumber:   model.OrderNumber,
		CustomerEmail: model.CustomerEmail,
		Total:         vo.NewMoney(model.Total, model.Currency),
		Status:        status,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}), nil
}
