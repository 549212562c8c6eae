package mappers

import (
	"fmt"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
)

func SettlementToModel(s *payment.Settlement) *models.SettlementModel {
	return &models.SettlementModel{
		ID:                    s.ID(),
		SID:                   s.SID(),
		PaymentIntentID:       s.PaymentIntentID(),
		OrderID:               s.OrderID(),
		Provider:              s.Provider(),
		ProviderTransactionID: s.ProviderTransactionID(),
		Amount:                s.Amount().AmountMinor(),
		Currency:              s.Amount().Currency(),
		Status:                s.Status().String(),
		CreatedAt:             s.CreatedAt(),
	}
}

func SettlementToDomain(model *models.SettlementModel) (*payment.Settlement, error) {
	status := vo.SettlementStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid settlement status: %s", model.Status)
	}

	return payment.ReconstructSettlement(payment.SettlementReconstructParams{
		ID:                    model.ID,
		SID:                   model.SID,
		PaymentIntentID:       model.PaymentIntentID,
		OrderID:               model.OrderID,
		Provider:              model.Provider,
		ProviderTransactionID: model.ProviderTransactionID,
		Amount:                vo.NewMoney(model.Amount, model.Currency),
		Status:                status,
		CreatedAt:             model.CreatedAt,
	}), nil
}
