package mappers

import (
	"fmt"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
)

func PaymentIntentToModel(intent *payment.PaymentIntent) *models.PaymentIntentModel {
	model := &models.PaymentIntentModel{
		ID:                intent.ID(),
		SID:               intent.SID(),
		OrderID:           intent.OrderID(),
		Provider:          intent.Provider(),
		ProviderReference: intent.ProviderReference(),
		Amount:            intent.Amount().AmountMinor(),
		Currency:          intent.Amount().Currency(),
		Status:            intent.Status().String(),
		RedirectURL:       intent.RedirectURL(),
		CallbackURL:       intent.CallbackURL(),
		IdempotencyKey:    intent.IdempotencyKey(),
		Version:           intent.Version(),
		CreatedAt:         intent.CreatedAt(),
		UpdatedAt:         intent.UpdatedAt(),
	}

	if len(intent.Metadata()) > 0 {
		model.Metadata = intent.Metadata()
	}

	return model
}

func PaymentIntentToDomain(model *models.PaymentIntentModel) (*payment.PaymentIntent, error) {
	status := vo.IntentStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment intent status: %s", model.Status)
	}

	return payment.ReconstructIntent(payment.IntentReconstructParams{
		ID:                model.ID,
		SID:               model.SID,
		OrderID:           model.OrderID,
		Provider:          model.Provider,
		ProviderReference: model.ProviderReference,
		Amount:            vo.NewMoney(model.Amount, model.Currency),
		Status:            status,
		RedirectURL:       model.RedirectURL,
		CallbackURL:       model.CallbackURL,
		IdempotencyKey:    model.IdempotencyKey,
		Metadata:          model.Metadata,
		Version:           model.Version,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}), nil
}
