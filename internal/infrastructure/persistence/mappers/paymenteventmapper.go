package mappers

import (
	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
)

func PaymentEventToModel(e *payment.PaymentEvent) *models.PaymentEventModel {
	model := &models.PaymentEventModel{
		ID:              e.ID(),
		SID:             e.SID(),
		PaymentIntentID: e.PaymentIntentID(),
		Provider:        e.Provider(),
		EventType:       e.EventType(),
		Processed:       e.Processed(),
		ErrorMessage:    e.ErrorMessage(),
		CreatedAt:       e.CreatedAt(),
	}

	if len(e.Payload()) > 0 {
		model.Payload = e.Payload()
	}

	return model
}

func PaymentEventToDomain(model *models.PaymentEventModel) *payment.PaymentEvent {
	return payment.ReconstructEvent(payment.EventReconstructParams{
		ID:              model.ID,
		SID:             model.SID,
		PaymentIntentID: model.PaymentIntentID,
		Provider:        model.Provider,
		EventType:       model.EventType,
		Payload:         model.Payload,
		Processed:       model.Processed,
		ErrorMessage:    model.ErrorMessage,
		CreatedAt:       model.CreatedAt,
	})
}
