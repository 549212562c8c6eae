package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// PaymentIntentDTO is the read model confirmation pages poll.
type PaymentIntentDTO struct {
	SID               string                 `json:"id"`
	OrderID           *uint                  `json:"order_id,omitempty"`
	Provider          string                 `json:"provider"`
	ProviderReference *string                `json:"provider_reference,omitempty"`
	AmountMinor       int64                  `json:"amount_minor"`
	Currency          string                 `json:"currency"`
	Status            string                 `json:"status"`
	RedirectURL       *string                `json:"redirect_url,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func toPaymentIntentDTO(intent *payment.PaymentIntent) *PaymentIntentDTO {
	return &PaymentIntentDTO{
		SID:               intent.SID(),
		OrderID:           intent.OrderID(),
		Provider:          intent.Provider(),
		ProviderReference: intent.ProviderReference(),
		AmountMinor:       intent.Amount().AmountMinor(),
		Currency:          intent.Amount().Currency(),
		Status:            intent.Status().String(),
		RedirectURL:       intent.RedirectURL(),
		Metadata:          intent.Metadata(),
		CreatedAt:         intent.CreatedAt(),
		UpdatedAt:         intent.UpdatedAt(),
	}
}

type GetPaymentUseCase struct {
	intentRepo payment.IntentRepository
	logger     logger.Interface
}

func NewGetPaymentUseCase(intentRepo payment.IntentRepository, logger logger.Interface) *GetPaymentUseCase {
	return &GetPaymentUseCase{
		intentRepo: intentRepo,
		logger:     logger,
	}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, sid string) (*PaymentIntentDTO, error) {
	if sid == "" {
		return nil, apperrors.NewValidationError("payment intent id is required")
	}

	intent, err := uc.intentRepo.GetBySID(ctx, sid)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("payment intent not found")
		}
		return nil, fmt.Errorf("failed to load payment intent: %w", err)
	}

	return toPaymentIntentDTO(intent), nil
}
