package payment

import (
	"fmt"
	"time"

	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/shared/biztime"
	"github.com/adepa-shop/adepa/internal/shared/id"
)

// Settlement is the durable record that money was actually captured for an
// intent. Exactly one settlement may exist per payment intent; the storage
// layer enforces this with a unique index.
type Settlement struct {
	id                    uint
	sid                   string
	paymentIntentID       uint
	orderID               *uint
	provider              string
	providerTransactionID string
	amount                vo.Money
	status                vo.SettlementStatus
	createdAt             time.Time
}

func NewSettlement(paymentIntentID uint, orderID *uint, provider, providerTransactionID string, amount vo.Money) (*Settlement, error) {
	if paymentIntentID == 0 {
		return nil, fmt.Errorf("payment intent ID is required")
	}
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	sid, err := id.NewSettlementID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate settlement id: %w", err)
	}

	return &Settlement{
		sid:                   sid,
		paymentIntentID:       paymentIntentID,
		orderID:               orderID,
		provider:              provider,
		providerTransactionID: providerTransactionID,
		amount:                amount,
		status:                vo.SettlementStatusCaptured,
		createdAt:             biztime.NowUTC(),
	}, nil
}

func (s *Settlement) ID() uint {
	return s.id
}

func (s *Settlement) SID() string {
	return s.sid
}

func (s *Settlement) PaymentIntentID() uint {
	return s.paymentIntentID
}

func (s *Settlement) OrderID() *uint {
	return s.orderID
}

func (s *Settlement) Provider() string {
	return s.provider
}

func (s *Settlement) ProviderTransactionID() string {
	return s.providerTransactionID
}

func (s *Settlement) Amount() vo.Money {
	return s.amount
}

func (s *Settlement) Status() vo.SettlementStatus {
	return s.status
}

func (s *Settlement) CreatedAt() time.Time {
	return s.createdAt
}

// SetID sets the settlement ID after persistence.
func (s *Settlement) SetID(id uint) {
	s.id = id
}

type SettlementReconstructParams struct {
	ID                    uint
	SID                   string
	PaymentIntentID       uint
	OrderID               *uint
	Provider              string
	ProviderTransactionID string
	Amount                vo.Money
	Status                vo.SettlementStatus
	CreatedAt             time.Time
}

func ReconstructSettlement(params SettlementReconstructParams) *Settlement {
	return &Settlement{
		id:                    params.ID,
		sid:                   params.SID,
		paymentIntentID:       params.PaymentIntentID,
		orderID:               params.OrderID,
		provider:              params.Provider,
		providerTransactionID: params.ProviderTransactionID,
		amount:                params.Amount,
		status:                params.Status,
		createdAt:             params.CreatedAt,
	}
}
