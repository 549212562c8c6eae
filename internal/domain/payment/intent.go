package payment

import (
	"fmt"
	"time"

	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/shared/biztime"
	"github.com/adepa-shop/adepa/internal/shared/id"
)

// PaymentIntent records one attempt to collect payment for an order via one
// provider. Amount and currency are fixed at creation; only status,
// providerReference and redirectURL change afterwards.
type PaymentIntent struct {
	id                uint
	sid               string
	orderID           *uint
	provider          string
	providerReference *string
	amount            vo.Money
	status            vo.IntentStatus
	redirectURL       *string
	callbackURL       string
	idempotencyKey    *string
	metadata          map[string]interface{}

	version   int
	createdAt time.Time
	updatedAt time.Time
}

func NewPaymentIntent(provider string, orderID *uint, amount vo.Money, callbackURL string, idempotencyKey *string, metadata map[string]interface{}) (*PaymentIntent, error) {
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if amount.Currency() == "" {
		return nil, fmt.Errorf("currency is required")
	}
	if idempotencyKey != nil && *idempotencyKey == "" {
		return nil, fmt.Errorf("idempotency key cannot be empty")
	}

	sid, err := id.NewPaymentIntentID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate intent id: %w", err)
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	now := biztime.NowUTC()

	return &PaymentIntent{
		sid:            sid,
		orderID:        orderID,
		provider:       provider,
		amount:         amount,
		status:         vo.IntentStatusPending,
		callbackURL:    callbackURL,
		idempotencyKey: idempotencyKey,
		metadata:       metadata,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// MarkProcessing records the gateway handoff: the provider accepted the
// initialization and issued a reference plus a redirect URL.
func (pi *PaymentIntent) MarkProcessing(providerReference, redirectURL string) error {
	if pi.status != vo.IntentStatusPending {
		return fmt.Errorf("cannot mark intent as processing with status %s", pi.status)
	}
	if providerReference == "" {
		return fmt.Errorf("provider reference is required")
	}

	pi.status = vo.IntentStatusProcessing
	pi.providerReference = &providerReference
	pi.redirectURL = &redirectURL
	pi.updatedAt = biztime.NowUTC()
	pi.version++

	return nil
}

// MarkSucceeded transitions the intent to its success terminal state.
// Calling it on an already succeeded intent is a no-op.
func (pi *PaymentIntent) MarkSucceeded() error {
	if pi.status == vo.IntentStatusSucceeded {
		return nil
	}
	if pi.status.IsTerminal() {
		return fmt.Errorf("cannot mark intent as succeeded with terminal status %s", pi.status)
	}

	pi.status = vo.IntentStatusSucceeded
	pi.updatedAt = biztime.NowUTC()
	pi.version++

	return nil
}

func (pi *PaymentIntent) MarkFailed(reason string) error {
	if pi.status.IsTerminal() {
		return fmt.Errorf("cannot mark intent as failed with terminal status %s", pi.status)
	}

	pi.status = vo.IntentStatusFailed
	pi.metadata["failure_reason"] = reason
	pi.updatedAt = biztime.NowUTC()
	pi.version++

	return nil
}

// MarkCancelled cancels a not-yet-settled intent. No-op on terminal states
// so the expiry scheduler can sweep without racing verification.
func (pi *PaymentIntent) MarkCancelled() error {
	if pi.status.IsTerminal() {
		return nil
	}

	pi.status = vo.IntentStatusCancelled
	pi.updatedAt = biztime.NowUTC()
	pi.version++

	return nil
}

// VerifyReportedAmount checks the gateway-reported settlement amount against
// the amount recorded at initialization. Currency is only compared when the
// gateway reported one.
func (pi *PaymentIntent) VerifyReportedAmount(amountMinor int64, currency string) error {
	if pi.amount.AmountMinor() != amountMinor {
		return fmt.Errorf("amount mismatch: expected %d, got %d", pi.amount.AmountMinor(), amountMinor)
	}
	if currency != "" && pi.amount.Currency() != currency {
		return fmt.Errorf("currency mismatch: expected %s, got %s", pi.amount.Currency(), currency)
	}
	return nil
}

func (pi *PaymentIntent) ID() uint {
	return pi.id
}

func (pi *PaymentIntent) SID() string {
	return pi.sid
}

func (pi *PaymentIntent) OrderID() *uint {
	return pi.orderID
}

func (pi *PaymentIntent) Provider() string {
	return pi.provider
}

func (pi *PaymentIntent) ProviderReference() *string {
	return pi.providerReference
}

func (pi *PaymentIntent) Amount() vo.Money {
	return pi.amount
}

func (pi *PaymentIntent) Status() vo.IntentStatus {
	return pi.status
}

func (pi *PaymentIntent) RedirectURL() *string {
	return pi.redirectURL
}

func (pi *PaymentIntent) CallbackURL() string {
	return pi.callbackURL
}

func (pi *PaymentIntent) IdempotencyKey() *string {
	return pi.idempotencyKey
}

func (pi *PaymentIntent) Metadata() map[string]interface{} {
	return pi.metadata
}

// SetMetadata sets a metadata key-value pair
func (pi *PaymentIntent) SetMetadata(key string, value interface{}) {
	if pi.metadata == nil {
		pi.metadata = make(map[string]interface{})
	}
	pi.metadata[key] = value
	pi.updatedAt = biztime.NowUTC()
}

func (pi *PaymentIntent) Version() int {
	return pi.version
}

func (pi *PaymentIntent) CreatedAt() time.Time {
	return pi.createdAt
}

func (pi *PaymentIntent) UpdatedAt() time.Time {
	return pi.updatedAt
}

// SetID sets the intent ID after persistence (used by repository after Create)
func (pi *PaymentIntent) SetID(id uint) {
	pi.id = id
}

// IntentReconstructParams carries persisted state back into the aggregate.
type IntentReconstructParams struct {
	ID                uint
	SID               string
	OrderID           *uint
	Provider          string
	ProviderReference *string
	Amount            vo.Money
	Status            vo.IntentStatus
	RedirectURL       *string
	CallbackURL       string
	IdempotencyKey    *string
	Metadata          map[string]interface{}
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func ReconstructIntent(params IntentReconstructParams) *PaymentIntent {
	metadata := params.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &PaymentIntent{
		id:                params.ID,
		sid:               params.SID,
		orderID:           params.OrderID,
		provider:          params.Provider,
		providerReference: params.ProviderReference,
		amount:            params.Amount,
		status:            params.Status,
		redirectURL:       params.RedirectURL,
		callbackURL:       params.CallbackURL,
		idempotencyKey:    params.IdempotencyKey,
		metadata:          metadata,
		version:           params.Version,
		createdAt:         params.CreatedAt,
		updatedAt:         params.UpdatedAt,
	}
}
