package payment

import (
	"fmt"
	"time"

	"github.com/adepa-shop/adepa/internal/shared/biztime"
	"github.com/adepa-shop/adepa/internal/shared/id"
)

// Event types recorded in the payment audit trail.
const (
	EventVerificationSucceeded = "verification.succeeded"
	EventVerificationFailed    = "verification.failed"
	EventVerificationPending   = "verification.pending"
	EventWebhookReceived       = "webhook.received"
)

// PaymentEvent is an append-only audit record of a verification or webhook
// occurrence. Events are never updated or deleted.
type PaymentEvent struct {
	id              uint
	sid             string
	paymentIntentID uint
	provider        string
	eventType       string
	payload         map[string]interface{}
	processed       bool
	errorMessage    *string
	createdAt       time.Time
}

func NewPaymentEvent(paymentIntentID uint, provider, eventType string, payload map[string]interface{}, processed bool, errorMessage *string) (*PaymentEvent, error) {
	if paymentIntentID == 0 {
		return nil, fmt.Errorf("payment intent ID is required")
	}
	if eventType == "" {
		return nil, fmt.Errorf("event type is required")
	}

	sid, err := id.NewPaymentEventID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event id: %w", err)
	}

	if payload == nil {
		payload = make(map[string]interface{})
	}

	return &PaymentEvent{
		sid:             sid,
		paymentIntentID: paymentIntentID,
		provider:        provider,
		eventType:       eventType,
		payload:         payload,
		processed:       processed,
		errorMessage:    errorMessage,
		createdAt:       biztime.NowUTC(),
	}, nil
}

func (e *PaymentEvent) ID() uint {
	return e.id
}

func (e *PaymentEvent) SID() string {
	return e.sid
}

func (e *PaymentEvent) PaymentIntentID() uint {
	return e.paymentIntentID
}

func (e *PaymentEvent) Provider() string {
	return e.provider
}

func (e *PaymentEvent) EventType() string {
	return e.eventType
}

func (e *PaymentEvent) Payload() map[string]interface{} {
	return e.payload
}

func (e *PaymentEvent) Processed() bool {
	return e.processed
}

func (e *PaymentEvent) ErrorMessage() *string {
	return e.errorMessage
}

func (e *PaymentEvent) CreatedAt() time.Time {
	return e.createdAt
}

// SetID sets the event ID after persistence.
func (e *PaymentEvent) SetID(id uint) {
	e.id = id
}

type EventReconstructParams struct {
	ID              uint
	SID             string
	PaymentIntentID uint
	Provider        string
	EventType       string
	Payload         map[string]interface{}
	Processed       bool
	ErrorMessage    *string
	CreatedAt       time.Time
}

func ReconstructEvent(params EventReconstructParams) *PaymentEvent {
	payload := params.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return &PaymentEvent{
		id:              params.ID,
		sid:             params.SID,
		paymentIntentID: params.PaymentIntentID,
		provider:        params.Provider,
		eventType:       params.EventType,
		payload:         payload,
		processed:       params.Processed,
		errorMessage:    params.ErrorMessage,
		createdAt:       params.CreatedAt,
	}
}
