package payment

import (
	"context"
	"time"
)

// IntentRepository persists payment intents. Create must surface a conflict
// error when the idempotency key already exists so callers can fall back to
// the stored intent.
type IntentRepository interface {
	Create(ctx context.Context, intent *PaymentIntent) error
	Update(ctx context.Context, intent *PaymentIntent) error
	GetByID(ctx context.Context, id uint) (*PaymentIntent, error)
	GetBySID(ctx context.Context, sid string) (*PaymentIntent, error)
	GetByProviderReference(ctx context.Context, provider, reference string) (*PaymentIntent, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*PaymentIntent, error)
	// TransitionToSucceeded performs an atomic conditional update guarding
	// the settlement insert: it moves the intent to succeeded only if it is
	// not already there, and reports whether this call won the transition.
	TransitionToSucceeded(ctx context.Context, intentID uint) (bool, error)
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*PaymentIntent, error)
}

// SettlementRepository persists captured settlements. Create must surface a
// conflict error when a settlement already exists for the intent.
type SettlementRepository interface {
	Create(ctx context.Context, settlement *Settlement) error
	GetByPaymentIntentID(ctx context.Context, paymentIntentID uint) (*Settlement, error)
}

// EventRepository appends to the payment audit trail.
type EventRepository interface {
	Append(ctx context.Context, event *PaymentEvent) error
	ListByPaymentIntentID(ctx context.Context, paymentIntentID uint) ([]*PaymentEvent, error)
}

// ProviderRepository manages gateway registry rows.
type ProviderRepository interface {
	ListAll(ctx context.Context) ([]*ProviderConfig, error)
	// ListEnabled returns enabled providers ordered by admin-assigned priority.
	ListEnabled(ctx context.Context) ([]*ProviderConfig, error)
	GetByKey(ctx context.Context, key string) (*ProviderConfig, error)
	Create(ctx context.Context, provider *ProviderConfig) error
	Update(ctx context.Context, provider *ProviderConfig) error
}
