// Package gateway defines the uniform contract every payment provider
// adapter satisfies, plus the adapter registry the orchestrator dispatches
// through. Adapters convert transport, configuration and gateway-reported
// failures into result objects; they never leak errors or panics to callers.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adepa-shop/adepa/internal/shared/biztime"
)

// VerifyStatus is the normalized classification of a remote payment status.
// Every gateway-specific status string maps into exactly one of these.
type VerifyStatus string

const (
	VerifyStatusSucceeded VerifyStatus = "succeeded"
	VerifyStatusPending   VerifyStatus = "pending"
	VerifyStatusFailed    VerifyStatus = "failed"
)

// InitializeRequest carries everything an adapter needs to open a payment
// with its gateway. Amounts are always in integer minor units; adapters that
// bill in major units convert internally.
type InitializeRequest struct {
	Reference   string
	OrderID     *uint
	AmountMinor int64
	Currency    string
	Email       string
	Name        string
	Phone       string
	CallbackURL string
	Metadata    map[string]interface{}
}

// InitializeResult is the adapter-boundary outcome of an initialization.
// Failure is a value, not an error: Success false plus ErrorMessage.
type InitializeResult struct {
	Success           bool
	RedirectURL       string
	ProviderReference string
	ErrorMessage      string
}

// VerifyResult is the adapter-boundary outcome of a verification call.
// AmountMinor is zero when the gateway did not report a settled amount;
// callers must only reconcile amounts the gateway actually reported.
type VerifyResult struct {
	Success       bool
	Status        VerifyStatus
	AmountMinor   int64
	Currency      string
	TransactionID string
	RawPayload    map[string]interface{}
	ErrorMessage  string
}

// Gateway is the uniform adapter contract. Implementations must catch every
// transport and configuration failure and return it as a failed result.
type Gateway interface {
	Name() string
	Initialize(ctx context.Context, req InitializeRequest) *InitializeResult
	Verify(ctx context.Context, providerReference string) *VerifyResult
	// VerifyWebhookSignature reports whether a webhook delivery is
	// authentic. An unconfigured secret always rejects.
	VerifyWebhookSignature(payload []byte, signature string) bool
}

func failedInit(format string, args ...interface{}) *InitializeResult {
	return &InitializeResult{
		Success:      false,
		ErrorMessage: fmt.Sprintf(format, args...),
	}
}

func failedVerify(format string, args ...interface{}) *VerifyResult {
	return &VerifyResult{
		Success:      false,
		Status:       VerifyStatusFailed,
		ErrorMessage: fmt.Sprintf(format, args...),
	}
}

// NewProviderReference generates a gateway-side idempotent reference
// combining a timestamp with a random suffix, e.g. "ADP-20240101120000-1a2b3c4d".
func NewProviderReference() string {
	ts := biztime.NowUTC().Format("20060102150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ADP-%s-%s", ts, suffix)
}

// DefaultTimeout bounds gateway HTTP calls when no explicit timeout is
// configured.
const DefaultTimeout = 15 * time.Second
