package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/adepa-shop/adepa/internal/shared/biztime"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

const sandboxReferencePrefix = "MOCK-"

// SandboxGateway simulates a gateway without any network calls. It stands in
// for a provider whenever test mode is on or live credentials are missing.
// The fabricated reference encodes amount and currency so Verify can report
// them back like a real gateway would.
type SandboxGateway struct {
	provider string
	approve  bool
	mockURL  func(reference string) string
	logger   logger.Interface
}

// NewSandboxGateway wraps the named provider. mockURL builds the hosted
// checkout URL for a fabricated reference; approve controls whether
// verification settles or declines.
func NewSandboxGateway(provider string, approve bool, mockURL func(reference string) string, log logger.Interface) *SandboxGateway {
	return &SandboxGateway{
		provider: provider,
		approve:  approve,
		mockURL:  mockURL,
		logger:   log,
	}
}

var _ Gateway = (*SandboxGateway)(nil)

func (g *SandboxGateway) Name() string {
	return g.provider
}

func (g *SandboxGateway) Initialize(ctx context.Context, req InitializeRequest) *InitializeResult {
	if req.AmountMinor <= 0 {
		return failedInit("amount must be positive")
	}
	if req.Currency == "" {
		return failedInit("currency is required")
	}

	reference := newSandboxReference(req.AmountMinor, req.Currency)
	g.logger.Infow("sandbox initialization",
		"provider", g.provider,
		"reference", reference,
		"amount_minor", req.AmountMinor,
		"currency", req.Currency,
	)

	redirectURL := reference
	if g.mockURL != nil {
		redirectURL = g.mockURL(reference)
	}

	return &InitializeResult{
		Success:           true,
		RedirectURL:       redirectURL,
		ProviderReference: reference,
	}
}

func (g *SandboxGateway) Verify(ctx context.Context, providerReference string) *VerifyResult {
	amountMinor, currency, err := parseSandboxReference(providerReference)
	if err != nil {
		return failedVerify("unrecognized sandbox reference: %s", providerReference)
	}

	raw := map[string]interface{}{
		"reference": providerReference,
		"amount":    amountMinor,
		"currency":  currency,
		"sandbox":   true,
	}

	if !g.approve {
		return &VerifyResult{
			Status:       VerifyStatusFailed,
			RawPayload:   raw,
			ErrorMessage: "sandbox declined transaction",
		}
	}

	return &VerifyResult{
		Success:       true,
		Status:        VerifyStatusSucceeded,
		AmountMinor:   amountMinor,
		Currency:      currency,
		TransactionID: providerReference,
		RawPayload:    raw,
	}
}

// VerifyWebhookSignature always accepts: the sandbox never receives real
// webhook traffic, only the local mock checkout page posting back.
func (g *SandboxGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return true
}

func newSandboxReference(amountMinor int64, currency string) string {
	ts := biztime.NowUTC().Format("20060102150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s%d-%s-%s-%s", sandboxReferencePrefix, amountMinor, strings.ToUpper(currency), ts, suffix)
}

// parseSandboxReference decodes "MOCK-<amount>-<currency>-<ts>-<rand>".
func parseSandboxReference(reference string) (int64, string, error) {
	if !strings.HasPrefix(reference, sandboxReferencePrefix) {
		return 0, "", fmt.Errorf("missing sandbox prefix")
	}
	parts := strings.Split(strings.TrimPrefix(reference, sandboxReferencePrefix), "-")
	if len(parts) != 4 {
		return 0, "", fmt.Errorf("malformed sandbox reference")
	}
	amountMinor, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || amountMinor <= 0 {
		return 0, "", fmt.Errorf("malformed sandbox amount")
	}
	if parts[1] == "" {
		return 0, "", fmt.Errorf("missing sandbox currency")
	}
	return amountMinor, parts[1], nil
}

// IsSandboxReference reports whether a provider reference was fabricated by
// the sandbox adapter.
func IsSandboxReference(reference string) bool {
	return strings.HasPrefix(reference, sandboxReferencePrefix)
}
