package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

const paystackBaseURL = "https://api.paystack.co"

// PaystackGateway integrates the Paystack transaction API. Paystack bills in
// minor units, so amounts pass through unconverted.
type PaystackGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
	logger    logger.Interface
}

type PaystackOption func(*PaystackGateway)

// WithPaystackBaseURL overrides the API base URL (tests point it at a stub
// server).
func WithPaystackBaseURL(baseURL string) PaystackOption {
	return func(g *PaystackGateway) {
		g.baseURL = baseURL
	}
}

func WithPaystackHTTPClient(client *http.Client) PaystackOption {
	return func(g *PaystackGateway) {
		g.client = client
	}
}

func NewPaystackGateway(secretKey string, timeout time.Duration, log logger.Interface, opts ...PaystackOption) *PaystackGateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	g := &PaystackGateway{
		secretKey: secretKey,
		baseURL:   paystackBaseURL,
		client:    &http.Client{Timeout: timeout},
		logger:    log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Gateway = (*PaystackGateway)(nil)

func (g *PaystackGateway) Name() string {
	return payment.ProviderPaystack
}

type paystackInitPayload struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Currency    string                 `json:"currency"`
	Reference   string                 `json:"reference"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (g *PaystackGateway) Initialize(ctx context.Context, req InitializeRequest) *InitializeResult {
	if g.secretKey == "" {
		return failedInit("paystack secret key is not configured")
	}
	if req.Email == "" {
		return failedInit("customer email is required")
	}

	payload := paystackInitPayload{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}

	var resp paystackInitResponse
	if err := g.post(ctx, "/transaction/initialize", payload, &resp); err != nil {
		g.logger.Errorw("paystack initialize request failed", "error", err, "reference", req.Reference)
		return failedInit("payment gateway is unreachable")
	}

	if !resp.Status || resp.Data.AuthorizationURL == "" {
		return failedInit("paystack rejected initialization: %s", resp.Message)
	}

	return &InitializeResult{
		Success:           true,
		RedirectURL:       resp.Data.AuthorizationURL,
		ProviderReference: resp.Data.Reference,
	}
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID              int64                  `json:"id"`
		Status          string                 `json:"status"`
		Reference       string                 `json:"reference"`
		Amount          int64                  `json:"amount"`
		Currency        string                 `json:"currency"`
		GatewayResponse string                 `json:"gateway_response"`
		Metadata        map[string]interface{} `json:"metadata"`
	} `json:"data"`
}

func (g *PaystackGateway) Verify(ctx context.Context, providerReference string) *VerifyResult {
	if g.secretKey == "" {
		return failedVerify("paystack secret key is not configured")
	}

	var resp paystackVerifyResponse
	if err := g.get(ctx, "/transaction/verify/"+providerReference, &resp); err != nil {
		g.logger.Errorw("paystack verify request failed", "error", err, "reference", providerReference)
		return failedVerify("payment gateway is unreachable")
	}

	if !resp.Status {
		return failedVerify("paystack verification rejected: %s", resp.Message)
	}

	raw := map[string]interface{}{
		"status":           resp.Data.Status,
		"reference":        resp.Data.Reference,
		"amount":           resp.Data.Amount,
		"currency":         resp.Data.Currency,
		"gateway_response": resp.Data.GatewayResponse,
	}
	transactionID := ""
	if resp.Data.ID != 0 {
		transactionID = strconv.FormatInt(resp.Data.ID, 10)
	}

	switch resp.Data.Status {
	case "success":
		return &VerifyResult{
			Success:       true,
			Status:        VerifyStatusSucceeded,
			AmountMinor:   resp.Data.Amount,
			Currency:      resp.Data.Currency,
			TransactionID: transactionID,
			RawPayload:    raw,
		}
	case "pending", "ongoing", "processing", "queued", "send_otp":
		return &VerifyResult{
			Status:     VerifyStatusPending,
			RawPayload: raw,
		}
	case "failed", "abandoned", "reversed":
		return &VerifyResult{
			Status:       VerifyStatusFailed,
			RawPayload:   raw,
			ErrorMessage: resp.Data.GatewayResponse,
		}
	default:
		return &VerifyResult{
			Status:       VerifyStatusFailed,
			RawPayload:   raw,
			ErrorMessage: "unrecognized paystack status: " + resp.Data.Status,
		}
	}
}

// VerifyWebhookSignature checks the x-paystack-signature header: an
// HMAC-SHA512 of the raw body keyed with the secret key.
func (g *PaystackGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	if g.secretKey == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *PaystackGateway) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, out)
}

func (g *PaystackGateway) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	return g.do(req, out)
}

func (g *PaystackGateway) do(req *http.Request, out interface{}) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	// Paystack returns its status flag in the body even on 4xx, so decode
	// before judging the HTTP code.
	if err := json.Unmarshal(body, out); err != nil {
		return err
	}
	return nil
}
