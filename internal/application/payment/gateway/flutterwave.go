package gateway

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

const flutterwaveBaseURL = "https://api.flutterwave.com"

// FlutterwaveGateway integrates the Flutterwave v3 API. Flutterwave bills in
// major units, so minor-unit amounts are converted on the way out and
// reported settlements converted back on the way in.
type FlutterwaveGateway struct {
	secretKey  string
	secretHash string
	baseURL    string
	client     *http.Client
	logger     logger.Interface
}

type FlutterwaveOption func(*FlutterwaveGateway)

func WithFlutterwaveBaseURL(baseURL string) FlutterwaveOption {
	return func(g *FlutterwaveGateway) {
		g.baseURL = baseURL
	}
}

func WithFlutterwaveHTTPClient(client *http.Client) FlutterwaveOption {
	return func(g *FlutterwaveGateway) {
		g.client = client
	}
}

func NewFlutterwaveGateway(secretKey, secretHash string, timeout time.Duration, log logger.Interface, opts ...FlutterwaveOption) *FlutterwaveGateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	g := &FlutterwaveGateway{
		secretKey:  secretKey,
		secretHash: secretHash,
		baseURL:    flutterwaveBaseURL,
		client:     &http.Client{Timeout: timeout},
		logger:     log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Gateway = (*FlutterwaveGateway)(nil)

func (g *FlutterwaveGateway) Name() string {
	return payment.ProviderFlutterwave
}

type flutterwaveCustomer struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

type flutterwaveInitPayload struct {
	TxRef       string                 `json:"tx_ref"`
	Amount      string                 `json:"amount"`
	Currency    string                 `json:"currency"`
	RedirectURL string                 `json:"redirect_url"`
	Customer    flutterwaveCustomer    `json:"customer"`
	Meta        map[string]interface{} `json:"meta,omitempty"`
}

type flutterwaveInitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

func (g *FlutterwaveGateway) Initialize(ctx context.Context, req InitializeRequest) *InitializeResult {
	if g.secretKey == "" {
		return failedInit("flutterwave secret key is not configured")
	}
	if req.Email == "" {
		return failedInit("customer email is required")
	}

	payload := flutterwaveInitPayload{
		TxRef:       req.Reference,
		Amount:      strconv.FormatFloat(float64(req.AmountMinor)/100.0, 'f', 2, 64),
		Currency:    req.Currency,
		RedirectURL: req.CallbackURL,
		Customer: flutterwaveCustomer{
			Email:       req.Email,
			Name:        req.Name,
			PhoneNumber: req.Phone,
		},
		Meta: req.Metadata,
	}

	var resp flutterwaveInitResponse
	if err := g.post(ctx, "/v3/payments", payload, &resp); err != nil {
		g.logger.Errorw("flutterwave initialize request failed", "error", err, "tx_ref", req.Reference)
		return failedInit("payment gateway is unreachable")
	}

	if resp.Status != "success" || resp.Data.Link == "" {
		return failedInit("flutterwave rejected initialization: %s", resp.Message)
	}

	// Flutterwave keys verification off the caller-supplied tx_ref rather
	// than issuing its own reference.
	return &InitializeResult{
		Success:           true,
		RedirectURL:       resp.Data.Link,
		ProviderReference: req.Reference,
	}
}

type flutterwaveVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       int64   `json:"id"`
		TxRef    string  `json:"tx_ref"`
		FlwRef   string  `json:"flw_ref"`
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

func (g *FlutterwaveGateway) Verify(ctx context.Context, providerReference string) *VerifyResult {
	if g.secretKey == "" {
		return failedVerify("flutterwave secret key is not configured")
	}

	path := "/v3/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(providerReference)
	var resp flutterwaveVerifyResponse
	if err := g.get(ctx, path, &resp); err != nil {
		g.logger.Errorw("flutterwave verify request failed", "error", err, "tx_ref", providerReference)
		return failedVerify("payment gateway is unreachable")
	}

	if resp.Status != "success" {
		return failedVerify("flutterwave verification rejected: %s", resp.Message)
	}

	raw := map[string]interface{}{
		"status":   resp.Data.Status,
		"tx_ref":   resp.Data.TxRef,
		"flw_ref":  resp.Data.FlwRef,
		"amount":   resp.Data.Amount,
		"currency": resp.Data.Currency,
	}
	amountMinor := int64(math.Round(resp.Data.Amount * 100))
	transactionID := ""
	if resp.Data.ID != 0 {
		transactionID = strconv.FormatInt(resp.Data.ID, 10)
	}

	switch resp.Data.Status {
	case "successful":
		return &VerifyResult{
			Success:       true,
			Status:        VerifyStatusSucceeded,
			AmountMinor:   amountMinor,
			Currency:      resp.Data.Currency,
			TransactionID: transactionID,
			RawPayload:    raw,
		}
	case "pending":
		return &VerifyResult{
			Status:     VerifyStatusPending,
			RawPayload: raw,
		}
	case "failed", "cancelled":
		return &VerifyResult{
			Status:       VerifyStatusFailed,
			RawPayload:   raw,
			ErrorMessage: resp.Message,
		}
	default:
		return &VerifyResult{
			Status:       VerifyStatusFailed,
			RawPayload:   raw,
			ErrorMessage: "unrecognized flutterwave status: " + resp.Data.Status,
		}
	}
}

// VerifyWebhookSignature checks the verif-hash header, which Flutterwave
// sends as plain equality with the configured secret hash.
func (g *FlutterwaveGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	if g.secretHash == "" || signature == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.secretHash), []byte(signature)) == 1
}

func (g *FlutterwaveGateway) post(ctx context.Context, path string, payload, out interface{}) error {
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

func (g *FlutterwaveGateway) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	return g.do(req, out)
}

func (g *FlutterwaveGateway) do(req *http.Request, out interface{}) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}
