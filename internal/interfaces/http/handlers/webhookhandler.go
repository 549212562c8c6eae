package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adepa-shop/adepa/internal/application/payment/gateway"
	paymentUsecases "github.com/adepa-shop/adepa/internal/application/payment/usecases"
	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
	"github.com/adepa-shop/adepa/internal/shared/utils"
)

// signatureHeaders maps each provider to the header its webhooks sign with.
var signatureHeaders = map[string]string{
	payment.ProviderPaystack:    "x-paystack-signature",
	payment.ProviderFlutterwave: "verif-hash",
}

// WebhookHandler receives gateway-pushed verification triggers. The raw body
// is authenticated through the adapter before anything is trusted.
type WebhookHandler struct {
	registry        *gateway.Registry
	verifyPaymentUC *paymentUsecases.VerifyPaymentUseCase
	logger          logger.Interface
}

func NewWebhookHandler(
	registry *gateway.Registry,
	verifyPaymentUC *paymentUsecases.VerifyPaymentUseCase,
	logger logger.Interface,
) *WebhookHandler {
	return &WebhookHandler{
		registry:        registry,
		verifyPaymentUC: verifyPaymentUC,
		logger:          logger,
	}
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		TxRef     string `json:"tx_ref"`
	} `json:"data"`
}

func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	provider := c.Param("provider")

	gw, err := h.registry.Get(provider)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "unknown provider")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	signature := c.GetHeader(signatureHeaders[provider])
	if !gw.VerifyWebhookSignature(body, signature) {
		h.logger.Warnw("webhook signature rejected", "provider", provider)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	reference := extractReference(body)
	if reference == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "webhook carries no transaction reference")
		return
	}

	result, err := h.verifyPaymentUC.Execute(c.Request.Context(), paymentUsecases.VerifyPaymentCommand{
		Provider:          provider,
		ProviderReference: reference,
		Source:            "webhook",
	})
	if err != nil {
		h.logger.Errorw("webhook verification failed",
			"provider", provider,
			"reference", reference,
			"error", err,
		)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("webhook processed",
		"provider", provider,
		"reference", reference,
		"status", result.Status,
	)

	// Gateways only care that the delivery was accepted; the verification
	// outcome lives in our own records.
	utils.SuccessResponse(c, http.StatusOK, "webhook processed", gin.H{
		"status": result.Status,
	})
}

func extractReference(body []byte) string {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Data.Reference != "" {
		return payload.Data.Reference
	}
	return payload.Data.TxRef
}
