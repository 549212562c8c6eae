// Package handlers contains the gin handlers for the payment API.
package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentUsecases "github.com/adepa-shop/adepa/internal/application/payment/usecases"
	"github.com/adepa-shop/adepa/internal/shared/logger"
	"github.com/adepa-shop/adepa/internal/shared/utils"
)

type PaymentHandler struct {
	initializePaymentUC *paymentUsecases.InitializePaymentUseCase
	verifyPaymentUC     *paymentUsecases.VerifyPaymentUseCase
	getPaymentUC        *paymentUsecases.GetPaymentUseCase
	logger              logger.Interface
}

func NewPaymentHandler(
	initializePaymentUC *paymentUsecases.InitializePaymentUseCase,
	verifyPaymentUC *paymentUsecases.VerifyPaymentUseCase,
	getPaymentUC *paymentUsecases.GetPaymentUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		initializePaymentUC: initializePaymentUC,
		verifyPaymentUC:     verifyPaymentUC,
		getPaymentUC:        getPaymentUC,
		logger:              logger,
	}
}

type InitializePaymentRequest struct {
	OrderID        *uint                  `json:"order_id"`
	AmountMinor    int64                  `json:"amount_minor" validate:"required,gt=0"`
	Currency       string                 `json:"currency" validate:"required,len=3"`
	Email          string                 `json:"email" validate:"required,email"`
	Name           string                 `json:"name"`
	Phone          string                 `json:"phone"`
	Provider       string                 `json:"provider" validate:"omitempty,oneof=paystack flutterwave moolre"`
	IdempotencyKey string                 `json:"idempotency_key" validate:"omitempty,max=128"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// Validate validates the initialize payment request
func (r *InitializePaymentRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type InitializePaymentResponse struct {
	PaymentIntentID   string `json:"payment_intent_id"`
	Provider          string `json:"provider"`
	Status            string `json:"status"`
	RedirectURL       string `json:"redirect_url,omitempty"`
	ProviderReference string `json:"provider_reference,omitempty"`
}

func (h *PaymentHandler) InitializePayment(c *gin.Context) {
	var req InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("failed to bind initialize request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := paymentUsecases.InitializePaymentCommand{
		OrderID:     req.OrderID,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		Provider:    req.Provider,
		Metadata:    req.Metadata,
	}
	if req.IdempotencyKey != "" {
		cmd.IdempotencyKey = &req.IdempotencyKey
	}

	result, err := h.initializePaymentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to initialize payment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Success {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, result.ErrorMessage)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment initialized", InitializePaymentResponse{
		PaymentIntentID:   result.PaymentIntentSID,
		Provider:          result.Provider,
		Status:            result.Status,
		RedirectURL:       result.RedirectURL,
		ProviderReference: result.ProviderReference,
	})
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	sid := c.Param("sid")

	dto, err := h.getPaymentUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

type VerifyPaymentRequest struct {
	PaymentIntentID   string `json:"payment_intent_id"`
	Provider          string `json:"provider"`
	ProviderReference string `json:"provider_reference"`
}

type VerifyPaymentResponse struct {
	Status                string `json:"status"`
	PaymentIntentID       string `json:"payment_intent_id"`
	OrderID               *uint  `json:"order_id,omitempty"`
	AmountMinor           int64  `json:"amount_minor,omitempty"`
	Currency              string `json:"currency,omitempty"`
	ProviderTransactionID string `json:"provider_transaction_id,omitempty"`
	Error                 string `json:"error,omitempty"`
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.PaymentIntentID == "" && (req.Provider == "" || req.ProviderReference == "") {
		utils.ErrorResponse(c, http.StatusBadRequest, "payment_intent_id or provider with provider_reference is required")
		return
	}

	result, err := h.verifyPaymentUC.Execute(c.Request.Context(), paymentUsecases.VerifyPaymentCommand{
		PaymentIntentSID:  req.PaymentIntentID,
		Provider:          req.Provider,
		ProviderReference: req.ProviderReference,
		Source:            "api",
	})
	if err != nil {
		h.logger.Errorw("failed to verify payment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := VerifyPaymentResponse{
		Status:                result.Status,
		PaymentIntentID:       result.PaymentIntentSID,
		OrderID:               result.OrderID,
		AmountMinor:           result.AmountMinor,
		Currency:              result.Currency,
		ProviderTransactionID: result.ProviderTransactionID,
		Error:                 result.ErrorMessage,
	}

	if !result.Success {
		c.JSON(http.StatusOK, utils.APIResponse{
			Success: false,
			Data:    response,
			Error: &utils.ErrorInfo{
				Type:    "payment_error",
				Message: result.ErrorMessage,
			},
		})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment verified", response)
}

// MockPaymentPage renders the sandbox checkout page: visiting it verifies
// the simulated payment and shows the outcome.
func (h *PaymentHandler) MockPaymentPage(c *gin.Context) {
	reference := c.Param("reference")
	provider := c.Query("provider")
	if reference == "" || provider == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "reference and provider are required")
		return
	}

	result, err := h.verifyPaymentUC.Execute(c.Request.Context(), paymentUsecases.VerifyPaymentCommand{
		Provider:          provider,
		ProviderReference: reference,
		Source:            "api",
	})
	if err != nil {
		h.logger.Errorw("mock payment verification failed", "error", err, "reference", reference)
		utils.ErrorResponseWithError(c, err)
		return
	}

	status := "failed"
	if result.Success {
		status = "succeeded"
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Sandbox Payment</title></head>
<body>
<h1>Sandbox payment %s</h1>
<p>Reference: %s</p>
<p>This is a simulated checkout. No money moved.</p>
</body>
</html>`, html.EscapeString(status), html.EscapeString(reference))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
