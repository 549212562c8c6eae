package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymentUsecases "github.com/adepa-shop/adepa/internal/application/payment/usecases"
	"github.com/adepa-shop/adepa/internal/shared/logger"
	"github.com/adepa-shop/adepa/internal/shared/utils"
)

// ProviderHandler exposes the admin surface of the provider registry.
type ProviderHandler struct {
	listProvidersUC  *paymentUsecases.ListProvidersUseCase
	updateProviderUC *paymentUsecases.UpdateProviderUseCase
	// onConfigChange rebuilds the gateway registry after admin mutations.
	onConfigChange func()
	logger         logger.Interface
}

func NewProviderHandler(
	listProvidersUC *paymentUsecases.ListProvidersUseCase,
	updateProviderUC *paymentUsecases.UpdateProviderUseCase,
	onConfigChange func(),
	logger logger.Interface,
) *ProviderHandler {
	return &ProviderHandler{
		listProvidersUC:  listProvidersUC,
		updateProviderUC: updateProviderUC,
		onConfigChange:   onConfigChange,
		logger:           logger,
	}
}

func (h *ProviderHandler) ListProviders(c *gin.Context) {
	providers, err := h.listProvidersUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list providers", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", providers)
}

type UpdateProviderRequest struct {
	Enabled  *bool `json:"enabled"`
	Primary  *bool `json:"primary"`
	TestMode *bool `json:"test_mode"`
	Priority *int  `json:"priority"`
}

func (h *ProviderHandler) UpdateProvider(c *gin.Context) {
	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.updateProviderUC.Execute(c.Request.Context(), paymentUsecases.UpdateProviderCommand{
		Key:      c.Param("key"),
		Enabled:  req.Enabled,
		Primary:  req.Primary,
		TestMode: req.TestMode,
		Priority: req.Priority,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.notifyConfigChange()
	utils.SuccessResponse(c, http.StatusOK, "provider updated", result)
}

type SaveCredentialsRequest struct {
	Credentials map[string]string `json:"credentials" binding:"required"`
}

func (h *ProviderHandler) SaveCredentials(c *gin.Context) {
	var req SaveCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.updateProviderUC.SaveCredentials(c.Request.Context(), c.Param("key"), req.Credentials)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.notifyConfigChange()
	utils.SuccessResponse(c, http.StatusOK, "credentials updated", result)
}

func (h *ProviderHandler) notifyConfigChange() {
	if h.onConfigChange != nil {
		h.onConfigChange()
	}
}
