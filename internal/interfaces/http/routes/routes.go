// Package routes registers the API route groups.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adepa-shop/adepa/internal/interfaces/http/handlers"
	"github.com/adepa-shop/adepa/internal/interfaces/http/middleware"
)

func RegisterPaymentRoutes(api *gin.RouterGroup, h *handlers.PaymentHandler) {
	payments := api.Group("/payments")
	{
		payments.POST("/initialize", h.InitializePayment)
		payments.POST("/verify", h.VerifyPayment)
		payments.GET("/mock/:reference", h.MockPaymentPage)
		payments.GET("/:sid", h.GetPayment)
	}
}

func RegisterWebhookRoutes(api *gin.RouterGroup, h *handlers.WebhookHandler) {
	api.POST("/webhooks/:provider", h.HandleWebhook)
}

func RegisterAdminRoutes(api *gin.RouterGroup, auth *middleware.AdminAuthMiddleware, h *handlers.ProviderHandler) {
	admin := api.Group("/admin", auth.RequireAdmin())
	{
		admin.GET("/providers", h.ListProviders)
		admin.PATCH("/providers/:key", h.UpdateProvider)
		admin.PUT("/providers/:key/credentials", h.SaveCredentials)
	}
}
