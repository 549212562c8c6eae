// Package http assembles the gin engine: repositories, use cases, handlers
// and routes, wired by constructor injection.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adepa-shop/adepa/internal/application/payment/gateway"
	"github.com/adepa-shop/adepa/internal/application/payment/services"
	paymentUsecases "github.com/adepa-shop/adepa/internal/application/payment/usecases"
	"github.com/adepa-shop/adepa/internal/infrastructure/config"
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/seeds"
	"github.com/adepa-shop/adepa/internal/infrastructure/repository"
	"github.com/adepa-shop/adepa/internal/infrastructure/scheduler"
	"github.com/adepa-shop/adepa/internal/interfaces/http/handlers"
	"github.com/adepa-shop/adepa/internal/interfaces/http/middleware"
	"github.com/adepa-shop/adepa/internal/interfaces/http/routes"
	"github.com/adepa-shop/adepa/internal/shared/db"
	"github.com/adepa-shop/adepa/internal/shared/goroutine"
	"github.com/adepa-shop/adepa/internal/shared/logger"
	"github.com/adepa-shop/adepa/internal/shared/utils"
)

// Router owns the wired application graph.
type Router struct {
	engine    *gin.Engine
	scheduler *scheduler.PaymentScheduler
	registry  *gateway.Registry
	logger    logger.Interface
}

// NewRouter wires the whole application: seeds the provider registry on
// first boot, builds the gateway adapters and exposes the API routes.
func NewRouter(database *gorm.DB, cfg *config.Config) (*Router, error) {
	log := logger.NewLogger().Named("http")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	intentRepo := repository.NewPaymentIntentRepository(database)
	settlementRepo := repository.NewSettlementRepository(database)
	eventRepo := repository.NewPaymentEventRepository(database)
	providerRepo := repository.NewProviderRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	txManager := db.NewTransactionManager(database)

	// Provider rows are seeded at first access when the table is empty.
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seeds.SeedProviders(seedCtx, providerRepo, log); err != nil {
		return nil, fmt.Errorf("failed to seed providers: %w", err)
	}

	gatewayTimeout := time.Duration(cfg.Payment.GatewayTimeoutSeconds) * time.Second
	mockCheckoutURL := func(provider, reference string) string {
		return fmt.Sprintf("%s/api/v1/payments/mock/%s?provider=%s", cfg.Server.BaseURL, reference, provider)
	}

	registry := gateway.NewRegistry()
	rebuildRegistry := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		configs, err := providerRepo.ListAll(ctx)
		if err != nil {
			log.Errorw("failed to rebuild gateway registry", "error", err)
			return
		}
		fresh := gateway.BuildFromConfigs(configs, gateway.BuilderOptions{
			Timeout:         gatewayTimeout,
			MockCheckoutURL: mockCheckoutURL,
			Logger:          log.Named("gateway"),
		})
		for _, name := range fresh.Names() {
			gw, err := fresh.Get(name)
			if err == nil {
				registry.Register(gw)
			}
		}
	}
	rebuildRegistry()

	// Services and use cases
	selector := services.NewProviderSelector(providerRepo, log.Named("selector"))
	initializePaymentUC := paymentUsecases.NewInitializePaymentUseCase(
		intentRepo, selector, registry, cfg.Payment.CallbackBaseURL, log.Named("initialize_payment"))
	verifyPaymentUC := paymentUsecases.NewVerifyPaymentUseCase(
		intentRepo, settlementRepo, eventRepo, orderRepo, registry, txManager, log.Named("verify_payment"))
	getPaymentUC := paymentUsecases.NewGetPaymentUseCase(intentRepo, log.Named("get_payment"))
	listProvidersUC := paymentUsecases.NewListProvidersUseCase(providerRepo, log.Named("list_providers"))
	updateProviderUC := paymentUsecases.NewUpdateProviderUseCase(providerRepo, txManager, log.Named("update_provider"))
	expireIntentsUC := paymentUsecases.NewExpirePaymentIntentsUseCase(
		intentRepo, time.Duration(cfg.Payment.IntentTTLMinutes)*time.Minute, log.Named("expire_intents"))

	// Handlers
	paymentHandler := handlers.NewPaymentHandler(initializePaymentUC, verifyPaymentUC, getPaymentUC, log)
	providerHandler := handlers.NewProviderHandler(listProvidersUC, updateProviderUC, func() {
		goroutine.SafeGo(log, "rebuild-gateway-registry", rebuildRegistry)
	}, log)
	webhookHandler := handlers.NewWebhookHandler(registry, verifyPaymentUC, log)
	adminAuth := middleware.NewAdminAuthMiddleware(cfg.Auth.JWTSecret, log)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))

	engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "ok", nil)
	})

	api := engine.Group("/api/v1")
	routes.RegisterPaymentRoutes(api, paymentHandler)
	routes.RegisterWebhookRoutes(api, webhookHandler)
	routes.RegisterAdminRoutes(api, adminAuth, providerHandler)

	return &Router{
		engine:    engine,
		scheduler: scheduler.NewPaymentScheduler(expireIntentsUC, log.Named("scheduler")),
		registry:  registry,
		logger:    log,
	}, nil
}

// Engine exposes the gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// StartScheduler launches the background intent expiry sweep.
func (r *Router) StartScheduler(ctx context.Context) {
	r.scheduler.Start(ctx)
}

// StopScheduler stops the background sweep and waits for it to finish.
func (r *Router) StopScheduler() {
	r.scheduler.Stop()
}

func requestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debugw("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
