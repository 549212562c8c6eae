// Package usecases contains the payment orchestration use cases. They are
// the only writers of the payment intent table; handlers and schedulers go
// through them, never through repositories directly.
package usecases

import (
	"context"
	"fmt"

	"github.com/adepa-shop/adepa/internal/application/payment/gateway"
	"github.com/adepa-shop/adepa/internal/application/payment/services"
	"github.com/adepa-shop/adepa/internal/domain/payment"
	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// InitializePaymentCommand carries the checkout request. The amount is
// trusted as given; pricing is computed upstream.
type InitializePaymentCommand struct {
	OrderID        *uint
	AmountMinor    int64
	Currency       string
	Email          string
	Name           string
	Phone          string
	Provider       string // preferred provider key, optional
	IdempotencyKey *string
	Metadata       map[string]interface{}
}

// InitializePaymentResult is what the checkout UI consumes. Payment-domain
// failures come back as Success false; only persistence failures surface as
// Go errors from Execute.
type InitializePaymentResult struct {
	Success           bool
	PaymentIntentSID  string
	Provider          string
	Status            string
	RedirectURL       string
	ProviderReference string
	ErrorMessage      string
}

type InitializePaymentUseCase struct {
	intentRepo      payment.IntentRepository
	selector        *services.ProviderSelector
	registry        *gateway.Registry
	callbackBaseURL string
	logger          logger.Interface
}

func NewInitializePaymentUseCase(
	intentRepo payment.IntentRepository,
	selector *services.ProviderSelector,
	registry *gateway.Registry,
	callbackBaseURL string,
	logger logger.Interface,
) *InitializePaymentUseCase {
	return &InitializePaymentUseCase{
		intentRepo:      intentRepo,
		selector:        selector,
		registry:        registry,
		callbackBaseURL: callbackBaseURL,
		logger:          logger,
	}
}

func (uc *InitializePaymentUseCase) Execute(ctx context.Context, cmd InitializePaymentCommand) (*InitializePaymentResult, error) {
	amount := vo.NewMoney(cmd.AmountMinor, cmd.Currency)
	if !amount.IsPositive() || amount.Currency() == "" {
		return failedInitResult("a positive amount and currency are required"), nil
	}

	// Resolve the provider before touching persistence so a dead currency
	// never leaves an intent row behind.
	providerCfg, err := uc.selector.Select(ctx, amount.Currency(), cmd.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to select provider: %w", err)
	}
	if providerCfg == nil {
		return failedInitResult("no payment provider available for currency %s", amount.Currency()), nil
	}

	if cmd.IdempotencyKey != nil && *cmd.IdempotencyKey != "" {
		existing, err := uc.intentRepo.GetByIdempotencyKey(ctx, *cmd.IdempotencyKey)
		if err != nil && !apperrors.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
		if existing != nil {
			return uc.replayResult(existing), nil
		}
	}

	intent, err := payment.NewPaymentIntent(providerCfg.Key(), cmd.OrderID, amount, uc.callbackBaseURL, cmd.IdempotencyKey, cmd.Metadata)
	if err != nil {
		return failedInitResult("%s", err.Error()), nil
	}
	callbackURL := fmt.Sprintf("%s?payment_intent=%s", uc.callbackBaseURL, intent.SID())

	if err := uc.intentRepo.Create(ctx, intent); err != nil {
		// The unique idempotency_key index closes the check-then-insert
		// race: the loser falls back to the stored intent.
		if apperrors.IsDuplicateError(err) && cmd.IdempotencyKey != nil {
			existing, getErr := uc.intentRepo.GetByIdempotencyKey(ctx, *cmd.IdempotencyKey)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load intent after duplicate key: %w", getErr)
			}
			return uc.replayResult(existing), nil
		}
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	gw, err := uc.registry.Get(providerCfg.Key())
	if err != nil {
		uc.logger.Errorw("no gateway registered for selected provider",
			"provider", providerCfg.Key(),
			"intent_sid", intent.SID(),
		)
		return uc.failIntent(ctx, intent, "payment provider is not available"), nil
	}

	initResult := uc.callInitialize(ctx, gw, gateway.InitializeRequest{
		Reference:   gateway.NewProviderReference(),
		OrderID:     cmd.OrderID,
		AmountMinor: amount.AmountMinor(),
		Currency:    amount.Currency(),
		Email:       cmd.Email,
		Name:        cmd.Name,
		Phone:       cmd.Phone,
		CallbackURL: callbackURL,
		Metadata:    cmd.Metadata,
	})

	if !initResult.Success {
		uc.logger.Warnw("gateway initialization failed",
			"provider", providerCfg.Key(),
			"intent_sid", intent.SID(),
			"error", initResult.ErrorMessage,
		)
		return uc.failIntent(ctx, intent, initResult.ErrorMessage), nil
	}

	if err := intent.MarkProcessing(initResult.ProviderReference, initResult.RedirectURL); err != nil {
		return nil, fmt.Errorf("failed to mark intent processing: %w", err)
	}
	if err := uc.intentRepo.Update(ctx, intent); err != nil {
		return nil, fmt.Errorf("failed to update payment intent: %w", err)
	}

	uc.logger.Infow("payment initialized",
		"intent_sid", intent.SID(),
		"provider", providerCfg.Key(),
		"amount", amount.String(),
		"provider_reference", initResult.ProviderReference,
	)

	return &InitializePaymentResult{
		Success:           true,
		PaymentIntentSID:  intent.SID(),
		Provider:          providerCfg.Key(),
		Status:            intent.Status().String(),
		RedirectURL:       initResult.RedirectURL,
		ProviderReference: initResult.ProviderReference,
	}, nil
}

// callInitialize guards the adapter call so a panicking gateway can never
// escape the orchestrator as an unhandled crash.
func (uc *InitializePaymentUseCase) callInitialize(ctx context.Context, gw gateway.Gateway, req gateway.InitializeRequest) (result *gateway.InitializeResult) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Errorw("gateway initialize panicked",
				"provider", gw.Name(),
				"panic", r,
			)
			result = &gateway.InitializeResult{
				Success:      false,
				ErrorMessage: "payment gateway error",
			}
		}
	}()
	return gw.Initialize(ctx, req)
}

// replayResult reproduces the stored outcome for a repeated idempotency
// key: non-terminal intents return their redirect without a second gateway
// call, terminal ones report their final state.
func (uc *InitializePaymentUseCase) replayResult(intent *payment.PaymentIntent) *InitializePaymentResult {
	result := &InitializePaymentResult{
		PaymentIntentSID: intent.SID(),
		Provider:         intent.Provider(),
		Status:           intent.Status().String(),
	}
	if intent.RedirectURL() != nil {
		result.RedirectURL = *intent.RedirectURL()
	}
	if intent.ProviderReference() != nil {
		result.ProviderReference = *intent.ProviderReference()
	}

	switch {
	case intent.Status().IsSucceeded():
		result.Success = true
	case intent.Status().IsTerminal():
		result.ErrorMessage = fmt.Sprintf("payment intent already %s", intent.Status())
	default:
		result.Success = true
	}

	uc.logger.Infow("idempotent initialize replay",
		"intent_sid", intent.SID(),
		"status", intent.Status(),
	)
	return result
}

func (uc *InitializePaymentUseCase) failIntent(ctx context.Context, intent *payment.PaymentIntent, message string) *InitializePaymentResult {
	if err := intent.MarkFailed(message); err != nil {
		uc.logger.Errorw("failed to mark intent failed",
			"intent_sid", intent.SID(),
			"error", err,
		)
	} else if err := uc.intentRepo.Update(ctx, intent); err != nil {
		uc.logger.Errorw("failed to persist failed intent",
			"intent_sid", intent.SID(),
			"error", err,
		)
	}

	return &InitializePaymentResult{
		Success:          false,
		PaymentIntentSID: intent.SID(),
		Provider:         intent.Provider(),
		Status:           intent.Status().String(),
		ErrorMessage:     message,
	}
}

func failedInitResult(format string, args ...interface{}) *InitializePaymentResult {
	return &InitializePaymentResult{
		Success:      false,
		ErrorMessage: fmt.Sprintf(format, args...),
	}
}
