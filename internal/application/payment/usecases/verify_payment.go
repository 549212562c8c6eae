package usecases

import (
	"context"
	"fmt"

	"github.com/adepa-shop/adepa/internal/application/payment/gateway"
	"github.com/adepa-shop/adepa/internal/domain/order"
	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/db"
	apperrors "github.com/adepa-shop/adepa/internal/shared/errors"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// VerifyPaymentCommand locates the intent either by its SID or by the
// (provider, providerReference) pair webhooks carry.
type VerifyPaymentCommand struct {
	PaymentIntentSID  string
	Provider          string
	ProviderReference string
	// Source tags the audit event: "api" for explicit verification calls,
	// "webhook" for gateway-pushed deliveries.
	Source string
}

// VerifyPaymentResult is consumed by webhook handlers and the order
// confirmation page.
type VerifyPaymentResult struct {
	Success               bool
	Status                string
	PaymentIntentSID      string
	OrderID               *uint
	AmountMinor           int64
	Currency              string
	ProviderTransactionID string
	ErrorMessage          string
}

type VerifyPaymentUseCase struct {
	intentRepo     payment.IntentRepository
	settlementRepo payment.SettlementRepository
	eventRepo      payment.EventRepository
	orderRepo      order.Repository
	registry       *gateway.Registry
	txManager      db.Transactor
	logger         logger.Interface
}

func NewVerifyPaymentUseCase(
	intentRepo payment.IntentRepository,
	settlementRepo payment.SettlementRepository,
	eventRepo payment.EventRepository,
	orderRepo order.Repository,
	registry *gateway.Registry,
	txManager db.Transactor,
	logger logger.Interface,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		intentRepo:     intentRepo,
		settlementRepo: settlementRepo,
		eventRepo:      eventRepo,
		orderRepo:      orderRepo,
		registry:       registry,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd VerifyPaymentCommand) (*VerifyPaymentResult, error) {
	intent, err := uc.locateIntent(ctx, cmd)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return &VerifyPaymentResult{
				Success:      false,
				Status:       "failed",
				ErrorMessage: "payment intent not found",
			}, nil
		}
		return nil, fmt.Errorf("failed to load payment intent: %w", err)
	}

	// Repeated webhook deliveries and duplicate confirmation-page calls
	// land here: a settled intent is a safe no-op.
	if intent.Status().IsSucceeded() {
		return uc.settledResult(ctx, intent), nil
	}

	gw, err := uc.registry.Get(intent.Provider())
	if err != nil {
		return &VerifyPaymentResult{
			Success:          false,
			Status:           "failed",
			PaymentIntentSID: intent.SID(),
			ErrorMessage:     "payment provider is not available",
		}, nil
	}

	if intent.ProviderReference() == nil {
		return &VerifyPaymentResult{
			Success:          false,
			Status:           string(intent.Status()),
			PaymentIntentSID: intent.SID(),
			ErrorMessage:     "payment intent has no provider reference",
		}, nil
	}

	verifyResult := uc.callVerify(ctx, gw, *intent.ProviderReference())

	// The audit event is written before branching so failed and pending
	// verifications remain visible.
	if err := uc.appendEvent(ctx, intent, cmd.Source, verifyResult); err != nil {
		return nil, fmt.Errorf("failed to record verification event: %w", err)
	}

	switch verifyResult.Status {
	case gateway.VerifyStatusPending:
		return &VerifyPaymentResult{
			Success:          false,
			Status:           "pending",
			PaymentIntentSID: intent.SID(),
			OrderID:          intent.OrderID(),
		}, nil

	case gateway.VerifyStatusSucceeded:
		// Amount reconciliation precedes every order and ledger mutation.
		if verifyResult.AmountMinor != 0 {
			if err := intent.VerifyReportedAmount(verifyResult.AmountMinor, verifyResult.Currency); err != nil {
				uc.logger.Warnw("amount integrity check failed",
					"intent_sid", intent.SID(),
					"expected", intent.Amount().AmountMinor(),
					"reported", verifyResult.AmountMinor,
					"error", err,
				)
				return uc.failIntent(ctx, intent, "amount verification failed"), nil
			}
		}
		return uc.settle(ctx, intent, verifyResult)

	default:
		return uc.failIntent(ctx, intent, verifyResult.ErrorMessage), nil
	}
}

func (uc *VerifyPaymentUseCase) locateIntent(ctx context.Context, cmd VerifyPaymentCommand) (*payment.PaymentIntent, error) {
	if cmd.PaymentIntentSID != "" {
		return uc.intentRepo.GetBySID(ctx, cmd.PaymentIntentSID)
	}
	if cmd.Provider != "" && cmd.ProviderReference != "" {
		return uc.intentRepo.GetByProviderReference(ctx, cmd.Provider, cmd.ProviderReference)
	}
	return nil, apperrors.NewNotFoundError("payment intent not found")
}

func (uc *VerifyPaymentUseCase) callVerify(ctx context.Context, gw gateway.Gateway, reference string) (result *gateway.VerifyResult) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Errorw("gateway verify panicked",
				"provider", gw.Name(),
				"panic", r,
			)
			result = &gateway.VerifyResult{
				Success:      false,
				Status:       gateway.VerifyStatusFailed,
				ErrorMessage: "payment gateway error",
			}
		}
	}()
	return gw.Verify(ctx, reference)
}

func (uc *VerifyPaymentUseCase) appendEvent(ctx context.Context, intent *payment.PaymentIntent, source string, result *gateway.VerifyResult) error {
	eventType := payment.EventVerificationFailed
	switch result.Status {
	case gateway.VerifyStatusSucceeded:
		eventType = payment.EventVerificationSucceeded
	case gateway.VerifyStatusPending:
		eventType = payment.EventVerificationPending
	}
	if source == "webhook" {
		// Webhook deliveries keep their own type; the outcome lives in the
		// payload.
		eventType = payment.EventWebhookReceived
	}

	payload := result.RawPayload
	if payload == nil {
		payload = make(map[string]interface{})
	}
	payload["verify_status"] = string(result.Status)

	var errorMessage *string
	if result.ErrorMessage != "" {
		msg := result.ErrorMessage
		errorMessage = &msg
	}

	event, err := payment.NewPaymentEvent(intent.ID(), intent.Provider(), eventType, payload, true, errorMessage)
	if err != nil {
		return err
	}
	return uc.eventRepo.Append(ctx, event)
}

// settle performs the success unit of work: conditional intent transition,
// order mutation and settlement insert, all inside one transaction. Losing
// the conditional transition means a concurrent verification already
// settled the intent, which degrades to the idempotent success path.
func (uc *VerifyPaymentUseCase) settle(ctx context.Context, intent *payment.PaymentIntent, verifyResult *gateway.VerifyResult) (*VerifyPaymentResult, error) {
	transactionID := verifyResult.TransactionID
	if transactionID == "" {
		transactionID = *intent.ProviderReference()
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		won, err := uc.intentRepo.TransitionToSucceeded(txCtx, intent.ID())
		if err != nil {
			return fmt.Errorf("failed to transition intent: %w", err)
		}
		if !won {
			return nil
		}

		if intent.OrderID() != nil {
			ord, err := uc.orderRepo.GetByID(txCtx, *intent.OrderID())
			if err != nil {
				return fmt.Errorf("failed to load order: %w", err)
			}
			if err := ord.MarkAsPaid(); err != nil {
				return fmt.Errorf("failed to mark order paid: %w", err)
			}
			if err := uc.orderRepo.Update(txCtx, ord); err != nil {
				return fmt.Errorf("failed to update order: %w", err)
			}
		}

		settlement, err := payment.NewSettlement(intent.ID(), intent.OrderID(), intent.Provider(), transactionID, intent.Amount())
		if err != nil {
			return fmt.Errorf("failed to build settlement: %w", err)
		}
		if err := uc.settlementRepo.Create(txCtx, settlement); err != nil {
			// Unique payment_intent_id index: a racing verification already
			// captured this settlement.
			if apperrors.IsConflictError(err) || apperrors.IsDuplicateError(err) {
				return nil
			}
			return fmt.Errorf("failed to create settlement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("payment verified and settled",
		"intent_sid", intent.SID(),
		"provider", intent.Provider(),
		"amount", intent.Amount().String(),
		"provider_transaction_id", transactionID,
	)

	return &VerifyPaymentResult{
		Success:               true,
		Status:                "succeeded",
		PaymentIntentSID:      intent.SID(),
		OrderID:               intent.OrderID(),
		AmountMinor:           intent.Amount().AmountMinor(),
		Currency:              intent.Amount().Currency(),
		ProviderTransactionID: transactionID,
	}, nil
}

func (uc *VerifyPaymentUseCase) settledResult(ctx context.Context, intent *payment.PaymentIntent) *VerifyPaymentResult {
	result := &VerifyPaymentResult{
		Success:          true,
		Status:           "succeeded",
		PaymentIntentSID: intent.SID(),
		OrderID:          intent.OrderID(),
		AmountMinor:      intent.Amount().AmountMinor(),
		Currency:         intent.Amount().Currency(),
	}

	settlement, err := uc.settlementRepo.GetByPaymentIntentID(ctx, intent.ID())
	if err == nil && settlement != nil {
		result.ProviderTransactionID = settlement.ProviderTransactionID()
	}
	return result
}

func (uc *VerifyPaymentUseCase) failIntent(ctx context.Context, intent *payment.PaymentIntent, message string) *VerifyPaymentResult {
	if message == "" {
		message = "payment verification failed"
	}

	if err := intent.MarkFailed(message); err != nil {
		uc.logger.Warnw("intent not moved to failed",
			"intent_sid", intent.SID(),
			"status", intent.Status(),
			"error", err,
		)
	} else if err := uc.intentRepo.Update(ctx, intent); err != nil {
		uc.logger.Errorw("failed to persist failed intent",
			"intent_sid", intent.SID(),
			"error", err,
		)
	}

	return &VerifyPaymentResult{
		Success:          false,
		Status:           "failed",
		PaymentIntentSID: intent.SID(),
		OrderID:          intent.OrderID(),
		ErrorMessage:     message,
	}
}
