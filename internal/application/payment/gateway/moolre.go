package gateway

import (
	"context"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// MoolreGateway is a placeholder for the Moolre mobile-money integration.
// The live API contract is not wired up yet, so every call reports an
// explicit configuration failure; deployments that want to exercise the
// moolre flow enable test mode and get the sandbox adapter instead.
type MoolreGateway struct {
	logger logger.Interface
}

func NewMoolreGateway(log logger.Interface) *MoolreGateway {
	return &MoolreGateway{logger: log}
}

var _ Gateway = (*MoolreGateway)(nil)

func (g *MoolreGateway) Name() string {
	return payment.ProviderMoolre
}

func (g *MoolreGateway) Initialize(ctx context.Context, req InitializeRequest) *InitializeResult {
	g.logger.Warnw("moolre live integration requested but not available", "reference", req.Reference)
	return failedInit("moolre live integration is not configured; enable test mode to use the sandbox")
}

func (g *MoolreGateway) Verify(ctx context.Context, providerReference string) *VerifyResult {
	g.logger.Warnw("moolre live verification requested but not available", "reference", providerReference)
	return failedVerify("moolre live integration is not configured; enable test mode to use the sandbox")
}

func (g *MoolreGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return false
}
