package gateway

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// Credential names expected in the provider config credential bag.
const (
	CredentialSecretKey  = "secret_key"
	CredentialSecretHash = "secret_hash"
	CredentialAPIKey     = "api_key"
)

// Registry maps provider keys to their adapter instances. It is built once
// at startup from the persisted provider configs and rebuilt whenever an
// admin changes a config.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]Gateway)}
}

// Register adds or replaces the adapter for a provider key.
func (r *Registry) Register(g Gateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[g.Name()] = g
}

// Get returns the adapter registered for a provider key.
func (r *Registry) Get(provider string) (Gateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.gateways[provider]
	if !ok {
		return nil, fmt.Errorf("no gateway registered for provider %q", provider)
	}
	return g, nil
}

// Names lists the registered provider keys in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.gateways))
	for name := range r.gateways {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuilderOptions carries the ambient settings adapter construction needs.
type BuilderOptions struct {
	Timeout time.Duration
	// MockCheckoutURL builds the hosted sandbox checkout page URL for a
	// provider and a fabricated reference.
	MockCheckoutURL func(provider, reference string) string
	Logger          logger.Interface
}

// BuildFromConfigs assembles a registry from persisted provider configs. A
// provider in test mode, or one missing its live credentials, gets the
// sandbox adapter so checkout keeps working end to end without real keys.
func BuildFromConfigs(configs []*payment.ProviderConfig, opts BuilderOptions) *Registry {
	registry := NewRegistry()
	log := opts.Logger
	if log == nil {
		log = logger.NewLogger()
	}

	for _, cfg := range configs {
		adapter, sandboxed := buildAdapter(cfg, opts, log)
		if adapter == nil {
			log.Warnw("skipping unknown provider config", "provider", cfg.Key())
			continue
		}
		registry.Register(adapter)
		log.Infow("registered payment gateway",
			"provider", cfg.Key(),
			"sandbox", sandboxed,
			"enabled", cfg.Enabled(),
		)
	}

	return registry
}

func buildAdapter(cfg *payment.ProviderConfig, opts BuilderOptions, log logger.Interface) (Gateway, bool) {
	mockURL := func(reference string) string {
		if opts.MockCheckoutURL == nil {
			return reference
		}
		return opts.MockCheckoutURL(cfg.Key(), reference)
	}

	switch cfg.Key() {
	case payment.ProviderPaystack:
		if cfg.TestMode() || !cfg.HasCredentials(CredentialSecretKey) {
			return NewSandboxGateway(cfg.Key(), true, mockURL, log), true
		}
		secretKey, _ := cfg.Credential(CredentialSecretKey)
		return NewPaystackGateway(secretKey, opts.Timeout, log), false

	case payment.ProviderFlutterwave:
		if cfg.TestMode() || !cfg.HasCredentials(CredentialSecretKey) {
			return NewSandboxGateway(cfg.Key(), true, mockURL, log), true
		}
		secretKey, _ := cfg.Credential(CredentialSecretKey)
		secretHash, _ := cfg.Credential(CredentialSecretHash)
		return NewFlutterwaveGateway(secretKey, secretHash, opts.Timeout, log), false

	case payment.ProviderMoolre:
		if cfg.TestMode() || !cfg.HasCredentials(CredentialAPIKey) {
			return NewSandboxGateway(cfg.Key(), true, mockURL, log), true
		}
		return NewMoolreGateway(log), false

	default:
		return nil, false
	}
}
