package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/adepa-shop/adepa/internal/shared/biztime"
)

// Well-known provider keys.
const (
	ProviderPaystack    = "paystack"
	ProviderFlutterwave = "flutterwave"
	ProviderMoolre      = "moolre"
)

// ProviderConfig is the registry entry for one gateway integration:
// enabled/primary/test-mode flags, supported currencies and the opaque
// credential bag. Rows are seeded at first access and mutated only through
// admin operations; they are never deleted.
type ProviderConfig struct {
	id          uint
	key         string
	displayName string
	enabled     bool
	primary     bool
	testMode    bool
	priority    int
	currencies  []string
	credentials map[string]string

	createdAt time.Time
	updatedAt time.Time
}

func NewProviderConfig(key, displayName string, currencies []string) (*ProviderConfig, error) {
	if key == "" {
		return nil, fmt.Errorf("provider key is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	normalized := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c == "" {
			continue
		}
		normalized = append(normalized, strings.ToUpper(c))
	}

	now := biztime.NowUTC()
	return &ProviderConfig{
		key:         key,
		displayName: displayName,
		currencies:  normalized,
		credentials: make(map[string]string),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func (p *ProviderConfig) ID() uint {
	return p.id
}

func (p *ProviderConfig) Key() string {
	return p.key
}

func (p *ProviderConfig) DisplayName() string {
	return p.displayName
}

func (p *ProviderConfig) Enabled() bool {
	return p.enabled
}

func (p *ProviderConfig) Primary() bool {
	return p.primary
}

func (p *ProviderConfig) TestMode() bool {
	return p.testMode
}

func (p *ProviderConfig) Priority() int {
	return p.priority
}

func (p *ProviderConfig) Currencies() []string {
	return p.currencies
}

func (p *ProviderConfig) Credentials() map[string]string {
	return p.credentials
}

// Credential returns one credential value by name.
func (p *ProviderConfig) Credential(name string) (string, bool) {
	v, ok := p.credentials[name]
	return v, ok && v != ""
}

// HasCredentials reports whether every named credential is present and
// non-empty.
func (p *ProviderConfig) HasCredentials(names ...string) bool {
	for _, n := range names {
		if v, ok := p.credentials[n]; !ok || v == "" {
			return false
		}
	}
	return true
}

func (p *ProviderConfig) SupportsCurrency(currency string) bool {
	currency = strings.ToUpper(currency)
	for _, c := range p.currencies {
		if c == currency {
			return true
		}
	}
	return false
}

func (p *ProviderConfig) SetEnabled(enabled bool) {
	p.enabled = enabled
	p.updatedAt = biztime.NowUTC()
}

func (p *ProviderConfig) SetPrimary(primary bool) {
	p.primary = primary
	p.updatedAt = biztime.NowUTC()
}

func (p *ProviderConfig) SetTestMode(testMode bool) {
	p.testMode = testMode
	p.updatedAt = biztime.NowUTC()
}

func (p *ProviderConfig) SetPriority(priority int) {
	p.priority = priority
	p.updatedAt = biztime.NowUTC()
}

// SaveCredentials replaces the credential bag. The shape is provider
// specific and opaque to the registry.
func (p *ProviderConfig) SaveCredentials(credentials map[string]string) {
	if credentials == nil {
		credentials = make(map[string]string)
	}
	p.credentials = credentials
	p.updatedAt = biztime.NowUTC()
}

func (p *ProviderConfig) CreatedAt() time.Time {
	return p.createdAt
}

func (p *ProviderConfig) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the row ID after persistence.
func (p *ProviderConfig) SetID(id uint) {
	p.id = id
}

type ProviderReconstructParams struct {
	ID          uint
	Key         string
	DisplayName string
	Enabled     bool
	Primary     bool
	TestMode    bool
	Priority    int
	Currencies  []string
	Credentials map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructProviderConfig(params ProviderReconstructParams) *ProviderConfig {
	credentials := params.Credentials
	if credentials == nil {
		credentials = make(map[string]string)
	}
	return &ProviderConfig{
		id:          params.ID,
		key:         params.Key,
		displayName: params.DisplayName,
		enabled:     params.Enabled,
		primary:     params.Primary,
		testMode:    params.TestMode,
		priority:    params.Priority,
		currencies:  params.Currencies,
		credentials: credentials,
		createdAt:   params.CreatedAt,
		updatedAt:   params.UpdatedAt,
	}
}
