package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adepa-shop/adepa/internal/domain/payment"
	"github.com/adepa-shop/adepa/internal/shared/logger"
)

type mockProviderRepo struct {
	mock.Mock
}

func (m *mockProviderRepo) ListAll(ctx context.Context) ([]*payment.ProviderConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.ProviderConfig), args.Error(1)
}

func (m *mockProviderRepo) ListEnabled(ctx context.Context) ([]*payment.ProviderConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.ProviderConfig), args.Error(1)
}

func (m *mockProviderRepo) GetByKey(ctx context.Context, key string) (*payment.ProviderConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ProviderConfig), args.Error(1)
}

func (m *mockProviderRepo) Create(ctx context.Context, provider *payment.ProviderConfig) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *mockProviderRepo) Update(ctx context.Context, provider *payment.ProviderConfig) error {
	return m.Called(ctx, provider).Error(0)
}

func providerConfig(t *testing.T, key string, primary bool, priority int, currencies ...string) *payment.ProviderConfig {
	t.Helper()
	return payment.ReconstructProviderConfig(payment.ProviderReconstructParams{
		ID:          1,
		Key:         key,
		DisplayName: key,
		Enabled:     true,
		Primary:     primary,
		Priority:    priority,
		Currencies:  currencies,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
}

func TestProviderSelector_Select(t *testing.T) {
	ctx := context.Background()

	t.Run("primary wins without preference", func(t *testing.T) {
		repo := new(mockProviderRepo)
		repo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			providerConfig(t, payment.ProviderPaystack, false, 1, "GHS"),
			providerConfig(t, payment.ProviderFlutterwave, true, 2, "GHS"),
		}, nil)

		selector := NewProviderSelector(repo, logger.NewLogger())
		cfg, err := selector.Select(ctx, "GHS", "")

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, payment.ProviderFlutterwave, cfg.Key())
	})

	t.Run("explicit preference wins over primary", func(t *testing.T) {
		repo := new(mockProviderRepo)
		repo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			providerConfig(t, payment.ProviderPaystack, false, 1, "GHS"),
			providerConfig(t, payment.ProviderFlutterwave, true, 2, "GHS"),
		}, nil)

		selector := NewProviderSelector(repo, logger.NewLogger())
		cfg, err := selector.Select(ctx, "GHS", payment.ProviderPaystack)

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, payment.ProviderPaystack, cfg.Key())
	})

	t.Run("preference not supporting currency falls back", func(t *testing.T) {
		repo := new(mockProviderRepo)
		repo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			providerConfig(t, payment.ProviderPaystack, false, 1, "NGN"),
			providerConfig(t, payment.ProviderFlutterwave, true, 2, "GHS"),
		}, nil)

		selector := NewProviderSelector(repo, logger.NewLogger())
		cfg, err := selector.Select(ctx, "GHS", payment.ProviderPaystack)

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, payment.ProviderFlutterwave, cfg.Key())
	})

	t.Run("no primary falls back to lowest priority", func(t *testing.T) {
		repo := new(mockProviderRepo)
		repo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			providerConfig(t, payment.ProviderFlutterwave, false, 2, "GHS"),
			providerConfig(t, payment.ProviderPaystack, false, 1, "GHS"),
		}, nil)

		selector := NewProviderSelector(repo, logger.NewLogger())
		cfg, err := selector.Select(ctx, "GHS", "")

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, payment.ProviderPaystack, cfg.Key())
	})

	t.Run("unsupported currency returns nil", func(t *testing.T) {
		repo := new(mockProviderRepo)
		repo.On("ListEnabled", ctx).Return([]*payment.ProviderConfig{
			providerConfig(t, payment.ProviderPaystack, true, 1, "GHS"),
		}, nil)

		selector := NewProviderSelector(repo, logger.NewLogger())
		cfg, err := selector.Select(ctx, "USD", "")

		require.NoError(t, err)
		assert.Nil(t, cfg)
	})
}
