package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/adepa-shop/adepa/internal/application/payment/gateway"
	"github.com/adepa-shop/adepa/internal/domain/order"
	"github.com/adepa-shop/adepa/internal/domain/payment"
)

type mockIntentRepo struct {
	mock.Mock
}

func (m *mockIntentRepo) Create(ctx context.Context, intent *payment.PaymentIntent) error {
	return m.Called(ctx, intent).Error(0)
}

func (m *mockIntentRepo) Update(ctx context.Context, intent *payment.PaymentIntent) error {
	return m.Called(ctx, intent).Error(0)
}

func (m *mockIntentRepo) GetByID(ctx context.Context, id uint) (*payment.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentIntent), args.Error(1)
}

func (m *mockIntentRepo) GetBySID(ctx context.Context, sid string) (*payment.PaymentIntent, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentIntent), args.Error(1)
}

func (m *mockIntentRepo) GetByProviderReference(ctx context.Context, provider, reference string) (*payment.PaymentIntent, error) {
	args := m.Called(ctx, provider, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentIntent), args.Error(1)
}

func (m *mockIntentRepo) GetByIdempotencyKey(ctx context.Context, key string) (*payment.PaymentIntent, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentIntent), args.Error(1)
}

func (m *mockIntentRepo) TransitionToSucceeded(ctx context.Context, intentID uint) (bool, error) {
	args := m.Called(ctx, intentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockIntentRepo) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*payment.PaymentIntent, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.PaymentIntent), args.Error(1)
}

type mockSettlementRepo struct {
	mock.Mock
}

func (m *mockSettlementRepo) Create(ctx context.Context, settlement *payment.Settlement) error {
	return m.Called(ctx, settlement).Error(0)
}

func (m *mockSettlementRepo) GetByPaymentIntentID(ctx context.Context, paymentIntentID uint) (*payment.Settlement, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Settlement), args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Append(ctx context.Context, event *payment.PaymentEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepo) ListByPaymentIntentID(ctx context.Context, paymentIntentID uint) ([]*payment.PaymentEvent, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.PaymentEvent), args.Error(1)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, ord *order.Order) error {
	return m.Called(ctx, ord).Error(0)
}

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

// fakeTransactor runs the unit of work directly; commit/rollback semantics
// are covered by the repository integration path, not these tests.
type fakeTransactor struct{}

func (fakeTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubGateway lets each test script adapter behavior per call.
type stubGateway struct {
	name            string
	initializeFn    func(ctx context.Context, req gateway.InitializeRequest) *gateway.InitializeResult
	verifyFn        func(ctx context.Context, reference string) *gateway.VerifyResult
	initializeCalls int
	verifyCalls     int
}

func (s *stubGateway) Name() string {
	if s.name == "" {
		return payment.ProviderPaystack
	}
	return s.name
}

func (s *stubGateway) Initialize(ctx context.Context, req gateway.InitializeRequest) *gateway.InitializeResult {
	s.initializeCalls++
	return s.initializeFn(ctx, req)
}

func (s *stubGateway) Verify(ctx context.Context, reference string) *gateway.VerifyResult {
	s.verifyCalls++
	return s.verifyFn(ctx, reference)
}

func (s *stubGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return true
}
