package testutil

import (
	"context"
	"sync"

	"github.com/finbridge/payments/internal/domain/account"
	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/domain/transaction"
	"github.com/finbridge/payments/internal/provider"
	"github.com/google/uuid"
)

// --- Account Repository Mock ---

// MockAccountRepository is an in-memory implementation of
// account.Repository. Per-method override funcs take precedence over
// the map-backed behavior.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*account.PaymentAccount // keyed by company id
	configs  map[string]*account.MethodConfig      // keyed by company id + method type

	GetFunc                func(ctx context.Context, companyID uuid.UUID) (*account.PaymentAccount, error)
	CreateFunc             func(ctx context.Context, acct *account.PaymentAccount) error
	SetInactiveFunc        func(ctx context.Context, id, actor uuid.UUID) error
	SetLinkedFunc          func(ctx context.Context, id uuid.UUID, providerAccountID string, actor uuid.UUID) error
	GetMethodConfigFunc    func(ctx context.Context, companyID uuid.UUID, methodType account.MethodType) (*account.MethodConfig, error)
	CreateMethodConfigFunc func(ctx context.Context, cfg *account.MethodConfig) error
	UpdateMethodConfigFunc func(ctx context.Context, cfg *account.MethodConfig) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[uuid.UUID]*account.PaymentAccount),
		configs:  make(map[string]*account.MethodConfig),
	}
}

func configKey(companyID uuid.UUID, methodType account.MethodType) string {
	return companyID.String() + "/" + string(methodType)
}

func (m *MockAccountRepository) Get(ctx context.Context, companyID uuid.UUID) (*account.PaymentAccount, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, companyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[companyID]
	if !ok {
		return nil, nil
	}
	cp := *acct
	return &cp, nil
}

func (m *MockAccountRepository) Create(ctx context.Context, acct *account.PaymentAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, acct)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *acct
	m.accounts[acct.CompanyID] = &cp
	return nil
}

func (m *MockAccountRepository) SetInactive(ctx context.Context, id, actor uuid.UUID) error {
	if m.SetInactiveFunc != nil {
		return m.SetInactiveFunc(ctx, id, actor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.ID == id {
			acct.Active = false
			acct.UpdatedBy = &actor
			return nil
		}
	}
	return domainErrors.ErrAccountNotFound
}

func (m *MockAccountRepository) SetLinked(ctx context.Context, id uuid.UUID, providerAccountID string, actor uuid.UUID) error {
	if m.SetLinkedFunc != nil {
		return m.SetLinkedFunc(ctx, id, providerAccountID, actor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.ID == id {
			acct.ProviderAccountID = providerAccountID
			acct.Active = true
			acct.UpdatedBy = &actor
			return nil
		}
	}
	return domainErrors.ErrAccountNotFound
}

func (m *MockAccountRepository) GetMethodConfig(ctx context.Context, companyID uuid.UUID, methodType account.MethodType) (*account.MethodConfig, error) {
	if m.GetMethodConfigFunc != nil {
		return m.GetMethodConfigFunc(ctx, companyID, methodType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[configKey(companyID, methodType)]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (m *MockAccountRepository) CreateMethodConfig(ctx context.Context, cfg *account.MethodConfig) error {
	if m.CreateMethodConfigFunc != nil {
		return m.CreateMethodConfigFunc(ctx, cfg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cfg
	m.configs[configKey(cfg.CompanyID, cfg.MethodType)] = &cp
	return nil
}

func (m *MockAccountRepository) UpdateMethodConfig(ctx context.Context, cfg *account.MethodConfig) error {
	if m.UpdateMethodConfigFunc != nil {
		return m.UpdateMethodConfigFunc(ctx, cfg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cfg
	m.configs[configKey(cfg.CompanyID, cfg.MethodType)] = &cp
	return nil
}

// --- Transaction Repository Mock ---

// MockTransactionRepository stores value copies so tests can assert
// store state as it was at a given point, not as later mutated.
type MockTransactionRepository struct {
	mu    sync.Mutex
	store map[uuid.UUID]transaction.Transaction

	CreateFunc func(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error)
	UpdateFunc func(ctx context.Context, t *transaction.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		store: make(map[uuid.UUID]transaction.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[t.ID] = *t
	return t, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[t.ID]; !ok {
		return domainErrors.ErrTransactionNotFound
	}
	m.store[t.ID] = *t
	return nil
}

// Stored returns a copy of the stored record, if any.
func (m *MockTransactionRepository) Stored(id uuid.UUID) (transaction.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	return t, ok
}

// All returns copies of every stored record.
func (m *MockTransactionRepository) All() []transaction.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]transaction.Transaction, 0, len(m.store))
	for _, t := range m.store {
		out = append(out, t)
	}
	return out
}

// --- Gateway Mock ---

// MockGateway is a func-override stub of provider.Gateway for service
// tests. Unset funcs return benign defaults.
type MockGateway struct {
	PublishableKeyFunc   func() string
	BuildRedirectURLFunc func(companyID uuid.UUID, redirectURI string) (string, error)
	ExchangeAuthCodeFunc func(ctx context.Context, code string) (*provider.AccountLink, error)
	RevokeFunc           func(ctx context.Context, providerAccountID string) error
	ChargeFunc           func(ctx context.Context, req provider.ChargeRequest) (*provider.ChargeResult, error)
}

func (m *MockGateway) PublishableKey() string {
	if m.PublishableKeyFunc != nil {
		return m.PublishableKeyFunc()
	}
	return "pk_test_stub"
}

func (m *MockGateway) BuildRedirectURL(companyID uuid.UUID, redirectURI string) (string, error) {
	if m.BuildRedirectURLFunc != nil {
		return m.BuildRedirectURLFunc(companyID, redirectURI)
	}
	return "https://connect.stub.local/authorize?state=" + companyID.String(), nil
}

func (m *MockGateway) ExchangeAuthCode(ctx context.Context, code string) (*provider.AccountLink, error) {
	if m.ExchangeAuthCodeFunc != nil {
		return m.ExchangeAuthCodeFunc(ctx, code)
	}
	return &provider.AccountLink{ProviderAccountID: "acct_stub", Scope: "read_write"}, nil
}

func (m *MockGateway) Revoke(ctx context.Context, providerAccountID string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, providerAccountID)
	}
	return nil
}

func (m *MockGateway) Charge(ctx context.Context, req provider.ChargeRequest) (*provider.ChargeResult, error) {
	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, req)
	}
	return &provider.ChargeResult{
		TransactionID: "txn_stub",
		Captured:      true,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		StatusCode:    200,
		Status:        transaction.PaymentSucceeded,
	}, nil
}
