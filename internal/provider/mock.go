package provider

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/domain/transaction"
	"github.com/google/uuid"
)

// MockGateway simulates a payment provider for local runs and tests.
type MockGateway struct {
	declineRate float64 // 0.0 to 1.0
	latency     time.Duration
	timeoutRate float64 // 0.0 to 1.0
	declineCode string
}

type MockGatewayOption func(*MockGateway)

func WithDeclineRate(rate float64) MockGatewayOption {
	return func(g *MockGateway) { g.declineRate = rate }
}

func WithLatency(d time.Duration) MockGatewayOption {
	return func(g *MockGateway) { g.latency = d }
}

func WithTimeoutRate(rate float64) MockGatewayOption {
	return func(g *MockGateway) { g.timeoutRate = rate }
}

func WithDeclineCode(code string) MockGatewayOption {
	return func(g *MockGateway) { g.declineCode = code }
}

func NewMockGateway(opts ...MockGatewayOption) *MockGateway {
	g := &MockGateway{
		declineRate: 0.0,
		latency:     50 * time.Millisecond,
		timeoutRate: 0.0,
		declineCode: "generic_decline",
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *MockGateway) PublishableKey() string {
	return "pk_test_mock"
}

func (g *MockGateway) BuildRedirectURL(companyID uuid.UUID, redirectURI string) (string, error) {
	return fmt.Sprintf(
		"https://connect.mock.local/oauth/authorize?client_id=ca_mock&redirect_uri=%s&state=%s",
		redirectURI, companyID,
	), nil
}

func (g *MockGateway) ExchangeAuthCode(ctx context.Context, code string) (*AccountLink, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, domainErrors.ErrProviderAuthorizationFailed
	}
	return &AccountLink{
		ProviderAccountID: "acct_mock_" + uuid.New().String()[:8],
		Scope:             "read_write",
	}, nil
}

func (g *MockGateway) Revoke(ctx context.Context, providerAccountID string) error {
	if err := g.wait(ctx); err != nil {
		return err
	}
	if providerAccountID == "" {
		return domainErrors.ErrProviderDeauthorizationFailed
	}
	return nil
}

func (g *MockGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	if rand.Float64() < g.timeoutRate {
		return nil, domainErrors.NewDomainError(
			"provider_payment_failed",
			"simulated transport failure",
			domainErrors.ErrProviderPaymentFailed,
		)
	}

	if rand.Float64() < g.declineRate {
		return nil, &ChargeDeclinedError{
			Code:        "card_declined",
			DeclineCode: g.declineCode,
			Message:     ErrorMessage("card_declined", g.declineCode),
		}
	}

	return &ChargeResult{
		TransactionID: "txn_mock_" + uuid.New().String()[:8],
		Captured:      true,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		StatusCode:    http.StatusOK,
		Status:        transaction.PaymentSucceeded,
	}, nil
}

func (g *MockGateway) wait(ctx context.Context) error {
	select {
	case <-time.After(g.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
