package provider

import (
	"context"
	"fmt"

	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/domain/transaction"
	"github.com/google/uuid"
)

// AccountLink is the provider's answer to an authorization-code
// exchange.
type AccountLink struct {
	ProviderAccountID string
	Scope             string
}

// ChargeRequest carries everything needed to charge a card on a
// connected account.
type ChargeRequest struct {
	ProviderAccountID string
	SourceCardToken   string
	AmountCents       int64
	Currency          string
	Description       string
	CorrelationID     string
}

// ChargeResult is the provider-native outcome of a charge.
type ChargeResult struct {
	TransactionID string
	Captured      bool
	AmountCents   int64
	Currency      string
	StatusCode    int
	Status        transaction.PaymentStatus
}

// ChargeDeclinedError reports a charge the provider received and
// definitively refused. It unwraps to ErrProviderPaymentFailed so
// callers can branch on the sentinel while keeping the catalog message.
type ChargeDeclinedError struct {
	Code        string
	DeclineCode string
	Message     string
}

func (e *ChargeDeclinedError) Error() string {
	return fmt.Sprintf("charge declined (%s): %s", e.Code, e.Message)
}

func (e *ChargeDeclinedError) Unwrap() error {
	return domainErrors.ErrProviderPaymentFailed
}

// Gateway is the remote payment-provider contract consumed by the
// core workflows.
type Gateway interface {
	// PublishableKey returns the provider's client-side API key.
	PublishableKey() string
	// BuildRedirectURL builds the OAuth authorization URL, seeded with
	// the callback address and the company id as correlation state.
	BuildRedirectURL(companyID uuid.UUID, redirectURI string) (string, error)
	// ExchangeAuthCode exchanges an authorization code for a linked
	// provider-account handle and confirmed scope.
	ExchangeAuthCode(ctx context.Context, code string) (*AccountLink, error)
	// Revoke disconnects a linked provider account.
	Revoke(ctx context.Context, providerAccountID string) error
	// Charge submits a card charge on the connected account.
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
