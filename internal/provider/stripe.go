package provider

import (
	"context"
	"errors"
	"net/url"
	"strings"

	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/oauth"
)

const stripeOAuthScope = "read_write"

// StripeConfig carries the credentials for the Stripe Connect
// integration.
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	ClientID       string
	OAuthBaseLink  string
}

// StripeGateway implements Gateway against Stripe Connect standard
// accounts.
type StripeGateway struct {
	cfg    StripeConfig
	logger zerolog.Logger
}

func NewStripeGateway(cfg StripeConfig, logger zerolog.Logger) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{
		cfg:    cfg,
		logger: logger.With().Str("component", "stripe_gateway").Logger(),
	}
}

func (g *StripeGateway) PublishableKey() string {
	return g.cfg.PublishableKey
}

// BuildRedirectURL builds the Connect OAuth authorization URL. The
// company id travels as the state parameter so the callback can be
// correlated.
func (g *StripeGateway) BuildRedirectURL(companyID uuid.UUID, redirectURI string) (string, error) {
	base, err := url.Parse(g.cfg.OAuthBaseLink)
	if err != nil {
		return "", domainErrors.NewDomainError(
			"oauth_link_invalid",
			"provider OAuth base link is not a valid URL",
			err,
		)
	}

	q := base.Query()
	q.Set("response_type", "code")
	q.Set("client_id", g.cfg.ClientID)
	q.Set("scope", stripeOAuthScope)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", companyID.String())
	base.RawQuery = q.Encode()

	return base.String(), nil
}

func (g *StripeGateway) ExchangeAuthCode(ctx context.Context, code string) (*AccountLink, error) {
	params := &stripe.OAuthTokenParams{
		GrantType: stripe.String("authorization_code"),
		Code:      stripe.String(code),
	}
	params.Context = ctx

	token, err := oauth.New(params)
	if err != nil {
		g.logger.Error().Err(err).Msg("stripe oauth token exchange failed")
		return nil, domainErrors.NewDomainError(
			"provider_authorization_failed",
			"provider rejected the authorization code",
			domainErrors.ErrProviderAuthorizationFailed,
		)
	}

	if token.StripeUserID == "" || token.Scope == "" {
		g.logger.Error().Msg("stripe oauth token missing account id or scope")
		return nil, domainErrors.ErrInvalidProviderResponse
	}

	return &AccountLink{
		ProviderAccountID: token.StripeUserID,
		Scope:             string(token.Scope),
	}, nil
}

func (g *StripeGateway) Revoke(ctx context.Context, providerAccountID string) error {
	params := &stripe.DeauthorizeParams{
		ClientID:     stripe.String(g.cfg.ClientID),
		StripeUserID: stripe.String(providerAccountID),
	}
	params.Context = ctx

	if _, err := oauth.Del(params); err != nil {
		g.logger.Error().Err(err).
			Str("provider_account_id", providerAccountID).
			Msg("stripe deauthorize failed")
		return domainErrors.NewDomainError(
			"provider_deauthorization_failed",
			"provider refused to revoke account access",
			domainErrors.ErrProviderDeauthorizationFailed,
		)
	}
	return nil
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	params.AddMetadata("correlation_id", req.CorrelationID)
	if err := params.SetSource(req.SourceCardToken); err != nil {
		return nil, domainErrors.NewValidationError("source", "invalid card token")
	}
	params.SetStripeAccount(req.ProviderAccountID)

	ch, err := charge.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.logger.Warn().
				Str("code", string(stripeErr.Code)).
				Str("decline_code", string(stripeErr.DeclineCode)).
				Str("correlation_id", req.CorrelationID).
				Msg("stripe charge declined")
			return nil, &ChargeDeclinedError{
				Code:        string(stripeErr.Code),
				DeclineCode: string(stripeErr.DeclineCode),
				Message:     ErrorMessage(string(stripeErr.Code), string(stripeErr.DeclineCode)),
			}
		}
		g.logger.Error().Err(err).
			Str("correlation_id", req.CorrelationID).
			Msg("stripe charge failed before an outcome was returned")
		return nil, domainErrors.NewDomainError(
			"provider_payment_failed",
			"provider did not return a charge outcome",
			domainErrors.ErrProviderPaymentFailed,
		)
	}

	txID := ch.ID
	if ch.BalanceTransaction != nil && ch.BalanceTransaction.ID != "" {
		txID = ch.BalanceTransaction.ID
	}

	res := &ChargeResult{
		TransactionID: txID,
		Captured:      ch.Captured,
		AmountCents:   ch.Amount,
		Currency:      strings.ToUpper(string(ch.Currency)),
		Status:        chargeStatus(string(ch.Status)),
	}
	if ch.LastResponse != nil {
		res.StatusCode = ch.LastResponse.StatusCode
	}
	return res, nil
}

func chargeStatus(s string) transaction.PaymentStatus {
	switch s {
	case "succeeded":
		return transaction.PaymentSucceeded
	case "pending":
		return transaction.PaymentProcessing
	default:
		return transaction.PaymentFailed
	}
}
