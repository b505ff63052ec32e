package service

import (
	"context"
	"fmt"

	"github.com/finbridge/payments/internal/domain/account"
	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/provider"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LinkingService owns the account-linking lifecycle: it is the only
// component that mutates PaymentAccount records.
type LinkingService struct {
	accounts    account.Repository
	gateway     provider.Gateway
	redirectURI string
	logger      zerolog.Logger
}

func NewLinkingService(accounts account.Repository, gateway provider.Gateway, redirectURI string, logger zerolog.Logger) *LinkingService {
	return &LinkingService{
		accounts:    accounts,
		gateway:     gateway,
		redirectURI: redirectURI,
		logger:      logger.With().Str("component", "linking_service").Logger(),
	}
}

// GetRedirectURL builds the provider authorization URL for a company
// that is not yet linked. No local write occurs.
func (s *LinkingService) GetRedirectURL(ctx context.Context, companyID uuid.UUID) (string, error) {
	acct, err := s.accounts.Get(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}
	if acct.Linked() {
		return "", domainErrors.ErrAlreadyLinked
	}
	return s.gateway.BuildRedirectURL(companyID, s.redirectURI)
}

// Authorize exchanges an authorization code for a provider account
// handle and persists the link. It runs in two phases: the precondition
// check and code exchange first, then a re-read before the single store
// write so a concurrent winner is never overwritten. The losing caller
// gets false.
func (s *LinkingService) Authorize(ctx context.Context, companyID uuid.UUID, authCode, scope string, actor uuid.UUID) (bool, error) {
	existing, err := s.accounts.Get(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}
	if existing.Linked() {
		return false, domainErrors.ErrAlreadyLinked
	}

	link, err := s.gateway.ExchangeAuthCode(ctx, authCode)
	if err != nil {
		s.logger.Error().Err(err).Str("company_id", companyID.String()).Msg("authorization code exchange failed")
		return false, err
	}

	confirmedScope := link.Scope
	if confirmedScope == "" {
		confirmedScope = scope
	}
	if link.ProviderAccountID == "" || confirmedScope == "" {
		return false, domainErrors.ErrInvalidProviderResponse
	}

	// Re-read before writing: another caller may have linked while the
	// code exchange was in flight. The earliest successful link wins.
	current, err := s.accounts.Get(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}
	if current.Linked() {
		s.logger.Warn().Str("company_id", companyID.String()).Msg("concurrent link detected, keeping existing account")
		return false, nil
	}

	acct, err := account.NewPaymentAccount(companyID, link.ProviderAccountID, confirmedScope, actor)
	if err != nil {
		return false, err
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		return false, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	s.logger.Info().
		Str("company_id", companyID.String()).
		Str("provider_account_id", acct.ProviderAccountID).
		Msg("payment account linked")
	return true, nil
}

// Deauthorize revokes the provider link and then marks the local
// account inactive. Remote revocation must succeed before the local
// flag flips.
func (s *LinkingService) Deauthorize(ctx context.Context, companyID uuid.UUID, actor uuid.UUID) error {
	acct, err := s.accounts.Get(ctx, companyID)
	if err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}
	if acct == nil || acct.ProviderAccountID == "" {
		return domainErrors.ErrNotLinked
	}
	if !acct.Active {
		return domainErrors.ErrAlreadyDeactivated
	}

	if err := s.gateway.Revoke(ctx, acct.ProviderAccountID); err != nil {
		s.logger.Error().Err(err).Str("company_id", companyID.String()).Msg("provider revocation failed, local state unchanged")
		return err
	}

	if err := s.accounts.SetInactive(ctx, acct.ID, actor); err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	s.logger.Info().Str("company_id", companyID.String()).Msg("payment account deauthorized")
	return nil
}

// GetStatus reports whether the company currently has an active linked
// account. Pure read.
func (s *LinkingService) GetStatus(ctx context.Context, companyID uuid.UUID) (bool, error) {
	acct, err := s.accounts.Get(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}
	return acct.Linked() && acct.Scope != "", nil
}

// PublishableKey exposes the provider's client-side key for the front
// end.
func (s *LinkingService) PublishableKey() string {
	return s.gateway.PublishableKey()
}
