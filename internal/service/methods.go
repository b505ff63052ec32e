package service

import (
	"context"
	"fmt"

	"github.com/finbridge/payments/internal/domain/account"
	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AllowedMethods is the caller-facing view of a company's payment
// method configuration.
type AllowedMethods struct {
	CanPayNow      bool
	CanPayLater    bool
	HasBankDetails bool
	BankDetails    account.BankDetails
}

// UpdateMethodsRequest carries a partial configuration update. Blank
// detail fields leave stored values untouched.
type UpdateMethodsRequest struct {
	CanPayNow      bool
	CanPayLater    bool
	HasBankDetails bool
	BankDetails    account.BankDetails
}

// MethodService owns payment-method configuration: it is the only
// component that mutates MethodConfig records.
type MethodService struct {
	accounts account.Repository
	logger   zerolog.Logger
}

func NewMethodService(accounts account.Repository, logger zerolog.Logger) *MethodService {
	return &MethodService{
		accounts: accounts,
		logger:   logger.With().Str("component", "method_service").Logger(),
	}
}

// GetAllowedMethods reads the company's bank-transfer configuration.
// An absent record yields a zero-value result, not an error.
func (s *MethodService) GetAllowedMethods(ctx context.Context, companyID uuid.UUID) (*AllowedMethods, error) {
	acct, err := s.accounts.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	cfg, err := s.accounts.GetMethodConfig(ctx, companyID, account.MethodBankTransfer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	out := &AllowedMethods{CanPayNow: acct.Linked()}
	if cfg != nil {
		out.CanPayLater = true
		out.HasBankDetails = cfg.HasDetails
		out.BankDetails = cfg.Details
	}
	return out, nil
}

// UpdateAllowedMethods applies a merge-by-field configuration update
// and returns the configuration as re-read after the merge.
func (s *MethodService) UpdateAllowedMethods(ctx context.Context, companyID uuid.UUID, req UpdateMethodsRequest, actor uuid.UUID) (*AllowedMethods, error) {
	if !req.CanPayNow && !req.CanPayLater {
		return nil, domainErrors.ErrNoMethodSelected
	}

	if req.CanPayNow {
		acct, err := s.accounts.Get(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
		}
		if !acct.Linked() {
			return nil, domainErrors.ErrAccountNotLinked
		}
	}

	// The merge runs for every accepted request, not only pay-later
	// ones: bank details sent alongside a pay-now selection must land.
	cfg, err := s.accounts.GetMethodConfig(ctx, companyID, account.MethodBankTransfer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	if cfg == nil {
		// A record is only fabricated when the request actually
		// carries details; a details-free pay-now update writes
		// nothing.
		if req.HasBankDetails || req.BankDetails != (account.BankDetails{}) {
			cfg = account.NewMethodConfig(companyID, account.MethodBankTransfer, req.HasBankDetails, req.BankDetails)
			if err := s.accounts.CreateMethodConfig(ctx, cfg); err != nil {
				return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
			}
			s.logger.Info().Str("company_id", companyID.String()).Msg("payment method configuration created")
		}
	} else {
		cfg.HasDetails = req.HasBankDetails
		cfg.Details.Merge(req.BankDetails)
		if err := s.accounts.UpdateMethodConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
		}
	}

	return s.GetAllowedMethods(ctx, companyID)
}
