package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbridge/payments/internal/domain/account"
	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/domain/transaction"
	"github.com/finbridge/payments/internal/provider"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PayReason classifies what a charge is for. It becomes part of the
// transaction description.
type PayReason string

const (
	ReasonBookingFees      PayReason = "booking_fees"
	ReasonBookingDeposit   PayReason = "booking_deposit"
	ReasonCancellationFees PayReason = "cancellation_fees"
)

func (r PayReason) Validate() error {
	switch r {
	case ReasonBookingFees, ReasonBookingDeposit, ReasonCancellationFees:
		return nil
	default:
		return domainErrors.NewValidationError("reason", "unknown payment reason")
	}
}

// PayRequest is the input for a single charge attempt.
type PayRequest struct {
	SourceCardToken string
	AmountCents     int64
	Currency        string
	Reason          PayReason
	NameOnCard      string
	CardNumber      string // masked reference, never a PAN
}

// PayResult reports both outcomes of a charge attempt separately: the
// terminal state the transaction reached, and whether that state was
// confirmed durable. Persisted=false means "outcome unknown, verify
// out of band", not "payment failed".
type PayResult struct {
	Transaction *transaction.Transaction
	Persisted   bool
}

// PaymentService drives a payment through creation, provider
// submission, and reconciliation. It is the only component that
// mutates Transaction records.
type PaymentService struct {
	accounts     account.Repository
	transactions transaction.Repository
	gateway      provider.Gateway
	logger       zerolog.Logger
}

func NewPaymentService(accounts account.Repository, transactions transaction.Repository, gateway provider.Gateway, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		accounts:     accounts,
		transactions: transactions,
		gateway:      gateway,
		logger:       logger.With().Str("component", "payment_service").Logger(),
	}
}

// Pay executes one charge. The transaction record is durable in state
// Initiated before any provider call; afterwards exactly one terminal
// update is written. When that update cannot be persisted the returned
// result carries Persisted=false alongside the persistence error.
func (s *PaymentService) Pay(ctx context.Context, companyID uuid.UUID, req PayRequest, actor uuid.UUID) (*PayResult, error) {
	if err := req.Reason.Validate(); err != nil {
		return nil, err
	}

	acct, err := s.accounts.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}
	if !acct.Linked() {
		return nil, domainErrors.ErrAccountNotLinked
	}

	tx, err := transaction.New(
		companyID,
		acct.ID,
		transaction.Amount{ValueCents: req.AmountCents, Currency: req.Currency},
		fmt.Sprintf("%s-%s", acct.ID, req.Reason),
		req.NameOnCard,
		req.CardNumber,
		actor,
	)
	if err != nil {
		return nil, err
	}

	// The record must exist durably before the provider sees the charge.
	// A creation failure aborts: no provider call without a trace.
	tx, err = s.transactions.Create(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	res, chargeErr := s.gateway.Charge(ctx, provider.ChargeRequest{
		ProviderAccountID: acct.ProviderAccountID,
		SourceCardToken:   req.SourceCardToken,
		AmountCents:       req.AmountCents,
		Currency:          req.Currency,
		Description:       tx.Description,
		CorrelationID:     tx.ID.String(),
	})

	if chargeErr != nil {
		return s.reconcileError(ctx, tx, chargeErr, actor)
	}
	return s.reconcileResult(ctx, tx, res, actor)
}

// reconcileError handles a provider call that raised an error. The
// failed status is written best-effort before the provider failure
// propagates; a persistence failure during that write is surfaced
// instead, distinctly, so callers can tell "provider said no" apart
// from "we don't know what happened".
func (s *PaymentService) reconcileError(ctx context.Context, tx *transaction.Transaction, chargeErr error, actor uuid.UUID) (*PayResult, error) {
	var declined *provider.ChargeDeclinedError
	if errors.As(chargeErr, &declined) {
		if err := tx.MarkDeclined(actor); err != nil {
			return nil, err
		}
	} else {
		if err := tx.MarkFailed(actor); err != nil {
			return nil, err
		}
	}

	s.logger.Warn().Err(chargeErr).
		Str("transaction_id", tx.ID.String()).
		Msg("provider charge failed")

	if err := s.transactions.Update(ctx, tx); err != nil {
		s.logger.Error().Err(err).
			Str("transaction_id", tx.ID.String()).
			Msg("failed to persist terminal status after provider failure")
		return &PayResult{Transaction: tx, Persisted: false},
			fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	if !errors.Is(chargeErr, domainErrors.ErrProviderPaymentFailed) {
		chargeErr = fmt.Errorf("%w: %w", domainErrors.ErrProviderPaymentFailed, chargeErr)
	}
	return &PayResult{Transaction: tx, Persisted: true}, chargeErr
}

// reconcileResult maps a provider-returned outcome onto the local
// transaction. Anything that is not an unambiguous success is treated
// as failure.
func (s *PaymentService) reconcileResult(ctx context.Context, tx *transaction.Transaction, res *provider.ChargeResult, actor uuid.UUID) (*PayResult, error) {
	succeeded := res != nil && res.Status == transaction.PaymentSucceeded && res.TransactionID != ""

	if succeeded {
		if err := tx.MarkSucceeded(res.TransactionID, actor); err != nil {
			return nil, err
		}
	} else {
		if err := tx.MarkDeclined(actor); err != nil {
			return nil, err
		}
		status := "absent"
		if res != nil {
			status = string(res.Status)
		}
		s.logger.Warn().
			Str("transaction_id", tx.ID.String()).
			Str("provider_status", status).
			Msg("provider outcome not a success, recording failure")
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		s.logger.Error().Err(err).
			Str("transaction_id", tx.ID.String()).
			Msg("failed to persist terminal status")
		return &PayResult{Transaction: tx, Persisted: false},
			fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	if !succeeded {
		return &PayResult{Transaction: tx, Persisted: true},
			domainErrors.NewDomainError("provider_payment_failed", "provider did not confirm the charge", domainErrors.ErrProviderPaymentFailed)
	}

	s.logger.Info().
		Str("transaction_id", tx.ID.String()).
		Str("provider_transaction_id", tx.ProviderTransactionID).
		Str("amount", tx.Amount.String()).
		Msg("payment succeeded")
	return &PayResult{Transaction: tx, Persisted: true}, nil
}
