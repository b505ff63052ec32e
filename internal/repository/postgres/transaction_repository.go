package postgres

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/domain/transaction"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements transaction.Repository using
// PostgreSQL. Records are appended and updated in place, never deleted.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// scanTransaction scans a transaction from any source implementing the
// scanner interface.
func (r *TransactionRepository) scanTransaction(s scanner) (*transaction.Transaction, error) {
	t := &transaction.Transaction{}
	var (
		amountStr     string
		status        string
		paymentStatus *string
	)
	err := s.Scan(&t.ID, &amountStr, &t.Amount.Currency, &status, &paymentStatus,
		&t.ProviderTransactionID, &t.CompanyID, &t.PaymentAccountID, &t.Description,
		&t.NameOnCard, &t.CardNumber, &t.CreatedBy, &t.CreatedAt, &t.UpdatedBy, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	cents, err := numericStringToCents(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	t.Amount.ValueCents = cents
	t.Status = transaction.Status(status)
	if paymentStatus != nil {
		ps := transaction.PaymentStatus(*paymentStatus)
		t.PaymentStatus = &ps
	}
	return t, nil
}

// Create inserts a new transaction and returns the stored row.
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	var paymentStatus *string
	if t.PaymentStatus != nil {
		s := string(*t.PaymentStatus)
		paymentStatus = &s
	}
	return r.scanTransaction(r.db(ctx).QueryRow(ctx,
		`INSERT INTO transactions (id, amount, currency, status, payment_status, provider_transaction_id,
		                           company_id, payment_account_id, description, name_on_card, card_number,
		                           created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, amount, currency, status, payment_status, provider_transaction_id,
		           company_id, payment_account_id, description, name_on_card, card_number,
		           created_by, created_at, updated_by, updated_at`,
		t.ID, centsToNumericString(t.Amount.ValueCents), t.Amount.Currency, string(t.Status), paymentStatus,
		t.ProviderTransactionID, t.CompanyID, t.PaymentAccountID, t.Description, t.NameOnCard, t.CardNumber,
		t.CreatedBy, t.CreatedAt,
	))
}

// Update persists a mutated transaction. Unknown identifiers fail with
// the not-found sentinel.
func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	var paymentStatus *string
	if t.PaymentStatus != nil {
		s := string(*t.PaymentStatus)
		paymentStatus = &s
	}
	updatedAt := t.UpdatedAt
	if updatedAt == nil {
		now := time.Now().UTC()
		updatedAt = &now
	}

	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE transactions
		 SET status = $1, payment_status = $2, provider_transaction_id = $3, updated_by = $4, updated_at = $5
		 WHERE id = $6`,
		string(t.Status), paymentStatus, t.ProviderTransactionID, t.UpdatedBy, updatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTransactionNotFound
	}
	return nil
}
