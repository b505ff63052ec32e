package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/finbridge/payments/internal/domain/account"
	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository implements account.Repository using PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// scanAccount scans a payment account from any source implementing the
// scanner interface.
func (r *AccountRepository) scanAccount(s scanner) (*account.PaymentAccount, error) {
	a := &account.PaymentAccount{}
	err := s.Scan(&a.ID, &a.CompanyID, &a.ProviderAccountID, &a.Scope, &a.Active,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedBy, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment account: %w", err)
	}
	return a, nil
}

// Get returns the company's most recent account record regardless of
// its active flag.
func (r *AccountRepository) Get(ctx context.Context, companyID uuid.UUID) (*account.PaymentAccount, error) {
	return r.scanAccount(r.db(ctx).QueryRow(ctx,
		`SELECT id, company_id, provider_account_id, scope, active, created_by, created_at, updated_by, updated_at
		 FROM payment_accounts WHERE company_id = $1
		 ORDER BY created_at DESC LIMIT 1`, companyID))
}

// Create inserts a new payment account.
func (r *AccountRepository) Create(ctx context.Context, a *account.PaymentAccount) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO payment_accounts (id, company_id, provider_account_id, scope, active, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.CompanyID, a.ProviderAccountID, a.Scope, a.Active, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment account: %w", err)
	}
	return nil
}

// SetInactive clears the active flag.
func (r *AccountRepository) SetInactive(ctx context.Context, id, actor uuid.UUID) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE payment_accounts SET active = FALSE, updated_by = $1, updated_at = $2 WHERE id = $3`,
		actor, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("deactivate payment account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAccountNotFound
	}
	return nil
}

// SetLinked restores a provider handle on an existing account and
// reactivates it.
func (r *AccountRepository) SetLinked(ctx context.Context, id uuid.UUID, providerAccountID string, actor uuid.UUID) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE payment_accounts SET provider_account_id = $1, active = TRUE, updated_by = $2, updated_at = $3 WHERE id = $4`,
		providerAccountID, actor, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("link payment account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAccountNotFound
	}
	return nil
}

// GetMethodConfig returns the configuration for one method type.
func (r *AccountRepository) GetMethodConfig(ctx context.Context, companyID uuid.UUID, methodType account.MethodType) (*account.MethodConfig, error) {
	cfg := &account.MethodConfig{}
	var detailsJSON []byte
	err := r.db(ctx).QueryRow(ctx,
		`SELECT id, company_id, method_type, has_details, details, created_at, updated_at
		 FROM payment_method_configs WHERE company_id = $1 AND method_type = $2`,
		companyID, string(methodType),
	).Scan(&cfg.ID, &cfg.CompanyID, &cfg.MethodType, &cfg.HasDetails, &detailsJSON, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get method config: %w", err)
	}

	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &cfg.Details); err != nil {
			return nil, fmt.Errorf("decode method config details: %w", err)
		}
	}
	return cfg, nil
}

// CreateMethodConfig inserts a new configuration record.
func (r *AccountRepository) CreateMethodConfig(ctx context.Context, cfg *account.MethodConfig) error {
	detailsJSON, err := json.Marshal(cfg.Details)
	if err != nil {
		return fmt.Errorf("encode method config details: %w", err)
	}
	_, err = r.db(ctx).Exec(ctx,
		`INSERT INTO payment_method_configs (id, company_id, method_type, has_details, details, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		cfg.ID, cfg.CompanyID, string(cfg.MethodType), cfg.HasDetails, detailsJSON, cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert method config: %w", err)
	}
	return nil
}

// UpdateMethodConfig persists a mutated configuration record.
func (r *AccountRepository) UpdateMethodConfig(ctx context.Context, cfg *account.MethodConfig) error {
	detailsJSON, err := json.Marshal(cfg.Details)
	if err != nil {
		return fmt.Errorf("encode method config details: %w", err)
	}
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE payment_method_configs SET has_details = $1, details = $2, updated_at = $3 WHERE id = $4`,
		cfg.HasDetails, detailsJSON, time.Now().UTC(), cfg.ID,
	)
	if err != nil {
		return fmt.Errorf("update method config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAccountNotFound
	}
	return nil
}
