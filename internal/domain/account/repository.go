package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the durable store for payment accounts and
// payment-method configurations.
type Repository interface {
	// Get returns the company's payment account record regardless of its
	// active flag, or (nil, nil) when the company has none.
	Get(ctx context.Context, companyID uuid.UUID) (*PaymentAccount, error)
	// Create inserts a new payment account record.
	Create(ctx context.Context, acct *PaymentAccount) error
	// SetInactive clears the active flag on an account.
	SetInactive(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	// SetLinked restores a provider handle on an existing account and
	// reactivates it.
	SetLinked(ctx context.Context, id uuid.UUID, providerAccountID string, actor uuid.UUID) error

	// GetMethodConfig returns the configuration for one method type, or
	// (nil, nil) when the company has not configured it.
	GetMethodConfig(ctx context.Context, companyID uuid.UUID, methodType MethodType) (*MethodConfig, error)
	// CreateMethodConfig inserts a new configuration record.
	CreateMethodConfig(ctx context.Context, cfg *MethodConfig) error
	// UpdateMethodConfig persists a mutated configuration record.
	UpdateMethodConfig(ctx context.Context, cfg *MethodConfig) error
}
