package transaction

import "context"

// Repository is the durable transaction store. Records are appended
// and later updated in place; they are never deleted.
type Repository interface {
	// Create appends a new transaction and returns the stored record.
	Create(ctx context.Context, t *Transaction) (*Transaction, error)
	// Update persists a mutated transaction. It fails with
	// errors.ErrTransactionNotFound for an unknown identifier.
	Update(ctx context.Context, t *Transaction) error
}
