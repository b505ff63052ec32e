package transaction

import (
	"fmt"
	"time"

	"github.com/finbridge/payments/internal/domain/errors"
	"github.com/google/uuid"
)

// Status represents the local transaction status in the state machine.
type Status string

const (
	StatusInitiated Status = "initiated"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// PaymentStatus mirrors the provider-reported outcome of a charge.
type PaymentStatus string

const (
	PaymentSucceeded        PaymentStatus = "succeeded"
	PaymentFailed           PaymentStatus = "payment_failed"
	PaymentProcessing       PaymentStatus = "processing"
	PaymentAmountCapturable PaymentStatus = "amount_capturable_updated"
)

// Amount represents a monetary amount in the smallest currency unit (e.g. cents).
type Amount struct {
	ValueCents int64
	Currency   string
}

// String returns a human-readable representation of the amount.
func (a Amount) String() string {
	whole := a.ValueCents / 100
	frac := a.ValueCents % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%02d %s", whole, frac, a.Currency)
}

// Validate checks that the amount is valid.
func (a Amount) Validate() error {
	if a.ValueCents <= 0 {
		return errors.NewValidationError("amount", "must be greater than 0")
	}
	if a.Currency == "" {
		return errors.NewValidationError("currency", "cannot be empty")
	}
	if len(a.Currency) != 3 {
		return errors.NewValidationError("currency", "must be a 3-letter ISO code")
	}
	return nil
}

// Transaction is the local record of one payment attempt against a
// company's linked provider account.
type Transaction struct {
	ID                    uuid.UUID
	Amount                Amount
	Status                Status
	PaymentStatus         *PaymentStatus
	ProviderTransactionID string
	CompanyID             uuid.UUID
	PaymentAccountID      uuid.UUID
	Description           string
	NameOnCard            string
	CardNumber            string
	CreatedBy             uuid.UUID
	CreatedAt             time.Time
	UpdatedBy             *uuid.UUID
	UpdatedAt             *time.Time
}

// New creates a transaction in the Initiated state. The record must be
// durable before any provider call is made.
func New(companyID, paymentAccountID uuid.UUID, amount Amount, description, nameOnCard, cardNumber string, actor uuid.UUID) (*Transaction, error) {
	if err := amount.Validate(); err != nil {
		return nil, err
	}
	return &Transaction{
		ID:               uuid.New(),
		Amount:           amount,
		Status:           StatusInitiated,
		CompanyID:        companyID,
		PaymentAccountID: paymentAccountID,
		Description:      description,
		NameOnCard:       nameOnCard,
		CardNumber:       cardNumber,
		CreatedBy:        actor,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// CanTransitionTo checks if the transaction can move to the given status.
func (t *Transaction) CanTransitionTo(newStatus Status) bool {
	transitions := map[Status][]Status{
		StatusInitiated: {StatusSucceeded, StatusFailed},
		StatusSucceeded: {}, // Terminal state
		StatusFailed:    {}, // Terminal state
	}

	allowed, exists := transitions[t.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

func (t *Transaction) transitionTo(newStatus Status, actor uuid.UUID) error {
	if !t.CanTransitionTo(newStatus) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition from "+string(t.Status)+" to "+string(newStatus),
			errors.ErrInvalidStateTransition,
		)
	}
	t.Status = newStatus
	now := time.Now().UTC()
	t.UpdatedAt = &now
	t.UpdatedBy = &actor
	return nil
}

// MarkSucceeded records a provider-confirmed charge. The provider
// transaction id must be present.
func (t *Transaction) MarkSucceeded(providerTransactionID string, actor uuid.UUID) error {
	if providerTransactionID == "" {
		return errors.NewValidationError("provider_transaction_id", "cannot be empty on success")
	}
	if err := t.transitionTo(StatusSucceeded, actor); err != nil {
		return err
	}
	t.ProviderTransactionID = providerTransactionID
	ps := PaymentSucceeded
	t.PaymentStatus = &ps
	return nil
}

// MarkDeclined records a provider-reported payment failure.
func (t *Transaction) MarkDeclined(actor uuid.UUID) error {
	if err := t.transitionTo(StatusFailed, actor); err != nil {
		return err
	}
	ps := PaymentFailed
	t.PaymentStatus = &ps
	return nil
}

// MarkFailed records a failure where the provider never returned an
// outcome (transport error, rejected credentials). PaymentStatus stays
// absent.
func (t *Transaction) MarkFailed(actor uuid.UUID) error {
	return t.transitionTo(StatusFailed, actor)
}

// IsTerminal checks if the transaction reached a terminal state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusSucceeded || t.Status == StatusFailed
}
