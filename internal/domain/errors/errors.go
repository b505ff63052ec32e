package errors

import (
	"errors"
	"fmt"
)

var (
	// Account linking errors
	ErrAlreadyLinked      = errors.New("company already has a linked provider account")
	ErrNotLinked          = errors.New("company does not have a linked provider account")
	ErrAccountNotLinked   = errors.New("operation requires an active linked provider account")
	ErrAlreadyDeactivated = errors.New("provider account is already deactivated")
	ErrAccountNotFound    = errors.New("payment account not found")

	// Provider errors
	ErrInvalidProviderResponse       = errors.New("provider returned an incomplete authorization result")
	ErrProviderAuthorizationFailed   = errors.New("provider authorization failed")
	ErrProviderDeauthorizationFailed = errors.New("provider deauthorization failed")
	ErrProviderPaymentFailed         = errors.New("provider payment failed")

	// Payment method errors
	ErrNoMethodSelected = errors.New("at least one payment method must be selected")

	// Transaction errors
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Persistence errors
	ErrPersistenceFailure = errors.New("persistence failure")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
