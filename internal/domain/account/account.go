package account

import (
	"time"

	"github.com/finbridge/payments/internal/domain/errors"
	"github.com/google/uuid"
)

// MethodType identifies a configurable payment method.
type MethodType string

const (
	MethodBankTransfer MethodType = "bank_transfer"
	MethodCard         MethodType = "card"
)

// PaymentAccount is a company's link to the external payment provider.
// At most one active account exists per company; the linking workflow,
// not the store, enforces this.
type PaymentAccount struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	ProviderAccountID string // opaque provider handle, empty until linked
	Scope             string
	Active            bool
	CreatedBy         uuid.UUID
	CreatedAt         time.Time
	UpdatedBy         *uuid.UUID
	UpdatedAt         *time.Time
}

// NewPaymentAccount creates an active linked account. An active account
// requires both a provider handle and a scope.
func NewPaymentAccount(companyID uuid.UUID, providerAccountID, scope string, actor uuid.UUID) (*PaymentAccount, error) {
	if providerAccountID == "" {
		return nil, errors.NewValidationError("provider_account_id", "cannot be empty for an active account")
	}
	if scope == "" {
		return nil, errors.NewValidationError("scope", "cannot be empty for an active account")
	}
	return &PaymentAccount{
		ID:                uuid.New(),
		CompanyID:         companyID,
		ProviderAccountID: providerAccountID,
		Scope:             scope,
		Active:            true,
		CreatedBy:         actor,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// Linked reports whether the account is an active provider link.
func (a *PaymentAccount) Linked() bool {
	return a != nil && a.Active && a.ProviderAccountID != ""
}

// BankDetails holds optional bank-transfer fields. All fields are
// free-form strings; absence is represented by the empty string.
type BankDetails struct {
	BankName      string `json:"bank_name,omitempty"`
	AccountHolder string `json:"account_holder,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	SortCode      string `json:"sort_code,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	Swift         string `json:"swift,omitempty"`
	Address       string `json:"address,omitempty"`
}

// Merge applies incoming fields over the receiver. An empty incoming
// value never erases a stored one.
func (d *BankDetails) Merge(in BankDetails) {
	if in.BankName != "" {
		d.BankName = in.BankName
	}
	if in.AccountHolder != "" {
		d.AccountHolder = in.AccountHolder
	}
	if in.AccountNumber != "" {
		d.AccountNumber = in.AccountNumber
	}
	if in.SortCode != "" {
		d.SortCode = in.SortCode
	}
	if in.IBAN != "" {
		d.IBAN = in.IBAN
	}
	if in.Swift != "" {
		d.Swift = in.Swift
	}
	if in.Address != "" {
		d.Address = in.Address
	}
}

// MethodConfig is a company's configuration for one payment method
// type. One record exists per (company, method type) pair.
type MethodConfig struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	MethodType MethodType
	HasDetails bool
	Details    BankDetails
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewMethodConfig creates a configuration record for a company.
func NewMethodConfig(companyID uuid.UUID, methodType MethodType, hasDetails bool, details BankDetails) *MethodConfig {
	now := time.Now().UTC()
	return &MethodConfig{
		ID:         uuid.New(),
		CompanyID:  companyID,
		MethodType: methodType,
		HasDetails: hasDetails,
		Details:    details,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
