package testutil

import (
	"time"

	"github.com/finbridge/payments/internal/domain/account"
	"github.com/google/uuid"
)

func NewLinkedAccount(companyID uuid.UUID) *account.PaymentAccount {
	return &account.PaymentAccount{
		ID:                uuid.New(),
		CompanyID:         companyID,
		ProviderAccountID: "acct_test_" + uuid.New().String()[:8],
		Scope:             "read_write",
		Active:            true,
		CreatedBy:         uuid.New(),
		CreatedAt:         time.Now().UTC(),
	}
}

func NewDeactivatedAccount(companyID uuid.UUID) *account.PaymentAccount {
	acct := NewLinkedAccount(companyID)
	acct.Active = false
	return acct
}
