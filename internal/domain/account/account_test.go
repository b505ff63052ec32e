package account

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentAccount_Valid(t *testing.T) {
	companyID := uuid.New()
	actor := uuid.New()

	acct, err := NewPaymentAccount(companyID, "acct_123", "read_write", actor)
	require.NoError(t, err)
	assert.Equal(t, companyID, acct.CompanyID)
	assert.Equal(t, "acct_123", acct.ProviderAccountID)
	assert.Equal(t, "read_write", acct.Scope)
	assert.True(t, acct.Active)
	assert.Equal(t, actor, acct.CreatedBy)
	assert.False(t, acct.CreatedAt.IsZero())
	assert.Nil(t, acct.UpdatedBy)
}

func TestNewPaymentAccount_EmptyHandle(t *testing.T) {
	_, err := NewPaymentAccount(uuid.New(), "", "read_write", uuid.New())
	assert.Error(t, err)
}

func TestNewPaymentAccount_EmptyScope(t *testing.T) {
	_, err := NewPaymentAccount(uuid.New(), "acct_123", "", uuid.New())
	assert.Error(t, err)
}

// --- Linked ---

func TestLinked_ActiveWithHandle(t *testing.T) {
	acct, _ := NewPaymentAccount(uuid.New(), "acct_123", "read_write", uuid.New())
	assert.True(t, acct.Linked())
}

func TestLinked_Inactive(t *testing.T) {
	acct, _ := NewPaymentAccount(uuid.New(), "acct_123", "read_write", uuid.New())
	acct.Active = false
	assert.False(t, acct.Linked())
}

func TestLinked_EmptyHandle(t *testing.T) {
	acct := &PaymentAccount{CompanyID: uuid.New(), Active: true}
	assert.False(t, acct.Linked())
}

func TestLinked_NilAccount(t *testing.T) {
	var acct *PaymentAccount
	assert.False(t, acct.Linked())
}

// --- BankDetails.Merge ---

func TestMerge_BlankNeverErases(t *testing.T) {
	stored := BankDetails{
		BankName:      "Old Bank",
		AccountHolder: "Old Holder",
		IBAN:          "GB33BUKB20201555555555",
	}

	stored.Merge(BankDetails{
		BankName:      "",
		AccountHolder: "Acme",
	})

	assert.Equal(t, "Old Bank", stored.BankName)
	assert.Equal(t, "Acme", stored.AccountHolder)
	assert.Equal(t, "GB33BUKB20201555555555", stored.IBAN)
}

func TestMerge_AllFields(t *testing.T) {
	stored := BankDetails{}
	in := BankDetails{
		BankName:      "First National",
		AccountHolder: "Acme Ltd",
		AccountNumber: "12345678",
		SortCode:      "12-34-56",
		IBAN:          "GB33BUKB20201555555555",
		Swift:         "BUKBGB22",
		Address:       "1 High Street",
	}

	stored.Merge(in)
	assert.Equal(t, in, stored)
}

func TestMerge_EmptyInputIsNoop(t *testing.T) {
	stored := BankDetails{BankName: "Old Bank", SortCode: "12-34-56"}
	before := stored

	stored.Merge(BankDetails{})
	assert.Equal(t, before, stored)
}

// --- MethodConfig ---

func TestNewMethodConfig(t *testing.T) {
	companyID := uuid.New()
	cfg := NewMethodConfig(companyID, MethodBankTransfer, true, BankDetails{BankName: "First National"})

	assert.Equal(t, companyID, cfg.CompanyID)
	assert.Equal(t, MethodBankTransfer, cfg.MethodType)
	assert.True(t, cfg.HasDetails)
	assert.Equal(t, "First National", cfg.Details.BankName)
	assert.NotEqual(t, uuid.Nil, cfg.ID)
}
