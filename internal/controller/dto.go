package controller

import (
	"time"

	"github.com/finbridge/payments/internal/domain/account"
	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/finbridge/payments/internal/service"
	"github.com/shopspring/decimal"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (string amounts, validation
// tags). Controllers convert them to service inputs before calling
// business logic.

// AuthorizeRequest carries the OAuth callback payload.
type AuthorizeRequest struct {
	Code  string `json:"code" validate:"required"`
	Scope string `json:"scope"`
}

// UpdateMethodsRequest holds the desired payment-method configuration.
type UpdateMethodsRequest struct {
	CanPayNow      bool                `json:"can_pay_now"`
	CanPayLater    bool                `json:"can_pay_later"`
	HasBankDetails bool                `json:"has_bank_details"`
	BankDetails    account.BankDetails `json:"bank_details"`
}

// PayRequest holds the input for a single charge. Amount is a decimal
// string ("10.50"); floats are rejected at the type level so a client
// can never lose cents to binary rounding.
type PayRequest struct {
	Amount     string `json:"amount" validate:"required"`
	Currency   string `json:"currency" validate:"required,len=3"`
	Reason     string `json:"reason" validate:"required,oneof=booking_fees booking_deposit cancellation_fees"`
	CardToken  string `json:"card_token" validate:"required"`
	NameOnCard string `json:"name_on_card"`
	CardNumber string `json:"card_number"`
}

// parseAmountCents converts a decimal amount string to integer cents.
// Sub-cent precision is rejected rather than rounded.
func parseAmountCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, domainErrors.NewValidationError("amount", "not a decimal number")
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, domainErrors.NewValidationError("amount", "more than two decimal places")
	}
	if !cents.IsPositive() {
		return 0, domainErrors.NewValidationError("amount", "must be greater than zero")
	}
	return cents.IntPart(), nil
}

// --- Response DTOs ---

// LinkURLResponse carries the provider OAuth redirect URL.
type LinkURLResponse struct {
	URL string `json:"url"`
}

// AuthorizeResponse reports whether this call created the link. False
// means another authorization won the race and its link was kept.
type AuthorizeResponse struct {
	Linked bool `json:"linked"`
}

// StatusResponse reports the current link status.
type StatusResponse struct {
	Linked bool `json:"linked"`
}

// MethodsResponse lists the payment methods a company may use.
type MethodsResponse struct {
	CanPayNow      bool                 `json:"can_pay_now"`
	CanPayLater    bool                 `json:"can_pay_later"`
	HasBankDetails bool                 `json:"has_bank_details"`
	BankDetails    *account.BankDetails `json:"bank_details,omitempty"`
}

// PaymentResponse reports the outcome of a charge. Persisted=false
// means the terminal state shown here could not be confirmed durable
// and must be verified out of band.
type PaymentResponse struct {
	TransactionID         string     `json:"transaction_id"`
	Status                string     `json:"status"`
	PaymentStatus         *string    `json:"payment_status,omitempty"`
	ProviderTransactionID string     `json:"provider_transaction_id,omitempty"`
	Amount                string     `json:"amount"`
	Currency              string     `json:"currency"`
	Description           string     `json:"description"`
	Persisted             bool       `json:"persisted"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty"`
	Error                 string     `json:"error,omitempty"`
	Code                  string     `json:"code,omitempty"`
}

// PublishableKeyResponse carries the provider's client-side key.
type PublishableKeyResponse struct {
	PublishableKey string `json:"publishable_key"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Conversion helpers ---

// FromAllowedMethods converts service output to an API response.
func FromAllowedMethods(m *service.AllowedMethods) *MethodsResponse {
	resp := &MethodsResponse{
		CanPayNow:      m.CanPayNow,
		CanPayLater:    m.CanPayLater,
		HasBankDetails: m.HasBankDetails,
	}
	if m.CanPayLater {
		details := m.BankDetails
		resp.BankDetails = &details
	}
	return resp
}

// FromPayResult converts a charge outcome to an API response.
func FromPayResult(res *service.PayResult) *PaymentResponse {
	t := res.Transaction
	resp := &PaymentResponse{
		TransactionID:         t.ID.String(),
		Status:                string(t.Status),
		ProviderTransactionID: t.ProviderTransactionID,
		Amount:                centsToAmount(t.Amount.ValueCents),
		Currency:              t.Amount.Currency,
		Description:           t.Description,
		Persisted:             res.Persisted,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
	if t.PaymentStatus != nil {
		ps := string(*t.PaymentStatus)
		resp.PaymentStatus = &ps
	}
	return resp
}

// centsToAmount renders integer cents as a decimal string.
func centsToAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// toPayRequest converts the HTTP DTO to the service input.
func toPayRequest(req PayRequest) (service.PayRequest, error) {
	cents, err := parseAmountCents(req.Amount)
	if err != nil {
		return service.PayRequest{}, err
	}
	return service.PayRequest{
		SourceCardToken: req.CardToken,
		AmountCents:     cents,
		Currency:        req.Currency,
		Reason:          service.PayReason(req.Reason),
		NameOnCard:      req.NameOnCard,
		CardNumber:      req.CardNumber,
	}, nil
}
