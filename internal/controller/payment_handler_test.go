package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finbridge/payments/internal/domain/account"
	"github.com/finbridge/payments/internal/domain/transaction"
	"github.com/finbridge/payments/internal/infrastructure/observability"
	"github.com/finbridge/payments/internal/provider"
	"github.com/finbridge/payments/internal/service"
	"github.com/finbridge/payments/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentRouterFixture struct {
	accounts     *testutil.MockAccountRepository
	transactions *testutil.MockTransactionRepository
	gateway      *testutil.MockGateway
	router       *chi.Mux
	companyID    uuid.UUID
}

func newPaymentRouter(t *testing.T) *paymentRouterFixture {
	t.Helper()
	f := &paymentRouterFixture{
		accounts:     testutil.NewMockAccountRepository(),
		transactions: testutil.NewMockTransactionRepository(),
		gateway:      &testutil.MockGateway{},
		companyID:    uuid.New(),
	}
	require.NoError(t, f.accounts.Create(context.Background(), testutil.NewLinkedAccount(f.companyID)))

	payments := service.NewPaymentService(f.accounts, f.transactions, f.gateway, zerolog.Nop())
	linking := service.NewLinkingService(f.accounts, f.gateway, testRedirectURI, zerolog.Nop())
	h := NewPaymentController(payments, linking, observability.NewMetrics("test", prometheus.NewRegistry()))

	f.router = chi.NewRouter()
	f.router.Post("/companies/{companyId}/payments", h.Pay)
	f.router.Get("/provider/publishable-key", h.PublishableKey)
	return f
}

func validPayBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(PayRequest{
		Amount:    "125.50",
		Currency:  "EUR",
		Reason:    "booking_fees",
		CardToken: "tok_visa",
	})
	require.NoError(t, err)
	return body
}

func (f *paymentRouterFixture) post(t *testing.T, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/companies/"+f.companyID.String()+"/payments", bytes.NewReader(body))
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPaymentController_Pay(t *testing.T) {
	f := newPaymentRouter(t)

	rec := f.post(t, validPayBody(t))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, "125.50", resp.Amount)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, "txn_stub", resp.ProviderTransactionID)
	assert.True(t, resp.Persisted)

	stored := f.transactions.All()
	require.Len(t, stored, 1)
	assert.EqualValues(t, 12550, stored[0].Amount.ValueCents)
}

func TestPaymentController_Pay_Declined(t *testing.T) {
	f := newPaymentRouter(t)
	f.gateway.ChargeFunc = func(ctx context.Context, req provider.ChargeRequest) (*provider.ChargeResult, error) {
		return nil, &provider.ChargeDeclinedError{Code: "card_declined", DeclineCode: "insufficient_funds", Message: "declined"}
	}

	rec := f.post(t, validPayBody(t))

	require.Equal(t, http.StatusPaymentRequired, rec.Code, rec.Body.String())
	var resp PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "payment_failed", resp.Code)
	assert.True(t, resp.Persisted, "declined outcome was written before responding")
	require.NotNil(t, resp.PaymentStatus)
	assert.Equal(t, "payment_failed", *resp.PaymentStatus)
}

func TestPaymentController_Pay_PersistenceFailureSurfaced(t *testing.T) {
	f := newPaymentRouter(t)
	f.transactions.UpdateFunc = func(ctx context.Context, tx *transaction.Transaction) error {
		return errors.New("connection reset")
	}

	rec := f.post(t, validPayBody(t))

	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
	var resp PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "persistence_failure", resp.Code)
	assert.False(t, resp.Persisted, "terminal write was lost")
	assert.Equal(t, "succeeded", resp.Status, "in-memory outcome still reported for out-of-band verification")
}

func TestPaymentController_Pay_InvalidAmount(t *testing.T) {
	f := newPaymentRouter(t)

	for _, amount := range []string{"0", "-5", "1.005", "abc"} {
		body, _ := json.Marshal(PayRequest{Amount: amount, Currency: "EUR", Reason: "booking_fees", CardToken: "tok_visa"})
		rec := f.post(t, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount %q", amount)
		assert.Contains(t, rec.Body.String(), "validation_error")
	}

	assert.Empty(t, f.transactions.All(), "no transaction may exist for rejected input")
}

func TestPaymentController_Pay_InvalidReason(t *testing.T) {
	f := newPaymentRouter(t)

	body, _ := json.Marshal(PayRequest{Amount: "10.00", Currency: "EUR", Reason: "tips", CardToken: "tok_visa"})
	rec := f.post(t, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.transactions.All())
}

func TestPaymentController_Pay_NotLinked(t *testing.T) {
	f := newPaymentRouter(t)
	f.accounts.GetFunc = func(ctx context.Context, companyID uuid.UUID) (*account.PaymentAccount, error) {
		return nil, nil
	}

	rec := f.post(t, validPayBody(t))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "account_not_linked")
	assert.Empty(t, f.transactions.All())
}

func TestPaymentController_PublishableKey(t *testing.T) {
	f := newPaymentRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/provider/publishable-key", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PublishableKeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pk_test_stub", resp.PublishableKey)
}
