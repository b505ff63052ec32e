package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finbridge/payments/internal/domain/account"
	"github.com/finbridge/payments/internal/infrastructure/observability"
	"github.com/finbridge/payments/internal/middleware"
	"github.com/finbridge/payments/internal/service"
	"github.com/finbridge/payments/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedirectURI = "https://app.example.com/payments/link-company-payment-account"

func newAccountRouter(accounts *testutil.MockAccountRepository, gateway *testutil.MockGateway) *chi.Mux {
	linking := service.NewLinkingService(accounts, gateway, testRedirectURI, zerolog.Nop())
	methods := service.NewMethodService(accounts, zerolog.Nop())
	h := NewAccountController(linking, methods, nil, observability.NewMetrics("test", prometheus.NewRegistry()))

	r := chi.NewRouter()
	r.Route("/companies/{companyId}", func(r chi.Router) {
		r.Get("/payment-account/link-url", h.GetLinkURL)
		r.Get("/payment-account/status", h.GetStatus)
		r.Post("/payment-account/authorize", h.Authorize)
		r.Post("/payment-account/deauthorize", h.Deauthorize)
		r.Get("/payment-methods", h.GetMethods)
		r.Put("/payment-methods", h.UpdateMethods)
	})
	return r
}

func withActor(req *http.Request, actor uuid.UUID) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.ActorIDKey, actor))
}

func TestAccountController_Authorize(t *testing.T) {
	accounts := testutil.NewMockAccountRepository()
	router := newAccountRouter(accounts, &testutil.MockGateway{})
	companyID := uuid.New()

	body, _ := json.Marshal(AuthorizeRequest{Code: "ac_123", Scope: "read_write"})
	req := httptest.NewRequest(http.MethodPost, "/companies/"+companyID.String()+"/payment-account/authorize", bytes.NewReader(body))
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp AuthorizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Linked)

	acct, err := accounts.Get(context.Background(), companyID)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.True(t, acct.Linked())
}

func TestAccountController_Authorize_MissingCode(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})

	body := []byte(`{"scope":"read_write"}`)
	req := httptest.NewRequest(http.MethodPost, "/companies/"+uuid.NewString()+"/payment-account/authorize", bytes.NewReader(body))
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestAccountController_Authorize_NoActor(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})

	body, _ := json.Marshal(AuthorizeRequest{Code: "ac_123"})
	req := httptest.NewRequest(http.MethodPost, "/companies/"+uuid.NewString()+"/payment-account/authorize", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_required")
}

func TestAccountController_Authorize_AlreadyLinkedConflict(t *testing.T) {
	accounts := testutil.NewMockAccountRepository()
	companyID := uuid.New()
	require.NoError(t, accounts.Create(context.Background(), testutil.NewLinkedAccount(companyID)))
	router := newAccountRouter(accounts, &testutil.MockGateway{})

	body, _ := json.Marshal(AuthorizeRequest{Code: "ac_123"})
	req := httptest.NewRequest(http.MethodPost, "/companies/"+companyID.String()+"/payment-account/authorize", bytes.NewReader(body))
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already_linked")
}

func TestAccountController_Deauthorize(t *testing.T) {
	accounts := testutil.NewMockAccountRepository()
	companyID := uuid.New()
	require.NoError(t, accounts.Create(context.Background(), testutil.NewLinkedAccount(companyID)))
	router := newAccountRouter(accounts, &testutil.MockGateway{})

	req := httptest.NewRequest(http.MethodPost, "/companies/"+companyID.String()+"/payment-account/deauthorize", nil)
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	acct, err := accounts.Get(context.Background(), companyID)
	require.NoError(t, err)
	assert.False(t, acct.Active)
}

func TestAccountController_Deauthorize_NotLinked(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})

	req := httptest.NewRequest(http.MethodPost, "/companies/"+uuid.NewString()+"/payment-account/deauthorize", nil)
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_linked")
}

func TestAccountController_GetStatus(t *testing.T) {
	accounts := testutil.NewMockAccountRepository()
	companyID := uuid.New()
	require.NoError(t, accounts.Create(context.Background(), testutil.NewLinkedAccount(companyID)))
	router := newAccountRouter(accounts, &testutil.MockGateway{})

	req := httptest.NewRequest(http.MethodGet, "/companies/"+companyID.String()+"/payment-account/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Linked)
}

func TestAccountController_GetStatus_Unlinked(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})

	req := httptest.NewRequest(http.MethodGet, "/companies/"+uuid.NewString()+"/payment-account/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Linked)
}

func TestAccountController_GetLinkURL(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})
	companyID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/companies/"+companyID.String()+"/payment-account/link-url", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LinkURLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.URL, companyID.String())
}

func TestAccountController_InvalidCompanyID(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})

	req := httptest.NewRequest(http.MethodGet, "/companies/not-a-uuid/payment-account/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_id")
}

func TestAccountController_UpdateMethods(t *testing.T) {
	accounts := testutil.NewMockAccountRepository()
	router := newAccountRouter(accounts, &testutil.MockGateway{})
	companyID := uuid.New()

	body, _ := json.Marshal(UpdateMethodsRequest{
		CanPayLater:    true,
		HasBankDetails: true,
		BankDetails:    account.BankDetails{BankName: "First National", IBAN: "GB33BUKB20201555555555"},
	})
	req := httptest.NewRequest(http.MethodPut, "/companies/"+companyID.String()+"/payment-methods", bytes.NewReader(body))
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp MethodsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.CanPayLater)
	assert.False(t, resp.CanPayNow)
	require.NotNil(t, resp.BankDetails)
	assert.Equal(t, "First National", resp.BankDetails.BankName)
}

func TestAccountController_UpdateMethods_NoMethodSelected(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})

	body, _ := json.Marshal(UpdateMethodsRequest{})
	req := httptest.NewRequest(http.MethodPut, "/companies/"+uuid.NewString()+"/payment-methods", bytes.NewReader(body))
	req = withActor(req, uuid.New())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no_method_selected")
}

func TestAccountController_GetMethods_Empty(t *testing.T) {
	router := newAccountRouter(testutil.NewMockAccountRepository(), &testutil.MockGateway{})

	req := httptest.NewRequest(http.MethodGet, "/companies/"+uuid.NewString()+"/payment-methods", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MethodsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.CanPayNow)
	assert.False(t, resp.CanPayLater)
	assert.Nil(t, resp.BankDetails)
}
