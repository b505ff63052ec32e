package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	domainErrors "github.com/finbridge/payments/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

// Order matters: a wrapped error chain can satisfy more than one
// sentinel, and the first match wins. Persistence failures are checked
// before provider failures so a lost terminal write is reported as
// such.
var errorMappings = []errorMapping{
	{domainErrors.ErrPersistenceFailure, http.StatusInternalServerError, "persistence_failure"},
	{domainErrors.ErrAlreadyLinked, http.StatusConflict, "already_linked"},
	{domainErrors.ErrAlreadyDeactivated, http.StatusConflict, "already_deactivated"},
	{domainErrors.ErrInvalidStateTransition, http.StatusConflict, "invalid_state_transition"},
	{domainErrors.ErrNotLinked, http.StatusUnprocessableEntity, "not_linked"},
	{domainErrors.ErrAccountNotLinked, http.StatusUnprocessableEntity, "account_not_linked"},
	{domainErrors.ErrNoMethodSelected, http.StatusBadRequest, "no_method_selected"},
	{domainErrors.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domainErrors.ErrAccountNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrTransactionNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrProviderPaymentFailed, http.StatusPaymentRequired, "payment_failed"},
	{domainErrors.ErrInvalidProviderResponse, http.StatusBadGateway, "invalid_provider_response"},
	{domainErrors.ErrProviderAuthorizationFailed, http.StatusBadGateway, "provider_authorization_failed"},
	{domainErrors.ErrProviderDeauthorizationFailed, http.StatusBadGateway, "provider_deauthorization_failed"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorStatus resolves an error to its HTTP status and machine code.
func errorStatus(err error) (int, string) {
	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, "validation_error"
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}

	var domainErr *domainErrors.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusUnprocessableEntity, domainErr.Code
	}

	return http.StatusInternalServerError, "internal_error"
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}
	if status == http.StatusInternalServerError && code == "internal_error" {
		log.Error().Err(err).Msg("unhandled error in handler")
		resp.Error = "internal server error"
	}
	writeJSON(w, status, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
