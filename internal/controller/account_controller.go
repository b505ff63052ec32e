package controller

import (
	"net/http"

	"github.com/finbridge/payments/internal/infrastructure/observability"
	"github.com/finbridge/payments/internal/infrastructure/redis"
	"github.com/finbridge/payments/internal/middleware"
	"github.com/finbridge/payments/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AccountController serves the payment-account surface of a company:
// provider linking and payment-method configuration.
type AccountController struct {
	linking     *service.LinkingService
	methods     *service.MethodService
	statusCache *redis.LinkStatusCache
	metrics     *observability.Metrics
}

func NewAccountController(linking *service.LinkingService, methods *service.MethodService, statusCache *redis.LinkStatusCache, metrics *observability.Metrics) *AccountController {
	return &AccountController{
		linking:     linking,
		methods:     methods,
		statusCache: statusCache,
		metrics:     metrics,
	}
}

func companyIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "companyId"))
	return id, err == nil
}

func (h *AccountController) GetLinkURL(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid company id", Code: "invalid_id"})
		return
	}

	url, err := h.linking.GetRedirectURL(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LinkURLResponse{URL: url})
}

func (h *AccountController) Authorize(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid company id", Code: "invalid_id"})
		return
	}

	var req AuthorizeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor, ok := middleware.GetActorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: "auth_required"})
		return
	}

	linked, err := h.linking.Authorize(r.Context(), companyID, req.Code, req.Scope, actor)
	if err != nil {
		h.metrics.LinkOperationsTotal.WithLabelValues("authorize", "failure").Inc()
		writeError(w, err)
		return
	}

	h.metrics.LinkOperationsTotal.WithLabelValues("authorize", "success").Inc()
	h.statusCache.Invalidate(r.Context(), companyID)
	writeJSON(w, http.StatusOK, AuthorizeResponse{Linked: linked})
}

func (h *AccountController) Deauthorize(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid company id", Code: "invalid_id"})
		return
	}

	actor, ok := middleware.GetActorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: "auth_required"})
		return
	}

	if err := h.linking.Deauthorize(r.Context(), companyID, actor); err != nil {
		h.metrics.LinkOperationsTotal.WithLabelValues("deauthorize", "failure").Inc()
		writeError(w, err)
		return
	}

	h.metrics.LinkOperationsTotal.WithLabelValues("deauthorize", "success").Inc()
	h.statusCache.Invalidate(r.Context(), companyID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountController) GetStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid company id", Code: "invalid_id"})
		return
	}

	if linked, hit := h.statusCache.Get(r.Context(), companyID); hit {
		writeJSON(w, http.StatusOK, StatusResponse{Linked: linked})
		return
	}

	linked, err := h.linking.GetStatus(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.statusCache.Set(r.Context(), companyID, linked)
	writeJSON(w, http.StatusOK, StatusResponse{Linked: linked})
}

func (h *AccountController) GetMethods(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid company id", Code: "invalid_id"})
		return
	}

	methods, err := h.methods.GetAllowedMethods(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromAllowedMethods(methods))
}

func (h *AccountController) UpdateMethods(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid company id", Code: "invalid_id"})
		return
	}

	var req UpdateMethodsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor, ok := middleware.GetActorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: "auth_required"})
		return
	}

	methods, err := h.methods.UpdateAllowedMethods(r.Context(), companyID, service.UpdateMethodsRequest{
		CanPayNow:      req.CanPayNow,
		CanPayLater:    req.CanPayLater,
		HasBankDetails: req.HasBankDetails,
		BankDetails:    req.BankDetails,
	}, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromAllowedMethods(methods))
}
