package controller

import (
	"net/http"
	"time"

	"github.com/finbridge/payments/internal/infrastructure/observability"
	"github.com/finbridge/payments/internal/middleware"
	"github.com/finbridge/payments/internal/service"
)

// PaymentController serves charge submission and the provider's
// client-side key.
type PaymentController struct {
	payments *service.PaymentService
	linking  *service.LinkingService
	metrics  *observability.Metrics
}

func NewPaymentController(payments *service.PaymentService, linking *service.LinkingService, metrics *observability.Metrics) *PaymentController {
	return &PaymentController{payments: payments, linking: linking, metrics: metrics}
}

func (h *PaymentController) Pay(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid company id", Code: "invalid_id"})
		return
	}

	var req PayRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	svcReq, err := toPayRequest(req)
	if err != nil {
		writeError(w, err)
		return
	}

	actor, ok := middleware.GetActorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: "auth_required"})
		return
	}

	start := time.Now()
	res, err := h.payments.Pay(r.Context(), companyID, svcReq, actor)
	h.recordOutcome(res, err, time.Since(start))
	if err != nil {
		// When a transaction record exists the response carries its
		// terminal state and durability flag alongside the error, so
		// the caller can tell a declined card from a lost write.
		if res != nil && res.Transaction != nil {
			status, code := errorStatus(err)
			resp := FromPayResult(res)
			resp.Error = err.Error()
			resp.Code = code
			writeJSON(w, status, resp)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromPayResult(res))
}

func (h *PaymentController) recordOutcome(res *service.PayResult, err error, elapsed time.Duration) {
	outcome := "succeeded"
	if err != nil {
		outcome = "failed"
	}
	h.metrics.ChargeDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if res == nil || res.Transaction == nil {
		return
	}
	paymentStatus := ""
	if res.Transaction.PaymentStatus != nil {
		paymentStatus = string(*res.Transaction.PaymentStatus)
	}
	h.metrics.TransactionsTotal.WithLabelValues(string(res.Transaction.Status), paymentStatus).Inc()
}

func (h *PaymentController) PublishableKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PublishableKeyResponse{PublishableKey: h.linking.PublishableKey()})
}
