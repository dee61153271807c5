package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/logx"
)

// CheckoutHandler handles HTTP requests for quotes, deliveries and schedule
// questions.
type CheckoutHandler struct {
	usecase checkoutUsecase
	logger  logx.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(logger logx.Logger, uc checkoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, logger: logger}
}

// Quote handles POST /api/quotes.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}

	promise, err := h.usecase.Quote(r.Context(), in)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, promiseToResponse(promise))
}

// Book handles POST /api/deliveries.
func (h *CheckoutHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}

	d, err := h.usecase.Book(r.Context(), in)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(d))
}

// List handles GET /api/deliveries.
func (h *CheckoutHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	resp, err := h.usecase.Deliveries(r.Context(), limit, offset)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Get handles GET /api/deliveries/{id}.
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.usecase.Delivery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Track handles GET /api/deliveries/{id}/tracking.
func (h *CheckoutHandler) Track(w http.ResponseWriter, r *http.Request) {
	resp, err := h.usecase.Track(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Cancel handles POST /api/deliveries/{orderReference}/cancel.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	resp, err := h.usecase.Cancel(r.Context(), chi.URLParam(r, "orderReference"), req.Reason)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// AvailableVenues handles POST /api/venues/available.
func (h *CheckoutHandler) AvailableVenues(w http.ResponseWriter, r *http.Request) {
	var req wolt.AvailableVenuesRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	resp, err := h.usecase.AvailableVenues(r.Context(), req)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Readiness handles GET /api/schedule/readiness.
func (h *CheckoutHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, readinessToResponse(h.usecase.CurrentReadiness()))
}

// Dates handles GET /api/schedule/dates.
func (h *CheckoutHandler) Dates(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"dates": h.usecase.DeliveryDates()})
}

// Slots handles GET /api/schedule/slots.
func (h *CheckoutHandler) Slots(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"slots": h.usecase.TimeSlots()})
}
