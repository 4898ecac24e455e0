package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/app/checkout"
	"github.com/benedict11572/kienyeji/internal/domain"
)

type CheckoutHandler struct {
	service checkout.CheckoutService
	logger  *zap.Logger
}

func NewCheckoutHandler(s checkout.CheckoutService, l *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: s, logger: l}
}

func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkout.StartCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for StartCheckout", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.StartCheckout(r.Context(), &req)
	if err != nil {
		h.logger.Error("Error starting checkout", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	checkoutID := chi.URLParam(r, "checkoutID")

	res, err := h.service.GetCheckout(r.Context(), checkoutID)
	if err != nil {
		if errors.Is(err, checkout.ErrCheckoutNotFound) {
			http.Error(w, "Checkout session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting checkout session", zap.String("checkout_id", checkoutID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// AbandonCheckout backs the return-to-catalog action: it destroys the
// session server-side so nothing about the order intent lingers.
func (h *CheckoutHandler) AbandonCheckout(w http.ResponseWriter, r *http.Request) {
	checkoutID := chi.URLParam(r, "checkoutID")

	if err := h.service.AbandonCheckout(r.Context(), checkoutID); err != nil {
		if errors.Is(err, checkout.ErrCheckoutNotFound) {
			http.Error(w, "Checkout session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error abandoning checkout session", zap.String("checkout_id", checkoutID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubmitPayment drives one validate-and-initiate cycle of the payment
// workflow. Validation failures and gateway failures are not HTTP errors:
// they come back as workflow state for the payment screen to render.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	checkoutID := chi.URLParam(r, "checkoutID")

	var req checkout.SubmitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for SubmitPayment", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.SubmitPayment(r.Context(), checkoutID, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCheckoutNotFound):
			http.Error(w, "Checkout session not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNoProduct):
			http.Error(w, "No product data available for this checkout", http.StatusConflict)
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			http.Error(w, "A payment submission is already in progress", http.StatusConflict)
		default:
			h.logger.Error("Error submitting payment", zap.String("checkout_id", checkoutID), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
