package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"tech-gadget/internal/middleware"
	"tech-gadget/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateIntentRequest carries the charge amount in major units.
type CreateIntentRequest struct {
	Money float64 `json:"money" validate:"required,gt=0"`
}

// CreateIntentResponse returns the processor's client secret unmodified.
type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentHandler handles the payment bridge endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, logger: logger}
}

// RegisterRoutes registers the payment routes.
func (h *PaymentHandler) RegisterRoutes(r chi.Router, gates Gates) {
	r.Post("/create-payment-intent", h.CreateIntent)

	r.Group(func(r chi.Router) {
		r.Use(gates.Auth)
		r.Post("/payments", h.Record)
		r.Get("/verified", h.List)
	})
}

// CreateIntent asks the processor for a charge intent. {money: 20} becomes
// 2000 minor units on the wire.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clientSecret, err := h.paymentService.CreateIntent(r.Context(), req.Money)
	if err != nil {
		if err == service.ErrInvalidAmount {
			middleware.RespondWithError(w, http.StatusBadRequest, "amount must be positive")
			return
		}
		h.logger.Error("Payment intent creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to create payment intent")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CreateIntentResponse{ClientSecret: clientSecret})
}

// Record appends the client-reported payment to the ledger. The charge is
// not verified with the processor first; known gap, see README.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 || !json.Valid(body) {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, _ := middleware.GetUserEmail(r.Context())

	record, err := h.paymentService.Record(r.Context(), email, body)
	if err != nil {
		h.logger.Error("Payment record failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, record)
}

// List returns ledger rows, optionally filtered by the email query
// parameter.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	payments, err := h.paymentService.List(r.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list payments", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, payments)
}
