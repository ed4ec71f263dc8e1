package transport

import (
	"net/http"
	"time"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/middleware"
	"tech-gadget/internal/repository"
	"tech-gadget/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateCouponRequest is the coupon edit payload.
type UpdateCouponRequest struct {
	Code        string    `json:"code" validate:"required"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// CouponHandler handles coupon endpoints.
type CouponHandler struct {
	couponService service.CouponService
	logger        *zap.Logger
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(couponService service.CouponService, logger *zap.Logger) *CouponHandler {
	return &CouponHandler{couponService: couponService, logger: logger}
}

// RegisterRoutes registers the coupon routes. The single-coupon read is
// public; list and edit require a token. Editing carries no role
// restriction, matching the observed behavior of the site.
func (h *CouponHandler) RegisterRoutes(r chi.Router, gates Gates) {
	r.Get("/coupon/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(gates.Auth)
		r.Get("/coupons", h.List)
		r.Patch("/updateCoupon/{id}", h.Update)
	})
}

// List returns all coupons.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list coupons", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list coupons")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, coupons)
}

// Get returns one coupon, or null when unknown.
func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}

	coupon, err := h.couponService.Get(r.Context(), id)
	if err != nil {
		if err == repository.ErrCouponNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, nil)
			return
		}
		h.logger.Error("Failed to fetch coupon", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch coupon")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, coupon)
}

// Update edits a coupon in place.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}

	var req UpdateCouponRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.couponService.Update(r.Context(), &domain.Coupon{
		ID:          id,
		Code:        req.Code,
		Amount:      req.Amount,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		if err == repository.ErrCouponNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 0})
			return
		}
		h.logger.Error("Coupon update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update coupon")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}
