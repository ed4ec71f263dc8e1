package transport

import (
	"net/http"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/middleware"
	"tech-gadget/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReviewRequest is the review payload. Reviews are immutable once
// posted.
type CreateReviewRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	Content      string `json:"content" validate:"required"`
	ReviewerName string `json:"reviewerName"`
	Rating       int    `json:"rating"`
}

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, logger: logger}
}

// RegisterRoutes registers the review routes. Reading is public, posting
// needs a token.
func (h *ReviewHandler) RegisterRoutes(r chi.Router, gates Gates) {
	r.Get("/reviewItem/{id}", h.ListByProduct)

	r.Group(func(r chi.Router) {
		r.Use(gates.Auth)
		r.Post("/review", h.Create)
	})
}

// Create posts a review under the caller's identity.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	email, _ := middleware.GetUserEmail(r.Context())

	review, err := h.reviewService.Post(r.Context(), &domain.Review{
		ProductID:     productID,
		ReviewerEmail: email,
		ReviewerName:  req.ReviewerName,
		Content:       req.Content,
		Rating:        req.Rating,
	})
	if err != nil {
		h.logger.Error("Review creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create review")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, review)
}

// ListByProduct returns all reviews for a product.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	reviews, err := h.reviewService.ListByProduct(r.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to list reviews", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}
