package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/middleware"
	"tech-gadget/internal/repository"
	"tech-gadget/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitProductRequest is the submission payload.
type SubmitProductRequest struct {
	Name       string `json:"name" validate:"required"`
	Link       string `json:"link"`
	Tag        string `json:"tag"`
	Details    string `json:"details"`
	ImageURL   string `json:"image"`
	OwnerEmail string `json:"ownerEmail"`
}

// AcceptProductRequest names the queue entry to publish.
type AcceptProductRequest struct {
	ID string `json:"id" validate:"required"`
}

// SetTypeRequest optionally overrides the classification applied by the
// featured endpoint.
type SetTypeRequest struct {
	Type string `json:"type"`
}

// VoteRequest carries the already-computed resulting count. The server
// overwrites the stored counter with it, it does not add.
type VoteRequest struct {
	Vote     *int `json:"vote"`
	DownVote *int `json:"downVote"`
}

// UpdateProductRequest is the owner-edit payload.
type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Link     string `json:"link"`
	Tag      string `json:"tag"`
	Details  string `json:"details"`
	ImageURL string `json:"image"`
}

// ProductHandler handles the catalog and moderation queue endpoints.
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, logger: logger}
}

// RegisterRoutes registers the catalog, queue, vote and report routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router, gates Gates) {
	// Public catalog; the vote endpoints take no token, matching the site.
	r.Get("/product", h.Catalog)
	r.Get("/productCount", h.Count)
	r.Get("/products/{id}", h.Get)
	r.Get("/featured", h.Featured)
	r.Get("/trending", h.Trending)
	r.Patch("/upvote/{id}", h.UpVote)
	r.Patch("/downVote/{id}", h.DownVote)

	r.Group(func(r chi.Router) {
		r.Use(gates.Auth)
		r.Post("/addProduct", h.Submit)
		r.Patch("/report/{id}", h.Report)
		r.Get("/userProducts", h.OwnerProducts)
		r.Patch("/userProducts/{id}", h.UpdateOwned)
		r.Delete("/deleteProduct/{id}", h.Delete)
	})

	r.Group(func(r chi.Router) {
		r.Use(gates.Auth, gates.Moderator)
		r.Get("/getQueue", h.Queue)
		r.Get("/getQueue/{id}", h.QueueItem)
		r.Delete("/deleteQueue/{id}", h.Reject)
		r.Post("/acceptProduct", h.Accept)
		r.Patch("/featured/{id}", h.SetType)
		r.Get("/reported", h.Reported)
	})
}

// Submit places a product in the moderation queue.
func (h *ProductHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	owner := req.OwnerEmail
	if owner == "" {
		owner, _ = middleware.GetUserEmail(r.Context())
	}

	submission, err := h.productService.Submit(r.Context(), &domain.Submission{
		OwnerEmail: owner,
		Name:       req.Name,
		Link:       req.Link,
		Tag:        req.Tag,
		Details:    req.Details,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		h.logger.Error("Product submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, submission)
}

// Queue lists pending submissions for moderators.
func (h *ProductHandler) Queue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.productService.Queue(r.Context())
	if err != nil {
		h.logger.Error("Failed to list queue", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list queue")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, queue)
}

// QueueItem fetches one pending submission.
func (h *ProductHandler) QueueItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	submission, err := h.productService.QueueItem(r.Context(), id)
	if err != nil {
		if err == repository.ErrSubmissionNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, nil)
			return
		}
		h.logger.Error("Failed to fetch queue item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch queue item")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, submission)
}

// Reject deletes a submission without publishing it.
func (h *ProductHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	if err := h.productService.Reject(r.Context(), id); err != nil {
		if err == repository.ErrSubmissionNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"deletedCount": 0})
			return
		}
		h.logger.Error("Submission rejection failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to reject submission")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}

// Accept publishes a submission. Copy and delete happen in one
// transaction, so after a 200 the id is gone from the queue and present in
// the catalog.
func (h *ProductHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req AcceptProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	product, err := h.productService.Accept(r.Context(), id)
	if err != nil {
		if err == repository.ErrSubmissionNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, nil)
			return
		}
		h.logger.Error("Product acceptance failed", zap.Error(err), zap.String("id", req.ID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to accept product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// SetType marks a catalog product featured (or trending when the body
// says so).
func (h *ProductHandler) SetType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req SetTypeRequest
	// An empty body defaults to featured.
	_ = json.NewDecoder(r.Body).Decode(&req)
	productType := req.Type
	if productType == "" {
		productType = domain.TypeFeatured
	}
	if productType != domain.TypeFeatured && productType != domain.TypeTrending && productType != domain.TypeNone {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product type")
		return
	}

	if err := h.productService.SetType(r.Context(), id, productType); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 0})
			return
		}
		h.logger.Error("Failed to set product type", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set product type")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// Catalog returns one searchable, paginated page of published products.
func (h *ProductHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = 10
	}

	products, err := h.productService.Catalog(r.Context(), search, page, size)
	if err != nil {
		h.logger.Error("Failed to list catalog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Count returns the total catalog size for page math.
func (h *ProductHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.productService.Count(r.Context())
	if err != nil {
		h.logger.Error("Failed to count products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to count products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Get returns a single product, or null when the id is unknown.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, nil)
			return
		}
		h.logger.Error("Failed to fetch product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Featured returns the featured listings.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	h.byType(w, r, domain.TypeFeatured)
}

// Trending returns the trending listings.
func (h *ProductHandler) Trending(w http.ResponseWriter, r *http.Request) {
	h.byType(w, r, domain.TypeTrending)
}

func (h *ProductHandler) byType(w http.ResponseWriter, r *http.Request, productType string) {
	products, err := h.productService.ByType(r.Context(), productType)
	if err != nil {
		h.logger.Error("Failed to list products by type", zap.Error(err), zap.String("type", productType))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// UpVote overwrites a product's vote counter with the value the client
// computed. No token, no one-vote-per-user tracking; racing voters clobber
// each other. Behavior parity with the site, documented as a weakness.
func (h *ProductHandler) UpVote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, true)
}

// DownVote overwrites the down-vote counter the same way.
func (h *ProductHandler) DownVote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, false)
}

func (h *ProductHandler) vote(w http.ResponseWriter, r *http.Request, up bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if up {
		if req.Vote == nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "vote is required")
			return
		}
		err = h.productService.SetVotes(r.Context(), id, *req.Vote)
	} else {
		if req.DownVote == nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "downVote is required")
			return
		}
		err = h.productService.SetDownVotes(r.Context(), id, *req.DownVote)
	}

	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 0})
			return
		}
		h.logger.Error("Vote update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update vote")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// Report flags a product for moderator review.
func (h *ProductHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.Report(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 0})
			return
		}
		h.logger.Error("Product report failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to report product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// Reported lists flagged products. No automated transition follows; a
// moderator deletes or intervenes manually.
func (h *ProductHandler) Reported(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.Reported(r.Context())
	if err != nil {
		h.logger.Error("Failed to list reported products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list reported products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// OwnerProducts lists the caller's own published products. The email
// query parameter must match the token.
func (h *ProductHandler) OwnerProducts(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	callerEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok || callerEmail != email {
		middleware.RespondWithError(w, http.StatusForbidden, "forbidden access")
		return
	}

	products, err := h.productService.OwnerProducts(r.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list owner products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// UpdateOwned edits the caller's own product. Ownership is enforced in
// the update itself, so editing someone else's product reports zero
// modifications.
func (h *ProductHandler) UpdateOwned(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	callerEmail, _ := middleware.GetUserEmail(r.Context())

	err = h.productService.UpdateOwned(r.Context(), &domain.Product{
		ID:         id,
		OwnerEmail: callerEmail,
		Name:       req.Name,
		Link:       req.Link,
		Tag:        req.Tag,
		Details:    req.Details,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 0})
			return
		}
		h.logger.Error("Product update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// Delete removes the caller's own product. Ownership is enforced in the
// delete itself, so deleting someone else's product reports zero
// deletions, same as the owner-edit path.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	callerEmail, _ := middleware.GetUserEmail(r.Context())

	if err := h.productService.Delete(r.Context(), id, callerEmail); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"deletedCount": 0})
			return
		}
		h.logger.Error("Product deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
