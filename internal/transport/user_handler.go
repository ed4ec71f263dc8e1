package transport

import (
	"net/http"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/middleware"
	"tech-gadget/internal/repository"
	"tech-gadget/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterUserRequest is the first-sign-in upsert payload.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// UpsertResponse mirrors the insert-result shape the frontend expects: an
// id on first sign-in, an explicit null on repeats.
type UpsertResponse struct {
	InsertedID *uuid.UUID `json:"insertedId"`
	Message    string     `json:"message,omitempty"`
}

// UserHandler handles account endpoints.
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// RegisterRoutes registers the account routes.
// Note: moderator promotion is gated on authentication only. The original
// site shipped that way, likely so the first moderator can be bootstrapped
// without an admin; tightening it would lock a fresh install out.
func (h *UserHandler) RegisterRoutes(r chi.Router, gates Gates) {
	r.Post("/users", h.Register)

	r.Group(func(r chi.Router) {
		r.Use(gates.Auth)
		r.Get("/getUser", h.List)
		r.Get("/user/admin/{email}", h.CheckAdmin)
		r.Get("/user/modaretor/{email}", h.CheckModerator)
		r.Patch("/user/modaretor/{id}", h.PromoteModerator)
	})

	r.Group(func(r chi.Router) {
		r.Use(gates.Auth, gates.Admin)
		r.Patch("/user/admin/{id}", h.PromoteAdmin)
		r.Delete("/user/{id}", h.Delete)
	})
}

// Register performs the idempotent upsert-by-email done on first sign-in.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	insertedID, err := h.userService.RegisterIfAbsent(r.Context(), req.Email, req.Name, req.PhotoURL)
	if err != nil {
		h.logger.Error("User upsert failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	resp := UpsertResponse{InsertedID: insertedID}
	if insertedID == nil {
		resp.Message = "This user is exist in the database"
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// List returns all accounts.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, users)
}

// CheckAdmin reports whether the caller is an admin. Self only: asking
// about someone else's email is forbidden.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	h.checkRole(w, r, domain.RoleAdmin, "admin")
}

// CheckModerator reports whether the caller is a moderator. Self only.
func (h *UserHandler) CheckModerator(w http.ResponseWriter, r *http.Request) {
	h.checkRole(w, r, domain.RoleModerator, "moderator")
}

func (h *UserHandler) checkRole(w http.ResponseWriter, r *http.Request, role, field string) {
	email := chi.URLParam(r, "email")

	callerEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok || callerEmail != email {
		middleware.RespondWithError(w, http.StatusForbidden, "forbidden access")
		return
	}

	has, err := h.userService.HasRole(r.Context(), email, role)
	if err != nil {
		h.logger.Error("Role check failed", zap.Error(err), zap.String("email", email))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to check role")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{field: has})
}

// PromoteAdmin grants the admin role.
func (h *UserHandler) PromoteAdmin(w http.ResponseWriter, r *http.Request) {
	h.promote(w, r, domain.RoleAdmin)
}

// PromoteModerator grants the moderator role.
func (h *UserHandler) PromoteModerator(w http.ResponseWriter, r *http.Request) {
	h.promote(w, r, domain.RoleModerator)
}

func (h *UserHandler) promote(w http.ResponseWriter, r *http.Request, role string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.Promote(r.Context(), id, role); err != nil {
		if err == repository.ErrUserNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 0})
			return
		}
		h.logger.Error("Role promotion failed", zap.Error(err), zap.String("role", role))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// Delete removes an account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if err == repository.ErrUserNotFound {
			middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"deletedCount": 0})
			return
		}
		h.logger.Error("User deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
