package transport

import (
	"encoding/json"
	"net/http"

	"tech-gadget/internal/middleware"
	"tech-gadget/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Gates bundles the authorization middleware the route layer stacks in
// front of protected handlers. Gates compose by ordering: Auth always
// runs first, Admin and Moderator assume it already has.
type Gates struct {
	Auth      func(http.Handler) http.Handler
	Admin     func(http.Handler) http.Handler
	Moderator func(http.Handler) http.Handler
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRoutes registers the token endpoint.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/jwt", h.IssueToken)
}

// IssueToken signs the identity object the client supplies and returns a
// 7-hour token. The identity is not verified against a session; see the
// README section on known gaps.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var identity map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		h.logger.Debug("Token request decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.IssueToken(identity)
	if err != nil {
		if err == service.ErrMissingEmail {
			middleware.RespondWithError(w, http.StatusBadRequest, "email is required")
			return
		}
		h.logger.Error("Token issuance failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{Token: token})
}
