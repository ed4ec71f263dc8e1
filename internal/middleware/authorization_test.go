package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tech-gadget/internal/domain"

	"go.uber.org/zap"
)

// mapRoleSource resolves roles from a fixed map, like the store would.
type mapRoleSource struct {
	roles map[string]string
}

func (m *mapRoleSource) RoleByEmail(ctx context.Context, email string) (string, error) {
	role, ok := m.roles[email]
	if !ok {
		return "", errors.New("user not found")
	}
	return role, nil
}

func requestWithEmail(email string) *http.Request {
	req := httptest.NewRequest("GET", "/test", nil)
	if email == "" {
		return req
	}
	ctx := context.WithValue(req.Context(), UserEmailKey, email)
	return req.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	roles := &mapRoleSource{roles: map[string]string{
		"admin@x.com": domain.RoleAdmin,
		"mod@x.com":   domain.RoleModerator,
		"user@x.com":  domain.RoleUser,
	}}

	handler := RequireAdmin(roles, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name  string
		email string
		want  int
	}{
		{"admin passes", "admin@x.com", http.StatusOK},
		{"moderator is forbidden", "mod@x.com", http.StatusForbidden},
		{"plain user is forbidden", "user@x.com", http.StatusForbidden},
		{"unknown user is forbidden", "ghost@x.com", http.StatusForbidden},
		{"missing email in context is forbidden", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, requestWithEmail(tt.email))
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRequireModerator(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	roles := &mapRoleSource{roles: map[string]string{
		"admin@x.com": domain.RoleAdmin,
		"mod@x.com":   domain.RoleModerator,
	}}

	handler := RequireModerator(roles, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Gates check for the exact role: an admin is not implicitly a
	// moderator on this site.
	tests := []struct {
		name  string
		email string
		want  int
	}{
		{"moderator passes", "mod@x.com", http.StatusOK},
		{"admin is forbidden", "admin@x.com", http.StatusForbidden},
		{"missing email is forbidden", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, requestWithEmail(tt.email))
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
