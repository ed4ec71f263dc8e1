package transport

import (
	"context"
	"net/http"
	"testing"
	"time"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeUserService struct {
	users map[string]*domain.User
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: map[string]*domain.User{}}
}

func (s *fakeUserService) add(email, role string) uuid.UUID {
	id := uuid.New()
	s.users[email] = &domain.User{ID: id, Email: email, Role: role, CreatedAt: time.Now()}
	return id
}

func (s *fakeUserService) RegisterIfAbsent(ctx context.Context, email, name, photoURL string) (*uuid.UUID, error) {
	if _, ok := s.users[email]; ok {
		return nil, nil
	}
	user := &domain.User{ID: uuid.New(), Email: email, Name: name, PhotoURL: photoURL, Role: domain.RoleUser}
	s.users[email] = user
	return &user.ID, nil
}

func (s *fakeUserService) List(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *fakeUserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	if u, ok := s.users[email]; ok {
		return u.Role, nil
	}
	return "", repository.ErrUserNotFound
}

func (s *fakeUserService) HasRole(ctx context.Context, email, role string) (bool, error) {
	u, ok := s.users[email]
	return ok && u.Role == role, nil
}

func (s *fakeUserService) Promote(ctx context.Context, id uuid.UUID, role string) error {
	for _, u := range s.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (s *fakeUserService) Delete(ctx context.Context, id uuid.UUID) error {
	for email, u := range s.users {
		if u.ID == id {
			delete(s.users, email)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func newUserRouter(svc *fakeUserService, roles roleTable) chi.Router {
	r := chi.NewRouter()
	NewUserHandler(svc, zap.NewNop()).RegisterRoutes(r, newGates(roles))
	return r
}

func TestRegister_ReturnsIDOnceAndNullAfter(t *testing.T) {
	router := newUserRouter(newFakeUserService(), roleTable{})
	body := RegisterUserRequest{Email: "new@x.com", Name: "New User"}

	rec := doJSON(t, router, http.MethodPost, "/users", "", body)
	expectStatus(t, rec, http.StatusOK)

	var first UpsertResponse
	decodeBody(t, rec, &first)
	if first.InsertedID == nil {
		t.Fatal("expected an inserted id on first sign-in")
	}

	rec = doJSON(t, router, http.MethodPost, "/users", "", body)
	expectStatus(t, rec, http.StatusOK)

	var second UpsertResponse
	decodeBody(t, rec, &second)
	if second.InsertedID != nil {
		t.Error("expected a null inserted id on repeat sign-in")
	}
	if second.Message != "This user is exist in the database" {
		t.Errorf("unexpected repeat message %q", second.Message)
	}
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	router := newUserRouter(newFakeUserService(), roleTable{})

	rec := doJSON(t, router, http.MethodPost, "/users", "", RegisterUserRequest{Email: "not-an-email"})
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestList_RequiresAuthentication(t *testing.T) {
	router := newUserRouter(newFakeUserService(), roleTable{})

	rec := doJSON(t, router, http.MethodGet, "/getUser", "", nil)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestCheckAdmin_SelfOnly(t *testing.T) {
	svc := newFakeUserService()
	svc.add("boss@x.com", domain.RoleAdmin)
	svc.add("peer@x.com", domain.RoleUser)
	router := newUserRouter(svc, roleTable{})

	token := signTestToken(t, "boss@x.com")

	rec := doJSON(t, router, http.MethodGet, "/user/admin/boss@x.com", token, nil)
	expectStatus(t, rec, http.StatusOK)

	var result map[string]bool
	decodeBody(t, rec, &result)
	if !result["admin"] {
		t.Error("expected admin:true for an admin checking themselves")
	}

	// Asking about someone else is forbidden regardless of own role.
	rec = doJSON(t, router, http.MethodGet, "/user/admin/peer@x.com", token, nil)
	expectStatus(t, rec, http.StatusForbidden)
}

func TestCheckModerator_ReportsFalseForPlainUser(t *testing.T) {
	svc := newFakeUserService()
	svc.add("plain@x.com", domain.RoleUser)
	router := newUserRouter(svc, roleTable{})

	rec := doJSON(t, router, http.MethodGet, "/user/modaretor/plain@x.com", signTestToken(t, "plain@x.com"), nil)
	expectStatus(t, rec, http.StatusOK)

	var result map[string]bool
	decodeBody(t, rec, &result)
	if result["moderator"] {
		t.Error("expected moderator:false for a plain user")
	}
}

func TestPromoteAdmin_RequiresAdminRole(t *testing.T) {
	svc := newFakeUserService()
	targetID := svc.add("target@x.com", domain.RoleUser)
	router := newUserRouter(svc, roleTable{
		"boss@x.com":  domain.RoleAdmin,
		"plain@x.com": domain.RoleUser,
	})

	rec := doJSON(t, router, http.MethodPatch, "/user/admin/"+targetID.String(), signTestToken(t, "plain@x.com"), nil)
	expectStatus(t, rec, http.StatusForbidden)

	rec = doJSON(t, router, http.MethodPatch, "/user/admin/"+targetID.String(), signTestToken(t, "boss@x.com"), nil)
	expectStatus(t, rec, http.StatusOK)

	var result map[string]int
	decodeBody(t, rec, &result)
	if result["modifiedCount"] != 1 {
		t.Errorf("expected modifiedCount 1, got %d", result["modifiedCount"])
	}
	if svc.users["target@x.com"].Role != domain.RoleAdmin {
		t.Error("expected the target promoted to admin")
	}
}

func TestPromoteAdmin_UnknownIDReportsZeroModified(t *testing.T) {
	router := newUserRouter(newFakeUserService(), roleTable{"boss@x.com": domain.RoleAdmin})

	rec := doJSON(t, router, http.MethodPatch, "/user/admin/"+uuid.NewString(), signTestToken(t, "boss@x.com"), nil)
	expectStatus(t, rec, http.StatusOK)

	var result map[string]int
	decodeBody(t, rec, &result)
	if result["modifiedCount"] != 0 {
		t.Errorf("expected modifiedCount 0 for an unknown id, got %d", result["modifiedCount"])
	}
}

func TestPromoteModerator_NeedsOnlyAuthentication(t *testing.T) {
	svc := newFakeUserService()
	targetID := svc.add("target@x.com", domain.RoleUser)
	router := newUserRouter(svc, roleTable{"plain@x.com": domain.RoleUser})

	rec := doJSON(t, router, http.MethodPatch, "/user/modaretor/"+targetID.String(), signTestToken(t, "plain@x.com"), nil)
	expectStatus(t, rec, http.StatusOK)

	if svc.users["target@x.com"].Role != domain.RoleModerator {
		t.Error("expected the target promoted to moderator")
	}
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	svc := newFakeUserService()
	targetID := svc.add("target@x.com", domain.RoleUser)
	router := newUserRouter(svc, roleTable{
		"boss@x.com":  domain.RoleAdmin,
		"plain@x.com": domain.RoleUser,
	})

	rec := doJSON(t, router, http.MethodDelete, "/user/"+targetID.String(), signTestToken(t, "plain@x.com"), nil)
	expectStatus(t, rec, http.StatusForbidden)

	rec = doJSON(t, router, http.MethodDelete, "/user/"+targetID.String(), signTestToken(t, "boss@x.com"), nil)
	expectStatus(t, rec, http.StatusOK)

	var result map[string]int
	decodeBody(t, rec, &result)
	if result["deletedCount"] != 1 {
		t.Errorf("expected deletedCount 1, got %d", result["deletedCount"])
	}
	if _, ok := svc.users["target@x.com"]; ok {
		t.Error("expected the account removed")
	}
}
