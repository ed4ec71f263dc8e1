package service

import (
	"context"
	"fmt"
	"time"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/repository"

	"github.com/google/uuid"
)

// RoleInvalidator drops a cached role after it changes. Satisfied by the
// Redis role cache; tests substitute a no-op.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// UserService defines the interface for account management.
type UserService interface {
	RegisterIfAbsent(ctx context.Context, email, name, photoURL string) (*uuid.UUID, error)
	List(ctx context.Context) ([]*domain.User, error)
	RoleByEmail(ctx context.Context, email string) (string, error)
	HasRole(ctx context.Context, email, role string) (bool, error)
	Promote(ctx context.Context, id uuid.UUID, role string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	roles    RoleInvalidator
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository, roles RoleInvalidator) UserService {
	return &userService{userRepo: userRepo, roles: roles}
}

// RegisterIfAbsent inserts a user record on first sign-in. If the email is
// already known the insert is skipped and a nil id comes back, which the
// handler surfaces as {"insertedId": null}. The existence check and the
// insert are two statements, so two concurrent first sign-ins can race;
// the unique index on email turns the loser into an error rather than a
// duplicate row.
func (s *userService) RegisterIfAbsent(ctx context.Context, email, name, photoURL string) (*uuid.UUID, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		PhotoURL:  photoURL,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user.ID, nil
}

// List returns every account.
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// RoleByEmail resolves a stored role. This is the cache-miss path behind
// the authorization gates.
func (s *userService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// HasRole reports whether the account with the given email holds a role.
// Unknown emails report false rather than an error, matching the
// permissive self-check endpoints.
func (s *userService) HasRole(ctx context.Context, email, role string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}

// Promote sets a user's role and invalidates the cached role so the
// change is visible on the next gated request.
func (s *userService) Promote(ctx context.Context, id uuid.UUID, role string) error {
	email, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return err
	}
	if s.roles != nil {
		s.roles.Invalidate(ctx, email)
	}
	return nil
}

// Delete removes an account and its cached role.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	email, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if s.roles != nil {
		s.roles.Invalidate(ctx, email)
	}
	return nil
}
