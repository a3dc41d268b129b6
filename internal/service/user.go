package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// Delete fails with database.ErrRestricted while the user owns events
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]*model.User, error)
}

// UserService handles the user registry
type UserService struct {
	userRepo UserRepository
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	UserRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{
		userRepo: cfg.UserRepo,
	}
}

// Create registers a user
func (s *UserService) Create(ctx context.Context, req *model.UserRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, ErrEmailEmpty
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	user := &model.User{Email: email, Name: strings.TrimSpace(req.Name)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Update replaces the name of a registered user
func (s *UserService) Update(ctx context.Context, req *model.UserRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, ErrEmailEmpty
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Name = strings.TrimSpace(req.Name)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

// Delete removes a user that owns no events
func (s *UserService) Delete(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, email); err != nil {
		if errors.Is(err, database.ErrRestricted) {
			slog.Warn("refusing to delete user with events", slog.String("email", email))
			return ErrUserHasEvents
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// ListAll returns every registered user
func (s *UserService) ListAll(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// GetOrCreate returns the user registered under email, creating it with
// name when absent. A concurrent creator winning the race is resolved by
// reading its row back.
func (s *UserService) GetOrCreate(ctx context.Context, email, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailEmpty
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &model.User{Email: email, Name: name}
	err = s.userRepo.Create(ctx, user)
	if err == nil {
		slog.Info("user created on first event", slog.String("email", email))
		return user, nil
	}
	if !errors.Is(err, database.ErrDuplicate) {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("re-reading user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q reported duplicate but not found", email)
	}
	return user, nil
}
