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

// CategoryRepository defines the interface for category storage
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	// Delete removes the category and clears it from its events atomically
	Delete(ctx context.Context, name string) error
}

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo CategoryRepository
}

// CategoryServiceConfig holds configuration for the category service
type CategoryServiceConfig struct {
	CategoryRepo CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(cfg CategoryServiceConfig) *CategoryService {
	return &CategoryService{
		categoryRepo: cfg.CategoryRepo,
	}
}

// Create registers a new category
func (s *CategoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &model.Category{Name: name, Color: strings.TrimSpace(req.Color)}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

// Get retrieves a category by name
func (s *CategoryService) Get(ctx context.Context, name string) (*model.Category, error) {
	category, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Delete removes a category. Events filed under it stay, uncategorized.
func (s *CategoryService) Delete(ctx context.Context, name string) error {
	if _, err := s.Get(ctx, name); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, name); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	slog.Info("category deleted", slog.String("category", name))
	return nil
}

// ListAll returns every category
func (s *CategoryService) ListAll(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Exists reports whether a category is registered under name
func (s *CategoryService) Exists(ctx context.Context, name string) (bool, error) {
	category, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("looking up category: %w", err)
	}
	return category != nil, nil
}
