package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

func TestCategoryService_Create(t *testing.T) {
	t.Parallel()

	var stored *model.Category
	svc := NewCategoryService(CategoryServiceConfig{CategoryRepo: &mockCategoryRepo{
		getByNameFunc: func(ctx context.Context, name string) (*model.Category, error) {
			if name == "Work" {
				return &model.Category{Name: name}, nil
			}
			return nil, nil
		},
		createFunc: func(ctx context.Context, category *model.Category) error {
			stored = category
			return nil
		},
	}})
	ctx := context.Background()

	if _, err := svc.Create(ctx, &model.CategoryRequest{Name: " "}); !errors.Is(err, ErrCategoryNameEmpty) {
		t.Errorf("expected ErrCategoryNameEmpty, got %v", err)
	}
	if _, err := svc.Create(ctx, &model.CategoryRequest{Name: "Work"}); !errors.Is(err, ErrCategoryExists) {
		t.Errorf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.Create(ctx, &model.CategoryRequest{Name: " Home ", Color: "#0f0"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || stored.Name != "Home" || stored.Color != "#0f0" {
		t.Errorf("unexpected stored category %+v", stored)
	}
}

func TestCategoryService_Create_DuplicateFromStore(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(CategoryServiceConfig{CategoryRepo: &mockCategoryRepo{
		createFunc: func(ctx context.Context, category *model.Category) error {
			return fmt.Errorf("%w: category", database.ErrDuplicate)
		},
	}})

	if _, err := svc.Create(context.Background(), &model.CategoryRequest{Name: "Work"}); !errors.Is(err, ErrCategoryExists) {
		t.Errorf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryService_DeleteAndGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(CategoryServiceConfig{CategoryRepo: &mockCategoryRepo{
		deleteFunc: func(ctx context.Context, name string) error {
			t.Error("delete must not be called")
			return nil
		},
	}})
	ctx := context.Background()

	if err := svc.Delete(ctx, "Ghost"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "Ghost"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}
