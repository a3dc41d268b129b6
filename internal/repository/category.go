package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

// CategoryRepository handles category data access
type CategoryRepository struct {
	db database.Database
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db database.Database) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create stores a new category. The record id is the name, so a second
// create of the same name fails with database.ErrDuplicate.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		CREATE type::thing("category", $name) CONTENT {
			name: $name,
			color: $color
		}
	`
	vars := map[string]interface{}{
		"name":  category.Name,
		"color": category.Color,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: category %q", database.ErrDuplicate, category.Name)
		}
		return err
	}
	return nil
}

// GetByName retrieves a category, or nil when it does not exist
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	query := `SELECT * FROM type::thing("category", $name)`
	vars := map[string]interface{}{"name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseCategory(result), nil
}

// List retrieves every category ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM category ORDER BY name`, nil)
	if err != nil {
		return nil, err
	}

	records := extractQueryResults(result)
	categories := make([]*model.Category, 0, len(records))
	for _, rec := range records {
		if c := parseCategory(rec); c != nil {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// Delete removes a category and detaches it from every event filed under it
// in the same transaction
func (r *CategoryRepository) Delete(ctx context.Context, name string) error {
	vars := map[string]interface{}{"name": name}

	return database.NewAtomicBatch().
		Add(`UPDATE event SET category = NONE, updated_on = time::now() WHERE category = $name`, vars).
		Add(`DELETE type::thing("category", $name)`, vars).
		Execute(ctx, r.db)
}

func parseCategory(data interface{}) *model.Category {
	m, ok := data.(map[string]interface{})
	if !ok {
		return nil
	}
	return &model.Category{
		Name:  getString(m, "name"),
		Color: getString(m, "color"),
	}
}
