package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/forgo/agenda/internal/model"
)

// CategoryStore exposes the categories of a Store
type CategoryStore struct {
	s *Store
}

// Create stores a new category keyed by name
func (c *CategoryStore) Create(_ context.Context, category *model.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.categories[category.Name]; ok {
		return fmt.Errorf("%w: category %q", ErrDuplicate, category.Name)
	}
	stored := *category
	c.s.categories[category.Name] = &stored
	return nil
}

// GetByName returns the category or nil when it does not exist
func (c *CategoryStore) GetByName(_ context.Context, name string) (*model.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	stored, ok := c.s.categories[name]
	if !ok {
		return nil, nil
	}
	out := *stored
	return &out, nil
}

// List returns every category ordered by name
func (c *CategoryStore) List(_ context.Context) ([]*model.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	categories := make([]*model.Category, 0, len(c.s.categories))
	for _, stored := range c.s.categories {
		out := *stored
		categories = append(categories, &out)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// Delete removes a category and clears it from every event filed under it
// while holding the write lock
func (c *CategoryStore) Delete(_ context.Context, name string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	now := c.s.now()
	for _, e := range c.s.events {
		if e.CategoryName != nil && *e.CategoryName == name {
			e.CategoryName = nil
			e.UpdatedOn = now
		}
	}
	delete(c.s.categories, name)
	return nil
}
