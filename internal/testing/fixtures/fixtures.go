// Package fixtures provides test data factories for Agenda tests.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories write through the same
// store interfaces the services use, so they work with the SurrealDB
// repositories and the in-memory store alike.
//
// Usage:
//
//	f := fixtures.New(users, categories, events)
//	owner := f.CreateUser(t)
//	cat := f.CreateCategory(t)
//	event := f.CreateEvent(t, owner, cat)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forgo/agenda/internal/model"
)

// UserStore is the subset of a user store the factory needs
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
}

// CategoryStore is the subset of a category store the factory needs
type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
}

// EventStore is the subset of an event store the factory needs
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
}

// Factory creates test entities in a store
type Factory struct {
	users      UserStore
	categories CategoryStore
	events     EventStore
}

// New creates a new fixture factory
func New(users UserStore, categories CategoryStore, events EventStore) *Factory {
	return &Factory{users: users, categories: categories, events: events}
}

// base start time for generated events: 2025-01-01T00:00:00Z
const baseStartMs int64 = 1735689600000

var eventSeq atomic.Int64

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email string
	Name  string
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	id := randomID()
	o := &UserOpts{
		Email: fmt.Sprintf("user_%s@test.local", id),
		Name:  fmt.Sprintf("User %s", id),
	}
	for _, fn := range opts {
		fn(o)
	}

	user := &model.User{Email: o.Email, Name: o.Name}
	if err := f.users.Create(ctx(t), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// WithEmail sets the user email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// ============================================================================
// Category Fixtures
// ============================================================================

// CategoryOpts customizes category creation
type CategoryOpts struct {
	Name  string
	Color string
}

// CreateCategory creates a category with optional customizations
func (f *Factory) CreateCategory(t *testing.T, opts ...func(*CategoryOpts)) *model.Category {
	t.Helper()

	o := &CategoryOpts{
		Name:  fmt.Sprintf("category_%s", randomID()),
		Color: "#3366ff",
	}
	for _, fn := range opts {
		fn(o)
	}

	category := &model.Category{Name: o.Name, Color: o.Color}
	if err := f.categories.Create(ctx(t), category); err != nil {
		t.Fatalf("fixtures: failed to create category: %v", err)
	}
	return category
}

// WithCategoryName sets the category name
func WithCategoryName(name string) func(*CategoryOpts) {
	return func(o *CategoryOpts) { o.Name = name }
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Title string
	Start int64
	End   int64
}

// CreateEvent creates a one hour event owned by owner and filed under
// category. A nil category leaves the event uncategorized.
func (f *Factory) CreateEvent(t *testing.T, owner *model.User, category *model.Category, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	start := baseStartMs + eventSeq.Add(1)*int64(time.Hour/time.Millisecond)
	o := &EventOpts{
		Title: fmt.Sprintf("event_%s", randomID()),
		Start: start,
		End:   start + int64(time.Hour/time.Millisecond),
	}
	for _, fn := range opts {
		fn(o)
	}

	event := &model.Event{
		EventKey:   model.EventKey{Title: o.Title, Start: o.Start, End: o.End},
		OwnerEmail: owner.Email,
	}
	if category != nil {
		name := category.Name
		event.CategoryName = &name
	}
	if err := f.events.Create(ctx(t), event); err != nil {
		t.Fatalf("fixtures: failed to create event: %v", err)
	}
	return event
}

// WithKey sets the event key
func WithKey(title string, start, end int64) func(*EventOpts) {
	return func(o *EventOpts) {
		o.Title = title
		o.Start = start
		o.End = end
	}
}
