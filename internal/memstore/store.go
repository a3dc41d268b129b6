// Package memstore is the in-process store driver. It keeps users,
// categories and events in maps behind one RWMutex and can persist them to
// a JSON snapshot file.
//
// Creates check and insert under the write lock, so duplicates surface as
// ErrDuplicate exactly like the SurrealDB record id collisions do:
//
//	store := memstore.New()
//	err := store.Events().Create(ctx, event)
//	if errors.Is(err, database.ErrDuplicate) { ... }
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

// ErrDuplicate is returned by every Create whose key is already taken.
// It wraps database.ErrDuplicate.
var ErrDuplicate = fmt.Errorf("memstore: %w", database.ErrDuplicate)

// Store is the thread safe in-memory entity store
type Store struct {
	mu         sync.RWMutex
	users      map[string]*model.User
	categories map[string]*model.Category
	events     map[model.EventKey]*model.Event
	now        func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		users:      make(map[string]*model.User),
		categories: make(map[string]*model.Category),
		events:     make(map[model.EventKey]*model.Event),
		now:        time.Now,
	}
}

// Users returns the user store view
func (s *Store) Users() *UserStore { return &UserStore{s: s} }

// Categories returns the category store view
func (s *Store) Categories() *CategoryStore { return &CategoryStore{s: s} }

// Events returns the event store view
func (s *Store) Events() *EventStore { return &EventStore{s: s} }

// Counts returns the number of stored users, categories and events
func (s *Store) Counts() (users, categories, events int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.categories), len(s.events)
}

func copyEvent(e *model.Event) *model.Event {
	out := *e
	if e.CategoryName != nil {
		name := *e.CategoryName
		out.CategoryName = &name
	}
	return &out
}

func sortSummaries(list []*model.EventSummary) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Start != list[j].Start {
			return list[i].Start < list[j].Start
		}
		return list[i].Title < list[j].Title
	})
}

// Ping always succeeds; it lets the store stand in for a database in
// health checks
func (s *Store) Ping(_ context.Context) error { return nil }
