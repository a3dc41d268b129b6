package memstore

import (
	"context"
	"fmt"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

// EventStore exposes the events of a Store
type EventStore struct {
	s *Store
}

// Create stores a new event under its composite key. The owner must be a
// registered user, otherwise the call fails with database.ErrNotFound.
func (e *EventStore) Create(_ context.Context, event *model.Event) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if _, ok := e.s.events[event.EventKey]; ok {
		return fmt.Errorf("%w: event %s", ErrDuplicate, event.EventKey)
	}
	if _, ok := e.s.users[event.OwnerEmail]; !ok {
		return fmt.Errorf("%w: owner %q", database.ErrNotFound, event.OwnerEmail)
	}

	now := e.s.now()
	event.CreatedOn = now
	event.UpdatedOn = now
	e.s.events[event.EventKey] = copyEvent(event)
	return nil
}

// GetByKey returns the event or nil when the key is not stored
func (e *EventStore) GetByKey(_ context.Context, key model.EventKey) (*model.Event, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	stored, ok := e.s.events[key]
	if !ok {
		return nil, nil
	}
	return copyEvent(stored), nil
}

// Exists reports whether an event is stored under key
func (e *EventStore) Exists(_ context.Context, key model.EventKey) (bool, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	_, ok := e.s.events[key]
	return ok, nil
}

// Replace swaps the event under oldKey for event. A new key that belongs to
// another event fails with ErrDuplicate, a missing oldKey with
// database.ErrNotFound; both leave the store untouched.
func (e *EventStore) Replace(_ context.Context, oldKey model.EventKey, event *model.Event) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	prev, ok := e.s.events[oldKey]
	if !ok {
		return fmt.Errorf("%w: event %s", database.ErrNotFound, oldKey)
	}
	if event.EventKey != oldKey {
		if _, taken := e.s.events[event.EventKey]; taken {
			return fmt.Errorf("%w: event %s", ErrDuplicate, event.EventKey)
		}
	}

	event.CreatedOn = prev.CreatedOn
	event.UpdatedOn = e.s.now()
	delete(e.s.events, oldKey)
	e.s.events[event.EventKey] = copyEvent(event)
	return nil
}

// Delete removes the event stored under key
func (e *EventStore) Delete(_ context.Context, key model.EventKey) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	delete(e.s.events, key)
	return nil
}

// ListSummaries returns every event as a listing summary
func (e *EventStore) ListSummaries(_ context.Context) ([]*model.EventSummary, error) {
	return e.summaries(func(*model.Event) bool { return true }), nil
}

// ListSummariesByOwner returns the summaries of the events owned by email
func (e *EventStore) ListSummariesByOwner(_ context.Context, email string) ([]*model.EventSummary, error) {
	return e.summaries(func(ev *model.Event) bool { return ev.OwnerEmail == email }), nil
}

func (e *EventStore) summaries(keep func(*model.Event) bool) []*model.EventSummary {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	out := make([]*model.EventSummary, 0, len(e.s.events))
	for _, ev := range e.s.events {
		if keep(ev) {
			out = append(out, ev.Summary())
		}
	}
	sortSummaries(out)
	return out
}
