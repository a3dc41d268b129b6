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

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	// GetByKey returns nil, nil when the key is not stored
	GetByKey(ctx context.Context, key model.EventKey) (*model.Event, error)
	Exists(ctx context.Context, key model.EventKey) (bool, error)
	// Replace removes oldKey and stores event in one atomic step
	Replace(ctx context.Context, oldKey model.EventKey, event *model.Event) error
	Delete(ctx context.Context, key model.EventKey) error
	ListSummaries(ctx context.Context) ([]*model.EventSummary, error)
	ListSummariesByOwner(ctx context.Context, email string) ([]*model.EventSummary, error)
}

// CategoryLookup checks that a category is registered
type CategoryLookup interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// OwnerResolver resolves the owner of a new event, creating it on first use
type OwnerResolver interface {
	GetOrCreate(ctx context.Context, email, name string) (*model.User, error)
}

// EventService manages the event lifecycle
type EventService struct {
	eventRepo  EventRepository
	categories CategoryLookup
	users      OwnerResolver
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo  EventRepository
	Categories CategoryLookup
	Users      OwnerResolver
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo:  cfg.EventRepo,
		categories: cfg.Categories,
		users:      cfg.Users,
	}
}

// validateKey checks a key as given by a caller and returns it with the
// title trimmed
func validateKey(key model.EventKey) (model.EventKey, error) {
	key.Title = strings.TrimSpace(key.Title)
	if key.Title == "" {
		return key, ErrInvalidTitle
	}
	if key.Start <= 0 || key.End <= 0 {
		return key, ErrInvalidDateRange
	}
	if key.End < key.Start {
		return key, ErrInvalidDateRange
	}
	return key, nil
}

// validateRequest checks a create or replace payload
func validateRequest(req *model.EventRequest) (model.EventKey, string, error) {
	key, err := validateKey(req.Key())
	if err != nil {
		return key, "", err
	}
	category := strings.TrimSpace(req.CategoryName)
	if category == "" {
		return key, "", ErrCategoryMissing
	}
	return key, category, nil
}

func (s *EventService) requireCategory(ctx context.Context, name string) error {
	ok, err := s.categories.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

// Create stores a new event owned by identity. The owner row is created
// from the identity when this is its first event.
func (s *EventService) Create(ctx context.Context, identity *Identity, req *model.EventRequest) (*model.Event, error) {
	key, categoryName, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.eventRepo.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("checking event: %w", err)
	}
	if exists {
		return nil, ErrEventAlreadyExists
	}

	owner, err := s.users.GetOrCreate(ctx, identity.Email, identity.Name)
	if err != nil {
		return nil, err
	}

	if err := s.requireCategory(ctx, categoryName); err != nil {
		return nil, err
	}

	event := &model.Event{
		EventKey:     key,
		OwnerEmail:   owner.Email,
		CategoryName: &categoryName,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrEventAlreadyExists
		case errors.Is(err, database.ErrNotFound):
			// owner deleted between resolution and insert
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("creating event: %w", err)
	}

	slog.Info("event created",
		slog.String("event", key.String()),
		slog.String("owner", owner.Email),
		slog.String("category", categoryName))
	return event, nil
}

// load validates key and returns the stored event
func (s *EventService) load(ctx context.Context, key model.EventKey) (*model.Event, error) {
	key, err := validateKey(key)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// Delete removes an event. Only admins and the owner may delete it.
func (s *EventService) Delete(ctx context.Context, identity *Identity, key model.EventKey) error {
	event, err := s.load(ctx, key)
	if err != nil {
		return err
	}

	if !CanDeleteEvent(identity, event) {
		slog.Warn("event delete forbidden",
			slog.String("event", event.EventKey.String()),
			slog.String("caller", identity.Email))
		return ErrForbidden
	}

	if err := s.eventRepo.Delete(ctx, event.EventKey); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

// GetByKey returns a single event. Admins and direction see any event,
// everyone else only their own.
func (s *EventService) GetByKey(ctx context.Context, identity *Identity, key model.EventKey) (*model.Event, error) {
	event, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	if !CanAccessEvent(identity, event) {
		slog.Warn("event read forbidden",
			slog.String("event", event.EventKey.String()),
			slog.String("caller", identity.Email))
		return nil, ErrForbidden
	}
	return event, nil
}

// Update replaces the event stored under oldKey with req. The owner is kept.
func (s *EventService) Update(ctx context.Context, identity *Identity, oldKey model.EventKey, req *model.EventRequest) (*model.Event, error) {
	current, err := s.load(ctx, oldKey)
	if err != nil {
		return nil, err
	}

	key, categoryName, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	if !CanDeleteEvent(identity, current) {
		return nil, ErrForbidden
	}

	if key != current.EventKey {
		taken, err := s.eventRepo.Exists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("checking event: %w", err)
		}
		if taken {
			return nil, ErrEventAlreadyExists
		}
	}

	if err := s.requireCategory(ctx, categoryName); err != nil {
		return nil, err
	}

	replacement := &model.Event{
		EventKey:     key,
		OwnerEmail:   current.OwnerEmail,
		CategoryName: &categoryName,
	}
	if err := s.eventRepo.Replace(ctx, current.EventKey, replacement); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrEventAlreadyExists
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("replacing event: %w", err)
	}
	return replacement, nil
}

// ListAll returns every event
func (s *EventService) ListAll(ctx context.Context) ([]*model.EventSummary, error) {
	return s.eventRepo.ListSummaries(ctx)
}

// visible lists what identity may see: everything for admins, otherwise the
// events it owns
func (s *EventService) visible(ctx context.Context, identity *Identity) ([]*model.EventSummary, error) {
	if identity.HasRole(RoleAdmin) {
		return s.eventRepo.ListSummaries(ctx)
	}
	return s.eventRepo.ListSummariesByOwner(ctx, identity.Email)
}

// ListForIdentity returns the events visible to identity. An empty result
// is reported as ErrEventsNotFound.
func (s *EventService) ListForIdentity(ctx context.Context, identity *Identity) ([]*model.EventSummary, error) {
	summaries, err := s.visible(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	if len(summaries) == 0 {
		return nil, ErrEventsNotFound
	}
	return summaries, nil
}
