package service

import (
	"context"

	"github.com/forgo/agenda/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockEventRepo struct {
	createFunc               func(ctx context.Context, event *model.Event) error
	getByKeyFunc             func(ctx context.Context, key model.EventKey) (*model.Event, error)
	existsFunc               func(ctx context.Context, key model.EventKey) (bool, error)
	replaceFunc              func(ctx context.Context, oldKey model.EventKey, event *model.Event) error
	deleteFunc               func(ctx context.Context, key model.EventKey) error
	listSummariesFunc        func(ctx context.Context) ([]*model.EventSummary, error)
	listSummariesByOwnerFunc func(ctx context.Context, email string) ([]*model.EventSummary, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.Event) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) GetByKey(ctx context.Context, key model.EventKey) (*model.Event, error) {
	if m.getByKeyFunc != nil {
		return m.getByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockEventRepo) Exists(ctx context.Context, key model.EventKey) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, key)
	}
	return false, nil
}

func (m *mockEventRepo) Replace(ctx context.Context, oldKey model.EventKey, event *model.Event) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, oldKey, event)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, key model.EventKey) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

func (m *mockEventRepo) ListSummaries(ctx context.Context) ([]*model.EventSummary, error) {
	if m.listSummariesFunc != nil {
		return m.listSummariesFunc(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) ListSummariesByOwner(ctx context.Context, email string) ([]*model.EventSummary, error) {
	if m.listSummariesByOwnerFunc != nil {
		return m.listSummariesByOwnerFunc(ctx, email)
	}
	return nil, nil
}

type mockCategoryRepo struct {
	createFunc    func(ctx context.Context, category *model.Category) error
	getByNameFunc func(ctx context.Context, name string) (*model.Category, error)
	listFunc      func(ctx context.Context) ([]*model.Category, error)
	deleteFunc    func(ctx context.Context, name string) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, name string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, name)
	}
	return nil
}

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *model.User) error
	getByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	updateFunc     func(ctx context.Context, user *model.User) error
	deleteFunc     func(ctx context.Context, email string) error
	listFunc       func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, email string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, email)
	}
	return nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

// ============================================================================
// Helpers
// ============================================================================

func strPtr(s string) *string { return &s }

func teacher(email string) *Identity {
	return &Identity{Email: email, Name: "Teacher", Roles: []Role{RoleTeacher}}
}

func admin() *Identity {
	return &Identity{Email: "admin@school.edu", Name: "Admin", Roles: []Role{RoleAdmin}}
}

func direction() *Identity {
	return &Identity{Email: "dir@school.edu", Name: "Direction", Roles: []Role{RoleDirection}}
}

func storedEvent(title string, start, end int64, owner string) *model.Event {
	return &model.Event{
		EventKey:     model.EventKey{Title: title, Start: start, End: end},
		OwnerEmail:   owner,
		CategoryName: strPtr("Work"),
	}
}

// newEventService wires an event service over mocks. Categories named
// "Work" exist; users are created on demand.
func newEventService(events *mockEventRepo) *EventService {
	categories := NewCategoryService(CategoryServiceConfig{CategoryRepo: &mockCategoryRepo{
		getByNameFunc: func(ctx context.Context, name string) (*model.Category, error) {
			if name == "Work" {
				return &model.Category{Name: "Work"}, nil
			}
			return nil, nil
		},
	}})
	users := NewUserService(UserServiceConfig{UserRepo: &mockUserRepo{}})
	return NewEventService(EventServiceConfig{
		EventRepo:  events,
		Categories: categories,
		Users:      users,
	})
}
