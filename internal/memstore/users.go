package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

// UserStore exposes the users of a Store
type UserStore struct {
	s *Store
}

// Create stores a new user keyed by email
func (u *UserStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[user.Email]; ok {
		return fmt.Errorf("%w: user %q", ErrDuplicate, user.Email)
	}

	now := u.s.now()
	user.CreatedOn = now
	user.UpdatedOn = now
	stored := *user
	u.s.users[user.Email] = &stored
	return nil
}

// GetByEmail returns the user or nil when none is registered under email
func (u *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	stored, ok := u.s.users[email]
	if !ok {
		return nil, nil
	}
	out := *stored
	return &out, nil
}

// Update replaces the name of an existing user. Unknown users are ignored.
func (u *UserStore) Update(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	stored, ok := u.s.users[user.Email]
	if !ok {
		return nil
	}
	stored.Name = user.Name
	stored.UpdatedOn = u.s.now()
	user.CreatedOn = stored.CreatedOn
	user.UpdatedOn = stored.UpdatedOn
	return nil
}

// Delete removes a user. A user that still owns events is kept and the call
// fails with database.ErrRestricted.
func (u *UserStore) Delete(_ context.Context, email string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, ev := range u.s.events {
		if ev.OwnerEmail == email {
			return fmt.Errorf("%w: user %q owns events", database.ErrRestricted, email)
		}
	}
	delete(u.s.users, email)
	return nil
}

// List returns every user ordered by email
func (u *UserStore) List(_ context.Context) ([]*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	users := make([]*model.User, 0, len(u.s.users))
	for _, stored := range u.s.users {
		out := *stored
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}
