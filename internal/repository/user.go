package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user keyed by email
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE type::thing("user", $email) CONTENT {
			email: $email,
			name: $name,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"email": user.Email,
		"name":  user.Name,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	if records := extractQueryResults(result); len(records) > 0 {
		if created := parseUser(records[0]); created != nil {
			user.CreatedOn = created.CreatedOn
			user.UpdatedOn = created.UpdatedOn
		}
	}
	return nil
}

// GetByEmail retrieves a user, or nil when none is registered under email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM type::thing("user", $email)`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUser(result), nil
}

// Update changes the display name of an existing user
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE type::thing("user", $email) SET
			name = $name,
			updated_on = time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"email": user.Email,
		"name":  user.Name,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}
	if updated := parseUser(result); updated != nil {
		user.CreatedOn = updated.CreatedOn
		user.UpdatedOn = updated.UpdatedOn
	}
	return nil
}

// Delete removes a user record. The ownership check and the delete share a
// transaction; a user that still owns events fails with
// database.ErrRestricted.
func (r *UserRepository) Delete(ctx context.Context, email string) error {
	query := `
		IF count((SELECT id FROM event WHERE owner = $email)) > 0 {
			THROW "record is still referenced"
		};
		DELETE type::thing("user", $email);
	`
	return database.NewAtomicBatch().
		Add(query, map[string]interface{}{"email": email}).
		Execute(ctx, r.db)
}

// List retrieves every user ordered by email
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM user ORDER BY email`, nil)
	if err != nil {
		return nil, err
	}

	records := extractQueryResults(result)
	users := make([]*model.User, 0, len(records))
	for _, rec := range records {
		if u := parseUser(rec); u != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

func parseUser(data interface{}) *model.User {
	m, ok := data.(map[string]interface{})
	if !ok {
		return nil
	}
	return &model.User{
		Email:     getString(m, "email"),
		Name:      getString(m, "name"),
		CreatedOn: getTime(m, "created_on"),
		UpdatedOn: getTime(m, "updated_on"),
	}
}
