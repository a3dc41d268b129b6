package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/testing/fixtures"
	"github.com/forgo/agenda/internal/testing/helpers"
	"github.com/forgo/agenda/internal/testing/testdb"
)

// These tests run against SurrealDB and skip unless TEST_DB_HOST is set.

type repos struct {
	tdb        *testdb.TestDB
	db         database.Database
	users      *UserRepository
	categories *CategoryRepository
	events     *EventRepository
	factory    *fixtures.Factory
}

func setup(t *testing.T) *repos {
	t.Helper()
	tdb := testdb.New(t)
	t.Cleanup(tdb.Close)

	r := &repos{
		tdb:        tdb,
		db:         tdb.DB,
		users:      NewUserRepository(tdb.DB),
		categories: NewCategoryRepository(tdb.DB),
		events:     NewEventRepository(tdb.DB),
	}
	r.factory = fixtures.New(r.users, r.categories, r.events)
	return r
}

// ============================================================================
// Users
// ============================================================================

func TestUserRepository_CreateGetUpdate(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	user := &model.User{Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, r.users.Create(ctx, user))
	helpers.AssertRecordExists(t, r.db, "user", "ana@example.com")

	err := r.users.Create(ctx, &model.User{Email: "ana@example.com", Name: "Other"})
	assert.True(t, errors.Is(err, database.ErrDuplicate), "got %v", err)

	got, err := r.users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)

	got.Name = "Ana María"
	require.NoError(t, r.users.Update(ctx, got))

	got, err = r.users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)

	missing, err := r.users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DeleteAndList(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	r.factory.CreateUser(t, fixtures.WithEmail("b@example.com"))
	r.factory.CreateUser(t, fixtures.WithEmail("a@example.com"))

	users, err := r.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.NoError(t, r.users.Delete(ctx, "a@example.com"))
	helpers.AssertRecordNotExists(t, r.db, "user", "a@example.com")

	users, err = r.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b@example.com", users[0].Email)
}

func TestUserRepository_Delete_RestrictedWhileOwningEvents(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	owner := r.factory.CreateUser(t)
	event := r.factory.CreateEvent(t, owner, nil)

	err := r.users.Delete(ctx, owner.Email)
	assert.True(t, errors.Is(err, database.ErrRestricted), "got %v", err)
	helpers.AssertRecordExists(t, r.db, "user", owner.Email)

	require.NoError(t, r.events.Delete(ctx, event.EventKey))
	require.NoError(t, r.users.Delete(ctx, owner.Email))
	helpers.AssertRecordNotExists(t, r.db, "user", owner.Email)
}

// ============================================================================
// Categories
// ============================================================================

func TestCategoryRepository_CreateDuplicate(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	require.NoError(t, r.categories.Create(ctx, &model.Category{Name: "Exámenes", Color: "#ff0000"}))
	err := r.categories.Create(ctx, &model.Category{Name: "Exámenes", Color: "#00ff00"})
	assert.True(t, errors.Is(err, database.ErrDuplicate), "got %v", err)

	got, err := r.categories.GetByName(ctx, "Exámenes")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "#ff0000", got.Color)
}

func TestCategoryRepository_DeleteDetachesEvents(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	owner := r.factory.CreateUser(t)
	category := r.factory.CreateCategory(t, fixtures.WithCategoryName("Tutorías"))
	event := r.factory.CreateEvent(t, owner, category)

	require.NoError(t, r.categories.Delete(ctx, "Tutorías"))
	helpers.AssertRecordNotExists(t, r.db, "category", "Tutorías")

	got, err := r.events.GetByKey(ctx, event.EventKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CategoryName)
}

// ============================================================================
// Events
// ============================================================================

func TestEventRepository_CreateAndGet(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	owner := r.factory.CreateUser(t)
	category := r.factory.CreateCategory(t)
	event := r.factory.CreateEvent(t, owner, category, fixtures.WithKey("Claustro", 1000, 2000))

	helpers.AssertRecordExists(t, r.db, "event", []interface{}{"Claustro", 1000, 2000})

	got, err := r.events.GetByKey(ctx, event.EventKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, owner.Email, got.OwnerEmail)
	assert.Equal(t, category.Name, got.Category())

	exists, err := r.events.Exists(ctx, event.EventKey)
	require.NoError(t, err)
	assert.True(t, exists)

	missing, err := r.events.GetByKey(ctx, model.EventKey{Title: "Claustro", Start: 1000, End: 2001})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepository_Create_UnknownOwner(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	err := r.events.Create(ctx, &model.Event{
		EventKey:   model.EventKey{Title: "Huérfano", Start: 1000, End: 2000},
		OwnerEmail: "gone@example.com",
	})
	assert.True(t, errors.Is(err, database.ErrNotFound), "got %v", err)
	helpers.AssertRecordNotExists(t, r.db, "event", []interface{}{"Huérfano", 1000, 2000})
}

func TestEventRepository_DuplicateKeyAcrossOwners(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	first := r.factory.CreateUser(t)
	second := r.factory.CreateUser(t)
	r.factory.CreateEvent(t, first, nil, fixtures.WithKey("Reunión", 1000, 2000))

	err := r.events.Create(ctx, &model.Event{
		EventKey:   model.EventKey{Title: "Reunión", Start: 1000, End: 2000},
		OwnerEmail: second.Email,
	})
	assert.True(t, errors.Is(err, database.ErrDuplicate), "got %v", err)
}

func TestEventRepository_Replace(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	owner := r.factory.CreateUser(t)
	old := r.factory.CreateEvent(t, owner, nil, fixtures.WithKey("Reunión", 1000, 2000))

	replacement := &model.Event{
		EventKey:   model.EventKey{Title: "Reunión", Start: 3000, End: 4000},
		OwnerEmail: owner.Email,
	}
	require.NoError(t, r.events.Replace(ctx, old.EventKey, replacement))

	helpers.AssertRecordNotExists(t, r.db, "event", []interface{}{"Reunión", 1000, 2000})
	helpers.AssertRecordExists(t, r.db, "event", []interface{}{"Reunión", 3000, 4000})
}

func TestEventRepository_ReplaceOntoTakenKey_KeepsOld(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	owner := r.factory.CreateUser(t)
	old := r.factory.CreateEvent(t, owner, nil, fixtures.WithKey("A", 1000, 2000))
	r.factory.CreateEvent(t, owner, nil, fixtures.WithKey("B", 1000, 2000))

	err := r.events.Replace(ctx, old.EventKey, &model.Event{
		EventKey:   model.EventKey{Title: "B", Start: 1000, End: 2000},
		OwnerEmail: owner.Email,
	})
	require.Error(t, err)

	// the failed transaction must not lose the original
	helpers.AssertRecordExists(t, r.db, "event", []interface{}{"A", 1000, 2000})
}

func TestEventRepository_Replace_VanishedEvent(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	owner := r.factory.CreateUser(t)
	old := r.factory.CreateEvent(t, owner, nil, fixtures.WithKey("Reunión", 1000, 2000))
	require.NoError(t, r.events.Delete(ctx, old.EventKey))

	err := r.events.Replace(ctx, old.EventKey, &model.Event{
		EventKey:   model.EventKey{Title: "Reunión", Start: 3000, End: 4000},
		OwnerEmail: owner.Email,
	})
	assert.True(t, errors.Is(err, database.ErrNotFound), "got %v", err)
	helpers.AssertRecordNotExists(t, r.db, "event", []interface{}{"Reunión", 3000, 4000})
}

func TestEventRepository_ListingsAndCount(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	ana := r.factory.CreateUser(t)
	luis := r.factory.CreateUser(t)
	r.factory.CreateEvent(t, ana, nil, fixtures.WithKey("Tarde", 5000, 6000))
	r.factory.CreateEvent(t, ana, nil, fixtures.WithKey("Mañana", 1000, 2000))
	r.factory.CreateEvent(t, luis, nil)

	all, err := r.events.ListSummaries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := r.events.ListSummariesByOwner(ctx, ana.Email)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Mañana", mine[0].Title)
	assert.Equal(t, "Tarde", mine[1].Title)

	require.NoError(t, r.events.Delete(ctx, mine[0].Key()))
	mine, err = r.events.ListSummariesByOwner(ctx, ana.Email)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Tarde", mine[0].Title)
}

func TestEventRepository_ParsesRawRecords(t *testing.T) {
	r := setup(t)
	ctx := r.tdb.Ctx()

	r.tdb.MustExec(`CREATE type::thing("event", ["Raw", 10, 20]) SET title = "Raw", start_ms = 10, end_ms = 20, owner = "raw@example.com"`, nil)

	got, err := r.events.GetByKey(ctx, model.EventKey{Title: "Raw", Start: 10, End: 20})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "raw@example.com", got.OwnerEmail)
	assert.Nil(t, got.CategoryName)
	assert.False(t, got.CreatedOn.IsZero())

	rows := r.tdb.MustQuery(`SELECT * FROM event`, nil)
	assert.Len(t, extractQueryResults(rows), 1)

	r.tdb.Reset(t)
	all, err := r.events.ListSummaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
