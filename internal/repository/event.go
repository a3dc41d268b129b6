package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
)

// EventRepository handles event data access. Events are stored under the
// record id event:[title, start_ms, end_ms].
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

const eventThing = `type::thing("event", [$title, $start_ms, $end_ms])`

// summaryProjection is the column list shared by the listing queries
const summaryProjection = `title, start_ms, end_ms, owner, category`

func keyVars(key model.EventKey) map[string]interface{} {
	return map[string]interface{}{
		"title":    key.Title,
		"start_ms": key.Start,
		"end_ms":   key.End,
	}
}

// createStatement builds the CREATE for an event. The category field is
// only written when set so option<string> stays NONE instead of NULL.
func createStatement(event *model.Event, createdOn string) (string, map[string]interface{}) {
	vars := keyVars(event.EventKey)
	vars["owner"] = event.OwnerEmail

	fields := `title = $title, start_ms = $start_ms, end_ms = $end_ms, owner = $owner`
	if event.CategoryName != nil {
		fields += `, category = $category`
		vars["category"] = *event.CategoryName
	}
	fields += `, created_on = ` + createdOn + `, updated_on = time::now()`

	return `CREATE ` + eventThing + ` SET ` + fields, vars
}

// Create stores a new event. An existing event with the same key makes the
// record id collide and the call fails with database.ErrDuplicate. The owner
// must still be registered when the transaction runs, otherwise the call
// fails with database.ErrNotFound.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	createQuery, vars := createStatement(event, `time::now()`)
	query := `IF (SELECT VALUE id FROM ONLY type::thing("user", $owner)) = NONE {
			THROW "record not found"
		};
		` + createQuery

	if err := database.NewAtomicBatch().Add(query, vars).Execute(ctx, r.db); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: event %s", database.ErrDuplicate, event.EventKey)
		}
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("%w: owner %q", database.ErrNotFound, event.OwnerEmail)
		}
		return err
	}
	return nil
}

// GetByKey retrieves an event, or nil when the key is not stored
func (r *EventRepository) GetByKey(ctx context.Context, key model.EventKey) (*model.Event, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM `+eventThing, keyVars(key))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEvent(result), nil
}

// Exists reports whether an event is stored under key
func (r *EventRepository) Exists(ctx context.Context, key model.EventKey) (bool, error) {
	event, err := r.GetByKey(ctx, key)
	if err != nil {
		return false, err
	}
	return event != nil, nil
}

// Replace swaps the event stored under oldKey for event in one transaction.
// The original creation time carries over to the new record. An oldKey that
// is gone by the time the transaction runs fails with database.ErrNotFound.
func (r *EventRepository) Replace(ctx context.Context, oldKey model.EventKey, event *model.Event) error {
	oldVars := map[string]interface{}{
		"old_title":    oldKey.Title,
		"old_start_ms": oldKey.Start,
		"old_end_ms":   oldKey.End,
	}
	oldThing := `type::thing("event", [$old_title, $old_start_ms, $old_end_ms])`

	createQuery, createVars := createStatement(event, `$prev_created ?? time::now()`)

	// $prev_created is bound by the LET and must survive variable namespacing,
	// so the statements travel as one batch entry.
	vars := make(map[string]interface{}, len(oldVars)+len(createVars))
	for k, v := range oldVars {
		vars[k] = v
	}
	for k, v := range createVars {
		vars[k] = v
	}
	query := `LET $prev_created = (SELECT VALUE created_on FROM ONLY ` + oldThing + `);
		IF $prev_created = NONE {
			THROW "record not found"
		};
		DELETE ` + oldThing + `;
		` + createQuery

	if err := database.NewAtomicBatch().Add(query, vars).Execute(ctx, r.db); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: event %s", database.ErrDuplicate, event.EventKey)
		}
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("%w: event %s", database.ErrNotFound, oldKey)
		}
		return err
	}
	return nil
}

// Delete removes the event stored under key
func (r *EventRepository) Delete(ctx context.Context, key model.EventKey) error {
	return r.db.Execute(ctx, `DELETE `+eventThing, keyVars(key))
}

// ListSummaries returns every event as a listing summary
func (r *EventRepository) ListSummaries(ctx context.Context) ([]*model.EventSummary, error) {
	query := `SELECT ` + summaryProjection + ` FROM event ORDER BY start_ms, title`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return parseSummaries(result), nil
}

// ListSummariesByOwner returns the summaries of the events owned by email
func (r *EventRepository) ListSummariesByOwner(ctx context.Context, email string) ([]*model.EventSummary, error) {
	query := `SELECT ` + summaryProjection + ` FROM event WHERE owner = $owner ORDER BY start_ms, title`

	result, err := r.db.Query(ctx, query, map[string]interface{}{"owner": email})
	if err != nil {
		return nil, err
	}
	return parseSummaries(result), nil
}

func parseEvent(data interface{}) *model.Event {
	m, ok := data.(map[string]interface{})
	if !ok {
		return nil
	}
	return &model.Event{
		EventKey: model.EventKey{
			Title: getString(m, "title"),
			Start: getInt64(m, "start_ms"),
			End:   getInt64(m, "end_ms"),
		},
		OwnerEmail:   getString(m, "owner"),
		CategoryName: getStringPtr(m, "category"),
		CreatedOn:    getTime(m, "created_on"),
		UpdatedOn:    getTime(m, "updated_on"),
	}
}

func parseSummaries(result []interface{}) []*model.EventSummary {
	records := extractQueryResults(result)
	summaries := make([]*model.EventSummary, 0, len(records))
	for _, rec := range records {
		m, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		summaries = append(summaries, &model.EventSummary{
			Title:        getString(m, "title"),
			Start:        getInt64(m, "start_ms"),
			End:          getInt64(m, "end_ms"),
			OwnerEmail:   getString(m, "owner"),
			CategoryName: getString(m, "category"),
		})
	}
	return summaries
}
