package model

import (
	"fmt"
	"time"
)

// EventKey is the composite identity of an event. The owner is not part of it.
type EventKey struct {
	Title string `json:"titulo"`
	Start int64  `json:"fechaInicio"` // epoch milliseconds
	End   int64  `json:"fechaFin"`    // epoch milliseconds
}

// String renders the key for logs
func (k EventKey) String() string {
	return fmt.Sprintf("%s[%d,%d]", k.Title, k.Start, k.End)
}

// StartTime returns the start instant in UTC
func (k EventKey) StartTime() time.Time {
	return time.UnixMilli(k.Start).UTC()
}

// EndTime returns the end instant in UTC
func (k EventKey) EndTime() time.Time {
	return time.UnixMilli(k.End).UTC()
}

// Event is a calendar entry owned by a user and optionally filed under a category
type Event struct {
	EventKey
	OwnerEmail   string    `json:"email"`
	CategoryName *string   `json:"nombre,omitempty"` // nil once the category is deleted
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// Category returns the category name or "" when the event has none
func (e *Event) Category() string {
	if e.CategoryName == nil {
		return ""
	}
	return *e.CategoryName
}

// Summary projects the event onto its listing representation
func (e *Event) Summary() *EventSummary {
	return &EventSummary{
		Title:        e.Title,
		Start:        e.Start,
		End:          e.End,
		OwnerEmail:   e.OwnerEmail,
		CategoryName: e.Category(),
	}
}

// EventSummary is the denormalized read projection used by listings
type EventSummary struct {
	Title        string `json:"titulo"`
	Start        int64  `json:"fechaInicio"`
	End          int64  `json:"fechaFin"`
	OwnerEmail   string `json:"email"`
	CategoryName string `json:"nombre"`
}

// Key returns the composite key of the summarized event
func (s *EventSummary) Key() EventKey {
	return EventKey{Title: s.Title, Start: s.Start, End: s.End}
}

// EventRequest is the body of create and replace requests
type EventRequest struct {
	Title        string `json:"titulo"`
	Start        int64  `json:"fechaInicio"`
	End          int64  `json:"fechaFin"`
	CategoryName string `json:"nombre"`
}

// Key returns the composite key described by the request
func (r *EventRequest) Key() EventKey {
	return EventKey{Title: r.Title, Start: r.Start, End: r.End}
}

// Headers carrying an event key on DELETE, GET /filtro and PUT
const (
	HeaderEventTitle = "titulo"
	HeaderEventStart = "fechaInicio"
	HeaderEventEnd   = "fechaFin"
)
