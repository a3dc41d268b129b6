// Package model defines domain entities and wire types for the Agenda API.
//
// # Domain Entities
//
//   - User: a person keyed by email
//   - Category: a named color label keyed by name
//   - Event: a calendar entry keyed by (title, start, end)
//   - EventSummary: the read projection used by listings
//
// # Time Representation
//
// Instants are epoch milliseconds (int64) both on the wire and in storage:
//
//	key := model.EventKey{Title: "Standup", Start: 1000, End: 2000}
//	key.StartTime() // time.Time in UTC
//
// # JSON Field Names
//
// Wire names follow the existing clients of the calendar (titulo,
// fechaInicio, fechaFin, nombre, email, color).
//
// # Failures
//
// Every error response carries the same body, defined in errors.go:
//
//	type Failure struct {
//	    Code      ErrorCode `json:"codigo"`
//	    Message   string    `json:"message"`
//	    Exception string    `json:"excepcion,omitempty"`
//	}
package model
