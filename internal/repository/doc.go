// Package repository implements the SurrealDB data access layer for the
// Agenda API.
//
// Each repository takes a database.Database and maps model structs to
// records with parameterized SurrealQL:
//
//   - UserRepository: record id user:⟨email⟩
//   - CategoryRepository: record id category:⟨name⟩
//   - EventRepository: record id event:[title, start_ms, end_ms]
//
// Record ids carry the natural keys, so a second CREATE of the same key
// fails and is reported as database.ErrDuplicate. Lookups of a missing
// record return nil without an error.
//
// Multi-statement changes (replacing an event under a new key, deleting a
// category and detaching it from its events) go through
// database.AtomicBatch so they commit or fail as a whole.
package repository
