// Package database provides the database abstraction layer for Agenda.
//
// This package defines the Database interface that abstracts SurrealDB operations,
// allowing for clean separation between business logic and data access.
//
// # Interface Design
//
// The Database interface provides three query methods:
//   - Query: Returns multiple results (for SELECT queries returning lists)
//   - QueryOne: Returns a single result (for SELECT by record id)
//   - Execute: No return value (for CREATE/UPDATE/DELETE mutations)
//
// # Transaction Support
//
// Transactions are BATCH-BASED, not connection-level. Queries are accumulated
// in memory and sent wrapped in BEGIN TRANSACTION / COMMIT TRANSACTION. Prefer
// AtomicBatch (transaction.go) over BeginTx().
//
// # Error Handling
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint or record id collision
//   - ErrRestricted: Delete refused while other records reference the row
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Every store driver (SurrealDB here, the in-memory store in memstore) reports
// duplicates with ErrDuplicate so callers can tell a lost create race apart from
// a failure:
//
//	if errors.Is(err, database.ErrDuplicate) {
//	    return ErrEventAlreadyExists
//	}
package database

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation or an existing record id.
	ErrDuplicate = errors.New("duplicate record")

	// ErrRestricted indicates a delete refused because other records still
	// reference the record.
	ErrRestricted = errors.New("record is still referenced")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error

	// Transaction support
	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction
type Transaction interface {
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
	Commit() error
	Rollback() error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
