// Package testdb provides test database utilities for the Agenda API.
//
// # Test Database Setup
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//	}
//
// New skips the calling test unless TEST_DB_HOST points at a SurrealDB
// instance. TEST_DB_PORT, TEST_DB_USER and TEST_DB_PASSWORD default to
// 8000, root and root.
//
// # Isolation
//
// Each TestDB gets its own namespace (test_<nanos>_<n>) with the embedded
// schema applied. Close removes the namespace. Reset empties every table
// for subtests that share one TestDB.
package testdb
