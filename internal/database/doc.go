// Package database provides database connectivity for the Agenda API.
//
// # Connection Management
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "agenda",
//	    Database:  "main",
//	    User:      "root",
//	    Password:  "root",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
// # Schema
//
// The table definitions live in schema/*.surql and are embedded in the
// binary. EnsureSchema applies them; every statement is IF NOT EXISTS.
//
// Natural keys become record ids, so a second CREATE of the same key fails
// inside the database and surfaces as ErrDuplicate:
//
//	user:⟨ana@example.com⟩
//	category:⟨Work⟩
//	event:['Standup', 1000, 2000]
package database
