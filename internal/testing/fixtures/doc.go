// Package fixtures provides test data factories for the Agenda API.
//
// # Factory Pattern
//
// Create a factory over any user, category and event store:
//
//	store := memstore.New()
//	f := fixtures.New(store.Users(), store.Categories(), store.Events())
//
// # Customization
//
// Use option functions for customization:
//
//	user := f.CreateUser(t, fixtures.WithEmail("ana@example.com"))
//	cat := f.CreateCategory(t, fixtures.WithCategoryName("Work"))
//	event := f.CreateEvent(t, user, cat, fixtures.WithKey("Standup", 1000, 2000))
//
// # Random Data
//
// Emails, category names and titles get random suffixes, and generated
// events get distinct one hour slots, so fixtures never collide.
package fixtures
