// Package service implements the business logic layer for the Agenda API.
//
// The service package holds validation, identity and authorization rules
// around the three entities: users, categories and events. Services are
// the only layer that decides whether an operation is allowed.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces. Both store drivers
// (repository for SurrealDB, memstore for in-process) satisfy them.
//
// # Access Rules
//
// CanAccessEvent and CanDeleteEvent in access.go are pure functions of the
// caller Identity and the stored Event:
//
//	read:           admin, direction, or owner
//	delete/replace: admin or owner
//
// # Example Usage
//
//	users := NewUserService(UserServiceConfig{UserRepo: userRepo})
//	categories := NewCategoryService(CategoryServiceConfig{CategoryRepo: categoryRepo})
//	events := NewEventService(EventServiceConfig{
//	    EventRepo:  eventRepo,
//	    Categories: categories,
//	    Users:      users,
//	})
//	event, err := events.Create(ctx, identity, &model.EventRequest{...})
package service
