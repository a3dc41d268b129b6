// Package handler provides the HTTP endpoints of the Agenda API.
//
// Each handler (events, categories, users, health) is built from a config
// struct and registers its own routes on a ServeMux through RegisterRoutes.
// Protected routes go through a Guard, which validates the bearer token,
// applies the per-caller rate limit and checks the caller's roles.
//
// # Responses
//
//   - WriteMessage: {message} body of mutating endpoints
//   - WriteJSON: plain JSON payloads and lists
//   - ErrorWriter / MapServiceError: service errors as {codigo, message}
//
// Domain failures are answered with 400, unexpected errors with 500.
//
// # Example Usage
//
//	mux := handler.NewRouter(handler.RouterConfig{
//	    Auth:   jwtService,
//	    Events: handler.NewEventHandler(handler.EventHandlerConfig{EventService: events}),
//	})
package handler
