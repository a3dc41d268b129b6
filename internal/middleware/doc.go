// Package middleware provides HTTP middleware for the Agenda API.
//
// # Available Middleware
//
//   - Chain: composes middlewares, outermost first
//   - RequestID, Logger, Recovery, CORS, Compress: applied to every request
//   - Auth: bearer token validation, stores the caller Identity in context
//   - RequireRole: 403 unless the caller holds one of the listed roles
//   - RateLimit: token bucket per caller email, or per remote address
//
// # Context Values
//
//   - GetIdentity(ctx): the authenticated caller (email, name, roles)
//   - GetClaims(ctx): raw token claims
//   - GetRequestID(ctx): unique request identifier
//
// Failures are written as the same {codigo, message} body the handlers use.
package middleware
