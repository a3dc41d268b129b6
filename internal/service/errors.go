package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here so handlers can
// map them with errors.Is.

// ===== User Errors =====
var (
	ErrEmailEmpty    = errors.New("user email is required")
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserHasEvents = errors.New("user still owns events")
)

// ===== Category Errors =====
var (
	ErrCategoryMissing   = errors.New("event category is required")
	ErrCategoryNameEmpty = errors.New("category name is required")
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
)

// ===== Event Errors =====
var (
	ErrEventsNotFound     = errors.New("no events for user")
	ErrInvalidTitle       = errors.New("event title is required")
	ErrInvalidDateRange   = errors.New("invalid event date range")
	ErrEventAlreadyExists = errors.New("event already exists")
	ErrEventNotFound      = errors.New("event not found")
)

// ===== Authorization Errors =====
var (
	ErrForbidden = errors.New("not allowed to act on this event")
)
