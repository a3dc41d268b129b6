package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode is the stable numeric code carried in every failure body
type ErrorCode int

const (
	// User registry (1-4)
	ErrCodeEmailEmpty    ErrorCode = 1
	ErrCodeUserExists    ErrorCode = 2
	ErrCodeUserNotFound  ErrorCode = 3
	ErrCodeUserHasEvents ErrorCode = 4

	// Category registry (5-8)
	ErrCodeCategoryMissing   ErrorCode = 5
	ErrCodeCategoryNameEmpty ErrorCode = 6
	ErrCodeCategoryExists    ErrorCode = 7
	ErrCodeCategoryNotFound  ErrorCode = 8

	// Events (9-13)
	ErrCodeEventsNotFound   ErrorCode = 9
	ErrCodeInvalidTitle     ErrorCode = 10
	ErrCodeInvalidDateRange ErrorCode = 11
	ErrCodeEventExists      ErrorCode = 12
	ErrCodeEventNotFound    ErrorCode = 13

	ErrCodeForbidden ErrorCode = 19
	ErrCodeServer    ErrorCode = 20

	// Transport (21+)
	ErrCodeUnauthorized ErrorCode = 21
	ErrCodeRoleDenied   ErrorCode = 22
	ErrCodeRateLimited  ErrorCode = 23
	ErrCodeBadRequest   ErrorCode = 24
)

// Client facing messages
const (
	MsgElementAdded    = "Elemento agregado correctamente."
	MsgElementModified = "Elemento modificado correctamente."
	MsgElementDeleted  = "Elemento eliminado correctamente."
	MsgServerError     = "Error de servidor."
)

// Failure is the error body returned by every endpoint: {codigo, message, excepcion?}
type Failure struct {
	Status    int       `json:"-"`
	Code      ErrorCode `json:"codigo"`
	Message   string    `json:"message"`
	Exception string    `json:"excepcion,omitempty"`
}

// Error implements the error interface
func (f *Failure) Error() string {
	return fmt.Sprintf("[%d] %d: %s", f.Status, f.Code, f.Message)
}

// WithException attaches diagnostic detail for non-production environments
func (f *Failure) WithException(err error) *Failure {
	if err != nil {
		f.Exception = err.Error()
	}
	return f
}

// WriteJSON writes the failure as JSON response
func (f *Failure) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.Status)
	_ = json.NewEncoder(w).Encode(f)
}

// NewDomainError builds a 400 failure for a rejected domain operation
func NewDomainError(code ErrorCode, message string) *Failure {
	return &Failure{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
	}
}

func NewBadRequestError(message string) *Failure {
	return &Failure{
		Status:  http.StatusBadRequest,
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *Failure {
	return &Failure{
		Status:  http.StatusUnauthorized,
		Code:    ErrCodeUnauthorized,
		Message: message,
	}
}

func NewRoleDeniedError(message string) *Failure {
	return &Failure{
		Status:  http.StatusForbidden,
		Code:    ErrCodeRoleDenied,
		Message: message,
	}
}

func NewServerError() *Failure {
	return &Failure{
		Status:  http.StatusInternalServerError,
		Code:    ErrCodeServer,
		Message: MsgServerError,
	}
}

func NewRateLimitError(retryAfter int) *Failure {
	return &Failure{
		Status:  http.StatusTooManyRequests,
		Code:    ErrCodeRateLimited,
		Message: fmt.Sprintf("Demasiadas peticiones. Reintente en %d segundos.", retryAfter),
	}
}

// MessageResponse is the success body of mutating endpoints
type MessageResponse struct {
	Message string `json:"message"`
}
