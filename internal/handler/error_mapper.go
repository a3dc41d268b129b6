package handler

import (
	"errors"

	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/service"
)

// domainFailures pairs each service sentinel with its wire code and message
var domainFailures = []struct {
	err     error
	code    model.ErrorCode
	message string
}{
	// ===== Users =====
	{service.ErrEmailEmpty, model.ErrCodeEmailEmpty, "El email del usuario no puede ser nulo ni vacío."},
	{service.ErrUserExists, model.ErrCodeUserExists, "El usuario ya existe en el sistema."},
	{service.ErrUserNotFound, model.ErrCodeUserNotFound, "El usuario no existe en el sistema."},
	{service.ErrUserHasEvents, model.ErrCodeUserHasEvents, "El usuario tiene eventos asociados."},

	// ===== Categories =====
	{service.ErrCategoryMissing, model.ErrCodeCategoryMissing, "La categoría del evento no puede ser nula ni vacía."},
	{service.ErrCategoryNameEmpty, model.ErrCodeCategoryNameEmpty, "El nombre de la categoría no puede ser nulo ni vacío."},
	{service.ErrCategoryExists, model.ErrCodeCategoryExists, "La categoría ya existe en el sistema."},
	{service.ErrCategoryNotFound, model.ErrCodeCategoryNotFound, "La categoría no existe en el sistema."},

	// ===== Events =====
	{service.ErrEventsNotFound, model.ErrCodeEventsNotFound, "No existen eventos para el usuario."},
	{service.ErrInvalidTitle, model.ErrCodeInvalidTitle, "El título del evento no puede ser nulo ni vacío."},
	{service.ErrInvalidDateRange, model.ErrCodeInvalidDateRange, "La fecha de fin no puede ser anterior a la fecha de inicio."},
	{service.ErrEventAlreadyExists, model.ErrCodeEventExists, "El evento ya existe en el sistema."},
	{service.ErrEventNotFound, model.ErrCodeEventNotFound, "El evento no existe en el sistema."},

	// ===== Authorization =====
	{service.ErrForbidden, model.ErrCodeForbidden, "No tiene permisos sobre el evento."},
}

// MapServiceError converts an error returned by a service into the failure
// sent to the client. Domain failures become 400 with their own code,
// anything else is a 500 server error.
func MapServiceError(err error) *model.Failure {
	if err == nil {
		return nil
	}

	var f *model.Failure
	if errors.As(err, &f) {
		return f
	}

	for _, d := range domainFailures {
		if errors.Is(err, d.err) {
			return model.NewDomainError(d.code, d.message)
		}
	}

	return model.NewServerError()
}
