package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/forgo/agenda/internal/middleware"
	"github.com/forgo/agenda/internal/model"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteMessage writes the {message} body used by mutating endpoints
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, model.MessageResponse{Message: message})
}

// WriteFailure writes a failure body
func WriteFailure(w http.ResponseWriter, f *model.Failure) {
	WriteJSON(w, f.Status, f)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// ErrorWriter renders service errors. With ExposeErrors set the text of an
// unexpected error travels in the excepcion field; coded failures never
// carry it.
type ErrorWriter struct {
	ExposeErrors bool
}

// Write maps err and writes the failure. Errors that are not domain
// failures are logged with the request id.
func (e ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	f := MapServiceError(err)

	if f.Code == model.ErrCodeServer {
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
	}

	var direct *model.Failure
	if e.ExposeErrors && f.Code == model.ErrCodeServer && !errors.As(err, &direct) {
		f.WithException(err)
	}
	WriteFailure(w, f)
}
