package handler

import (
	"net/http"

	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/service"
)

// UserHandler handles the /events/users registry endpoints
type UserHandler struct {
	userService *service.UserService
	errors      ErrorWriter
}

// UserHandlerConfig holds dependencies for the user handler
type UserHandlerConfig struct {
	UserService  *service.UserService
	ExposeErrors bool
}

// NewUserHandler creates a new user handler
func NewUserHandler(cfg UserHandlerConfig) *UserHandler {
	return &UserHandler{
		userService: cfg.UserService,
		errors:      ErrorWriter{ExposeErrors: cfg.ExposeErrors},
	}
}

// RegisterRoutes registers user registry routes. Only admins manage users.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, guard Guard) {
	mux.Handle("POST /events/users/{$}", guard(h.Create, service.RoleAdmin))
	mux.Handle("PUT /events/users/{$}", guard(h.Update, service.RoleAdmin))
	mux.Handle("GET /events/users/{$}", guard(h.List, service.RoleAdmin))
	mux.Handle("DELETE /events/users/{email}", guard(h.Delete, service.RoleAdmin))
}

// Create handles POST /events/users/
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteFailure(w, model.NewBadRequestError("Cuerpo de la petición no válido."))
		return
	}

	if _, err := h.userService.Create(r.Context(), &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementAdded)
}

// Update handles PUT /events/users/
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteFailure(w, model.NewBadRequestError("Cuerpo de la petición no válido."))
		return
	}

	if _, err := h.userService.Update(r.Context(), &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementModified)
}

// List handles GET /events/users/
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListAll(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	if users == nil {
		users = []*model.User{}
	}
	WriteJSON(w, http.StatusOK, users)
}

// Delete handles DELETE /events/users/{email}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), r.PathValue("email")); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementDeleted)
}
