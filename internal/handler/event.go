package handler

import (
	"net/http"

	"github.com/forgo/agenda/internal/middleware"
	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/service"
)

// EventHandler handles the /events/manager endpoints
type EventHandler struct {
	eventService *service.EventService
	errors       ErrorWriter
}

// EventHandlerConfig holds dependencies for the event handler
type EventHandlerConfig struct {
	EventService *service.EventService
	ExposeErrors bool
}

// NewEventHandler creates a new event handler
func NewEventHandler(cfg EventHandlerConfig) *EventHandler {
	return &EventHandler{
		eventService: cfg.EventService,
		errors:       ErrorWriter{ExposeErrors: cfg.ExposeErrors},
	}
}

// RegisterRoutes registers event routes behind the given guard
func (h *EventHandler) RegisterRoutes(mux *http.ServeMux, guard Guard) {
	mux.Handle("POST /events/manager/{$}", guard(h.Create, service.RoleTeacher))
	mux.Handle("PUT /events/manager/{$}", guard(h.Update, service.RoleTeacher))
	mux.Handle("DELETE /events/manager/{$}", guard(h.Delete, service.RoleTeacher, service.RoleAdmin))
	mux.Handle("GET /events/manager/{$}", guard(h.List, service.RoleTeacher))
	mux.Handle("GET /events/manager/filtro", guard(h.GetByKey, service.RoleTeacher, service.RoleAdmin, service.RoleDirection))
	mux.Handle("GET /events/manager/calendar.ics", guard(h.Calendar, service.RoleTeacher, service.RoleAdmin, service.RoleDirection))
	mux.Handle("GET /events/manager/{email}", guard(h.ListMine, service.RoleTeacher, service.RoleAdmin))
}

// Create handles POST /events/manager/
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.EventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteFailure(w, model.NewBadRequestError("Cuerpo de la petición no válido."))
		return
	}

	if _, err := h.eventService.Create(r.Context(), middleware.GetIdentity(r.Context()), &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementAdded)
}

// Update handles PUT /events/manager/. The headers name the event to
// replace and the body carries its new content.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	oldKey, err := eventKeyFromHeaders(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	var req model.EventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteFailure(w, model.NewBadRequestError("Cuerpo de la petición no válido."))
		return
	}

	if _, err := h.eventService.Update(r.Context(), middleware.GetIdentity(r.Context()), oldKey, &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementModified)
}

// Delete handles DELETE /events/manager/
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, err := eventKeyFromHeaders(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	if err := h.eventService.Delete(r.Context(), middleware.GetIdentity(r.Context()), key); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementDeleted)
}

// GetByKey handles GET /events/manager/filtro
func (h *EventHandler) GetByKey(w http.ResponseWriter, r *http.Request) {
	key, err := eventKeyFromHeaders(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	event, err := h.eventService.GetByKey(r.Context(), middleware.GetIdentity(r.Context()), key)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, event.Summary())
}

// List handles GET /events/manager/ and returns every event
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.eventService.ListAll(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	if summaries == nil {
		summaries = []*model.EventSummary{}
	}
	WriteJSON(w, http.StatusOK, summaries)
}

// ListMine handles GET /events/manager/{email}. The listing is scoped by
// the token identity; the path segment is not trusted.
func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.eventService.ListForIdentity(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, summaries)
}

// Calendar handles GET /events/manager/calendar.ics
func (h *EventHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	body, err := h.eventService.ExportCalendar(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
