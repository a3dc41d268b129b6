package handler

import (
	"net/http"

	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/service"
)

// CategoryHandler handles the /events/categories endpoints
type CategoryHandler struct {
	categoryService *service.CategoryService
	errors          ErrorWriter
}

// CategoryHandlerConfig holds dependencies for the category handler
type CategoryHandlerConfig struct {
	CategoryService *service.CategoryService
	ExposeErrors    bool
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(cfg CategoryHandlerConfig) *CategoryHandler {
	return &CategoryHandler{
		categoryService: cfg.CategoryService,
		errors:          ErrorWriter{ExposeErrors: cfg.ExposeErrors},
	}
}

// RegisterRoutes registers category routes behind the given guard
func (h *CategoryHandler) RegisterRoutes(mux *http.ServeMux, guard Guard) {
	mux.Handle("POST /events/categories/{$}", guard(h.Create, service.RoleTeacher))
	mux.Handle("GET /events/categories/{$}", guard(h.List, service.RoleTeacher))
	mux.Handle("GET /events/categories/{name}", guard(h.Get, service.RoleTeacher))
	mux.Handle("DELETE /events/categories/{name}", guard(h.Delete, service.RoleTeacher))
}

// Create handles POST /events/categories/
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteFailure(w, model.NewBadRequestError("Cuerpo de la petición no válido."))
		return
	}

	if _, err := h.categoryService.Create(r.Context(), &req); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementAdded)
}

// List handles GET /events/categories/
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListAll(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	if categories == nil {
		categories = []*model.Category{}
	}
	WriteJSON(w, http.StatusOK, categories)
}

// Get handles GET /events/categories/{name}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /events/categories/{name}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryService.Delete(r.Context(), r.PathValue("name")); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	WriteMessage(w, model.MsgElementDeleted)
}
