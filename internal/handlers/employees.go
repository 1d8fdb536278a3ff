package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/ems/internal/lib/logger/sl"
	"github.com/UnknownOlympus/ems/internal/models"
	"github.com/go-chi/chi/v5"
)

// EmployeeService is the set of operations the HTTP layer needs from the employee service.
type EmployeeService interface {
	Create(ctx context.Context, employee models.Employee) (models.Employee, error)
	ListAll(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, identifier int) (models.Employee, error)
	Update(ctx context.Context, identifier int, fields models.Employee) (models.Employee, error)
	DeleteByID(ctx context.Context, identifier int) (string, error)
}

// EmployeeHandler serves the /api/employees resource.
type EmployeeHandler struct {
	svc EmployeeService
	log *slog.Logger
}

func NewEmployeeHandler(svc EmployeeService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		svc: svc,
		log: log.With(slog.String("division", "http")),
	}
}

// Routes mounts the employee endpoints on a fresh router.
func (h *EmployeeHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.Create)
	router.Get("/", h.List)
	router.Get("/{id}", h.Get)
	router.Put("/{id}", h.Update)
	router.Delete("/{id}", h.Delete)

	return router
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}

	created, err := h.svc.Create(r.Context(), employee)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusCreated, created)
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, employees)
}

// Get handles GET /api/employees/{id}.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	identifier, ok := h.parseID(w, r)
	if !ok {
		return
	}

	employee, err := h.svc.GetByID(r.Context(), identifier)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, employee)
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	identifier, ok := h.parseID(w, r)
	if !ok {
		return
	}

	fields, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.Update(r.Context(), identifier, fields)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, updated)
}

// Delete handles DELETE /api/employees/{id}.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identifier, ok := h.parseID(w, r)
	if !ok {
		return
	}

	message, err := h.svc.DeleteByID(r.Context(), identifier)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, MessageResponse{Message: message})
}

func (h *EmployeeHandler) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	identifier, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, http.StatusBadRequest, "employee id must be an integer")
		return 0, false
	}

	return identifier, true
}

func (h *EmployeeHandler) decodeEmployee(w http.ResponseWriter, r *http.Request) (models.Employee, bool) {
	var employee models.Employee

	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, h.log, http.StatusRequestEntityTooLarge, "request body too large")
			return models.Employee{}, false
		}

		writeError(w, r, h.log, http.StatusBadRequest, "invalid request body")
		return models.Employee{}, false
	}

	return employee, true
}

// handleServiceError maps service errors to HTTP responses.
func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, models.ErrEmployeeNotFound) {
		writeError(w, r, h.log, http.StatusNotFound, "employee not found")
		return
	}

	h.log.ErrorContext(r.Context(), "Internal error", sl.Err(err))
	writeError(w, r, h.log, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
