package rosterhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/payroll"
	"backoffice/internal/domain/roster"
	"backoffice/internal/transport/http/api"
	"backoffice/internal/transport/http/middleware"
	"backoffice/internal/transport/http/shared"
)

type Handler struct {
	Service *roster.Service
	Audit   *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *roster.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Perms: perms}
}

type shiftPayload struct {
	EmployeeID string `json:"employeeId"`
	Day        int    `json:"day"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermRosterRead, h.Perms)).Get("/restaurants", h.handleListRestaurants)

	r.Route("/roster/{restaurantID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRosterRead, h.Perms)).Get("/employees", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermRosterRead, h.Perms)).Get("/employees/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequirePermission(auth.PermRosterWrite, h.Perms)).Post("/employees", h.handleCreateEmployee)
		r.With(middleware.RequirePermission(auth.PermRosterWrite, h.Perms)).Put("/employees/{employeeID}", h.handleUpdateEmployee)
		r.With(middleware.RequirePermission(auth.PermRosterWrite, h.Perms)).Delete("/employees/{employeeID}", h.handleArchiveEmployee)
		r.With(middleware.RequirePermission(auth.PermRosterRead, h.Perms)).Get("/shifts", h.handleListShifts)
		r.With(middleware.RequirePermission(auth.PermRosterWrite, h.Perms)).Post("/shifts", h.handleCreateShift)
		r.With(middleware.RequirePermission(auth.PermRosterWrite, h.Perms)).Delete("/shifts/{shiftID}", h.handleDeleteShift)
	})
}

func (h *Handler) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Service.ListRestaurants(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list restaurants", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, restaurants, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	_, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	employees, err := h.Service.ListEmployees(r.Context(), restaurantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	_, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	employee, err := h.Service.GetEmployee(r.Context(), restaurantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, roster.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	user, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	var input roster.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateEmployee(r.Context(), restaurantID, input)
	if err != nil {
		h.failRosterError(w, r, err, "failed to create employee")
		return
	}
	h.record(r, user, restaurantID, "employee.create", "employee", id, nil, input)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	user, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	var input roster.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	before, err := h.Service.GetEmployee(r.Context(), restaurantID, employeeID)
	if err != nil {
		if errors.Is(err, roster.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateEmployee(r.Context(), restaurantID, employeeID, input); err != nil {
		h.failRosterError(w, r, err, "failed to update employee")
		return
	}
	h.record(r, user, restaurantID, "employee.update", "employee", employeeID, before, input)
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleArchiveEmployee(w http.ResponseWriter, r *http.Request) {
	user, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Service.ArchiveEmployee(r.Context(), restaurantID, employeeID); err != nil {
		if errors.Is(err, roster.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "archive_failed", "failed to archive employee", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, user, restaurantID, "employee.archive", "employee", employeeID, nil, nil)
	api.Success(w, map[string]string{"status": "archived"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListShifts(w http.ResponseWriter, r *http.Request) {
	_, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	shifts, err := h.Service.ListShifts(r.Context(), restaurantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list shifts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, shifts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	user, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	var payload shiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("employeeId", payload.EmployeeID, "employee is required")
	if payload.Day < 0 || payload.Day > 6 {
		validator.Add("day", "must be between 0 (Monday) and 6 (Sunday)")
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	shift := payroll.Shift{
		EmployeeID: strings.TrimSpace(payload.EmployeeID),
		Day:        payload.Day,
		Start:      strings.TrimSpace(payload.Start),
		End:        strings.TrimSpace(payload.End),
		Status:     strings.TrimSpace(payload.Status),
	}

	id, err := h.Service.CreateShift(r.Context(), restaurantID, shift)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrShiftIncomplete),
			errors.Is(err, payroll.ErrShiftAmbiguous),
			errors.Is(err, payroll.ErrShiftDayOutOfRange),
			errors.Is(err, payroll.ErrShiftBadClock):
			api.Fail(w, http.StatusBadRequest, "invalid_shift", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create shift", middleware.GetRequestID(r.Context()))
		}
		return
	}
	h.record(r, user, restaurantID, "shift.create", "shift", id, nil, shift)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteShift(w http.ResponseWriter, r *http.Request) {
	user, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}
	shiftID := chi.URLParam(r, "shiftID")
	if err := h.Service.DeleteShift(r.Context(), restaurantID, shiftID); err != nil {
		if errors.Is(err, roster.ErrShiftNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "shift not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete shift", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, user, restaurantID, "shift.delete", "shift", shiftID, nil, nil)
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failRosterError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, roster.ErrNameRequired),
		errors.Is(err, roster.ErrContractTypeInvalid),
		errors.Is(err, roster.ErrRateNegative):
		api.Fail(w, http.StatusBadRequest, "invalid_employee", err.Error(), middleware.GetRequestID(r.Context()))
	case errors.Is(err, roster.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "roster_error", fallback, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) record(r *http.Request, user auth.UserContext, restaurantID, action, entityType, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), restaurantID, user.UserID, action, entityType, entityID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) scopedRestaurant(w http.ResponseWriter, r *http.Request) (auth.UserContext, string, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return auth.UserContext{}, "", false
	}
	restaurantID := chi.URLParam(r, "restaurantID")
	if restaurantID == "" || restaurantID != user.RestaurantID {
		api.Fail(w, http.StatusForbidden, "forbidden", "restaurant scope mismatch", middleware.GetRequestID(r.Context()))
		return auth.UserContext{}, "", false
	}
	return user, restaurantID, true
}
