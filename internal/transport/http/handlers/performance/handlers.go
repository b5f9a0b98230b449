package performancehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/performance"
	"backoffice/internal/transport/http/api"
	"backoffice/internal/transport/http/middleware"
	"backoffice/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
	Audit   *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *performance.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance/{restaurantID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/dashboard", h.handleDashboard)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Post("/sales", h.handleRecordSales)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	_, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	granularity := strings.ToLower(strings.TrimSpace(query.Get("granularity")))
	if granularity == "" {
		granularity = performance.GranularityDay
	}

	validator := shared.NewValidator()
	from, fromOK := validator.Date("from", query.Get("from"))
	to, toOK := validator.Date("to", query.Get("to"))
	if fromOK && toOK {
		validator.DateOrder("from", from, "to", to)
	}
	validator.Enum("granularity", granularity,
		[]string{performance.GranularityDay, performance.GranularityWeek, performance.GranularityMonth},
		"must be day, week or month")
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	dashboard, err := h.Service.BuildDashboard(r.Context(), restaurantID, from, to, granularity)
	if err != nil {
		if errors.Is(err, performance.ErrRangeInvalid) || errors.Is(err, performance.ErrGranularityInvalid) {
			api.Fail(w, http.StatusBadRequest, "invalid_range", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "dashboard_error", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecordSales(w http.ResponseWriter, r *http.Request) {
	user, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}

	var input performance.SalesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	date, _ := validator.Date("date", input.Date)
	if input.Revenue < 0 {
		validator.Add("revenue", "cannot be negative")
	}
	if input.Covers < 0 {
		validator.Add("covers", "cannot be negative")
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.RecordSales(r.Context(), restaurantID, date, input.Revenue, input.Covers)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "record_failed", "failed to record sales", middleware.GetRequestID(r.Context()))
		return
	}

	if h.Audit != nil {
		err := h.Audit.Record(r.Context(), restaurantID, user.UserID, "sales.record", "sales_record", id,
			middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, input)
		if err != nil {
			slog.Warn("audit record failed", "action", "sales.record", "err", err)
		}
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
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
