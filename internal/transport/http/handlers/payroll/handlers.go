package payrollhandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/payroll"
	"backoffice/internal/transport/http/api"
	"backoffice/internal/transport/http/middleware"
)

type Handler struct {
	Service *payroll.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll/{restaurantID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermPayrollExport, h.Perms)).Get("/export/{format}", h.handleExport)
	})
}

// handleSummary recomputes the month's payroll on every call. The response is
// the filtered per-employee summaries plus a totals block folded from them.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	_, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}

	month, ok := parseMonthParam(w, r)
	if !ok {
		return
	}
	search := r.URL.Query().Get("search")
	contract := r.URL.Query().Get("contract")

	summaries, totals, err := h.Service.MonthSummaries(r.Context(), restaurantID, month, search, contract)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_error", "failed to build payroll summary", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"month":     month.String(),
		"summaries": summaries,
		"totals":    totals,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	_, restaurantID, ok := h.scopedRestaurant(w, r)
	if !ok {
		return
	}

	month, ok := parseMonthParam(w, r)
	if !ok {
		return
	}
	search := r.URL.Query().Get("search")
	contract := r.URL.Query().Get("contract")
	format := strings.ToLower(chi.URLParam(r, "format"))

	summaries, totals, err := h.Service.MonthSummaries(r.Context(), restaurantID, month, search, contract)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_error", "failed to build payroll summary", middleware.GetRequestID(r.Context()))
		return
	}

	filename := fmt.Sprintf("payroll-%s.%s", month.String(), format)
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		err = payroll.WriteCSV(w, month, summaries, totals)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		err = payroll.WriteXLSX(w, month, summaries, totals)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		err = payroll.WritePDF(w, month, summaries, totals)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be csv, xlsx or pdf", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		// Headers are already out; log and let the truncated stream signal it.
		slog.Warn("payroll export failed", "format", format, "month", month.String(), "err", err)
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

func parseMonthParam(w http.ResponseWriter, r *http.Request) (payroll.Month, bool) {
	month, err := payroll.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be in YYYY-MM format", middleware.GetRequestID(r.Context()))
		return payroll.Month{}, false
	}
	return month, true
}
