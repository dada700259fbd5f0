package reportshandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/audit"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/reports"
	"peoplehub/internal/platform/jobs"
	"peoplehub/internal/platform/metrics"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
	Audit   *audit.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

func NewHandler(service *reports.Service, auditSvc *audit.Service, jobsSvc *jobs.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Jobs: jobsSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleHR)).Get("/balances", h.handleBalanceReport)
		r.With(middleware.RequireAuth).Get("/statement/{employeeID}", h.handleStatementPDF)
		r.With(middleware.RequireAuth).Get("/calendar/export", h.handleCalendarExport)
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/job-runs", h.handleJobRuns)
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/audit", h.handleAuditLog)
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/metrics", h.handleMetrics)
	})
}

func (h *Handler) handleBalanceReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.BalanceReport(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build balance report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatementPDF(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if user.RoleName == auth.RoleEmployee && employeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your statement", middleware.GetRequestID(r.Context()))
		return
	}

	pdfBytes, err := h.Service.StatementPDF(r.Context(), employeeID, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statement_failed", "failed to render leave statement", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=leave-statement.pdf")
	_, _ = w.Write(pdfBytes)
}

func (h *Handler) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	csvBytes, err := h.Service.CalendarCSV(r.Context(), user.RoleName, user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export leave calendar", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=leave-calendar.csv")
	_, _ = w.Write(csvBytes)
}

func (h *Handler) handleJobRuns(w http.ResponseWriter, r *http.Request) {
	pagination := shared.ParsePagination(r, 50, 200)
	runs, err := h.Jobs.ListJobRuns(r.Context(), r.URL.Query().Get("type"), pagination.Limit, pagination.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "job_runs_failed", "failed to list job runs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, runs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	pagination := shared.ParsePagination(r, 50, 200)
	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorID:    r.URL.Query().Get("actorId"),
	}
	events, err := h.Audit.List(r.Context(), filter, pagination.Limit, pagination.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to list audit events", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.Metrics == nil {
		api.Success(w, map[string]any{}, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}
