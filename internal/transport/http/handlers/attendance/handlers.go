package attendancehandler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/attendance"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/clock-in", h.handleClockIn)
		r.With(middleware.RequireAuth).Post("/clock-out", h.handleClockOut)
		r.With(middleware.RequireAuth).Get("/summary", h.handleMySummary)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleHR)).Get("/summary/{employeeID}", h.handleEmployeeSummary)
	})
}

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user has no employee record", reqID)
		return
	}

	rec, err := h.Service.ClockIn(r.Context(), user.EmployeeID, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			api.Fail(w, http.StatusConflict, "already_clocked_in", "an open attendance entry already exists", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "clock_in_failed", "failed to clock in", reqID)
		return
	}
	api.Created(w, rec, reqID)
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user has no employee record", reqID)
		return
	}

	rec, err := h.Service.ClockOut(r.Context(), user.EmployeeID, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) {
			api.Fail(w, http.StatusConflict, "not_clocked_in", "no open attendance entry", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "clock_out_failed", "failed to clock out", reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleMySummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user has no employee record", middleware.GetRequestID(r.Context()))
		return
	}
	h.writeSummary(w, r, user.EmployeeID)
}

func (h *Handler) handleEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	h.writeSummary(w, r, chi.URLParam(r, "employeeID"))
}

func (h *Handler) writeSummary(w http.ResponseWriter, r *http.Request, employeeID string) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			year = v
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = time.Month(v)
		}
	}

	summary, err := h.Service.MonthlySummary(r.Context(), employeeID, year, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build attendance summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
