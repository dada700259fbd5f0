package leavehandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/audit"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/leave"
	"peoplehub/internal/domain/notifications"
	"peoplehub/internal/platform/jobs"
	"peoplehub/internal/platform/metrics"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Notify  *notifications.Service
	Audit   *audit.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

func NewHandler(service *leave.Service, notify *notifications.Service, auditSvc *audit.Service, jobsSvc *jobs.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Notify: notify, Audit: auditSvc, Jobs: jobsSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/types", h.handleListTypes)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/types", h.handleCreateType)

		r.With(middleware.RequireAuth).Get("/balance", h.handleMyBalance)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleHR)).Get("/balances/{employeeID}", h.handleEmployeeBalance)

		r.With(middleware.RequireAuth).Get("/requests", h.handleListRequests)
		r.With(middleware.RequireAuth).Get("/requests/{requestID}", h.handleGetRequest)
		r.With(middleware.RequireAuth).Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleHR)).Post("/requests/{requestID}/approve", h.handleApproveRequest)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleHR)).Post("/requests/{requestID}/reject", h.handleRejectRequest)
		r.With(middleware.RequireAuth).Post("/requests/{requestID}/cancel", h.handleCancelRequest)

		r.With(middleware.RequireRole(auth.RoleHR)).Post("/carryover/run", h.handleRunCarryover)
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/carryover/upcoming", h.handleUpcomingAnniversaries)
		r.With(middleware.RequireRole(auth.RoleHR)).Put("/carryover/{employeeID}", h.handleAdjustCarryover)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_types_failed", "failed to list leave types", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, types, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	var payload leave.LeaveType
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateType(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_type_create_failed", "failed to create leave type", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMyBalance(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user has no employee record", middleware.GetRequestID(r.Context()))
		return
	}
	snapshot, err := h.Service.MyBalance(r.Context(), user.EmployeeID, time.Now())
	if err != nil {
		h.failBalance(w, r, err)
		return
	}
	api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	detail, err := h.Service.Balance(r.Context(), employeeID, time.Now())
	if err != nil {
		h.failBalance(w, r, err)
		return
	}
	api.Success(w, detail, middleware.GetRequestID(r.Context()))
}

// failBalance maps engine errors onto API responses. A missing hiring
// date is a data configuration fault, not a client mistake.
func (h *Handler) failBalance(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
	case errors.Is(err, leave.ErrMissingHiringDate):
		api.Fail(w, http.StatusConflict, "missing_hiring_date", "employee has no hiring date configured", reqID)
	case errors.Is(err, leave.ErrStoreUnavailable):
		api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "leave store unavailable", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "balance_failed", "failed to compute balance", reqID)
	}
}

type createRequestPayload struct {
	LeaveTypeID string `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "user has no employee record", reqID)
		return
	}

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	startDate, err := shared.ParseDate(payload.StartDate)
	if err != nil || startDate.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid start date", reqID)
		return
	}
	endDate, err := shared.ParseDate(payload.EndDate)
	if err != nil || endDate.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid end date", reqID)
		return
	}

	record, err := h.Service.CreateRequest(r.Context(), time.Now(), leave.AdmitParams{
		EmployeeID:  user.EmployeeID,
		LeaveTypeID: payload.LeaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      payload.Reason,
	})
	if err != nil {
		var insufficient *leave.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			if h.Metrics != nil {
				h.Metrics.RecordRejectedAdmission()
			}
			api.FailWith(w, http.StatusUnprocessableEntity, "insufficient_balance", insufficient.Error(), map[string]int{
				"requested": insufficient.Requested,
				"available": insufficient.Available,
			}, reqID)
		case errors.Is(err, leave.ErrInvalidRange):
			api.Fail(w, http.StatusBadRequest, "invalid_range", "end date before start date", reqID)
		case errors.Is(err, leave.ErrMissingHiringDate):
			api.Fail(w, http.StatusConflict, "missing_hiring_date", "employee has no hiring date configured", reqID)
		case errors.Is(err, leave.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		case errors.Is(err, leave.ErrStoreUnavailable):
			api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "leave store unavailable", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "request_failed", "failed to create leave request", reqID)
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "leave.request.create", "leave_record", record.ID, reqID, record); err != nil {
		slog.Warn("audit leave.request.create failed", "err", err)
	}
	if h.Notify != nil {
		body := record.StartDate.Format("2006-01-02") + " to " + record.EndDate.Format("2006-01-02")
		if err := h.Notify.CreateForManagerOf(r.Context(), record.EmployeeID, notifications.TypeLeaveRequested, "New leave request", body); err != nil {
			slog.Warn("leave request notification failed", "err", err)
		}
	}
	api.Created(w, record, reqID)
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	pagination := shared.ParsePagination(r, 50, 200)

	result, err := h.Service.ListRequests(r.Context(), user.RoleName, user.EmployeeID, user.EmployeeID, pagination.Limit, pagination.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "requests_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	record, err := h.Service.GetRequest(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "request_not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName == auth.RoleEmployee && record.EmployeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	Comments string `json:"comments"`
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, true)
}

func (h *Handler) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, false)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, approve bool) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")
	reqID := middleware.GetRequestID(r.Context())

	var payload decisionPayload
	_ = json.NewDecoder(r.Body).Decode(&payload)

	var record leave.LeaveRecord
	var err error
	if approve {
		record, err = h.Service.ApproveRequest(r.Context(), requestID, user.EmployeeID, user.RoleName, payload.Comments)
	} else {
		record, err = h.Service.RejectRequest(r.Context(), requestID, user.EmployeeID, user.RoleName, payload.Comments)
	}
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrRequestNotFound):
			api.Fail(w, http.StatusNotFound, "request_not_found", "leave request not found", reqID)
		case errors.Is(err, leave.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "invalid_state", "request is not pending", reqID)
		case errors.Is(err, leave.ErrForbidden):
			api.Fail(w, http.StatusForbidden, "forbidden", "not authorized to decide this request", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "decision_failed", "failed to update leave request", reqID)
		}
		return
	}

	action := "leave.request.approve"
	if !approve {
		action = "leave.request.reject"
	}
	if err := h.Audit.Record(r.Context(), user.UserID, action, "leave_record", record.ID, reqID, record); err != nil {
		slog.Warn("audit leave decision failed", "err", err)
	}
	h.notifyDecision(r, record)
	api.Success(w, record, reqID)
}

func (h *Handler) notifyDecision(r *http.Request, record leave.LeaveRecord) {
	if h.Notify == nil {
		return
	}
	title := "Leave request " + record.Status
	body := record.StartDate.Format("2006-01-02") + " to " + record.EndDate.Format("2006-01-02")
	if err := h.Notify.CreateForEmployee(r.Context(), record.EmployeeID, notifications.TypeLeaveDecided, title, body); err != nil {
		slog.Warn("leave decision notification failed", "err", err)
	}
}

func (h *Handler) handleCancelRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Service.CancelRequest(r.Context(), requestID, user.EmployeeID); err != nil {
		switch {
		case errors.Is(err, leave.ErrRequestNotFound):
			api.Fail(w, http.StatusNotFound, "request_not_found", "leave request not found", reqID)
		case errors.Is(err, leave.ErrForbidden):
			api.Fail(w, http.StatusForbidden, "forbidden", "not your request", reqID)
		case errors.Is(err, leave.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "invalid_state", "only pending requests can be cancelled", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "cancel_failed", "failed to cancel leave request", reqID)
		}
		return
	}
	if h.Notify != nil {
		if err := h.Notify.CreateForManagerOf(r.Context(), user.EmployeeID, notifications.TypeLeaveDecided, "Leave request cancelled", "Request "+requestID+" was withdrawn"); err != nil {
			slog.Warn("leave cancel notification failed", "err", err)
		}
	}
	api.Success(w, map[string]bool{"cancelled": true}, reqID)
}

type carryoverRunPayload struct {
	EmployeeID string `json:"employeeId"`
}

// handleRunCarryover runs the rollover for one employee when an ID is
// given, or for everyone otherwise. The batch goes through the job
// runner so the run is recorded.
func (h *Handler) handleRunCarryover(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	var payload carryoverRunPayload
	_ = json.NewDecoder(r.Body).Decode(&payload)

	if payload.EmployeeID != "" {
		result, err := h.Service.RunCarryover(r.Context(), payload.EmployeeID, time.Now())
		if err != nil {
			switch {
			case errors.Is(err, leave.ErrEmployeeNotFound):
				api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			case errors.Is(err, leave.ErrMissingHiringDate):
				api.Fail(w, http.StatusConflict, "missing_hiring_date", "employee has no hiring date configured", reqID)
			default:
				api.Fail(w, http.StatusInternalServerError, "carryover_failed", "failed to run carryover", reqID)
			}
			return
		}
		if err := h.Audit.Record(r.Context(), user.UserID, "leave.carryover.run", "employee", payload.EmployeeID, reqID, result); err != nil {
			slog.Warn("audit carryover failed", "err", err)
		}
		api.Success(w, result, reqID)
		return
	}

	details, err := h.Jobs.RunNow(r.Context(), jobs.JobCarryover, func(ctx context.Context) (any, error) {
		return h.Service.RunCarryoverBatch(ctx, time.Now())
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "carryover_failed", "failed to run carryover batch", reqID)
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "leave.carryover.batch", "employee", "", reqID, details); err != nil {
		slog.Warn("audit carryover batch failed", "err", err)
	}
	api.Success(w, details, reqID)
}

func (h *Handler) handleUpcomingAnniversaries(w http.ResponseWriter, r *http.Request) {
	daysAhead := 14
	if raw := r.URL.Query().Get("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			daysAhead = v
		}
	}
	due, err := h.Service.UpcomingAnniversaries(r.Context(), time.Now(), daysAhead)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upcoming_failed", "failed to list upcoming anniversaries", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, due, middleware.GetRequestID(r.Context()))
}

type adjustCarryoverPayload struct {
	Days int `json:"days"`
}

func (h *Handler) handleAdjustCarryover(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	reqID := middleware.GetRequestID(r.Context())

	var payload adjustCarryoverPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	applied, err := h.Service.AdjustCarryover(r.Context(), employeeID, payload.Days, time.Now())
	if err != nil {
		if errors.Is(err, leave.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "adjust_failed", "failed to adjust carryover", reqID)
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "leave.carryover.adjust", "employee", employeeID, reqID, map[string]int{"requested": payload.Days, "applied": applied}); err != nil {
		slog.Warn("audit carryover adjust failed", "err", err)
	}
	api.Success(w, map[string]int{"carriedForward": applied}, reqID)
}
