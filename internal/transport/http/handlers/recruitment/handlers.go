package recruitmenthandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/audit"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/notifications"
	"peoplehub/internal/domain/recruitment"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
)

type Handler struct {
	Service *recruitment.Service
	Audit   *audit.Service
	Notify  *notifications.Service
}

func NewHandler(service *recruitment.Service, auditSvc *audit.Service, notify *notifications.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recruitment", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/postings", h.handleListPostings)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/postings", h.handleCreatePosting)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/postings/{postingID}/close", h.handleClosePosting)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleHR)).Get("/postings/{postingID}/applications", h.handleListApplications)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/applications", h.handleCreateApplication)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleHR)).Post("/applications/{applicationID}/advance", h.handleAdvanceApplication)
	})
}

func (h *Handler) handleListPostings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	postings, err := h.Service.ListPostings(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "postings_failed", "failed to list job postings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, postings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload recruitment.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "title is required", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreatePosting(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "posting_create_failed", "failed to create job posting", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "recruitment.posting.create", "job_posting", id, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit posting.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClosePosting(w http.ResponseWriter, r *http.Request) {
	postingID := chi.URLParam(r, "postingID")
	if err := h.Service.ClosePosting(r.Context(), postingID); err != nil {
		api.Fail(w, http.StatusNotFound, "posting_not_found", "open job posting not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"closed": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	postingID := chi.URLParam(r, "postingID")
	applications, err := h.Service.ListApplications(r.Context(), postingID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "applications_failed", "failed to list applications", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, applications, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var payload recruitment.Application
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.PostingID == "" || strings.TrimSpace(payload.CandidateName) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "posting and candidate name are required", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateApplication(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "application_create_failed", "failed to create application", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

type advancePayload struct {
	Stage string `json:"stage"`
	Notes string `json:"notes"`
}

func (h *Handler) handleAdvanceApplication(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	applicationID := chi.URLParam(r, "applicationID")
	reqID := middleware.GetRequestID(r.Context())

	var payload advancePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	app, err := h.Service.AdvanceApplication(r.Context(), applicationID, payload.Stage, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, recruitment.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "application_not_found", "application not found", reqID)
		case errors.Is(err, recruitment.ErrInvalidTransition):
			api.Fail(w, http.StatusConflict, "invalid_transition", "stage transition not allowed", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "advance_failed", "failed to advance application", reqID)
		}
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "recruitment.application.advance", "application", app.ID, reqID, app); err != nil {
		slog.Warn("audit application.advance failed", "err", err)
	}
	if h.Notify != nil {
		title := "Application moved to " + app.Stage
		if err := h.Notify.CreateForRole(r.Context(), auth.RoleHR, notifications.TypeApplication, title, app.CandidateName); err != nil {
			slog.Warn("application notification failed", "err", err)
		}
	}
	api.Success(w, app, reqID)
}
