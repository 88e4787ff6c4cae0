package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"talentgate/internal/candidacy/models"
	dErrors "talentgate/pkg/domain-errors"
	"talentgate/pkg/platform/httputil"
	"talentgate/pkg/requestcontext"
)

// Engine defines the workflow operations the transport needs.
type Engine interface {
	Apply(ctx context.Context, jobID uuid.UUID) (*models.Application, error)
	Interview(ctx context.Context, username string, jobID uuid.UUID) (*models.Application, error)
	Approve(ctx context.Context, username string, jobID uuid.UUID) (*models.Application, error)
	Reject(ctx context.Context, username string, jobID uuid.UUID) (*models.Application, error)
}

// Handler exposes the workflow operations. Apply requires any
// authenticated session (the engine enforces the candidate role); the
// advance operations additionally require the recruiter role.
type Handler struct {
	engine         Engine
	logger         *slog.Logger
	requireAuth    func(http.Handler) http.Handler
	requireRecruit func(http.Handler) http.Handler
}

func New(engine Engine, logger *slog.Logger, requireAuth, requireRecruiter func(http.Handler) http.Handler) *Handler {
	return &Handler{
		engine:         engine,
		logger:         logger,
		requireAuth:    requireAuth,
		requireRecruit: requireRecruiter,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/jobs/{jobID}/apply", h.handleApply)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth, h.requireRecruit)
		r.Post("/jobs/{jobID}/interview", h.advanceHandler(h.engine.Interview))
		r.Post("/jobs/{jobID}/approve", h.advanceHandler(h.engine.Approve))
		r.Post("/jobs/{jobID}/reject", h.advanceHandler(h.engine.Reject))
	})
}

type advanceRequest struct {
	Username string `json:"username"`
}

type applicationResponse struct {
	JobID    string `json:"job_id"`
	Username string `json:"username"`
	State    string `json:"state"`
}

func toApplicationResponse(a *models.Application) applicationResponse {
	return applicationResponse{
		JobID:    a.JobID.String(),
		Username: a.Username,
		State:    a.State.String(),
	}
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid job id"))
		return
	}

	application, err := h.engine.Apply(ctx, jobID)
	if err != nil {
		h.logger.WarnContext(ctx, "apply failed",
			"job_id", jobID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toApplicationResponse(application))
}

func (h *Handler) advanceHandler(advance func(context.Context, string, uuid.UUID) (*models.Application, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid job id"))
			return
		}

		var req advanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "username is required"))
			return
		}

		application, err := advance(ctx, req.Username, jobID)
		if err != nil {
			h.logger.WarnContext(ctx, "advance failed",
				"job_id", jobID,
				"username", req.Username,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(application))
	}
}
