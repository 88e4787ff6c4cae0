package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"talentgate/internal/audit"
	"talentgate/internal/posting/models"
	dErrors "talentgate/pkg/domain-errors"
	"talentgate/pkg/platform/httputil"
	"talentgate/pkg/requestcontext"
)

// Service defines the posting operations the transport needs.
type Service interface {
	Create(ctx context.Context, name string) (*models.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Posting, error)
	List(ctx context.Context) ([]*models.Posting, error)
}

// AuditReader exposes a posting's audit trail.
type AuditReader interface {
	List(ctx context.Context, jobID uuid.UUID) ([]audit.Event, error)
}

// Handler exposes the job registry. Listing and lookup are public; creation
// and the audit trail are recruiter-only.
type Handler struct {
	postings       Service
	auditTrail     AuditReader
	logger         *slog.Logger
	requireAuth    func(http.Handler) http.Handler
	requireRecruit func(http.Handler) http.Handler
}

func New(postings Service, auditTrail AuditReader, logger *slog.Logger, requireAuth, requireRecruiter func(http.Handler) http.Handler) *Handler {
	return &Handler{
		postings:       postings,
		auditTrail:     auditTrail,
		logger:         logger,
		requireAuth:    requireAuth,
		requireRecruit: requireRecruiter,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/jobs", h.handleList)
	r.Get("/jobs/{jobID}", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth, h.requireRecruit)
		r.Post("/jobs", h.handleCreate)
		r.Get("/jobs/{jobID}/audit", h.handleAudit)
	})
}

type createRequest struct {
	Name string `json:"name"`
}

type postingResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Status     string            `json:"status"`
	Applicants map[string]string `json:"applicants"`
	CreatedAt  time.Time         `json:"created_at"`
	ClosedAt   *time.Time        `json:"closed_at,omitempty"`
}

func toPostingResponse(p *models.Posting) postingResponse {
	applicants := make(map[string]string, len(p.Applicants))
	for username, state := range p.Applicants {
		applicants[username] = state.String()
	}
	return postingResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Status:     p.Status.String(),
		Applicants: applicants,
		CreatedAt:  p.CreatedAt,
		ClosedAt:   p.ClosedAt,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	postings, err := h.postings.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]postingResponse, 0, len(postings))
	for _, posting := range postings {
		out = append(out, toPostingResponse(posting))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"jobs": out})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid job id"))
		return
	}
	posting, err := h.postings.Get(r.Context(), jobID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPostingResponse(posting))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	posting, err := h.postings.Create(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "posting creation failed",
			"name", req.Name,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toPostingResponse(posting))
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid job id"))
		return
	}
	events, err := h.auditTrail.List(r.Context(), jobID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load audit trail"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
