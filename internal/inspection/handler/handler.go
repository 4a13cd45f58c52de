// Package handler exposes the inspection workflow over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"donorcheck/internal/auditlog"
	"donorcheck/internal/inspection/auditdiff"
	"donorcheck/internal/inspection/models"
	"donorcheck/internal/inspection/service"
	"donorcheck/internal/inspection/store"
	"donorcheck/internal/inspection/validate"
	"donorcheck/internal/platform/middleware"
	"donorcheck/internal/transport/http/shared"
	dErrors "donorcheck/pkg/domain-errors"
	"donorcheck/pkg/requestcontext"
)

// Service defines the interface for inspection operations.
type Service interface {
	Submit(ctx context.Context, candidate models.Candidate) (models.InspectionRecord, error)
	Edit(ctx context.Context, id string, candidate models.Candidate, editor, reason string) (auditdiff.Result, error)
	Get(ctx context.Context, id string) (models.InspectionRecord, error)
	List(ctx context.Context) ([]models.InspectionRecord, error)
	ListRecent(ctx context.Context, filter store.RecentFilter) ([]models.InspectionRecord, error)
	Events(ctx context.Context, recordID string) ([]auditlog.Event, error)
	RecentEvents(ctx context.Context, limit int) ([]auditlog.Event, error)
}

// Handler handles inspection record endpoints.
type Handler struct {
	logger     *slog.Logger
	service    Service
	signingKey []byte
}

// New creates a new inspection Handler. signingKey enables bearer token
// identity when non-empty.
func New(svc Service, logger *slog.Logger, signingKey []byte) *Handler {
	return &Handler{logger: logger, service: svc, signingKey: signingKey}
}

// Register registers the inspection routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Identity(h.signingKey, h.logger))

	router.Post("/inspections", h.handleSubmit)
	router.Get("/inspections", h.handleList)
	router.Get("/inspections/recent", h.handleListRecent)
	router.Get("/inspections/events", h.handleRecentEvents)
	router.Get("/inspections/{id}", h.handleGet)
	router.Put("/inspections/{id}", h.handleEdit)
	router.Get("/inspections/{id}/events", h.handleEvents)

	r.Mount("/", router)
}

// EditRequest is the edit payload: the full replacement form plus the
// mandatory reason.
type EditRequest struct {
	models.Candidate
	EditReason string `json:"edit_reason"`
}

// EditResponse returns the stored record together with the field-level
// changes the edit produced.
type EditResponse struct {
	Record  models.InspectionRecord `json:"record"`
	Changes []auditdiff.FieldChange `json:"changes"`
}

// DuplicateResponse points the caller at the prior identical record.
type DuplicateResponse struct {
	Error                  string    `json:"error"`
	Message                string    `json:"message"`
	ExistingRecordID       string    `json:"existing_record_id"`
	ExistingSubmissionTime time.Time `json:"existing_submission_time"`
	ExistingSubmittedBy    string    `json:"existing_submitted_by"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var candidate models.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.logger.WarnContext(ctx, "invalid submit payload",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.defaultIdentity(ctx, &candidate)

	record, err := h.service.Submit(ctx, candidate)
	if err != nil {
		h.writeSubmitError(ctx, w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid edit payload",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.defaultIdentity(ctx, &req.Candidate)

	editor := requestcontext.UserEmail(ctx)
	if editor == "" && req.Candidate.UserEmail != nil {
		editor = *req.Candidate.UserEmail
	}

	result, err := h.service.Edit(ctx, id, req.Candidate, editor, req.EditReason)
	if err != nil {
		h.writeEditError(ctx, w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, EditResponse{
		Record:  result.UpdatedRecord,
		Changes: result.Changes,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list inspections failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list inspections"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (h *Handler) handleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	formDate, err := time.Parse(models.DateFormat, r.URL.Query().Get("form_date"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "form_date must be YYYY-MM-DD"))
		return
	}
	inspector := r.URL.Query().Get("inspector_name")
	if inspector == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "inspector_name is required"))
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
	}

	records, err := h.service.ListRecent(ctx, store.RecentFilter{
		FormDate:      formDate,
		InspectorName: inspector,
		Limit:         limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list recent inspections failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list recent inspections"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (h *Handler) handleRecentEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
	}

	events, err := h.service.RecentEvents(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list recent audit events failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.Events(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

// defaultIdentity fills user_email from the resolved identity when the form
// leaves it out. An explicit payload value always wins.
func (h *Handler) defaultIdentity(ctx context.Context, candidate *models.Candidate) {
	if candidate.UserEmail == nil {
		if email := requestcontext.UserEmail(ctx); email != "" {
			candidate.UserEmail = &email
		}
	}
	if candidate.InspectorName == nil {
		if name := requestcontext.UserName(ctx); name != "" {
			candidate.InspectorName = &name
		}
	}
}

func (h *Handler) writeSubmitError(ctx context.Context, w http.ResponseWriter, err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		h.logger.WarnContext(ctx, "submission failed validation",
			"request_id", middleware.GetRequestID(ctx),
			"fields", len(verrs),
		)
		shared.WriteJSON(w, http.StatusBadRequest, shared.ErrorResponse{
			Error:   "validation_failed",
			Message: "one or more fields are invalid",
			Details: verrs,
		})
		return
	}
	var dup *service.DuplicateError
	if errors.As(err, &dup) {
		shared.WriteJSON(w, http.StatusConflict, DuplicateResponse{
			Error:                  string(dErrors.CodeConflict),
			Message:                "an identical inspection record was already submitted",
			ExistingRecordID:       dup.Existing.ID,
			ExistingSubmissionTime: dup.Existing.SubmissionTime,
			ExistingSubmittedBy:    dup.Existing.UserEmail,
		})
		return
	}
	h.logger.ErrorContext(ctx, "submission failed",
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
	shared.WriteError(w, err)
}

func (h *Handler) writeEditError(ctx context.Context, w http.ResponseWriter, err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		h.logger.WarnContext(ctx, "edit failed validation",
			"request_id", middleware.GetRequestID(ctx),
			"fields", len(verrs),
		)
		shared.WriteJSON(w, http.StatusBadRequest, shared.ErrorResponse{
			Error:   "validation_failed",
			Message: "one or more fields are invalid",
			Details: verrs,
		})
		return
	}
	if !dErrors.HasCode(err, dErrors.CodeNotFound) {
		h.logger.ErrorContext(ctx, "edit failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	shared.WriteError(w, err)
}
