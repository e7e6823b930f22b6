// Package handler exposes the definitions service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vardef/internal/definitions/models"
	"vardef/internal/platform/middleware"
	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/platform/httputil"
	"vardef/pkg/requestcontext"
)

const (
	paramDate      = "date_of_validity"
	paramValidFrom = "valid_from"
	paramRender    = "render"
	paramLanguage  = "language"
)

// Service defines the definition operations the handler serves.
type Service interface {
	CreateDefinition(ctx context.Context, draft models.Draft, activeGroup string) (*models.SavedVariableDefinition, error)
	CreateValidityPeriod(ctx context.Context, definitionID string, in models.NewValidityPeriod) (*models.SavedVariableDefinition, error)
	ApplyPatch(ctx context.Context, definitionID string, validFrom *models.Date, changes models.Patch) (*models.SavedVariableDefinition, error)
	GetCurrent(ctx context.Context, definitionID string) (*models.SavedVariableDefinition, error)
	GetAtDate(ctx context.Context, definitionID string, date models.Date) (*models.SavedVariableDefinition, error)
	ListHistory(ctx context.Context, definitionID string) ([]*models.SavedVariableDefinition, error)
	GetPatch(ctx context.Context, definitionID string, validFrom *models.Date, patchID int) (*models.SavedVariableDefinition, error)
	ListValidityPeriods(ctx context.Context, definitionID string) ([]*models.SavedVariableDefinition, error)
	ListDefinitions(ctx context.Context, date *models.Date) ([]*models.SavedVariableDefinition, error)
	Render(r *models.SavedVariableDefinition, language models.SupportedLanguage) (*models.RenderedVariableDefinition, error)
}

// Handler handles variable definition endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the routes on r. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/variable-definitions", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Get("/patches", h.handleListPatches)
			r.Post("/patches", h.handleApplyPatch)
			r.Get("/patches/{patchId}", h.handleGetPatch)
			r.Get("/validity-periods", h.handleListValidityPeriods)
			r.Post("/validity-periods", h.handleCreateValidityPeriod)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var draft models.Draft
	if !h.decode(w, r, &draft) {
		return
	}
	created, err := h.service.CreateDefinition(ctx, draft, r.URL.Query().Get(middleware.ActiveGroupParam))
	if err != nil {
		h.writeError(ctx, w, "create variable definition", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date, err := optionalDate(r, paramDate)
	if err != nil {
		h.writeError(ctx, w, "list variable definitions", err)
		return
	}
	list, err := h.service.ListDefinitions(ctx, date)
	if err != nil {
		h.writeError(ctx, w, "list variable definitions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// handleGet returns the current patch, or the one valid at date_of_validity.
// render=true returns the single-language view.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	date, err := optionalDate(r, paramDate)
	if err != nil {
		h.writeError(ctx, w, "get variable definition", err)
		return
	}

	var record *models.SavedVariableDefinition
	if date != nil {
		record, err = h.service.GetAtDate(ctx, id, *date)
	} else {
		record, err = h.service.GetCurrent(ctx, id)
	}
	if err != nil {
		h.writeError(ctx, w, "get variable definition", err)
		return
	}

	if render, _ := strconv.ParseBool(r.URL.Query().Get(paramRender)); render {
		language := models.SupportedLanguage(r.URL.Query().Get(paramLanguage))
		if language == "" {
			language = models.LanguageBokmal
		}
		rendered, err := h.service.Render(record, language)
		if err != nil {
			h.writeError(ctx, w, "render variable definition", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, rendered)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleListPatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.ListHistory(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "list patches", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetPatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	patchID, err := strconv.Atoi(chi.URLParam(r, "patchId"))
	if err != nil || patchID < 1 {
		h.writeError(ctx, w, "get patch", dErrors.New(dErrors.CodeBadRequest, "patchId must be a positive integer"))
		return
	}
	validFrom, err := optionalDate(r, paramValidFrom)
	if err != nil {
		h.writeError(ctx, w, "get patch", err)
		return
	}
	record, err := h.service.GetPatch(ctx, chi.URLParam(r, "id"), validFrom, patchID)
	if err != nil {
		h.writeError(ctx, w, "get patch", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleApplyPatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	validFrom, err := optionalDate(r, paramValidFrom)
	if err != nil {
		h.writeError(ctx, w, "apply patch", err)
		return
	}
	var changes models.Patch
	if !h.decode(w, r, &changes) {
		return
	}
	record, err := h.service.ApplyPatch(ctx, chi.URLParam(r, "id"), validFrom, changes)
	if err != nil {
		h.writeError(ctx, w, "apply patch", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleListValidityPeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.ListValidityPeriods(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "list validity periods", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// handleCreateValidityPeriod takes a flat body: the period bounds plus the changes
// to apply over the preceding period.
func (h *Handler) handleCreateValidityPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body models.Patch
	if !h.decode(w, r, &body) {
		return
	}
	if body.ValidFrom == nil {
		h.writeError(ctx, w, "create validity period", dErrors.New(dErrors.CodeBadRequest, "validFrom is required"))
		return
	}
	in := models.NewValidityPeriod{
		ValidFrom:  *body.ValidFrom,
		ValidUntil: body.ValidUntil,
		Changes:    body,
	}
	record, err := h.service.CreateValidityPeriod(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(ctx, w, "create validity period", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		ctx := r.Context()
		h.logger.WarnContext(ctx, "invalid request body",
			"path", r.URL.Path,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+op,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
	} else {
		h.logger.WarnContext(ctx, "rejected "+op,
			"code", string(dErrors.CodeOf(err)),
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}

func optionalDate(r *http.Request, param string) (*models.Date, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, param+" must be a date (yyyy-mm-dd)")
	}
	return &d, nil
}
