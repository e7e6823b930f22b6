// Package handler exposes Vardok migration over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vardef/internal/migration/models"
	"vardef/internal/platform/middleware"
	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/platform/httputil"
	"vardef/pkg/requestcontext"
)

type Service interface {
	Migrate(ctx context.Context, vardokID, activeGroup string) (*models.Result, error)
	Repair(ctx context.Context, vardokID string) (*models.Mapping, error)
	RepairAll(ctx context.Context, vardokIDs []string) (*models.RepairReport, error)
	GetMapping(ctx context.Context, vardokID string) (*models.Mapping, error)
	ListMappings(ctx context.Context) ([]*models.Mapping, error)
}

// RepairRequest is the body of a bulk repair.
type RepairRequest struct {
	VardokIDs []string `json:"vardokIds"`
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/vardok-migration", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/repair", h.handleRepairAll)
		r.Get("/{vardok_id}", h.handleGet)
		r.Post("/{vardok_id}", h.handleMigrate)
		r.Post("/{vardok_id}/repair", h.handleRepair)
	})
}

func (h *Handler) handleMigrate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vardokID := chi.URLParam(r, "vardok_id")
	activeGroup := r.URL.Query().Get(middleware.ActiveGroupParam)

	result, err := h.service.Migrate(ctx, vardokID, activeGroup)
	if err != nil {
		h.writeError(ctx, w, vardokID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleRepair(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vardokID := chi.URLParam(r, "vardok_id")
	mapping, err := h.service.Repair(ctx, vardokID)
	if err != nil {
		h.writeError(ctx, w, vardokID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, mapping)
}

func (h *Handler) handleRepairAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RepairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.VardokIDs) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "body must list vardokIds"))
		return
	}
	report, err := h.service.RepairAll(ctx, req.VardokIDs)
	if err != nil {
		h.writeError(ctx, w, "", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vardokID := chi.URLParam(r, "vardok_id")
	mapping, err := h.service.GetMapping(ctx, vardokID)
	if err != nil {
		h.writeError(ctx, w, vardokID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapping)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.ListMappings(ctx)
	if err != nil {
		h.writeError(ctx, w, "", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, vardokID string, err error) {
	level := slog.LevelWarn
	if code := dErrors.CodeOf(err); code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, "vardok migration request failed",
		"vardok_id", vardokID,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
