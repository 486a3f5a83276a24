// Package audithttp exposes the audit trail over HTTP.
package audithttp

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/meridian-hris/meridian/internal/audit"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/platform/validate"
)

// Handler serves audit event recording and listing.
type Handler struct {
	logger   *slog.Logger
	service  *audit.Service
	recorder *audit.Recorder
}

// NewHandler constructs the audit HTTP handler.
func NewHandler(logger *slog.Logger, service *audit.Service, recorder *audit.Recorder) *Handler {
	return &Handler{logger: logger, service: service, recorder: recorder}
}

type recordRequest struct {
	Entity   string         `json:"entity" validate:"required"`
	EntityID string         `json:"entityId" validate:"required"`
	Action   string         `json:"action" validate:"required"`
	Changes  map[string]any `json:"changes" validate:"required"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.recorder.Record(r.Context(), req.Entity, req.EntityID, req.Action, req.Changes); err != nil {
		h.logger.Error("record audit event", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := audit.Filters{
		Entity:   q.Get("entity"),
		EntityID: q.Get("entityId"),
		Action:   q.Get("action"),
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filters.Limit = limit
		}
	}
	filters.From = parseTime(q.Get("from"))
	filters.To = parseTime(q.Get("to"))
	filters.Cursor = parseTime(q.Get("cursor"))

	result, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list audit events", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
