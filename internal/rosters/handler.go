package rosters

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/platform/validate"
)

// Handler serves the roster HTTP surface.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the roster handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRosterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	roster, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create roster failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, roster)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var req ListRostersRequest
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		req.Offset, _ = strconv.Atoi(raw)
	}
	rosters, err := h.service.List(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rosters == nil {
		rosters = []Roster{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rosters})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, roster)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateShiftsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	shifts, err := h.service.Generate(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"items": shifts})
}

func (h *Handler) shifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.service.ListShifts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if shifts == nil {
		shifts = []Shift{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": shifts})
}
