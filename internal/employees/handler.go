package employees

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/platform/validate"
)

// Handler serves the employee HTTP surface.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the employee handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	employee, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create employee failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, employee)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var req ListEmployeesRequest
	req.Search = r.URL.Query().Get("search")
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		req.Offset, _ = strconv.Atoi(raw)
	}
	employees, err := h.service.List(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if employees == nil {
		employees = []Employee{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": employees})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEmployeeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	employee, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

func (h *Handler) replaceCostSplits(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCostSplitsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	splits, err := h.service.ReplaceCostSplits(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": splits})
}

func (h *Handler) listCostSplits(w http.ResponseWriter, r *http.Request) {
	splits, err := h.service.ListCostSplits(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if splits == nil {
		splits = []CostSplit{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": splits})
}
