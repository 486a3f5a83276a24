package payroll

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/platform/validate"
)

// Handler serves the payroll HTTP surface.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the payroll handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) createRun(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	run, err := h.service.CreateRun(r.Context(), req)
	if err != nil {
		h.logger.Error("create pay run failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, run)
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	var filter ListRunsRequest
	filter.Status = r.URL.Query().Get("status")
	if raw := r.URL.Query().Get("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		filter.Offset, _ = strconv.Atoi(raw)
	}
	runs, err := h.service.ListRuns(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if runs == nil {
		runs = []Run{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": runs})
}

func (h *Handler) runDetail(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}

func (h *Handler) payslips(w http.ResponseWriter, r *http.Request) {
	slips, err := h.service.ListPayslips(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if slips == nil {
		slips = []Payslip{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": slips})
}
