package leave

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/platform/validate"
)

// Handler serves the leave HTTP surface.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the leave handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequestRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	request, err := h.service.CreateRequest(r.Context(), req)
	if err != nil {
		h.logger.Error("create leave request failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, request)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter ListRequestsRequest
	filter.EmployeeID = r.URL.Query().Get("employeeId")
	filter.Status = r.URL.Query().Get("status")
	if raw := r.URL.Query().Get("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		filter.Offset, _ = strconv.Atoi(raw)
	}
	requests, err := h.service.ListRequests(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if requests == nil {
		requests = []Request{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": requests})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	request, err := h.service.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, request)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequestRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	request, err := h.service.Decide(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, request)
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.Balances(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if balances == nil {
		balances = []Balance{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": balances})
}
