package comms

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/platform/validate"
)

// Handler serves the communications HTTP surface.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guards  Guards
}

// NewHandler constructs the communications handler.
func NewHandler(logger *slog.Logger, service *Service, guards Guards) *Handler {
	return &Handler{logger: logger, service: service, guards: guards}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		h.logger.Error("create post failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, post)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var req ListPostsRequest
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		req.Offset, _ = strconv.Atoi(raw)
	}
	posts, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if posts == nil {
		posts = []Post{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": posts})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	post, err := h.service.UpdatePost(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) acknowledge(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Acknowledge(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) ackSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetAckSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) myAcks(w http.ResponseWriter, r *http.Request) {
	pendingOnly := r.URL.Query().Get("pending") == "true"
	items, err := h.service.ListMyRequiredAcks(r.Context(), pendingOnly)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []AckItem{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}
