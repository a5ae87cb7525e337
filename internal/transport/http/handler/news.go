package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/narcomap-api/internal/application/asset"
	newsapp "github.com/narcomap-api/internal/application/news"
	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/transport/http/middleware"
)

// NewsHandler manages articles.
type NewsHandler struct {
	svc newsapp.Service
}

func NewNewsHandler(svc newsapp.Service) *NewsHandler { return &NewsHandler{svc: svc} }

func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	// Drafts are only visible to authenticated admins who ask for them.
	includeUnpublished := false
	if q.Get("includeUnpublished") == "true" {
		_, authed := middleware.ClaimsFromContext(r.Context())
		includeUnpublished = authed
	}

	items, pagination, err := h.svc.List(r.Context(), domain.NewsQuery{
		Page:               page,
		Limit:              limit,
		Search:             q.Get("search"),
		Sort:               q.Get("sort"),
		IncludeUnpublished: includeUnpublished,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedEnvelope{
		Success:    true,
		Data:       items,
		Pagination: pagination,
	})
}

func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	countView := r.URL.Query().Get("skipViewCount") != "true"
	n, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), countView)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, n)
}

func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	image := parseImage(r, asset.MaxNewsSize)
	input := newsInputFromForm(r)

	actor := notification.Actor{}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor = notification.Actor{AdminID: claims.AdminID, Name: claims.Name}
	}

	n, err := h.svc.Create(r.Context(), input, image, actor)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "news created", n)
}

func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	image := parseImage(r, asset.MaxNewsSize)
	input := newsInputFromForm(r)

	n, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input, image)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "news updated", n)
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "news deleted", nil)
}

func newsInputFromForm(r *http.Request) newsapp.Input {
	if r.Form == nil {
		_ = r.ParseMultipartForm(1 << 20)
	}
	input := newsapp.Input{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}
	if v := r.FormValue("isPublished"); v != "" {
		published := v == "true"
		input.Published = &published
	}
	return input
}
