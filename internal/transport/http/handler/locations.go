package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/narcomap-api/internal/application/location"
	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/transport/http/middleware"
)

// LocationHandler manages the drug-prone map markers.
type LocationHandler struct {
	svc location.Service
}

func NewLocationHandler(svc location.Service) *LocationHandler {
	return &LocationHandler{svc: svc}
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, locations)
}

func (h *LocationHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, l)
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.LocationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	actor := notification.Actor{}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor = notification.Actor{AdminID: claims.AdminID, Name: claims.Name}
	}
	l, err := h.svc.Create(r.Context(), input, actor)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "location created", l)
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input domain.LocationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "location updated", l)
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "location deleted", nil)
}
