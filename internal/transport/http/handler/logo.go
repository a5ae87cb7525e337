package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/narcomap-api/internal/application/asset"
	"github.com/narcomap-api/internal/application/logo"
	"github.com/narcomap-api/internal/domain"
)

// LogoHandler manages the site header logo.
type LogoHandler struct {
	svc logo.Service
}

func NewLogoHandler(svc logo.Service) *LogoHandler { return &LogoHandler{svc: svc} }

func (h *LogoHandler) Active(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Active(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, l)
}

func (h *LogoHandler) List(w http.ResponseWriter, r *http.Request) {
	logos, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, logos)
}

func (h *LogoHandler) Save(w http.ResponseWriter, r *http.Request) {
	image := parseImage(r, asset.MaxLogoSize)
	input := domain.LogoInput{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
	}
	l, err := h.svc.Save(r.Context(), input, image)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "logo saved", l)
}

func (h *LogoHandler) PatchMeta(w http.ResponseWriter, r *http.Request) {
	if r.Form == nil {
		_ = r.ParseMultipartForm(1 << 20)
	}
	input := domain.LogoInput{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
	}
	l, err := h.svc.PatchMeta(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "logo updated", l)
}

func (h *LogoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "logo deleted", nil)
}
