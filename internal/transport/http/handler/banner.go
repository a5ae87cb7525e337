package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/narcomap-api/internal/application/asset"
	"github.com/narcomap-api/internal/application/banner"
	"github.com/narcomap-api/internal/domain"
)

// BannerHandler manages the landing-page hero banner.
type BannerHandler struct {
	svc banner.Service
}

func NewBannerHandler(svc banner.Service) *BannerHandler { return &BannerHandler{svc: svc} }

func (h *BannerHandler) Active(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Active(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, banners)
}

// Save upserts the active banner from a multipart form. The image part is
// optional once a banner exists.
func (h *BannerHandler) Save(w http.ResponseWriter, r *http.Request) {
	image := parseImage(r, asset.MaxBannerSize)
	input := bannerInputFromForm(r)
	b, err := h.svc.Save(r.Context(), input, image)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "banner saved", b)
}

func (h *BannerHandler) PatchMeta(w http.ResponseWriter, r *http.Request) {
	input := bannerInputFromForm(r)
	b, err := h.svc.PatchMeta(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "banner updated", b)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "banner deleted", nil)
}

func bannerInputFromForm(r *http.Request) domain.BannerInput {
	if r.Form == nil {
		_ = r.ParseMultipartForm(1 << 20)
	}
	input := domain.BannerInput{
		Caption:  r.FormValue("caption"),
		Location: r.FormValue("location"),
		ImageFit: r.FormValue("imageFit"),
	}
	xs, ys := r.FormValue("imagePositionX"), r.FormValue("imagePositionY")
	if xs != "" || ys != "" {
		x, _ := strconv.ParseFloat(xs, 64)
		y, _ := strconv.ParseFloat(ys, 64)
		input.ImagePosition = &domain.ImagePosition{X: x, Y: y}
	}
	return input
}
