package handler

import (
	"net/http"

	"github.com/narcomap-api/internal/application/asset"
)

// parseImage extracts the optional "image" part from a multipart form.
// Returns nil when the request carries no file, leaving required-image
// decisions to the service.
func parseImage(r *http.Request, maxSize int64) *asset.UploadInput {
	// Leave headroom for the text fields beside the file.
	if err := r.ParseMultipartForm(maxSize + 1<<20); err != nil {
		return nil
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil
	}
	return &asset.UploadInput{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
}
