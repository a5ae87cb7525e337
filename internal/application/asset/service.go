package asset

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/pkg/id"
	"github.com/rs/zerolog/log"
)

// Image upload caps per resource.
const (
	MaxBannerSize = 5 << 20
	MaxLogoSize   = 2 << 20
	MaxNewsSize   = 5 << 20
)

// allowedImageTypes maps accepted extensions to their MIME types.
var allowedImageTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadInput describes an in-memory image buffer to forward to the host.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	Folder      string
	MaxSize     int64
}

// Uploaded is the durable reference returned by the external host:
// the public URL plus the key needed to delete the asset later.
type Uploaded struct {
	URL string
	Key string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*Uploaded, error)
	// Cleanup deletes an asset best-effort. Failures are logged, never
	// returned, so record mutations are not blocked by stale-asset cleanup.
	Cleanup(ctx context.Context, key string)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	store objectStore
}

func NewService(store objectStore) Service {
	return &service{store: store}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*Uploaded, error) {
	ext := strings.ToLower(path.Ext(input.Filename))
	mime, ok := allowedImageTypes[ext]
	if !ok {
		return nil, fmt.Errorf("only image files are allowed (jpeg, jpg, png, gif, webp): %w", domain.ErrBadRequest)
	}
	if input.ContentType != "" && !strings.HasPrefix(input.ContentType, "image/") {
		return nil, fmt.Errorf("only image files are allowed (jpeg, jpg, png, gif, webp): %w", domain.ErrBadRequest)
	}
	if input.MaxSize > 0 && input.Size > input.MaxSize {
		return nil, fmt.Errorf("image exceeds the %dMB limit: %w", input.MaxSize>>20, domain.ErrBadRequest)
	}

	key := fmt.Sprintf("%s/%s-%s", input.Folder, id.New(), sanitizeFilename(input.Filename))
	url, err := s.store.Upload(ctx, key, input.Reader, mime)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}
	return &Uploaded{URL: url, Key: key}, nil
}

func (s *service) Cleanup(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete stale asset")
	}
}

// sanitizeFilename strips path separators and whitespace from uploaded names.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
