package banner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/narcomap-api/internal/application/asset"
	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/pkg/id"
)

// Defaults applied when the admin client omits presentation fields.
const (
	defaultImageFit = "cover"
	defaultPosX     = 50.0
	defaultPosY     = 50.0
)

type Service interface {
	// Active returns the banner shown on the public landing page.
	Active(ctx context.Context) (*domain.Banner, error)
	List(ctx context.Context) ([]domain.Banner, error)
	// Save upserts the active banner. A new image is required when no
	// banner exists yet; when one does, a nil image keeps the current one.
	Save(ctx context.Context, input domain.BannerInput, image *asset.UploadInput) (*domain.Banner, error)
	// PatchMeta updates presentation fields of a banner without touching
	// its image.
	PatchMeta(ctx context.Context, bannerID string, input domain.BannerInput) (*domain.Banner, error)
	Delete(ctx context.Context, bannerID string) error
}

type bannerStore interface {
	Put(ctx context.Context, b *domain.Banner) error
	Get(ctx context.Context, bannerID string) (*domain.Banner, error)
	List(ctx context.Context) ([]domain.Banner, error)
	GetActive(ctx context.Context) (*domain.Banner, error)
	Update(ctx context.Context, bannerID string, updates map[string]interface{}) error
	Delete(ctx context.Context, bannerID string) error
}

type service struct {
	repo   bannerStore
	assets asset.Service
}

func NewService(repo bannerStore, assets asset.Service) Service {
	return &service{repo: repo, assets: assets}
}

func (s *service) Active(ctx context.Context) (*domain.Banner, error) {
	return s.repo.GetActive(ctx)
}

func (s *service) List(ctx context.Context) ([]domain.Banner, error) {
	return s.repo.List(ctx)
}

func (s *service) Save(ctx context.Context, input domain.BannerInput, image *asset.UploadInput) (*domain.Banner, error) {
	if input.ImageFit != "" && !domain.ValidImageFit(input.ImageFit) {
		return nil, fmt.Errorf("unknown image fit %q: %w", input.ImageFit, domain.ErrBadRequest)
	}

	current, err := s.repo.GetActive(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if current == nil {
		if image == nil {
			return nil, fmt.Errorf("an image is required: %w", domain.ErrBadRequest)
		}
		if input.Caption == "" {
			return nil, fmt.Errorf("a caption is required: %w", domain.ErrBadRequest)
		}
	}

	var uploaded *asset.Uploaded
	if image != nil {
		image.Folder = "banners"
		image.MaxSize = asset.MaxBannerSize
		uploaded, err = s.assets.Upload(ctx, *image)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	if current == nil {
		b := &domain.Banner{
			BannerID:      id.New(),
			Image:         uploaded.URL,
			ImageKey:      uploaded.Key,
			Caption:       input.Caption,
			Location:      input.Location,
			ImageFit:      fitOrDefault(input.ImageFit),
			ImagePosition: posOrDefault(input.ImagePosition),
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Put(ctx, b); err != nil {
			if uploaded != nil {
				s.assets.Cleanup(ctx, uploaded.Key)
			}
			return nil, err
		}
		return b, nil
	}

	updates := map[string]interface{}{
		"caption":   input.Caption,
		"location":  input.Location,
		"image_fit": fitOrDefault(input.ImageFit),
	}
	if input.ImagePosition != nil {
		updates["image_position"] = *input.ImagePosition
	}
	oldKey := ""
	if uploaded != nil {
		updates["image"] = uploaded.URL
		updates["image_key"] = uploaded.Key
		oldKey = current.ImageKey
	}
	if err := s.repo.Update(ctx, current.BannerID, updates); err != nil {
		if uploaded != nil {
			s.assets.Cleanup(ctx, uploaded.Key)
		}
		return nil, err
	}
	// Old asset goes only after the record points at the new one.
	if oldKey != "" {
		s.assets.Cleanup(ctx, oldKey)
	}
	return s.repo.Get(ctx, current.BannerID)
}

func (s *service) PatchMeta(ctx context.Context, bannerID string, input domain.BannerInput) (*domain.Banner, error) {
	current, err := s.repo.Get(ctx, bannerID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.Caption != "" {
		updates["caption"] = input.Caption
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.ImageFit != "" {
		if !domain.ValidImageFit(input.ImageFit) {
			return nil, fmt.Errorf("unknown image fit %q: %w", input.ImageFit, domain.ErrBadRequest)
		}
		updates["image_fit"] = input.ImageFit
	}
	if input.ImagePosition != nil {
		updates["image_position"] = *input.ImagePosition
	}
	if len(updates) == 0 {
		return current, nil
	}
	if err := s.repo.Update(ctx, current.BannerID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, current.BannerID)
}

func (s *service) Delete(ctx context.Context, bannerID string) error {
	b, err := s.repo.Get(ctx, bannerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, bannerID); err != nil {
		return err
	}
	if b.ImageKey != "" {
		s.assets.Cleanup(ctx, b.ImageKey)
	}
	return nil
}

func fitOrDefault(fit string) string {
	if fit == "" {
		return defaultImageFit
	}
	return fit
}

func posOrDefault(p *domain.ImagePosition) domain.ImagePosition {
	if p == nil {
		return domain.ImagePosition{X: defaultPosX, Y: defaultPosY}
	}
	return *p
}
