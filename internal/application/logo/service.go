package logo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/narcomap-api/internal/application/asset"
	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/pkg/id"
)

type Service interface {
	Active(ctx context.Context) (*domain.Logo, error)
	List(ctx context.Context) ([]domain.Logo, error)
	// Save upserts the active logo, replacing the stored image when a new
	// one is supplied.
	Save(ctx context.Context, input domain.LogoInput, image *asset.UploadInput) (*domain.Logo, error)
	// PatchMeta updates the title lines of a logo without touching its image.
	PatchMeta(ctx context.Context, logoID string, input domain.LogoInput) (*domain.Logo, error)
	Delete(ctx context.Context, logoID string) error
}

type logoStore interface {
	Put(ctx context.Context, l *domain.Logo) error
	Get(ctx context.Context, logoID string) (*domain.Logo, error)
	List(ctx context.Context) ([]domain.Logo, error)
	GetActive(ctx context.Context) (*domain.Logo, error)
	Update(ctx context.Context, logoID string, updates map[string]interface{}) error
	Delete(ctx context.Context, logoID string) error
}

type service struct {
	repo   logoStore
	assets asset.Service
}

func NewService(repo logoStore, assets asset.Service) Service {
	return &service{repo: repo, assets: assets}
}

func (s *service) Active(ctx context.Context) (*domain.Logo, error) {
	return s.repo.GetActive(ctx)
}

func (s *service) List(ctx context.Context) ([]domain.Logo, error) {
	return s.repo.List(ctx)
}

func (s *service) Save(ctx context.Context, input domain.LogoInput, image *asset.UploadInput) (*domain.Logo, error) {
	current, err := s.repo.GetActive(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if current == nil && image == nil {
		return nil, fmt.Errorf("an image is required: %w", domain.ErrBadRequest)
	}

	var uploaded *asset.Uploaded
	if image != nil {
		image.Folder = "logos"
		image.MaxSize = asset.MaxLogoSize
		uploaded, err = s.assets.Upload(ctx, *image)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	if current == nil {
		l := &domain.Logo{
			LogoID:    id.New(),
			Image:     uploaded.URL,
			ImageKey:  uploaded.Key,
			Title:     input.Title,
			Subtitle:  input.Subtitle,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Put(ctx, l); err != nil {
			if uploaded != nil {
				s.assets.Cleanup(ctx, uploaded.Key)
			}
			return nil, err
		}
		return l, nil
	}

	updates := map[string]interface{}{
		"title":    input.Title,
		"subtitle": input.Subtitle,
	}
	oldKey := ""
	if uploaded != nil {
		updates["image"] = uploaded.URL
		updates["image_key"] = uploaded.Key
		oldKey = current.ImageKey
	}
	if err := s.repo.Update(ctx, current.LogoID, updates); err != nil {
		if uploaded != nil {
			s.assets.Cleanup(ctx, uploaded.Key)
		}
		return nil, err
	}
	if oldKey != "" {
		s.assets.Cleanup(ctx, oldKey)
	}
	return s.repo.Get(ctx, current.LogoID)
}

func (s *service) PatchMeta(ctx context.Context, logoID string, input domain.LogoInput) (*domain.Logo, error) {
	current, err := s.repo.Get(ctx, logoID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Subtitle != "" {
		updates["subtitle"] = input.Subtitle
	}
	if len(updates) == 0 {
		return current, nil
	}
	if err := s.repo.Update(ctx, logoID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, logoID)
}

func (s *service) Delete(ctx context.Context, logoID string) error {
	l, err := s.repo.Get(ctx, logoID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, logoID); err != nil {
		return err
	}
	if l.ImageKey != "" {
		s.assets.Cleanup(ctx, l.ImageKey)
	}
	return nil
}
