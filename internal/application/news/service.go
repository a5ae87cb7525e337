package news

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/narcomap-api/internal/application/asset"
	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/pkg/id"
)

const defaultPageSize = 6

// Input carries the mutable article fields from the admin client.
type Input struct {
	Title     string
	Content   string
	Published *bool
}

type Service interface {
	// List filters, sorts and paginates articles. Unpublished articles are
	// only included when the query explicitly asks and the caller is an
	// authenticated admin (enforced at the transport layer).
	List(ctx context.Context, q domain.NewsQuery) ([]domain.News, *domain.Pagination, error)
	// Get returns one article, bumping its view counter when countView is
	// set. The returned Views already reflects the bump.
	Get(ctx context.Context, newsID string, countView bool) (*domain.News, error)
	Create(ctx context.Context, input Input, image *asset.UploadInput, actor notification.Actor) (*domain.News, error)
	Update(ctx context.Context, newsID string, input Input, image *asset.UploadInput) (*domain.News, error)
	Delete(ctx context.Context, newsID string) error
}

type newsStore interface {
	Put(ctx context.Context, n *domain.News) error
	Get(ctx context.Context, newsID string) (*domain.News, error)
	List(ctx context.Context) ([]domain.News, error)
	Update(ctx context.Context, newsID string, updates map[string]interface{}) error
	IncrementViews(ctx context.Context, newsID string) (int, error)
	Delete(ctx context.Context, newsID string) error
}

type service struct {
	repo    newsStore
	assets  asset.Service
	emitter *notification.Emitter
}

func NewService(repo newsStore, assets asset.Service, emitter *notification.Emitter) Service {
	return &service{repo: repo, assets: assets, emitter: emitter}
}

func (s *service) List(ctx context.Context, q domain.NewsQuery) ([]domain.News, *domain.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	filtered := make([]domain.News, 0, len(all))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, n := range all {
		if !n.Published && !q.IncludeUnpublished {
			continue
		}
		if needle != "" && !matches(n, needle) {
			continue
		}
		filtered = append(filtered, n)
	}

	sortNews(filtered, q.Sort)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageItems := filtered[start:end]
	for i := range pageItems {
		pageItems[i].Excerpt = domain.MakeExcerpt(pageItems[i].Content)
	}

	return pageItems, &domain.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}, nil
}

func (s *service) Get(ctx context.Context, newsID string, countView bool) (*domain.News, error) {
	n, err := s.repo.Get(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if countView {
		views, err := s.repo.IncrementViews(ctx, newsID)
		if err != nil {
			return nil, err
		}
		n.Views = views
	}
	n.Excerpt = domain.MakeExcerpt(n.Content)
	return n, nil
}

func (s *service) Create(ctx context.Context, input Input, image *asset.UploadInput, actor notification.Actor) (*domain.News, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("title and content are required: %w", domain.ErrBadRequest)
	}
	if image == nil {
		return nil, fmt.Errorf("an image is required: %w", domain.ErrBadRequest)
	}
	image.Folder = "news"
	image.MaxSize = asset.MaxNewsSize
	uploaded, err := s.assets.Upload(ctx, *image)
	if err != nil {
		return nil, err
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}
	now := time.Now().UTC()
	n := &domain.News{
		NewsID:     id.New(),
		Title:      input.Title,
		Image:      uploaded.URL,
		ImageKey:   uploaded.Key,
		Content:    input.Content,
		CreatedBy:  actor.AdminID,
		AuthorName: actor.Name,
		Published:  published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		s.assets.Cleanup(ctx, uploaded.Key)
		return nil, err
	}

	if n.Published {
		s.emitter.Emit(ctx, domain.NotificationNews,
			fmt.Sprintf("Berita baru diterbitkan: %s", n.Title),
			map[string]interface{}{"newsId": n.NewsID, "title": n.Title}, actor)
	}

	n.Excerpt = domain.MakeExcerpt(n.Content)
	return n, nil
}

func (s *service) Update(ctx context.Context, newsID string, input Input, image *asset.UploadInput) (*domain.News, error) {
	current, err := s.repo.Get(ctx, newsID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(input.Title) != "" {
		updates["title"] = input.Title
	}
	if strings.TrimSpace(input.Content) != "" {
		updates["content"] = input.Content
	}
	if input.Published != nil {
		updates["published"] = *input.Published
	}

	var uploaded *asset.Uploaded
	if image != nil {
		image.Folder = "news"
		image.MaxSize = asset.MaxNewsSize
		uploaded, err = s.assets.Upload(ctx, *image)
		if err != nil {
			return nil, err
		}
		updates["image"] = uploaded.URL
		updates["image_key"] = uploaded.Key
	}

	if len(updates) == 0 {
		current.Excerpt = domain.MakeExcerpt(current.Content)
		return current, nil
	}

	if err := s.repo.Update(ctx, newsID, updates); err != nil {
		if uploaded != nil {
			s.assets.Cleanup(ctx, uploaded.Key)
		}
		return nil, err
	}
	// The record now points at the new image, the old asset can go.
	if uploaded != nil && current.ImageKey != "" {
		s.assets.Cleanup(ctx, current.ImageKey)
	}

	n, err := s.repo.Get(ctx, newsID)
	if err != nil {
		return nil, err
	}
	n.Excerpt = domain.MakeExcerpt(n.Content)
	return n, nil
}

func (s *service) Delete(ctx context.Context, newsID string) error {
	n, err := s.repo.Get(ctx, newsID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, newsID); err != nil {
		return err
	}
	if n.ImageKey != "" {
		s.assets.Cleanup(ctx, n.ImageKey)
	}
	return nil
}

func matches(n domain.News, needle string) bool {
	return strings.Contains(strings.ToLower(n.Title), needle) ||
		strings.Contains(strings.ToLower(n.Content), needle) ||
		strings.Contains(strings.ToLower(n.AuthorName), needle)
}

func sortNews(items []domain.News, order string) {
	switch order {
	case domain.NewsSortOldest:
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	case domain.NewsSortViews:
		sort.Slice(items, func(i, j int) bool { return items[i].Views > items[j].Views })
	case domain.NewsSortTitle:
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
		})
	default:
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	}
}
