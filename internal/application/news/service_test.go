package news

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/narcomap-api/internal/application/asset"
	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockNewsStore struct{ mock.Mock }

func (m *mockNewsStore) Put(ctx context.Context, n *domain.News) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockNewsStore) Get(ctx context.Context, newsID string) (*domain.News, error) {
	args := m.Called(ctx, newsID)
	if n, _ := args.Get(0).(*domain.News); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNewsStore) List(ctx context.Context) ([]domain.News, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.News), args.Error(1)
}
func (m *mockNewsStore) Update(ctx context.Context, newsID string, updates map[string]interface{}) error {
	return m.Called(ctx, newsID, updates).Error(0)
}
func (m *mockNewsStore) IncrementViews(ctx context.Context, newsID string) (int, error) {
	args := m.Called(ctx, newsID)
	return args.Int(0), args.Error(1)
}
func (m *mockNewsStore) Delete(ctx context.Context, newsID string) error {
	return m.Called(ctx, newsID).Error(0)
}

type mockAssets struct{ mock.Mock }

func (m *mockAssets) Upload(ctx context.Context, input asset.UploadInput) (*asset.Uploaded, error) {
	args := m.Called(ctx, input)
	if u, _ := args.Get(0).(*asset.Uploaded); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAssets) Cleanup(ctx context.Context, key string) {
	m.Called(ctx, key)
}

type nopNotificationStore struct{}

func (nopNotificationStore) Put(ctx context.Context, n *domain.Notification) error { return nil }
func (nopNotificationStore) List(ctx context.Context, unreadFor string, limit int) ([]domain.Notification, error) {
	return nil, nil
}
func (nopNotificationStore) MarkRead(ctx context.Context, notificationID, adminID string) (*domain.Notification, error) {
	return nil, nil
}
func (nopNotificationStore) MarkAllRead(ctx context.Context, adminID string) error { return nil }
func (nopNotificationStore) CountUnread(ctx context.Context, adminID string) (int, error) {
	return 0, nil
}

// --- helpers ---

func ptr[T any](v T) *T { return &v }

func newSvc(repo *mockNewsStore, assets *mockAssets) Service {
	return NewService(repo, assets, notification.NewEmitter(nopNotificationStore{}, nil))
}

func imageInput() *asset.UploadInput {
	return &asset.UploadInput{
		Reader:      strings.NewReader("img-bytes"),
		Filename:    "hero.jpg",
		ContentType: "image/jpeg",
		Size:        9,
	}
}

func articles() []domain.News {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.News{
		{NewsID: "n1", Title: "Razia di Dompak", Content: "<p>Isi satu</p>", AuthorName: "Andi", Views: 5, Published: true, CreatedAt: base},
		{NewsID: "n2", Title: "Penyuluhan Sekolah", Content: "<p>Isi dua</p>", AuthorName: "Budi", Views: 20, Published: true, CreatedAt: base.AddDate(0, 0, 1)},
		{NewsID: "n3", Title: "Draf Internal", Content: "<p>Belum terbit</p>", AuthorName: "Andi", Views: 0, Published: false, CreatedAt: base.AddDate(0, 0, 2)},
	}
}

// --- List tests ---

func TestList_HidesUnpublishedByDefault(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("List", mock.Anything).Return(articles(), nil)

	items, pg, err := newSvc(repo, &mockAssets{}).List(context.Background(), domain.NewsQuery{})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n2", items[0].NewsID) // newest first
	assert.Equal(t, 2, pg.TotalItems)
	assert.Equal(t, 1, pg.TotalPages)
}

func TestList_IncludeUnpublished(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("List", mock.Anything).Return(articles(), nil)

	items, _, err := newSvc(repo, &mockAssets{}).List(context.Background(), domain.NewsQuery{
		IncludeUnpublished: true,
	})

	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestList_SearchIsCaseInsensitive(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("List", mock.Anything).Return(articles(), nil)

	items, _, err := newSvc(repo, &mockAssets{}).List(context.Background(), domain.NewsQuery{
		Search: "RAZIA",
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "n1", items[0].NewsID)
}

func TestList_SortByViews(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("List", mock.Anything).Return(articles(), nil)

	items, _, err := newSvc(repo, &mockAssets{}).List(context.Background(), domain.NewsQuery{
		Sort: domain.NewsSortViews,
	})

	require.NoError(t, err)
	assert.Equal(t, "n2", items[0].NewsID)
}

func TestList_Pagination(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("List", mock.Anything).Return(articles(), nil)

	items, pg, err := newSvc(repo, &mockAssets{}).List(context.Background(), domain.NewsQuery{
		Page: 2, Limit: 1,
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "n1", items[0].NewsID)
	assert.Equal(t, 2, pg.CurrentPage)
	assert.Equal(t, 2, pg.TotalPages)
	assert.NotEmpty(t, items[0].Excerpt)
	assert.NotContains(t, items[0].Excerpt, "<p>")
}

// --- Get tests ---

func TestGet_CountsViewWhenAsked(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.News{NewsID: "n1", Views: 5}, nil)
	repo.On("IncrementViews", mock.Anything, "n1").Return(6, nil)

	n, err := newSvc(repo, &mockAssets{}).Get(context.Background(), "n1", true)

	require.NoError(t, err)
	assert.Equal(t, 6, n.Views)
	repo.AssertExpectations(t)
}

func TestGet_SkipsViewCount(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.News{NewsID: "n1", Views: 5}, nil)

	n, err := newSvc(repo, &mockAssets{}).Get(context.Background(), "n1", false)

	require.NoError(t, err)
	assert.Equal(t, 5, n.Views)
	repo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

// --- Create tests ---

func TestCreate_RequiresTitleContentImage(t *testing.T) {
	svc := newSvc(&mockNewsStore{}, &mockAssets{})

	_, err := svc.Create(context.Background(), Input{Title: "x"}, imageInput(), notification.Actor{})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = svc.Create(context.Background(), Input{Title: "x", Content: "y"}, nil, notification.Actor{})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_CleansUpUploadWhenPersistFails(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Put", mock.Anything, mock.Anything).Return(errors.New("table offline"))
	assets := &mockAssets{}
	assets.On("Upload", mock.Anything, mock.Anything).Return(&asset.Uploaded{URL: "https://cdn/x", Key: "news/x"}, nil)
	assets.On("Cleanup", mock.Anything, "news/x").Return()

	_, err := newSvc(repo, assets).Create(context.Background(),
		Input{Title: "t", Content: "c"}, imageInput(), notification.Actor{})

	require.Error(t, err)
	assets.AssertExpectations(t)
}

func TestCreate_HappyPath(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(n *domain.News) bool {
		return n.Published && n.AuthorName == "Andi" && n.Image == "https://cdn/x"
	})).Return(nil)
	assets := &mockAssets{}
	assets.On("Upload", mock.Anything, mock.Anything).Return(&asset.Uploaded{URL: "https://cdn/x", Key: "news/x"}, nil)

	n, err := newSvc(repo, assets).Create(context.Background(),
		Input{Title: "t", Content: "c"}, imageInput(), notification.Actor{Name: "Andi"})

	require.NoError(t, err)
	assert.NotEmpty(t, n.NewsID)
	repo.AssertExpectations(t)
}

// --- Update tests ---

func TestUpdate_FailedUploadLeavesOldImage(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.News{NewsID: "n1", ImageKey: "news/old"}, nil)
	assets := &mockAssets{}
	assets.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket gone"))

	_, err := newSvc(repo, assets).Update(context.Background(), "n1", Input{}, imageInput())

	require.Error(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	assets.AssertNotCalled(t, "Cleanup", mock.Anything, mock.Anything)
}

func TestUpdate_ReplacesImageThenDeletesOld(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.News{NewsID: "n1", ImageKey: "news/old"}, nil)
	repo.On("Update", mock.Anything, "n1", mock.MatchedBy(func(u map[string]interface{}) bool {
		return u["image_key"] == "news/new"
	})).Return(nil)
	assets := &mockAssets{}
	assets.On("Upload", mock.Anything, mock.Anything).Return(&asset.Uploaded{URL: "https://cdn/new", Key: "news/new"}, nil)
	assets.On("Cleanup", mock.Anything, "news/old").Return()

	_, err := newSvc(repo, assets).Update(context.Background(), "n1", Input{}, imageInput())

	require.NoError(t, err)
	assets.AssertExpectations(t)
}

func TestUpdate_PersistFailureDiscardsNewImage(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.News{NewsID: "n1", ImageKey: "news/old"}, nil)
	repo.On("Update", mock.Anything, "n1", mock.Anything).Return(errors.New("table offline"))
	assets := &mockAssets{}
	assets.On("Upload", mock.Anything, mock.Anything).Return(&asset.Uploaded{URL: "https://cdn/new", Key: "news/new"}, nil)
	assets.On("Cleanup", mock.Anything, "news/new").Return()

	_, err := newSvc(repo, assets).Update(context.Background(), "n1", Input{}, imageInput())

	require.Error(t, err)
	assets.AssertExpectations(t)
}

func TestUpdate_TogglePublishOnly(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.News{NewsID: "n1"}, nil)
	repo.On("Update", mock.Anything, "n1", map[string]interface{}{"published": false}).Return(nil)

	_, err := newSvc(repo, &mockAssets{}).Update(context.Background(), "n1",
		Input{Published: ptr(false)}, nil)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

// --- Delete tests ---

func TestDelete_RemovesRecordAndAsset(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.News{NewsID: "n1", ImageKey: "news/x"}, nil)
	repo.On("Delete", mock.Anything, "n1").Return(nil)
	assets := &mockAssets{}
	assets.On("Cleanup", mock.Anything, "news/x").Return()

	err := newSvc(repo, assets).Delete(context.Background(), "n1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
	assets.AssertExpectations(t)
}

func TestDelete_UnknownArticle(t *testing.T) {
	repo := &mockNewsStore{}
	repo.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	err := newSvc(repo, &mockAssets{}).Delete(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
