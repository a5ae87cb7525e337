package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/narcomap-api/internal/application/asset"
	newsapp "github.com/narcomap-api/internal/application/news"
	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/domain"
	jwtinfra "github.com/narcomap-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- mock ---

type mockNewsSvc struct{ mock.Mock }

func (m *mockNewsSvc) List(ctx context.Context, q domain.NewsQuery) ([]domain.News, *domain.Pagination, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.News), args.Get(1).(*domain.Pagination), args.Error(2)
}
func (m *mockNewsSvc) Get(ctx context.Context, newsID string, countView bool) (*domain.News, error) {
	args := m.Called(ctx, newsID, countView)
	if n, _ := args.Get(0).(*domain.News); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNewsSvc) Create(ctx context.Context, input newsapp.Input, image *asset.UploadInput, actor notification.Actor) (*domain.News, error) {
	args := m.Called(ctx, input, image, actor)
	if n, _ := args.Get(0).(*domain.News); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNewsSvc) Update(ctx context.Context, newsID string, input newsapp.Input, image *asset.UploadInput) (*domain.News, error) {
	args := m.Called(ctx, newsID, input, image)
	if n, _ := args.Get(0).(*domain.News); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNewsSvc) Delete(ctx context.Context, newsID string) error {
	return m.Called(ctx, newsID).Error(0)
}

// --- List ---

func TestNewsList_AnonymousCannotSeeDrafts(t *testing.T) {
	svc := &mockNewsSvc{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(q domain.NewsQuery) bool {
		return !q.IncludeUnpublished
	})).Return([]domain.News{}, &domain.Pagination{CurrentPage: 1}, nil)
	h := NewNewsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/news?includeUnpublished=true", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestNewsList_AdminSeesDraftsOnRequest(t *testing.T) {
	svc := &mockNewsSvc{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(q domain.NewsQuery) bool {
		return q.IncludeUnpublished && q.Search == "razia"
	})).Return([]domain.News{}, &domain.Pagination{CurrentPage: 1}, nil)
	h := NewNewsHandler(svc)

	req := authedRequest(http.MethodGet, "/api/news?includeUnpublished=true&search=razia", nil,
		&jwtinfra.Claims{AdminID: "3201234567890001", Role: domain.RoleAdmin})
	rr := httptest.NewRecorder()
	h.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

// --- Get ---

func TestNewsGet_CountsViewByDefault(t *testing.T) {
	svc := &mockNewsSvc{}
	svc.On("Get", mock.Anything, "n1", true).Return(&domain.News{NewsID: "n1", Views: 1}, nil)
	h := NewNewsHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/news/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/news/n1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestNewsGet_SkipViewCount(t *testing.T) {
	svc := &mockNewsSvc{}
	svc.On("Get", mock.Anything, "n1", false).Return(&domain.News{NewsID: "n1"}, nil)
	h := NewNewsHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/news/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/news/n1?skipViewCount=true", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestNewsGet_NotFound(t *testing.T) {
	svc := &mockNewsSvc{}
	svc.On("Get", mock.Anything, "nope", true).Return(nil, domain.ErrNotFound)
	h := NewNewsHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/news/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/news/nope", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
