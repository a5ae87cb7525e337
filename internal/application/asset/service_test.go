package asset

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/narcomap-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func input(filename, contentType string, size int64) UploadInput {
	return UploadInput{
		Reader:      strings.NewReader("bytes"),
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		Folder:      "banners",
		MaxSize:     MaxBannerSize,
	}
}

func TestUpload_RejectsNonImageExtension(t *testing.T) {
	svc := NewService(&mockObjectStore{})

	_, err := svc.Upload(context.Background(), input("report.pdf", "application/pdf", 100))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpload_RejectsMismatchedContentType(t *testing.T) {
	svc := NewService(&mockObjectStore{})

	_, err := svc.Upload(context.Background(), input("evil.png", "application/octet-stream", 100))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpload_RejectsOversize(t *testing.T) {
	svc := NewService(&mockObjectStore{})

	_, err := svc.Upload(context.Background(), input("hero.jpg", "image/jpeg", MaxBannerSize+1))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpload_KeyCarriesFolderAndSanitizedName(t *testing.T) {
	store := &mockObjectStore{}
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "banners/") && strings.HasSuffix(key, "-hero_image.webp")
	}), mock.Anything, "image/webp").Return("https://cdn/x", nil)

	got, err := NewService(store).Upload(context.Background(), input("hero image.webp", "image/webp", 100))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x", got.URL)
	assert.NotEmpty(t, got.Key)
	store.AssertExpectations(t)
}

func TestCleanup_SwallowsDeleteFailure(t *testing.T) {
	store := &mockObjectStore{}
	store.On("Delete", mock.Anything, "banners/x").Return(errors.New("bucket gone"))

	NewService(store).Cleanup(context.Background(), "banners/x")

	store.AssertExpectations(t)
}

func TestCleanup_SkipsEmptyKey(t *testing.T) {
	store := &mockObjectStore{}

	NewService(store).Cleanup(context.Background(), "")

	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
