package location

import (
	"context"
	"errors"
	"testing"

	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockLocationStore struct{ mock.Mock }

func (m *mockLocationStore) Put(ctx context.Context, l *domain.Location) error {
	return m.Called(ctx, l).Error(0)
}
func (m *mockLocationStore) Get(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	if l, _ := args.Get(0).(*domain.Location); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockLocationStore) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}
func (m *mockLocationStore) Update(ctx context.Context, locationID string, updates map[string]interface{}) error {
	return m.Called(ctx, locationID, updates).Error(0)
}
func (m *mockLocationStore) Delete(ctx context.Context, locationID string) error {
	return m.Called(ctx, locationID).Error(0)
}

// failingNotificationStore rejects every write, to prove marker creation
// does not depend on the notification log being writable.
type failingNotificationStore struct{}

func (failingNotificationStore) Put(ctx context.Context, n *domain.Notification) error {
	return errors.New("table offline")
}
func (failingNotificationStore) List(ctx context.Context, unreadFor string, limit int) ([]domain.Notification, error) {
	return nil, errors.New("table offline")
}
func (failingNotificationStore) MarkRead(ctx context.Context, notificationID, adminID string) (*domain.Notification, error) {
	return nil, errors.New("table offline")
}
func (failingNotificationStore) MarkAllRead(ctx context.Context, adminID string) error {
	return errors.New("table offline")
}
func (failingNotificationStore) CountUnread(ctx context.Context, adminID string) (int, error) {
	return 0, errors.New("table offline")
}

// --- helpers ---

func ptr[T any](v T) *T { return &v }

func newSvc(repo *mockLocationStore) Service {
	return NewService(repo, notification.NewEmitter(failingNotificationStore{}, nil))
}

func baseInput() domain.LocationInput {
	return domain.LocationInput{
		Latitude:  ptr(0.918),
		Longitude: ptr(104.465),
		Village:   "Tanjungpinang Kota",
		Address:   "Jl. Merdeka",
	}
}

// --- Create tests ---

func TestCreate_DefaultsCasesAndColor(t *testing.T) {
	repo := &mockLocationStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(l *domain.Location) bool {
		return l.Cases == 1 && l.Color == domain.DefaultMarkerColor
	})).Return(nil)

	l, err := newSvc(repo).Create(context.Background(), baseInput(), notification.Actor{})

	require.NoError(t, err)
	assert.NotEmpty(t, l.LocationID)
	repo.AssertExpectations(t)
}

func TestCreate_SucceedsWhenNotificationWriteFails(t *testing.T) {
	repo := &mockLocationStore{}
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)

	_, err := newSvc(repo).Create(context.Background(), baseInput(), notification.Actor{
		AdminID: "1308162101990001", Name: "Root",
	})

	require.NoError(t, err)
}

func TestCreate_RejectsUnknownVillage(t *testing.T) {
	input := baseInput()
	input.Village = "Atlantis"

	_, err := newSvc(&mockLocationStore{}).Create(context.Background(), input, notification.Actor{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_RejectsMissingCoordinates(t *testing.T) {
	input := baseInput()
	input.Latitude = nil

	_, err := newSvc(&mockLocationStore{}).Create(context.Background(), input, notification.Actor{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Update tests ---

func TestUpdate_OutOfRangeLatitude(t *testing.T) {
	repo := &mockLocationStore{}
	repo.On("Get", mock.Anything, "loc1").Return(&domain.Location{LocationID: "loc1"}, nil)

	_, err := newSvc(repo).Update(context.Background(), "loc1", domain.LocationInput{
		Latitude: ptr(120.0),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdate_UnknownMarker(t *testing.T) {
	repo := &mockLocationStore{}
	repo.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	_, err := newSvc(repo).Update(context.Background(), "nope", domain.LocationInput{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- Statistics tests ---

func TestStatistics_AggregatesPerVillage(t *testing.T) {
	repo := &mockLocationStore{}
	repo.On("List", mock.Anything).Return([]domain.Location{
		{Village: "Dompak", Cases: 3, Color: "#111111"},
		{Village: "Dompak", Cases: 2, Color: "#111111"},
		{Village: "Senggarang", Cases: 7, Color: "#222222"},
	}, nil)

	stats, err := newSvc(repo).Statistics(context.Background())

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Senggarang", stats[0].Village)
	assert.Equal(t, 7, stats[0].Total)
	assert.Equal(t, 1, stats[0].Count)
	assert.Equal(t, "Dompak", stats[1].Village)
	assert.Equal(t, 5, stats[1].Total)
	assert.Equal(t, 2, stats[1].Count)
}
