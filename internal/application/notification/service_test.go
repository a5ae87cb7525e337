package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/narcomap-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Put(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockNotificationStore) List(ctx context.Context, unreadFor string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, unreadFor, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *mockNotificationStore) MarkRead(ctx context.Context, notificationID, adminID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID, adminID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) MarkAllRead(ctx context.Context, adminID string) error {
	return m.Called(ctx, adminID).Error(0)
}
func (m *mockNotificationStore) CountUnread(ctx context.Context, adminID string) (int, error) {
	args := m.Called(ctx, adminID)
	return args.Int(0), args.Error(1)
}

// fakeNotificationStore keeps notifications in memory with the same
// per-admin read-set semantics as the table.
type fakeNotificationStore struct {
	items map[string]*domain.Notification
}

func newFakeNotificationStore(ns ...*domain.Notification) *fakeNotificationStore {
	f := &fakeNotificationStore{items: map[string]*domain.Notification{}}
	for _, n := range ns {
		f.items[n.NotificationID] = n
	}
	return f
}

func (f *fakeNotificationStore) Put(_ context.Context, n *domain.Notification) error {
	f.items[n.NotificationID] = n
	return nil
}

func (f *fakeNotificationStore) List(_ context.Context, unreadFor string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.items {
		if unreadFor != "" && n.IsReadBy(unreadFor) {
			continue
		}
		out = append(out, *n)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, notificationID, adminID string) (*domain.Notification, error) {
	n, ok := f.items[notificationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !n.IsReadBy(adminID) {
		n.ReadBy = append(n.ReadBy, adminID)
	}
	return n, nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, adminID string) error {
	for _, n := range f.items {
		if !n.IsReadBy(adminID) {
			n.ReadBy = append(n.ReadBy, adminID)
		}
	}
	return nil
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, adminID string) (int, error) {
	count := 0
	for _, n := range f.items {
		if !n.IsReadBy(adminID) {
			count++
		}
	}
	return count, nil
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	args := m.Called(ctx, subject, event)
	return args.Error(0)
}

// --- List tests ---

func TestList_DerivesPerAdminReadState(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("List", mock.Anything, "", defaultListLimit).Return([]domain.Notification{
		{NotificationID: "n3", ReadBy: []string{"a1"}},
		{NotificationID: "n2", Read: true}, // legacy global flag
		{NotificationID: "n1", ReadBy: []string{"a2"}},
	}, nil)

	views, err := NewService(repo).List(context.Background(), "a1", false, 0)

	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.True(t, views[0].IsRead)
	assert.True(t, views[1].IsRead)
	assert.False(t, views[2].IsRead)
}

func TestList_UnreadOnlyFiltersForAdmin(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("List", mock.Anything, "a1", 10).Return([]domain.Notification{
		{NotificationID: "n1"},
	}, nil)

	views, err := NewService(repo).List(context.Background(), "a1", true, 10)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].IsRead)
	repo.AssertExpectations(t)
}

// --- MarkRead tests ---

func TestMarkRead_ReturnsDecoratedView(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("MarkRead", mock.Anything, "n1", "a1").Return(&domain.Notification{
		NotificationID: "n1",
		ReadBy:         []string{"a1"},
	}, nil)

	view, err := NewService(repo).MarkRead(context.Background(), "n1", "a1")

	require.NoError(t, err)
	assert.True(t, view.IsRead)
	repo.AssertExpectations(t)
}

func TestMarkRead_UnknownNotification(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("MarkRead", mock.Anything, "nope", "a1").Return(nil, domain.ErrNotFound)

	_, err := NewService(repo).MarkRead(context.Background(), "nope", "a1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMarkRead_SecondMarkIsNoOp(t *testing.T) {
	store := newFakeNotificationStore(
		&domain.Notification{NotificationID: "n1"},
		&domain.Notification{NotificationID: "n2"},
	)
	svc := NewService(store)

	view, err := svc.MarkRead(context.Background(), "n1", "a1")
	require.NoError(t, err)
	assert.True(t, view.IsRead)

	view, err = svc.MarkRead(context.Background(), "n1", "a1")
	require.NoError(t, err)
	assert.True(t, view.IsRead)

	assert.Equal(t, []string{"a1"}, store.items["n1"].ReadBy)
	count, err := svc.CountUnread(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// --- MarkAllRead tests ---

func TestMarkAllRead_ZeroesUnreadCountForThatAdmin(t *testing.T) {
	store := newFakeNotificationStore(
		&domain.Notification{NotificationID: "n1"},
		&domain.Notification{NotificationID: "n2"},
		&domain.Notification{NotificationID: "n3", ReadBy: []string{"a1"}},
	)
	svc := NewService(store)

	require.NoError(t, svc.MarkAllRead(context.Background(), "a1"))

	count, err := svc.CountUnread(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Other admins keep their own unread state.
	other, err := svc.CountUnread(context.Background(), "a2")
	require.NoError(t, err)
	assert.Equal(t, 3, other)
}

// --- Emitter tests ---

func TestEmit_SwallowsStoreFailure(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Put", mock.Anything, mock.Anything).Return(errors.New("table offline"))

	// Emit must not panic or surface the failure.
	NewEmitter(repo, nil).Emit(context.Background(), domain.NotificationLocation,
		"msg", nil, Actor{AdminID: "a1", Name: "Root"})

	repo.AssertExpectations(t)
}

func TestEmit_PublishesAfterPersist(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotificationNews && n.CreatedBy == "a1" && n.NotificationID != ""
	})).Return(nil)
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, domain.NotificationNews, mock.Anything).Return(nil)

	NewEmitter(repo, pub).Emit(context.Background(), domain.NotificationNews,
		"Berita baru", map[string]interface{}{"newsId": "x"}, Actor{AdminID: "a1"})

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestEmit_SwallowsPublishFailure(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("topic gone"))

	NewEmitter(repo, pub).Emit(context.Background(), domain.NotificationSystem,
		"msg", nil, Actor{})

	pub.AssertExpectations(t)
}
