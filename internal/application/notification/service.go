package notification

import (
	"context"

	"github.com/narcomap-api/internal/domain"
)

type Service interface {
	// List returns notifications newest first, decorated with the read
	// state derived for the requesting admin. With unreadOnly set, only
	// notifications unread for that admin are returned.
	List(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.NotificationView, error)
	// MarkRead idempotently adds the admin to the read-by set.
	MarkRead(ctx context.Context, notificationID, adminID string) (*domain.NotificationView, error)
	// MarkAllRead marks every notification read for the admin in one bulk
	// store operation.
	MarkAllRead(ctx context.Context, adminID string) error
	CountUnread(ctx context.Context, adminID string) (int, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, unreadFor string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID, adminID string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, adminID string) error
	CountUnread(ctx context.Context, adminID string) (int, error)
}

const defaultListLimit = 100

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.NotificationView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	unreadFor := ""
	if unreadOnly {
		unreadFor = adminID
	}
	notifications, err := s.repo.List(ctx, unreadFor, limit)
	if err != nil {
		return nil, err
	}
	views := make([]domain.NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = decorate(n, adminID)
	}
	return views, nil
}

func (s *service) MarkRead(ctx context.Context, notificationID, adminID string) (*domain.NotificationView, error) {
	n, err := s.repo.MarkRead(ctx, notificationID, adminID)
	if err != nil {
		return nil, err
	}
	view := decorate(*n, adminID)
	return &view, nil
}

func (s *service) MarkAllRead(ctx context.Context, adminID string) error {
	return s.repo.MarkAllRead(ctx, adminID)
}

func (s *service) CountUnread(ctx context.Context, adminID string) (int, error) {
	return s.repo.CountUnread(ctx, adminID)
}

// decorate computes the per-admin read state: the legacy global flag or
// membership in the read-by set.
func decorate(n domain.Notification, adminID string) domain.NotificationView {
	return domain.NotificationView{Notification: n, IsRead: n.IsReadBy(adminID)}
}
