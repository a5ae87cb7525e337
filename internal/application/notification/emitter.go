package notification

import (
	"context"
	"time"

	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/pkg/id"
	"github.com/rs/zerolog/log"
)

// Actor identifies who triggered a content event.
type Actor struct {
	AdminID string
	Name    string
}

type eventPublisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
}

// Emitter writes notifications triggered by content events. Emission is
// fire-and-forget: every failure is logged and swallowed so the triggering
// content operation is never blocked or rolled back by it.
type Emitter struct {
	repo      notificationStore
	publisher eventPublisher // optional SNS fan-out
}

func NewEmitter(repo notificationStore, publisher eventPublisher) *Emitter {
	return &Emitter{repo: repo, publisher: publisher}
}

// Emit records a notification and, when configured, publishes the event to
// the external topic. It never returns an error.
func (e *Emitter) Emit(ctx context.Context, notifType, message string, payload map[string]interface{}, actor Actor) {
	n := &domain.Notification{
		NotificationID: id.New(),
		Type:           notifType,
		Message:        message,
		Payload:        payload,
		CreatedBy:      actor.AdminID,
		CreatedByName:  actor.Name,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.repo.Put(ctx, n); err != nil {
		log.Warn().Err(err).Str("type", notifType).Msg("failed to record notification")
	}
	if e.publisher != nil {
		if err := e.publisher.Publish(ctx, notifType, n); err != nil {
			log.Warn().Err(err).Str("type", notifType).Msg("failed to publish event")
		}
	}
}
