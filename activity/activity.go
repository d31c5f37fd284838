// Package activity publishes audit events about sign-ins and donations.
// Publishing is fire and forget: failures are logged and never surface to
// the visitor.
package activity

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/queue"
	reqctx "github.com/octabyte/emaar-web/utils/context"
	"github.com/octabyte/emaar-web/utils/logger"
)

const (
	LoginSucceeded     = "auth.login_succeeded"
	LoginFailed        = "auth.login_failed"
	Logout             = "auth.logout"
	SessionInvalidated = "auth.session_invalidated"
	DonationSubmitted  = "donation.submitted"
	DonationReviewed   = "donation.reviewed"
	MosquesImported    = "mosque.import_uploaded"
	MosqueMediaAdded   = "mosque.media_uploaded"
)

type Event struct {
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	SessionID  string         `json:"session_id,omitempty"`
	UserID     uint64         `json:"user_id,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}

// Multi fans every event out to each publisher in turn.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) {
	for _, p := range m {
		p.Publish(ctx, event)
	}
}

// QueuePublisher sends events to RabbitMQ with routing key
// <prefix><event name>.
type QueuePublisher struct {
	pub    queue.Publisher
	prefix string
	now    func() time.Time
}

func NewQueuePublisher(pub queue.Publisher, routingKeyPrefix string) *QueuePublisher {
	if routingKeyPrefix == "" {
		routingKeyPrefix = "activity."
	}
	return &QueuePublisher{pub: pub, prefix: routingKeyPrefix, now: time.Now}
}

func (q *QueuePublisher) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = q.now().UTC()
	}
	// Page handlers leave the actor to the request context.
	if event.SessionID == "" {
		event.SessionID = reqctx.GetSessionIDFromContext(ctx)
	}
	if u := reqctx.GetSessionFromContext(ctx).User; event.UserID == 0 && u != nil {
		event.UserID = u.ID
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.LogError("encode activity event", zap.String("event", event.Name), zap.Error(err))
		return
	}
	if err := q.pub.Publish(ctx, q.prefix+event.Name, body); err != nil {
		logger.LogWarn("publish activity event", zap.String("event", event.Name), zap.Error(err))
	}
}

func (q *QueuePublisher) Close() error {
	return q.pub.Close()
}
