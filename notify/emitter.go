// Package notify owns the outbound notification queue. Emit enqueues after
// the caller's primary write has committed; a single worker drains the queue
// into the store. Delivery is best-effort: a full queue or a failed insert is
// logged and dropped, never surfaced to the request path.
package notify

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mataro/logger"
	"mataro/models"
)

type Store interface {
	InsertNotification(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type Emitter struct {
	store  Store
	events chan models.Notification
	done   chan struct{}
}

func NewEmitter(store Store, buffer int) *Emitter {
	if buffer <= 0 {
		buffer = 256
	}
	return &Emitter{
		store:  store,
		events: make(chan models.Notification, buffer),
		done:   make(chan struct{}),
	}
}

// Start runs the worker until Close is called and the queue is drained.
func (e *Emitter) Start() {
	go func() {
		defer close(e.done)
		for n := range e.events {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := e.store.InsertNotification(ctx, &n); err != nil {
				logger.Log.WithError(err).WithField("type", n.Type).Warn("notification insert failed")
			}
			cancel()
		}
	}()
}

// Close stops accepting events and waits for the worker to drain the queue.
func (e *Emitter) Close() {
	close(e.events)
	<-e.done
}

// Emit queues a notification. A self-directed event is a no-op. Never blocks:
// when the queue is full the event is dropped and logged.
func (e *Emitter) Emit(typ, fromUserID, toUserID, postID, message string) {
	if fromUserID == toUserID || toUserID == "" {
		return
	}

	n := models.Notification{
		ID:         primitive.NewObjectID().Hex(),
		Type:       typ,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		PostID:     postID,
		Message:    message,
		CreatedAt:  time.Now().UnixMilli(),
		Read:       false,
	}

	select {
	case e.events <- n:
	default:
		logger.Log.WithField("type", typ).Warn("notification queue full, event dropped")
	}
}
