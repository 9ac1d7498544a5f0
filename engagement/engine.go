// Package engagement owns like/share toggle semantics. A toggle keeps two
// representations in lockstep inside one store transaction: the flat join
// record collection and the counter + set pair on the post document.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mataro/errs"
	"mataro/logger"
	"mataro/models"
)

type Kind string

const (
	KindLike  Kind = "like"
	KindShare Kind = "share"
)

// NotificationType maps an engagement kind to its notification type.
func (k Kind) NotificationType() string {
	if k == KindShare {
		return models.NotificationShare
	}
	return models.NotificationLike
}

type Store interface {
	// WithTx runs fn atomically; the join-record write and the post update
	// either both apply or neither does.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	FindRecord(ctx context.Context, kind Kind, postID, userID string) (*models.EngagementRecord, error)
	InsertRecord(ctx context.Context, kind Kind, rec *models.EngagementRecord) error
	DeleteRecord(ctx context.Context, kind Kind, id string) error

	// ApplyEngagement increments the post counter by delta and adds userID to
	// (delta > 0) or removes it from (delta < 0) the matching set field.
	ApplyEngagement(ctx context.Context, kind Kind, postID, userID string, delta int) error

	GetPostAuthor(ctx context.Context, postID string) (string, error)
	GetUsername(ctx context.Context, userID string) (string, error)
}

type Notifier interface {
	Emit(typ, fromUserID, toUserID, postID, message string)
}

type Engine struct {
	store  Store
	notify Notifier
}

func NewEngine(store Store, notify Notifier) *Engine {
	return &Engine{store: store, notify: notify}
}

// Toggle flips the (user, post, kind) relationship and returns true when the
// toggle added it. A notification fires only on the added transition and only
// across a different-user boundary; its failure never fails the toggle.
func (e *Engine) Toggle(ctx context.Context, kind Kind, postID, userID string) (bool, error) {
	if postID == "" || userID == "" {
		return false, fmt.Errorf("%w: postId and userId are required", errs.ErrValidation)
	}

	authorID, err := e.store.GetPostAuthor(ctx, postID)
	if err != nil {
		return false, err
	}

	var added bool
	err = e.store.WithTx(ctx, func(ctx context.Context) error {
		rec, err := e.store.FindRecord(ctx, kind, postID, userID)
		switch {
		case err == nil:
			if err := e.store.DeleteRecord(ctx, kind, rec.ID); err != nil {
				return err
			}
			return e.store.ApplyEngagement(ctx, kind, postID, userID, -1)

		case errors.Is(err, errs.ErrNotFound):
			rec := &models.EngagementRecord{
				ID:        primitive.NewObjectID().Hex(),
				PostID:    postID,
				UserID:    userID,
				CreatedAt: time.Now().UnixMilli(),
			}
			if err := e.store.InsertRecord(ctx, kind, rec); err != nil {
				return err
			}
			if err := e.store.ApplyEngagement(ctx, kind, postID, userID, 1); err != nil {
				return err
			}
			added = true
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}

	if added && authorID != userID {
		e.notify.Emit(kind.NotificationType(), userID, authorID, postID, e.message(ctx, kind, userID))
	}

	return added, nil
}

func (e *Engine) message(ctx context.Context, kind Kind, userID string) string {
	username, err := e.store.GetUsername(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).Debug("username lookup for notification failed")
		username = "Alguien"
	}
	if kind == KindShare {
		return fmt.Sprintf("%s compartió tu post", username)
	}
	return fmt.Sprintf("a %s le gustó tu post", username)
}
