// Package social owns the follow graph: the bidirectional followers and
// following arrays on the two user documents, updated together in one store
// transaction.
package social

import (
	"context"
	"fmt"

	"mataro/models"
)

type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	SetFollowing(ctx context.Context, userID string, following []string) error
	SetFollowers(ctx context.Context, userID string, followers []string) error
}

type Notifier interface {
	Emit(typ, fromUserID, toUserID, postID, message string)
}

type Graph struct {
	store  Store
	notify Notifier
}

func NewGraph(store Store, notify Notifier) *Graph {
	return &Graph{store: store, notify: notify}
}

// Follow adds target to follower's following set and the inverse, atomically
// across both user documents. Following an already-followed user is a no-op,
// as is following yourself.
func (g *Graph) Follow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return nil
	}

	changed := false
	err := g.store.WithTx(ctx, func(ctx context.Context) error {
		follower, err := g.store.GetUser(ctx, followerID)
		if err != nil {
			return fmt.Errorf("follower: %w", err)
		}
		target, err := g.store.GetUser(ctx, targetID)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}

		following, addedA := addIfAbsent(follower.Following, targetID)
		followers, addedB := addIfAbsent(target.Followers, followerID)
		changed = addedA || addedB
		if !changed {
			return nil
		}

		if err := g.store.SetFollowing(ctx, followerID, following); err != nil {
			return err
		}
		return g.store.SetFollowers(ctx, targetID, followers)
	})
	if err != nil {
		return err
	}

	if changed {
		username := followerID
		if follower, err := g.store.GetUser(ctx, followerID); err == nil {
			username = follower.Username
		}
		g.notify.Emit(models.NotificationFollow, followerID, targetID, "",
			fmt.Sprintf("%s empezó a seguirte", username))
	}
	return nil
}

// Unfollow removes the relationship in both directions. Unfollowing a user
// who was never followed is a no-op.
func (g *Graph) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return nil
	}

	return g.store.WithTx(ctx, func(ctx context.Context) error {
		follower, err := g.store.GetUser(ctx, followerID)
		if err != nil {
			return fmt.Errorf("follower: %w", err)
		}
		target, err := g.store.GetUser(ctx, targetID)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}

		following, removedA := removeIfPresent(follower.Following, targetID)
		followers, removedB := removeIfPresent(target.Followers, followerID)
		if !removedA && !removedB {
			return nil
		}

		if err := g.store.SetFollowing(ctx, followerID, following); err != nil {
			return err
		}
		return g.store.SetFollowers(ctx, targetID, followers)
	})
}

func (g *Graph) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	follower, err := g.store.GetUser(ctx, followerID)
	if err != nil {
		return false, err
	}
	return follower.IsFollowing(targetID), nil
}

func addIfAbsent(set []string, id string) ([]string, bool) {
	for _, existing := range set {
		if existing == id {
			return set, false
		}
	}
	return append(append([]string{}, set...), id), true
}

func removeIfPresent(set []string, id string) ([]string, bool) {
	out := make([]string, 0, len(set))
	removed := false
	for _, existing := range set {
		if existing == id {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	return out, removed
}
