package engagement

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mataro/errs"
	"mataro/models"
)

type emitted struct {
	typ, from, to, postID, message string
}

type fakeNotifier struct {
	events []emitted
}

func (f *fakeNotifier) Emit(typ, from, to, postID, message string) {
	f.events = append(f.events, emitted{typ, from, to, postID, message})
}

type fakeStore struct {
	posts     map[string]*models.Post
	records   map[Kind]map[string]*models.EngagementRecord
	usernames map[string]string

	failApply bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts: map[string]*models.Post{},
		records: map[Kind]map[string]*models.EngagementRecord{
			KindLike:  {},
			KindShare: {},
		},
		usernames: map[string]string{},
	}
}

func (f *fakeStore) addPost(id, author string) *models.Post {
	post := &models.Post{ID: id, UID: author, LikedBy: []string{}, SharedBy: []string{}}
	f.posts[id] = post
	return post
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeStore) FindRecord(ctx context.Context, kind Kind, postID, userID string) (*models.EngagementRecord, error) {
	for _, rec := range f.records[kind] {
		if rec.PostID == postID && rec.UserID == userID {
			return rec, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeStore) InsertRecord(ctx context.Context, kind Kind, rec *models.EngagementRecord) error {
	f.records[kind][rec.ID] = rec
	return nil
}

func (f *fakeStore) DeleteRecord(ctx context.Context, kind Kind, id string) error {
	delete(f.records[kind], id)
	return nil
}

func (f *fakeStore) ApplyEngagement(ctx context.Context, kind Kind, postID, userID string, delta int) error {
	if f.failApply {
		return fmt.Errorf("store unavailable")
	}
	post, ok := f.posts[postID]
	if !ok {
		return errs.ErrNotFound
	}

	set := &post.LikedBy
	counter := &post.Likes
	if kind == KindShare {
		set = &post.SharedBy
		counter = &post.Shares
	}

	*counter += delta
	if delta > 0 {
		for _, id := range *set {
			if id == userID {
				return nil
			}
		}
		*set = append(*set, userID)
	} else {
		out := (*set)[:0]
		for _, id := range *set {
			if id != userID {
				out = append(out, id)
			}
		}
		*set = out
	}
	return nil
}

func (f *fakeStore) GetPostAuthor(ctx context.Context, postID string) (string, error) {
	post, ok := f.posts[postID]
	if !ok {
		return "", errs.ErrNotFound
	}
	return post.UID, nil
}

func (f *fakeStore) GetUsername(ctx context.Context, userID string) (string, error) {
	username, ok := f.usernames[userID]
	if !ok {
		return "", errs.ErrNotFound
	}
	return username, nil
}

func (f *fakeStore) recordsForPost(kind Kind, postID string) []string {
	users := []string{}
	for _, rec := range f.records[kind] {
		if rec.PostID == postID {
			users = append(users, rec.UserID)
		}
	}
	return users
}

func TestToggleAddsLike(t *testing.T) {
	store := newFakeStore()
	post := store.addPost("p1", "u1")
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	added, err := engine.Toggle(context.Background(), KindLike, "p1", "u2")
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, 1, post.Likes)
	assert.Equal(t, []string{"u2"}, post.LikedBy)
	assert.Equal(t, []string{"u2"}, store.recordsForPost(KindLike, "p1"))
}

func TestToggleIsIdempotentUnderRepetition(t *testing.T) {
	store := newFakeStore()
	post := store.addPost("p1", "u1")
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	added, err := engine.Toggle(context.Background(), KindLike, "p1", "u2")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = engine.Toggle(context.Background(), KindLike, "p1", "u2")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, 0, post.Likes)
	assert.Empty(t, post.LikedBy)
	assert.Empty(t, store.recordsForPost(KindLike, "p1"))
}

func TestCounterMatchesSetAfterToggleSequence(t *testing.T) {
	store := newFakeStore()
	post := store.addPost("p1", "u1")
	engine := NewEngine(store, &fakeNotifier{})

	users := []string{"u2", "u3", "u4", "u2", "u5", "u3"}
	for _, userID := range users {
		_, err := engine.Toggle(context.Background(), KindShare, "p1", userID)
		require.NoError(t, err)
	}

	assert.Equal(t, post.Shares, len(post.SharedBy))
	assert.ElementsMatch(t, post.SharedBy, store.recordsForPost(KindShare, "p1"))
	assert.ElementsMatch(t, []string{"u4", "u5"}, post.SharedBy)
}

func TestToggleNotifiesOnlyOnAddedTransition(t *testing.T) {
	store := newFakeStore()
	store.addPost("p1", "u1")
	store.usernames["u2"] = "maria"
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	_, err := engine.Toggle(context.Background(), KindLike, "p1", "u2")
	require.NoError(t, err)
	_, err = engine.Toggle(context.Background(), KindLike, "p1", "u2")
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.Equal(t, models.NotificationLike, event.typ)
	assert.Equal(t, "u2", event.from)
	assert.Equal(t, "u1", event.to)
	assert.Equal(t, "p1", event.postID)
	assert.Contains(t, event.message, "maria")
}

func TestToggleOwnPostDoesNotNotify(t *testing.T) {
	store := newFakeStore()
	store.addPost("p1", "u1")
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	added, err := engine.Toggle(context.Background(), KindShare, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Empty(t, notifier.events)
}

func TestToggleShareNotificationType(t *testing.T) {
	store := newFakeStore()
	store.addPost("p1", "u1")
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	_, err := engine.Toggle(context.Background(), KindShare, "p1", "u2")
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, models.NotificationShare, notifier.events[0].typ)
	assert.Contains(t, notifier.events[0].message, "compartió tu post")
}

func TestToggleMissingPost(t *testing.T) {
	engine := NewEngine(newFakeStore(), &fakeNotifier{})

	_, err := engine.Toggle(context.Background(), KindLike, "missing", "u1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestToggleValidation(t *testing.T) {
	engine := NewEngine(newFakeStore(), &fakeNotifier{})

	_, err := engine.Toggle(context.Background(), KindLike, "", "u1")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = engine.Toggle(context.Background(), KindLike, "p1", "")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestToggleFailedApplyDoesNotNotify(t *testing.T) {
	store := newFakeStore()
	store.addPost("p1", "u1")
	store.failApply = true
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	_, err := engine.Toggle(context.Background(), KindLike, "p1", "u2")
	assert.Error(t, err)
	assert.Empty(t, notifier.events)
}
