package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mataro/models"
)

type fakeStore struct {
	mu       sync.Mutex
	inserted []models.Notification
}

func (f *fakeStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, *n)
	return nil
}

func (f *fakeStore) ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeStore) MarkRead(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeStore) all() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification{}, f.inserted...)
}

func TestEmitterDeliversToStore(t *testing.T) {
	store := &fakeStore{}
	emitter := NewEmitter(store, 8)
	emitter.Start()

	before := time.Now().UnixMilli()
	emitter.Emit(models.NotificationLike, "ana", "bea", "post1", "a Ana le gustó tu post")
	emitter.Close()

	inserted := store.all()
	require.Len(t, inserted, 1)
	n := inserted[0]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, models.NotificationLike, n.Type)
	assert.Equal(t, "ana", n.FromUserID)
	assert.Equal(t, "bea", n.ToUserID)
	assert.Equal(t, "post1", n.PostID)
	assert.Equal(t, "a Ana le gustó tu post", n.Message)
	assert.False(t, n.Read)
	assert.GreaterOrEqual(t, n.CreatedAt, before)
}

func TestEmitterSkipsSelfEvents(t *testing.T) {
	store := &fakeStore{}
	emitter := NewEmitter(store, 8)
	emitter.Start()

	emitter.Emit(models.NotificationLike, "ana", "ana", "post1", "ignored")
	emitter.Emit(models.NotificationLike, "ana", "", "post1", "ignored")
	emitter.Close()

	assert.Empty(t, store.all())
}

func TestEmitterCloseDrainsQueue(t *testing.T) {
	store := &fakeStore{}
	emitter := NewEmitter(store, 32)
	emitter.Start()

	for i := 0; i < 10; i++ {
		emitter.Emit(models.NotificationComment, "ana", "bea", "post1", "msg")
	}
	emitter.Close()

	assert.Len(t, store.all(), 10)
}

func TestEmitterDropsWhenQueueFull(t *testing.T) {
	store := &fakeStore{}
	emitter := NewEmitter(store, 1)
	// Worker not started: the second event finds the buffer full and must be
	// dropped without blocking.
	done := make(chan struct{})
	go func() {
		emitter.Emit(models.NotificationShare, "ana", "bea", "p", "uno")
		emitter.Emit(models.NotificationShare, "ana", "bea", "p", "dos")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full queue")
	}

	emitter.Start()
	emitter.Close()
	require.Len(t, store.all(), 1)
	assert.Equal(t, "uno", store.all()[0].Message)
}
