package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mataro/models"
)

type fakeClient struct {
	data map[string]string

	setTTL  time.Duration
	getErr  error
	deleted []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}}
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if f.getErr != nil {
		cmd.SetErr(f.getErr)
		return cmd
	}
	raw, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(raw)
	return cmd
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.setTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.data, key)
		f.deleted = append(f.deleted, key)
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestProfileCacheRoundTrip(t *testing.T) {
	client := newFakeClient()
	cache := NewProfileCache(client, time.Minute)
	user := &models.User{ID: "u1", Username: "ana", Description: "hola"}

	cache.Set(context.Background(), user)
	got, hit := cache.Get(context.Background(), "u1")

	require.True(t, hit)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Description, got.Description)
	assert.Equal(t, time.Minute, client.setTTL)
}

func TestProfileCacheMiss(t *testing.T) {
	cache := NewProfileCache(newFakeClient(), time.Minute)

	got, hit := cache.Get(context.Background(), "absent")
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestProfileCacheInvalidate(t *testing.T) {
	client := newFakeClient()
	cache := NewProfileCache(client, time.Minute)
	cache.Set(context.Background(), &models.User{ID: "u1", Username: "ana"})

	cache.Invalidate(context.Background(), "u1")

	_, hit := cache.Get(context.Background(), "u1")
	assert.False(t, hit)
	assert.Equal(t, []string{"mataro:profile:u1"}, client.deleted)
}

func TestProfileCacheDropsCorruptEntry(t *testing.T) {
	client := newFakeClient()
	client.data["mataro:profile:u1"] = "{not json"
	cache := NewProfileCache(client, time.Minute)

	_, hit := cache.Get(context.Background(), "u1")
	assert.False(t, hit)
	assert.Contains(t, client.deleted, "mataro:profile:u1")
}

func TestProfileCacheReadErrorIsAMiss(t *testing.T) {
	client := newFakeClient()
	client.getErr = context.DeadlineExceeded
	cache := NewProfileCache(client, time.Minute)

	_, hit := cache.Get(context.Background(), "u1")
	assert.False(t, hit)
}

func TestProfileCacheNilClientDisables(t *testing.T) {
	cache := NewProfileCache(nil, time.Minute)

	cache.Set(context.Background(), &models.User{ID: "u1"})
	cache.Invalidate(context.Background(), "u1")
	got, hit := cache.Get(context.Background(), "u1")

	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestProfileCacheDefaultTTL(t *testing.T) {
	client := newFakeClient()
	cache := NewProfileCache(client, 0)

	cache.Set(context.Background(), &models.User{ID: "u1"})
	assert.Equal(t, DefaultTTL, client.setTTL)
}

func TestProfileCacheStoresJSON(t *testing.T) {
	client := newFakeClient()
	cache := NewProfileCache(client, time.Minute)
	cache.Set(context.Background(), &models.User{ID: "u1", Username: "ana"})

	var stored models.User
	require.NoError(t, json.Unmarshal([]byte(client.data["mataro:profile:u1"]), &stored))
	assert.Equal(t, "ana", stored.Username)
}
