package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := Record{
		SessionID: "sess-1",
		UserID:    "user-1",
		Email:     "a@b.co",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Put(ctx, rec))

	got, ok, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, Record{SessionID: "sess-1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, ok, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreSweepExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	require.NoError(t, store.Put(ctx, Record{SessionID: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Put(ctx, Record{SessionID: "dead-1", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Put(ctx, Record{SessionID: "dead-2", ExpiresAt: now}))

	removed, err := store.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())

	_, ok, _ := store.Get(ctx, "live")
	assert.True(t, ok)
}

func TestRecordExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, Record{ExpiresAt: now}.Expired(now))
	assert.True(t, Record{ExpiresAt: now.Add(-time.Second)}.Expired(now))
	assert.False(t, Record{ExpiresAt: now.Add(time.Second)}.Expired(now))
}
