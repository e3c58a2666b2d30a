package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_SetAndGet(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	orderID := uuid.New()
	require.NoError(t, store.Set(ctx, "checkout:abc", orderID, time.Minute))

	got, found, err := store.Get(ctx, "checkout:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, orderID, got)
}

func TestInMemoryIdempotencyStore_MissingKey(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	got, found, err := store.Get(context.Background(), "never-set")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, uuid.Nil, got)
}

func TestInMemoryIdempotencyStore_ExpiredEntryNotReturned(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "checkout:old", uuid.New(), -time.Second))

	_, found, err := store.Get(ctx, "checkout:old")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryIdempotencyStore_OverwriteKeepsLatest(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()
	require.NoError(t, store.Set(ctx, "checkout:key", first, time.Minute))
	require.NoError(t, store.Set(ctx, "checkout:key", second, time.Minute))

	got, found, err := store.Get(ctx, "checkout:key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, second, got)
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
