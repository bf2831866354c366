package shared

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, time.Minute), mr
}

func TestIdempotencyStoreRejectsReplay(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CheckAndInsert(ctx, "abc", "sales_orders"))
	err := store.CheckAndInsert(ctx, "abc", "sales_orders")
	assert.ErrorIs(t, err, ErrIdempotencyConflict)

	// Same key in another module is independent.
	assert.NoError(t, store.CheckAndInsert(ctx, "abc", "customers"))
}

func TestIdempotencyStoreDeleteReleasesKey(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CheckAndInsert(ctx, "k1", "sales_orders"))
	require.NoError(t, store.Delete(ctx, "k1", "sales_orders"))
	assert.NoError(t, store.CheckAndInsert(ctx, "k1", "sales_orders"))
}

func TestIdempotencyStoreExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CheckAndInsert(ctx, "k2", "sales_orders"))
	mr.FastForward(2 * time.Minute)
	assert.NoError(t, store.CheckAndInsert(ctx, "k2", "sales_orders"))
}

func TestIdempotencyStoreValidatesInput(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.Error(t, store.CheckAndInsert(ctx, "", "sales_orders"))
	assert.Error(t, store.CheckAndInsert(ctx, "k", ""))

	var disabled *IdempotencyStore
	assert.NoError(t, disabled.CheckAndInsert(ctx, "k", "m"))
}

func TestValidationErrorUnwraps(t *testing.T) {
	err := NewValidationError("lineItems", "at least one line item is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: lineItems: at least one line item is required", err.Error())
	assert.Equal(t, err.Error(), UserSafeMessage(err))
	assert.Equal(t, "internal error", UserSafeMessage(assert.AnError))
}
