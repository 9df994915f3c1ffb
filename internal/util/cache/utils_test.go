package cache_utils

import (
	"context"
	"testing"

	test_utils "taskboard/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedItem struct {
	Name string `json:"name"`
}

func Test_CacheUtil_WithNilClient_IsDisabledAndNoop(t *testing.T) {
	ctx := context.Background()
	cacheUtil := NewCacheUtil[cachedItem](nil, "test:")

	assert.False(t, cacheUtil.IsEnabled())
	assert.NoError(t, cacheUtil.Ping(ctx))

	cacheUtil.Set(ctx, "key", &cachedItem{Name: "value"})
	assert.Nil(t, cacheUtil.Get(ctx, "key"))

	cacheUtil.Invalidate(ctx, "key")
}

func Test_CacheUtil_NilReceiver_IsDisabled(t *testing.T) {
	var cacheUtil *CacheUtil[cachedItem]

	assert.False(t, cacheUtil.IsEnabled())
	assert.Nil(t, cacheUtil.Get(context.Background(), "key"))
}

func Test_CacheUtil_WithNilClient_HasNoVersion(t *testing.T) {
	ctx := context.Background()
	cacheUtil := NewCacheUtil[cachedItem](nil, "test:")

	_, ok := cacheUtil.CurrentVersion(ctx, "key")
	assert.False(t, ok)
	assert.NoError(t, cacheUtil.BumpVersion(ctx, "key"))
}

func Test_CacheUtil_SetGetInvalidate_RoundTripsThroughValkey(t *testing.T) {
	ctx := context.Background()
	cacheUtil := NewCacheUtil[cachedItem](test_utils.StartTestValkey(t), "test_"+uuid.NewString()+":")

	cacheUtil.Set(ctx, "key", &cachedItem{Name: "value"})

	cached := cacheUtil.Get(ctx, "key")
	require.NotNil(t, cached)
	assert.Equal(t, "value", cached.Name)

	cacheUtil.Invalidate(ctx, "key")
	assert.Nil(t, cacheUtil.Get(ctx, "key"))
	assert.NoError(t, cacheUtil.Ping(ctx))
}

func Test_CacheUtil_WriteUnderOldVersion_IsNotReadAfterBump(t *testing.T) {
	ctx := context.Background()
	cacheUtil := NewCacheUtil[cachedItem](test_utils.StartTestValkey(t), "test_"+uuid.NewString()+":")

	loadedAt, ok := cacheUtil.CurrentVersion(ctx, "key")
	require.True(t, ok)

	again, ok := cacheUtil.CurrentVersion(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, loadedAt, again)

	// the data changes while a reader still holds the old version
	require.NoError(t, cacheUtil.BumpVersion(ctx, "key"))
	cacheUtil.SetVersioned(ctx, "key", loadedAt, &cachedItem{Name: "stale"})

	current, ok := cacheUtil.CurrentVersion(ctx, "key")
	require.True(t, ok)
	assert.NotEqual(t, loadedAt, current)
	assert.Nil(t, cacheUtil.GetVersioned(ctx, "key", current))

	cacheUtil.SetVersioned(ctx, "key", current, &cachedItem{Name: "fresh"})
	cached := cacheUtil.GetVersioned(ctx, "key", current)
	require.NotNil(t, cached)
	assert.Equal(t, "fresh", cached.Name)
}
