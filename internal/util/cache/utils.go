package cache_utils

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 2 * time.Second
	DefaultCacheExpiry  = 10 * time.Minute

	versionKeyPrefix = "version:"
)

// CacheUtil stores JSON values of type T under a key prefix. With a nil
// client every Get misses and writes are dropped.
type CacheUtil[T any] struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
	expiry  time.Duration
}

func NewCacheUtil[T any](client valkey.Client, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		client:  client,
		prefix:  prefix,
		timeout: DefaultCacheTimeout,
		expiry:  DefaultCacheExpiry,
	}
}

func (c *CacheUtil[T]) IsEnabled() bool {
	return c != nil && c.client != nil
}

// Ping reports whether the cache server answers. A disabled cache is healthy.
func (c *CacheUtil[T]) Ping(ctx context.Context) error {
	if !c.IsEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

func (c *CacheUtil[T]) Get(ctx context.Context, key string) *T {
	if !c.IsEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullKey := c.prefix + key
	result := c.client.Do(ctx, c.client.B().Get().Key(fullKey).Build())

	if result.Error() != nil {
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *CacheUtil[T]) Set(ctx context.Context, key string, item *T) {
	if !c.IsEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	fullKey := c.prefix + key
	c.client.Do(ctx, c.client.B().Set().Key(fullKey).Value(string(data)).Ex(c.expiry).Build())
}

func (c *CacheUtil[T]) Invalidate(ctx context.Context, key string) {
	if !c.IsEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullKey := c.prefix + key
	c.client.Do(ctx, c.client.B().Del().Key(fullKey).Build())
}

// CurrentVersion returns the generation of key. A value written with SetVersioned
// under an older generation is never read again once BumpVersion has run, so a
// load that raced with a write cannot resurrect stale data. ok is false when the
// cache is disabled or unreachable, and callers must then skip the cache.
func (c *CacheUtil[T]) CurrentVersion(ctx context.Context, key string) (version string, ok bool) {
	if !c.IsEnabled() {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	versionKey := c.prefix + versionKeyPrefix + key

	// A missing generation starts from the clock, so it cannot collide with
	// snapshots left over from before the counter was lost.
	initial := strconv.FormatInt(time.Now().UnixNano(), 10)
	c.client.Do(ctx, c.client.B().Set().Key(versionKey).Value(initial).Nx().Build())

	version, err := c.client.Do(ctx, c.client.B().Get().Key(versionKey).Build()).ToString()
	if err != nil {
		return "", false
	}

	return version, true
}

// BumpVersion moves key to a new generation. Call it after the underlying data
// has been written.
func (c *CacheUtil[T]) BumpVersion(ctx context.Context, key string) error {
	if !c.IsEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	versionKey := c.prefix + versionKeyPrefix + key

	return c.client.Do(ctx, c.client.B().Incr().Key(versionKey).Build()).Error()
}

func (c *CacheUtil[T]) GetVersioned(ctx context.Context, key, version string) *T {
	return c.Get(ctx, versionedKey(key, version))
}

func (c *CacheUtil[T]) SetVersioned(ctx context.Context, key, version string, item *T) {
	c.Set(ctx, versionedKey(key, version), item)
}

func versionedKey(key, version string) string {
	return key + ":" + version
}
