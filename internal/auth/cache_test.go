package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionCache stands in for the Redis client
type fakeSessionCache struct {
	entries map[string]string
	getErr  error
	setErr  error
	sets    int
}

func (f *fakeSessionCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	if v, ok := f.entries[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeSessionCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets++
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	if f.entries == nil {
		f.entries = make(map[string]string)
	}
	switch v := value.(type) {
	case []byte:
		f.entries[key] = string(v)
	case string:
		f.entries[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

// countingProvider records how often the upstream is consulted
type countingProvider struct {
	identity *Identity
	err      error
	calls    int
}

func (p *countingProvider) GetCurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.identity, nil
}

func TestCachedSessionProviderCachesResolution(t *testing.T) {
	upstream := &countingProvider{identity: &Identity{ID: "user-x", Email: "x@example.com"}}
	cache := &fakeSessionCache{}
	provider := NewCachedSessionProvider(upstream, cache, time.Minute)

	identity, err := provider.GetCurrentUser(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-x", identity.ID)
	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, 1, cache.sets)

	// Second lookup is served from the cache
	identity, err = provider.GetCurrentUser(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-x", identity.ID)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedSessionProviderHitSkipsUpstream(t *testing.T) {
	upstream := &countingProvider{identity: &Identity{ID: "upstream-user"}}
	cached, err := json.Marshal(&Identity{ID: "cached-user", Email: "c@example.com"})
	require.NoError(t, err)

	cache := &fakeSessionCache{entries: map[string]string{
		sessionCacheKey("token-1"): string(cached),
	}}
	provider := NewCachedSessionProvider(upstream, cache, time.Minute)

	identity, err := provider.GetCurrentUser(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "cached-user", identity.ID)
	assert.Equal(t, 0, upstream.calls)
}

func TestCachedSessionProviderCorruptEntryFallsThrough(t *testing.T) {
	upstream := &countingProvider{identity: &Identity{ID: "user-x"}}
	cache := &fakeSessionCache{entries: map[string]string{
		sessionCacheKey("token-1"): "{not json",
	}}
	provider := NewCachedSessionProvider(upstream, cache, time.Minute)

	identity, err := provider.GetCurrentUser(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-x", identity.ID)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedSessionProviderRedisFailureFallsThrough(t *testing.T) {
	upstream := &countingProvider{identity: &Identity{ID: "user-x"}}
	cache := &fakeSessionCache{
		getErr: fmt.Errorf("connection refused"),
		setErr: fmt.Errorf("connection refused"),
	}
	provider := NewCachedSessionProvider(upstream, cache, time.Minute)

	identity, err := provider.GetCurrentUser(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-x", identity.ID)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedSessionProviderNeverCachesFailures(t *testing.T) {
	upstream := &countingProvider{err: ErrUnauthenticated}
	cache := &fakeSessionCache{}
	provider := NewCachedSessionProvider(upstream, cache, time.Minute)

	_, err := provider.GetCurrentUser(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 0, cache.sets)
}

func TestCachedSessionProviderEmptyToken(t *testing.T) {
	upstream := &countingProvider{identity: &Identity{ID: "user-x"}}
	provider := NewCachedSessionProvider(upstream, &fakeSessionCache{}, time.Minute)

	_, err := provider.GetCurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 0, upstream.calls)
}
