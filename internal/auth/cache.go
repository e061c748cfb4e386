package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hireboard-api/internal/logging"
	"hireboard-api/internal/logging/types"
)

// SessionCache is the subset of the Redis client the provider relies on.
type SessionCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedSessionProvider wraps a SessionProvider with a Redis-backed identity
// cache. The cache is strictly best effort: any Redis failure falls through
// to the upstream provider, and a failed resolution is never cached.
type CachedSessionProvider struct {
	upstream SessionProvider
	client   SessionCache
	ttl      time.Duration
	logger   types.Logger
}

// NewCachedSessionProvider creates a caching wrapper around upstream
func NewCachedSessionProvider(upstream SessionProvider, client SessionCache, ttl time.Duration) *CachedSessionProvider {
	return &CachedSessionProvider{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logging.GetGlobalLogger(),
	}
}

var _ SessionProvider = (*CachedSessionProvider)(nil)

// GetCurrentUser resolves the identity, consulting the cache first. Cache
// keys are token digests; raw tokens are never written to Redis.
func (p *CachedSessionProvider) GetCurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrUnauthenticated
	}

	key := sessionCacheKey(accessToken)

	if cached, err := p.client.Get(ctx, key).Result(); err == nil {
		var identity Identity
		if err := json.Unmarshal([]byte(cached), &identity); err == nil && identity.ID != "" {
			return &identity, nil
		}
	} else if err != redis.Nil {
		p.logger.Warn("Session cache lookup failed", map[string]interface{}{"error": err.Error()})
	}

	identity, err := p.upstream.GetCurrentUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(identity); err == nil {
		if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
			p.logger.Warn("Session cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return identity, nil
}

func sessionCacheKey(accessToken string) string {
	digest := sha256.Sum256([]byte(accessToken))
	return "session:" + hex.EncodeToString(digest[:])
}
