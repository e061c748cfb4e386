package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"hireboard-api/internal/logging"
	"hireboard-api/pkg/utils"
)

// identityLimiter tracks the rate limiter for one authenticated identity
type identityLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UploadRateLimiter limits document parses per identity. Limiters for idle
// identities are dropped periodically so the map does not grow unbounded.
type UploadRateLimiter struct {
	perMinute int
	burst     int
	limiters  map[string]*identityLimiter
	mu        sync.Mutex
	stop      chan struct{}
}

// NewUploadRateLimiter creates a rate limiter allowing perMinute parses with
// the given burst per identity and starts its cleanup routine.
func NewUploadRateLimiter(perMinute, burst int) *UploadRateLimiter {
	rl := &UploadRateLimiter{
		perMinute: perMinute,
		burst:     burst,
		limiters:  make(map[string]*identityLimiter),
		stop:      make(chan struct{}),
	}

	go rl.cleanupRoutine()

	return rl
}

// Middleware rejects requests that exceed the caller's parse budget with
// 429. It must run after RequireAuth.
func (rl *UploadRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := CurrentIdentity(c)
			if identity == nil {
				// RequireAuth did not run; nothing to key the limiter on
				return next(c)
			}

			if !rl.allow(identity.ID) {
				requestID, _ := c.Get("request_id").(string)
				logging.GetGlobalLogger().Warn("Upload rate limit exceeded", map[string]interface{}{
					"request_id": requestID,
					"user_id":    identity.ID,
				})

				cerr := utils.NewRateLimitError()
				return c.JSON(cerr.Status, cerr.Response(requestID))
			}

			return next(c)
		}
	}
}

func (rl *UploadRateLimiter) allow(identityID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[identityID]
	if !exists {
		entry = &identityLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.burst),
		}
		rl.limiters[identityID] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// Stop stops the cleanup routine
func (rl *UploadRateLimiter) Stop() {
	close(rl.stop)
}

func (rl *UploadRateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *UploadRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for id, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, id)
		}
	}
}
