package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles per-IP request rates through a Redis counter so the
// limit holds across replicas.
type RateLimiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}

		key := fmt.Sprintf("%s:%s", rl.prefix, ip)

		count, err := rl.redis.Incr(r.Context(), key).Result()
		if err != nil {
			// Redis outage should not lock users out of auth routes.
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.redis.Expire(r.Context(), key, rl.window)
		}

		if count > int64(rl.limit) {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
