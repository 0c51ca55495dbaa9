package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"link-tracker-service/db"
	"link-tracker-service/utils"
)

// RateLimit middleware implements per-IP rate limiting using Redis.
// Redis being down never blocks traffic (fail open).
func RateLimit(redisDB *db.RedisDB, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ExtractIP(r)

			key := fmt.Sprintf("ratelimit:%s:%s", ip, r.URL.Path)

			ctx := r.Context()
			count, err := redisDB.Incr(ctx, key)
			if err != nil {
				log.Printf("Rate limit check failed: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			// Set TTL on first request
			if count == 1 {
				if err := redisDB.Expire(ctx, key, window); err != nil {
					log.Printf("Rate limit expiry failed: %v", err)
				}
			}

			if count > int64(limit) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"error":"Rate limit exceeded"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
