package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"link-tracker-service/db"
)

// Health handles GET /health - simple health check
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Readiness handles GET /ready - readiness check with dependencies
func Readiness(pgDB *db.PostgresDB, redisDB *db.RedisDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		dbHealthy := pgDB.Ping(ctx) == nil
		redisHealthy := redisDB.Ping(ctx) == nil

		status := http.StatusOK
		if !dbHealthy || !redisHealthy {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"database":  dbHealthy,
			"redis":     redisHealthy,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
