package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"link-tracker-service/config"
	"link-tracker-service/db"
	"link-tracker-service/handlers"
	"link-tracker-service/metrics"
	"link-tracker-service/middleware"
	"link-tracker-service/stream"
	"link-tracker-service/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to PostgreSQL
	pgDB, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgDB.Close()
	log.Println("Connected to PostgreSQL")

	// Connect to Redis
	redisDB, err := db.NewRedisDB(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisDB.Close()
	log.Println("Connected to Redis")

	metrics.Register()

	// Core wiring: both stores live in Postgres, fan-out in the broker
	broker := stream.NewBroker()
	registrar := tracker.NewRegistrar(pgDB)
	resolver := tracker.NewResolver(pgDB, redisDB)
	ingestor := tracker.NewIngestor(pgDB, broker)
	query := tracker.NewQuery(pgDB, pgDB)

	// API handlers with middleware chains
	createLinkHandler := middleware.Chain(
		handlers.CreateLink(registrar, cfg.BaseURL),
		middleware.RateLimit(redisDB, 100, time.Minute),
		middleware.Logger,
	)
	listLinksHandler := middleware.Chain(
		handlers.ListLinks(query),
		middleware.RateLimit(redisDB, 100, time.Minute),
		middleware.Logger,
	)
	getDestinationHandler := middleware.Chain(
		handlers.GetDestination(resolver),
		middleware.Logger,
	)
	ingestCaptureHandler := middleware.Chain(
		handlers.IngestCapture(ingestor),
		middleware.Logger,
	)
	listCapturesHandler := middleware.Chain(
		handlers.ListCaptures(query),
		middleware.RateLimit(redisDB, 100, time.Minute),
		middleware.Logger,
	)
	// Stream handler - no logger middleware (SSE streams need immediate response)
	streamHandler := handlers.StreamCaptures(broker)

	apiRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Remove /api prefix
		path := strings.TrimPrefix(r.URL.Path, "/api")
		if path == "" {
			path = "/"
		}

		switch {
		case r.Method == http.MethodPost && path == "/links":
			createLinkHandler.ServeHTTP(w, r)
		case r.Method == http.MethodGet && path == "/links":
			listLinksHandler.ServeHTTP(w, r)
		case r.Method == http.MethodGet && strings.HasPrefix(path, "/links/") && strings.HasSuffix(path, "/destination"):
			getDestinationHandler.ServeHTTP(w, r)
		case r.Method == http.MethodPost && path == "/captures":
			ingestCaptureHandler.ServeHTTP(w, r)
		case r.Method == http.MethodGet && path == "/captures":
			listCapturesHandler.ServeHTTP(w, r)
		case path == "/stream":
			streamHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.CORS(cfg.FrontendURL)(apiRouter))
	mux.Handle("/track/", handlers.HandleTrack(resolver))
	mux.Handle("/health", handlers.Health())
	mux.Handle("/ready", handlers.Readiness(pgDB, redisDB))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   0, // SSE streams stay open indefinitely
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
