package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"link-tracker-service/stream"
)

// StreamCaptures handles GET /api/stream (SSE) - the live observer feed.
// Each connected dashboard receives every capture event ingested while it
// is connected; history is backfilled separately via GET /api/captures.
func StreamCaptures(broker *stream.Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Handle OPTIONS for CORS preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming not supported", http.StatusInternalServerError)
			return
		}

		// Set SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx

		session := broker.Subscribe()
		defer broker.Unregister(session)

		fmt.Fprintf(w, ": connected\n\n")
		flusher.Flush()

		// Heartbeat ticker
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case event := <-session.Events():
				data, err := json.Marshal(event)
				if err != nil {
					log.Printf("Error marshaling capture event: %v", err)
					continue
				}
				if _, err := fmt.Fprintf(w, "event: capture\ndata: %s\n\n", data); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				if _, err := fmt.Fprintf(w, ": heartbeat\n\n"); err != nil {
					return
				}
				flusher.Flush()
			case <-r.Context().Done():
				return
			}
		}
	}
}
