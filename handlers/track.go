package handlers

import (
	"encoding/json"
	"net/http"

	"link-tracker-service/tracker"
	"link-tracker-service/utils"
)

type TrackResponse struct {
	LinkID         string `json:"link_id"`
	DestinationURL string `json:"destination_url"`
}

// HandleTrack handles GET /track/{linkId} - the cloaked URL the visitor
// follows. It counts the visit and returns the redirect metadata the
// capture page needs; page delivery itself lives outside the core.
// An unknown id returns 404 without touching any counter.
func HandleTrack(resolver *tracker.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := utils.PathSegment(r.URL.Path, "/track/")
		if id == "" {
			http.NotFound(w, r)
			return
		}

		if err := resolver.ResolveAndCount(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		destination, err := resolver.GetDestination(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TrackResponse{LinkID: id, DestinationURL: destination})
	}
}
