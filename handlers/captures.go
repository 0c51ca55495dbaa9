package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"link-tracker-service/models"
	"link-tracker-service/tracker"
	"link-tracker-service/utils"
)

type CaptureRequest struct {
	LinkID     string              `json:"link_id"`
	IPAddress  string              `json:"ip_address,omitempty"`
	UserAgent  string              `json:"user_agent,omitempty"`
	Location   *models.Geolocation `json:"location,omitempty"`
	City       string              `json:"city,omitempty"`
	Country    string              `json:"country,omitempty"`
	Browser    string              `json:"browser,omitempty"`
	OS         string              `json:"os,omitempty"`
	CapturedAt *time.Time          `json:"captured_at,omitempty"`
}

type CaptureResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

type ListCapturesResponse struct {
	Captures []*models.CaptureEvent `json:"captures"`
}

// IngestCapture handles POST /api/captures - submitted by the tracking
// page with whatever geolocation and device metadata it could gather.
func IngestCapture(ingestor *tracker.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req CaptureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		event := &models.CaptureEvent{
			LinkID:    req.LinkID,
			IPAddress: req.IPAddress,
			UserAgent: req.UserAgent,
			Location:  req.Location,
			City:      req.City,
			Country:   req.Country,
			Browser:   req.Browser,
			OS:        req.OS,
		}
		if req.CapturedAt != nil {
			event.CapturedAt = *req.CapturedAt
		}
		if event.UserAgent == "" {
			event.UserAgent = r.UserAgent()
		}

		// Transport-observed address takes precedence over the submitted field.
		persisted, err := ingestor.Ingest(r.Context(), event, utils.ExtractIP(r))
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CaptureResponse{Status: "captured", ID: persisted.ID})
	}
}

// ListCaptures handles GET /api/captures - dashboard history backfill.
func ListCaptures(query *tracker.Query) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		captures, err := query.ListCaptures(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if captures == nil {
			captures = []*models.CaptureEvent{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ListCapturesResponse{Captures: captures})
	}
}
