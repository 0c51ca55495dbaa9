package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"link-tracker-service/models"
	"link-tracker-service/tracker"
	"link-tracker-service/utils"
)

type CreateLinkRequest struct {
	DestinationURL string `json:"destination_url"`
}

type CreateLinkResponse struct {
	LinkID     string    `json:"link_id"`
	CloakedURL string    `json:"cloaked_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListLinksResponse struct {
	Links []*models.Link `json:"links"`
}

type DestinationResponse struct {
	DestinationURL string `json:"destination_url"`
}

// requestOrigin derives the externally visible origin for cloaked URLs.
// An explicit base URL wins; otherwise the origin the caller observed.
func requestOrigin(r *http.Request, baseURL string) string {
	if baseURL != "" {
		return baseURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// CreateLink handles POST /api/links
func CreateLink(registrar *tracker.Registrar, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req CreateLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		link, err := registrar.CreateLink(r.Context(), req.DestinationURL, requestOrigin(r, baseURL))
		if err != nil {
			writeError(w, err)
			return
		}

		response := CreateLinkResponse{
			LinkID:     link.ID,
			CloakedURL: link.CloakedURL,
			CreatedAt:  link.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(response)
	}
}

// ListLinks handles GET /api/links
func ListLinks(query *tracker.Query) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		links, err := query.ListLinks(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if links == nil {
			links = []*models.Link{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ListLinksResponse{Links: links})
	}
}

// GetDestination handles GET /api/links/{linkId}/destination - used by the
// redirect page after the capture has been submitted.
func GetDestination(resolver *tracker.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := utils.PathSegment(r.URL.Path, "/api/links/")
		if id == "" {
			http.Error(w, "Link id required", http.StatusBadRequest)
			return
		}

		destination, err := resolver.GetDestination(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DestinationResponse{DestinationURL: destination})
	}
}
