package tracker

import (
	"context"
	"strings"
	"time"

	"link-tracker-service/metrics"
	"link-tracker-service/models"
	"link-tracker-service/store"

	"github.com/google/uuid"
)

// Registrar mints opaque tracking links.
type Registrar struct {
	links store.LinkStore
}

func NewRegistrar(links store.LinkStore) *Registrar {
	return &Registrar{links: links}
}

// CreateLink generates a new opaque identifier, derives the cloaked URL
// from the caller-observed origin, and persists the link with a zero
// click counter. The destination URL is only required to be non-empty;
// scheme and reachability are deliberately not checked.
func (r *Registrar) CreateLink(ctx context.Context, destinationURL, origin string) (*models.Link, error) {
	if strings.TrimSpace(destinationURL) == "" {
		return nil, &models.ValidationError{Message: "destination URL is required"}
	}

	id := uuid.NewString()
	link := &models.Link{
		ID:             id,
		DestinationURL: destinationURL,
		CloakedURL:     strings.TrimSuffix(origin, "/") + "/track/" + id,
		CreatedAt:      time.Now(),
	}

	if err := r.links.CreateLink(ctx, link); err != nil {
		return nil, err
	}

	metrics.LinksCreatedTotal.Inc()
	return link, nil
}
