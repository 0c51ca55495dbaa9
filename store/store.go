package store

import (
	"context"

	"link-tracker-service/models"
)

// Stores are interface-driven so the core services can run against the
// in-memory implementations in tests and against Postgres in production
// without rewiring.

type LinkStore interface {
	CreateLink(ctx context.Context, link *models.Link) error
	GetLink(ctx context.Context, id string) (*models.Link, error)
	// IncrementClicks adds exactly one click to the link's counter.
	// Concurrent increments on the same id must not lose updates.
	IncrementClicks(ctx context.Context, id string) error
	ListLinks(ctx context.Context) ([]*models.Link, error)
}

type CaptureStore interface {
	// InsertCapture persists the event and fills in its store-assigned ID.
	InsertCapture(ctx context.Context, event *models.CaptureEvent) error
	ListCaptures(ctx context.Context) ([]*models.CaptureEvent, error)
}
