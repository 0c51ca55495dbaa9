package tracker

import (
	"context"

	"link-tracker-service/models"
	"link-tracker-service/store"
)

// Query is the read-only listing service used by the dashboard to
// backfill history on (re)connect.
type Query struct {
	links    store.LinkStore
	captures store.CaptureStore
}

func NewQuery(links store.LinkStore, captures store.CaptureStore) *Query {
	return &Query{links: links, captures: captures}
}

// ListLinks returns all links, most recently created first.
func (q *Query) ListLinks(ctx context.Context) ([]*models.Link, error) {
	return q.links.ListLinks(ctx)
}

// ListCaptures returns all capture events, most recent first.
func (q *Query) ListCaptures(ctx context.Context) ([]*models.CaptureEvent, error) {
	return q.captures.ListCaptures(ctx)
}
