package tracker

import (
	"context"
	"log"
	"time"

	"link-tracker-service/db"
	"link-tracker-service/metrics"
	"link-tracker-service/store"
)

// Resolver counts visits on tracked links and exposes the destination
// lookup used by the redirect page.
type Resolver struct {
	links store.LinkStore
	redis *db.RedisDB // optional; realtime counters for the dashboard snapshot
}

func NewResolver(links store.LinkStore, redis *db.RedisDB) *Resolver {
	return &Resolver{links: links, redis: redis}
}

// ResolveAndCount increments the link's click counter by exactly one and
// persists the update before returning. An unknown identifier fails with
// NotFoundError and leaves the counter untouched. The destination URL is
// intentionally not returned here; callers fetch it via GetDestination so
// the count side effect stays separately testable.
func (r *Resolver) ResolveAndCount(ctx context.Context, id string) error {
	if err := r.links.IncrementClicks(ctx, id); err != nil {
		return err
	}

	metrics.ResolvesTotal.Inc()

	// Realtime counter is a best-effort dashboard aid, never a failure.
	if r.redis != nil {
		if _, err := r.redis.Incr(ctx, "clicks:realtime:"+id); err != nil {
			log.Printf("Warning: failed to increment realtime counter for %s: %v", id, err)
		}
	}
	return nil
}

// GetDestination returns the destination URL for a link, or NotFoundError.
// Destinations are immutable, so cache hits can never serve a stale URL.
func (r *Resolver) GetDestination(ctx context.Context, id string) (string, error) {
	cacheKey := "dest:" + id
	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			return cached, nil
		}
	}

	link, err := r.links.GetLink(ctx, id)
	if err != nil {
		return "", err
	}

	if r.redis != nil {
		if err := r.redis.Set(ctx, cacheKey, link.DestinationURL, time.Hour); err != nil {
			log.Printf("Warning: failed to cache destination for %s: %v", id, err)
		}
	}
	return link.DestinationURL, nil
}
