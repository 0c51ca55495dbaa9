package tracker

import (
	"context"
	"time"

	"link-tracker-service/metrics"
	"link-tracker-service/models"
	"link-tracker-service/store"

	"github.com/mssola/useragent"
)

// Publisher receives fully-persisted capture events for fan-out.
type Publisher interface {
	Publish(event *models.CaptureEvent)
}

// Ingestor validates and persists incoming capture events, then hands
// each persisted record to the Publisher.
type Ingestor struct {
	captures  store.CaptureStore
	publisher Publisher
}

func NewIngestor(captures store.CaptureStore, publisher Publisher) *Ingestor {
	return &Ingestor{captures: captures, publisher: publisher}
}

// Ingest persists the event and broadcasts the materialized record.
//
// Address precedence: the transport-observed address wins when present,
// else the address the caller submitted, else empty. The event's LinkID is
// accepted even when no matching link exists; tracking pages may fire
// before or independent of link-table consistency.
//
// The hand-off to the Publisher happens synchronously after persistence
// succeeds, so broadcast order equals ingest-completion order and a failed
// ingest produces zero fan-out.
func (i *Ingestor) Ingest(ctx context.Context, event *models.CaptureEvent, observedAddr string) (*models.CaptureEvent, error) {
	if event.LinkID == "" {
		return nil, &models.ValidationError{Message: "link_id is required"}
	}
	if observedAddr != "" {
		event.IPAddress = observedAddr
	}
	if event.CapturedAt.IsZero() {
		event.CapturedAt = time.Now()
	}
	if (event.Browser == "" || event.OS == "") && event.UserAgent != "" {
		classifyUserAgent(event)
	}

	if err := i.captures.InsertCapture(ctx, event); err != nil {
		metrics.CapturesRejectedTotal.Inc()
		return nil, err
	}

	metrics.CapturesIngestedTotal.Inc()
	i.publisher.Publish(event)
	return event, nil
}

// classifyUserAgent fills Browser and OS from the user-agent string when
// the submitting page left them empty.
func classifyUserAgent(event *models.CaptureEvent) {
	ua := useragent.New(event.UserAgent)
	if event.Browser == "" {
		name, version := ua.Browser()
		event.Browser = name
		if version != "" {
			event.Browser = name + " " + version
		}
	}
	if event.OS == "" {
		event.OS = ua.OS()
	}
}
