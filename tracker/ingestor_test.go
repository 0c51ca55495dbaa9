package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link-tracker-service/models"
	"link-tracker-service/store"
)

// recordingPublisher collects published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.CaptureEvent
}

func (p *recordingPublisher) Publish(event *models.CaptureEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) published() []*models.CaptureEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*models.CaptureEvent{}, p.events...)
}

// failingCaptureStore simulates an unavailable durable store.
type failingCaptureStore struct{}

func (failingCaptureStore) InsertCapture(context.Context, *models.CaptureEvent) error {
	return &models.StorageError{Op: "insert capture", Err: errors.New("connection refused")}
}

func (failingCaptureStore) ListCaptures(context.Context) ([]*models.CaptureEvent, error) {
	return nil, &models.StorageError{Op: "list captures", Err: errors.New("connection refused")}
}

func floatPtr(v float64) *float64 { return &v }

func TestIngestor_PersistsAndPublishes(t *testing.T) {
	captures := store.NewMemoryCaptureStore()
	pub := &recordingPublisher{}
	ing := NewIngestor(captures, pub)

	event := &models.CaptureEvent{
		LinkID: "abc",
		Location: &models.Geolocation{
			Latitude:  floatPtr(10),
			Longitude: floatPtr(20),
			Accuracy:  floatPtr(5),
		},
	}
	persisted, err := ing.Ingest(context.Background(), event, "203.0.113.7")
	require.NoError(t, err)

	assert.NotZero(t, persisted.ID, "published record must carry the store-assigned id")
	assert.False(t, persisted.CapturedAt.IsZero(), "server assigns the timestamp when omitted")

	published := pub.published()
	require.Len(t, published, 1)
	assert.Equal(t, persisted.ID, published[0].ID)

	listed, err := captures.ListCaptures(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, float64(10), *listed[0].Location.Latitude)
	assert.Equal(t, float64(20), *listed[0].Location.Longitude)
	assert.Equal(t, float64(5), *listed[0].Location.Accuracy)
}

func TestIngestor_AddressPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		submitted   string
		observed    string
		wantAddress string
	}{
		{"transport-observed wins", "198.51.100.1", "203.0.113.7", "203.0.113.7"},
		{"submitted used when transport blind", "198.51.100.1", "", "198.51.100.1"},
		{"empty when neither present", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := NewIngestor(store.NewMemoryCaptureStore(), &recordingPublisher{})
			event := &models.CaptureEvent{LinkID: "abc", IPAddress: tt.submitted}
			persisted, err := ing.Ingest(context.Background(), event, tt.observed)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddress, persisted.IPAddress)
		})
	}
}

func TestIngestor_KeepsSubmittedTimestamp(t *testing.T) {
	ing := NewIngestor(store.NewMemoryCaptureStore(), &recordingPublisher{})

	submitted := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	persisted, err := ing.Ingest(context.Background(), &models.CaptureEvent{LinkID: "abc", CapturedAt: submitted}, "")
	require.NoError(t, err)
	assert.True(t, persisted.CapturedAt.Equal(submitted))
}

func TestIngestor_OrphanTolerance(t *testing.T) {
	// No link table in sight: captures for nonexistent links are accepted.
	captures := store.NewMemoryCaptureStore()
	ing := NewIngestor(captures, &recordingPublisher{})

	_, err := ing.Ingest(context.Background(), &models.CaptureEvent{LinkID: "no-such-link"}, "203.0.113.7")
	require.NoError(t, err)

	listed, err := captures.ListCaptures(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "no-such-link", listed[0].LinkID)
}

func TestIngestor_EmptyLinkID(t *testing.T) {
	pub := &recordingPublisher{}
	ing := NewIngestor(store.NewMemoryCaptureStore(), pub)

	_, err := ing.Ingest(context.Background(), &models.CaptureEvent{}, "203.0.113.7")
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, pub.published())
}

func TestIngestor_StorageFailureProducesNoFanout(t *testing.T) {
	pub := &recordingPublisher{}
	ing := NewIngestor(failingCaptureStore{}, pub)

	_, err := ing.Ingest(context.Background(), &models.CaptureEvent{LinkID: "abc"}, "203.0.113.7")
	var storage *models.StorageError
	require.ErrorAs(t, err, &storage)
	assert.Empty(t, pub.published(), "a failed ingest must not trigger a broadcast")
}

func TestIngestor_ClassifiesUserAgent(t *testing.T) {
	ing := NewIngestor(store.NewMemoryCaptureStore(), &recordingPublisher{})

	ua := "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	persisted, err := ing.Ingest(context.Background(), &models.CaptureEvent{LinkID: "abc", UserAgent: ua}, "")
	require.NoError(t, err)
	assert.Contains(t, persisted.Browser, "Firefox")
	assert.NotEmpty(t, persisted.OS)
}

func TestIngestor_SubmittedClassificationWins(t *testing.T) {
	ing := NewIngestor(store.NewMemoryCaptureStore(), &recordingPublisher{})

	event := &models.CaptureEvent{
		LinkID:    "abc",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		Browser:   "PageReported 1.0",
		OS:        "PageReportedOS",
	}
	persisted, err := ing.Ingest(context.Background(), event, "")
	require.NoError(t, err)
	assert.Equal(t, "PageReported 1.0", persisted.Browser)
	assert.Equal(t, "PageReportedOS", persisted.OS)
}
