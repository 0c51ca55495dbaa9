package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link-tracker-service/models"
	"link-tracker-service/store"
)

func TestQuery_ListLinksMostRecentFirst(t *testing.T) {
	links := store.NewMemoryLinkStore()
	ctx := context.Background()
	base := time.Now()
	require.NoError(t, links.CreateLink(ctx, &models.Link{ID: "old", CreatedAt: base}))
	require.NoError(t, links.CreateLink(ctx, &models.Link{ID: "new", CreatedAt: base.Add(time.Minute)}))

	q := NewQuery(links, store.NewMemoryCaptureStore())
	got, err := q.ListLinks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestQuery_ListCapturesMostRecentFirst(t *testing.T) {
	captures := store.NewMemoryCaptureStore()
	ctx := context.Background()
	base := time.Now()
	require.NoError(t, captures.InsertCapture(ctx, &models.CaptureEvent{LinkID: "a", CapturedAt: base}))
	require.NoError(t, captures.InsertCapture(ctx, &models.CaptureEvent{LinkID: "b", CapturedAt: base.Add(time.Minute)}))

	q := NewQuery(store.NewMemoryLinkStore(), captures)
	got, err := q.ListCaptures(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].LinkID)
	assert.Equal(t, "a", got[1].LinkID)
}

func TestQuery_StorageErrorPropagates(t *testing.T) {
	q := NewQuery(store.NewMemoryLinkStore(), failingCaptureStore{})

	_, err := q.ListCaptures(context.Background())
	var storage *models.StorageError
	require.ErrorAs(t, err, &storage)
}
