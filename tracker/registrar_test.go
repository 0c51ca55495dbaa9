package tracker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link-tracker-service/models"
	"link-tracker-service/store"
)

func TestRegistrar_CreateLink(t *testing.T) {
	reg := NewRegistrar(store.NewMemoryLinkStore())

	link, err := reg.CreateLink(context.Background(), "https://example.com/offer", "http://localhost:8080")
	require.NoError(t, err)

	assert.NotEmpty(t, link.ID)
	assert.Equal(t, "https://example.com/offer", link.DestinationURL)
	assert.True(t, strings.HasSuffix(link.CloakedURL, "/track/"+link.ID),
		"cloaked URL must end in /track/<id>, got %s", link.CloakedURL)
	assert.Equal(t, "http://localhost:8080/track/"+link.ID, link.CloakedURL)
	assert.Equal(t, int64(0), link.Clicks)
	assert.False(t, link.CreatedAt.IsZero())
}

func TestRegistrar_EmptyDestination(t *testing.T) {
	reg := NewRegistrar(store.NewMemoryLinkStore())

	for _, destination := range []string{"", "   "} {
		_, err := reg.CreateLink(context.Background(), destination, "http://localhost:8080")
		var validation *models.ValidationError
		require.ErrorAs(t, err, &validation)
	}
}

func TestRegistrar_IdentifiersAreUnique(t *testing.T) {
	reg := NewRegistrar(store.NewMemoryLinkStore())
	ctx := context.Background()

	const n = 200
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		link, err := reg.CreateLink(ctx, "https://example.com", "http://localhost:8080")
		require.NoError(t, err)
		require.False(t, seen[link.ID], "identifier %s minted twice", link.ID)
		seen[link.ID] = true
	}
}

func TestRegistrar_TrailingSlashOrigin(t *testing.T) {
	reg := NewRegistrar(store.NewMemoryLinkStore())

	link, err := reg.CreateLink(context.Background(), "https://example.com", "http://host.example/")
	require.NoError(t, err)
	assert.Equal(t, "http://host.example/track/"+link.ID, link.CloakedURL)
}
