//go:build usgs

package usgs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-feed-service/internal/config"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
)

// These tests hit the live USGS feed.
// Run with: go test -tags=usgs ./internal/adapter/usgs/ -v -count=1

func TestSmoke_FetchFeed(t *testing.T) {
	c := NewClient(config.DefaultFeedURL, 15*time.Second, observability.DiscardLogger())

	quakes, err := c.FetchFeed(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, quakes, "the weekly feed is never empty")

	for _, q := range quakes {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Place)
		assert.Positive(t, q.Time)
	}
}
