//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/travel-suitability-service/internal/observability"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return newClient(token, &http.Client{Timeout: 10 * time.Second}, defaultBaseURL,
		observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_ReverseGeocode_Region(t *testing.T) {
	c := smokeClient(t)

	// Ludhiana, Punjab.
	result, err := c.ReverseGeocode(context.Background(), 30.901, 75.8573)
	require.NoError(t, err)

	assert.Equal(t, "India", result.Country)
	assert.Equal(t, "Punjab", result.Region)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestSmoke_ReverseGeocode_OpenOcean(t *testing.T) {
	c := smokeClient(t)

	// Mid-Pacific: Mapbox may return nothing; the client must not error.
	_, err := c.ReverseGeocode(context.Background(), 0, -140)
	require.NoError(t, err)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	r1, err := cached.ReverseGeocode(context.Background(), 13.7563, 100.5018)
	require.NoError(t, err)
	assert.Equal(t, "Thailand", r1.Country)

	r2, err := cached.ReverseGeocode(context.Background(), 13.7563, 100.5018)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
