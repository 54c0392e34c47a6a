package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/travel-suitability-service/internal/observability"
)

const (
	testToken         = "test-token"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string, timeout time.Duration) *Client {
	return newClient(testToken, &http.Client{Timeout: timeout}, baseURL, testMetrics(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_ReverseGeocode_Region(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/75.341200,31.147100.json", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "region,country", r.URL.Query().Get("types"))
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))

		resp := response{
			Features: []feature{{
				ID:        "region.9081",
				Text:      "Punjab",
				PlaceName: "Punjab, India",
				Relevance: 1,
				Context:   []contextItem{{ID: "country.8827", Text: "India"}},
			}},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	result, err := c.ReverseGeocode(context.Background(), 31.1471, 75.3412)
	require.NoError(t, err)

	assert.Equal(t, "India", result.Country)
	assert.Equal(t, "Punjab", result.Region)
	assert.Equal(t, "Punjab, India", result.PlaceName)
	assert.Equal(t, 1.0, result.Confidence)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("success")), 0)
}

func TestClient_ReverseGeocode_CountryOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{
			Features: []feature{{ID: "country.123", Text: "Iceland", PlaceName: "Iceland", Relevance: 0.9}},
		}))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL, 5*time.Second).ReverseGeocode(context.Background(), 64.1, -21.9)
	require.NoError(t, err)
	assert.Equal(t, "Iceland", result.Country)
	assert.Empty(t, result.Region)
}

func TestClient_ReverseGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{}}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	result, err := c.ReverseGeocode(context.Background(), 0, -140)
	require.NoError(t, err)
	assert.Empty(t, result.Country)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("empty")), 0)
}

func TestClient_ReverseGeocode_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not Authorized"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	_, err := c.ReverseGeocode(context.Background(), 31.1, 75.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("error")), 0)
}

func TestClient_ReverseGeocode_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 50*time.Millisecond).ReverseGeocode(context.Background(), 31.1, 75.3)
	require.Error(t, err)
}

func TestClient_ReverseGeocode_BreakerOpensAfterFailures(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	for range 5 {
		_, err := c.ReverseGeocode(context.Background(), 31.1, 75.3)
		require.Error(t, err)
	}

	_, err := c.ReverseGeocode(context.Background(), 31.1, 75.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapbox unavailable")
	assert.Equal(t, int64(5), hits.Load(), "open breaker should not reach the API")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("rejected")), 0)
}

func TestClient_ReverseGeocode_CancelledCallsKeepBreakerClosed(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{}}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for range 6 {
		_, err := c.ReverseGeocode(cancelled, 31.1, 75.3)
		require.ErrorIs(t, err, context.Canceled)
	}

	_, err := c.ReverseGeocode(context.Background(), 31.1, 75.3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())
	assert.InDelta(t, 0, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("rejected")), 0)
}

func TestFeature_ToResult_PrefersOwnRegion(t *testing.T) {
	f := feature{
		ID:   "region.1",
		Text: "Lazio",
		Context: []contextItem{
			{ID: "region.2", Text: "Other"},
			{ID: "country.3", Text: "Italy"},
		},
	}
	r := f.toResult()
	assert.Equal(t, "Lazio", r.Region)
	assert.Equal(t, "Italy", r.Country)
}
