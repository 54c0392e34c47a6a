package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/travel-suitability-service/internal/adapter/http"
	"github.com/couchcryptid/travel-suitability-service/internal/domain"
	"github.com/couchcryptid/travel-suitability-service/internal/pipeline"
	"github.com/couchcryptid/travel-suitability-service/internal/profiles"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type failingEvaluator struct{}

func (failingEvaluator) Evaluate(_ context.Context, _ domain.AssessmentRequest) (domain.AssessmentResult, error) {
	return domain.AssessmentResult{}, errors.New("boom")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadStore(t *testing.T) *profiles.Store {
	t.Helper()
	store, err := profiles.Load(filepath.Join("..", "..", "..", "data", "profiles.json"))
	require.NoError(t, err)
	return store
}

func newTestServer(t *testing.T, readyErr error) *httpadapter.Server {
	t.Helper()
	store := loadStore(t)
	assessor := domain.NewAssessor(domain.DefaultThresholds(), domain.DefaultHazardRules(), nil, discardLogger())
	tfm := pipeline.NewTransformer(assessor, store, nil, discardLogger(), 2)
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, tfm, store, discardLogger())
}

func serve(srv http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody[map[string]string](t, rec)["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec := serve(newTestServer(t, nil), http.MethodGet, "/readyz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", decodeBody[map[string]string](t, rec)["status"])
	})

	t.Run("not ready", func(t *testing.T) {
		rec := serve(newTestServer(t, fmt.Errorf("not ready yet")), http.MethodGet, "/readyz", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		body := decodeBody[map[string]string](t, rec)
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, "not ready yet", body["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListRegions(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodGet, "/v1/regions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ids := decodeBody[map[string][]string](t, rec)["regions"]
	assert.Len(t, ids, 12)
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "ES-AN")
}

func TestRegionAssessment(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		target string
		status int
		rating domain.Rating
		source string
	}{
		{"profiled beach", "/v1/regions/ES-AN/assessment?activity=beach&months=6", http.StatusOK, domain.RatingBest, domain.SourceProfile},
		{"hazard month", "/v1/regions/US-FL/assessment?activity=beach&months=8", http.StatusOK, domain.RatingBad, domain.SourceHazard},
		{"no months", "/v1/regions/ES-AN/assessment?activity=hike", http.StatusOK, domain.RatingOther, domain.SourceNone},
		{"unknown region", "/v1/regions/XX-00/assessment?activity=beach&months=6", http.StatusNotFound, "", ""},
		{"bad activity", "/v1/regions/ES-AN/assessment?activity=ski&months=6", http.StatusBadRequest, "", ""},
		{"month out of range", "/v1/regions/ES-AN/assessment?activity=beach&months=12", http.StatusBadRequest, "", ""},
		{"month not a number", "/v1/regions/ES-AN/assessment?activity=beach&months=jul", http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(srv, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, decodeBody[map[string]string](t, rec)["error"])
				return
			}
			a := decodeBody[domain.Assessment](t, rec)
			assert.Equal(t, tt.rating, a.Rating)
			assert.Equal(t, tt.source, a.Source)
		})
	}
}

func TestRegionAssessment_DefaultsToCity(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodGet, "/v1/regions/FR-IDF/assessment?months=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	a := decodeBody[domain.Assessment](t, rec)
	assert.Equal(t, domain.ActivityCity, a.Activity)
	assert.Equal(t, "FR-IDF", a.RegionID)
}

func TestAssess(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"request_id":"trip-1","activity":"beach","months":[6],"regions":[{"id":"ES-AN"},{"id":"US-FL"}]}`
	rec := serve(srv, http.MethodPost, "/v1/assessments", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[domain.AssessmentResult](t, rec)
	assert.Equal(t, "trip-1", res.RequestID)
	assert.Equal(t, domain.ActivityBeach, res.Activity)
	require.Len(t, res.Assessments, 2)
	assert.Equal(t, "ES-AN", res.Assessments[0].RegionID)
	assert.Equal(t, "US-FL", res.Assessments[1].RegionID)
	assert.Equal(t, domain.RatingBest, res.Assessments[0].Rating)
}

func TestAssess_InvalidRequests(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"activity":`},
		{"unknown activity", `{"activity":"ski","months":[1],"regions":[{"id":"ES-AN"}]}`},
		{"month out of range", `{"activity":"city","months":[-1],"regions":[{"id":"ES-AN"}]}`},
		{"no regions", `{"activity":"city","months":[1],"regions":[]}`},
		{"blank region id", `{"activity":"city","months":[1],"regions":[{"id":" "}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(srv, http.MethodPost, "/v1/assessments", strings.NewReader(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeBody[map[string]string](t, rec)["error"])
		})
	}
}

func TestAssess_InternalError(t *testing.T) {
	store := loadStore(t)
	srv := httpadapter.NewServer(":0", &mockReadiness{}, failingEvaluator{}, store, discardLogger())

	body := `{"activity":"city","months":[1],"regions":[{"id":"ES-AN"}]}`
	rec := serve(srv, http.MethodPost, "/v1/assessments", strings.NewReader(body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "assessment failed", decodeBody[map[string]string](t, rec)["error"])
}

func TestAssess_WrongMethod(t *testing.T) {
	rec := serve(newTestServer(t, nil), http.MethodGet, "/v1/assessments", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("generated", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/healthz", nil)
		assert.True(t, strings.HasPrefix(rec.Header().Get("X-Request-ID"), "req_"))
	})

	t.Run("echoed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-ID", "trace-42")
		srv.ServeHTTP(rec, req)
		assert.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))
	})
}
