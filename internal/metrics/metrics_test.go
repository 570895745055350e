package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGeneration(t *testing.T) {
	t.Parallel()
	m := New("test")

	m.RecordGeneration("prompt", "fallback")
	m.RecordGeneration("prompt", "fallback")
	m.RecordGeneration("thumbnail", "success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("prompt", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("thumbnail", "success")))
}

func TestSetActiveSessions(t *testing.T) {
	t.Parallel()
	m := New("test")

	m.SetActiveSessions(3)
	m.SetActiveSessions(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeSessions))
}

func TestObserveHTTP(t *testing.T) {
	t.Parallel()
	m := New("test")

	m.ObserveHTTP(http.MethodGet, "GET /api/topics", 200, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", 404, time.Millisecond)
	m.InFlight(1)
	m.InFlight(-1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "GET /api/topics", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestHandler_Exposition(t *testing.T) {
	t.Parallel()
	m := New("v1.2.3")
	m.RecordGeneration("topics", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `creatorcompass_generations_total{kind="topics",outcome="success"} 1`)
	assert.Contains(t, string(body), `creatorcompass_build_info{version="v1.2.3"} 1`)
}
