package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe("login", OutcomeOK, 10*time.Millisecond)
	m.Observe("login", OutcomeOK, 20*time.Millisecond)
	m.Observe("login", OutcomeFailed, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.operations.WithLabelValues("login", OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.operations.WithLabelValues("login", OutcomeFailed)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe("me", OutcomeRejected, time.Second) })
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg).Observe("createPodcast", OutcomeOK, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `podcasts_operations_total{operation="createPodcast",outcome="ok"} 1`))
}
