package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSourceConnected(t *testing.T) {
	SetSourceConnected("mqtt-test", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(SourceConnectivityStatus.WithLabelValues("mqtt-test")))

	SetSourceConnected("mqtt-test", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(SourceConnectivityStatus.WithLabelValues("mqtt-test")))
}

func TestHandlerExposesDashboardMetrics(t *testing.T) {
	ReadingsTotal.WithLabelValues("handler-test").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `cpeer_dashboard_readings_total{source="handler-test"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
