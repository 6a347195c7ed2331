package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrazmi/stockdata/bridge/scaffolding/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := metrics.New()
	m.Observe(http.MethodGet, "GET /api/v1/stocks", http.StatusOK, 5*time.Millisecond)
	m.Observe(http.MethodGet, "GET /api/v1/stocks", http.StatusNotFound, time.Millisecond)

	expected := `
# HELP stockdata_http_errors_total HTTP requests that ended in an error response.
# TYPE stockdata_http_errors_total counter
stockdata_http_errors_total{method="GET",route="GET /api/v1/stocks"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "stockdata_http_errors_total"); err != nil {
		t.Error(err)
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), `stockdata_http_requests_total{code="404",method="GET",route="GET /api/v1/stocks"} 1`) {
		t.Errorf("exposition missing request counter:\n%s", w.Body.String())
	}
}
