package mid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/bridge/scaffolding/metrics"
	"github.com/jrazmi/stockdata/bridge/scaffolding/mid"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newHandler(buf *bytes.Buffer, m *metrics.Metrics) *web.WebHandler {
	log := logger.NewDefault(logger.WithOutput(buf), logger.WithFormat("json"))
	return web.NewWebHandler(web.WithGlobalMiddleware(
		mid.Logger(log),
		mid.Errors(log),
		mid.Metrics(m),
		mid.Panics(),
	))
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestErrorsHidesInternalDetail(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&buf, metrics.New())
	h.GET("/fail", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.NewFromRepo(errors.New("pq: password authentication failed"))
	})

	w := serve(h, "/fail")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("internal detail leaked: %s", w.Body.String())
	}
	if !strings.Contains(buf.String(), "password authentication failed") {
		t.Error("internal detail was not logged")
	}
	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("server fault should log at ERROR:\n%s", buf.String())
	}
}

func TestErrorsKeepsClientErrors(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&buf, metrics.New())
	h.GET("/missing", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "stock 9 not found")
	})

	w := serve(h, "/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != "not_found" || body.Message != "stock 9 not found" {
		t.Errorf("body = %+v", body)
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Errorf("client error should log at WARN:\n%s", buf.String())
	}
}

func TestPanicsRecovered(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New()
	h := newHandler(&buf, m)
	h.GET("/panic", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("boom")
	})

	w := serve(h, "/panic")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Error("panic value was not logged")
	}
	got, err := testutil.GatherAndCount(m.Registry(), "stockdata_http_errors_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got != 1 {
		t.Errorf("error series = %d, want 1", got)
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&buf, metrics.New())
	h.GET("/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("ok")
	})

	serve(h, "/ok?limit=5")
	out := buf.String()
	if !strings.Contains(out, `"path":"/ok?limit=5"`) || !strings.Contains(out, `"statuscode":200`) {
		t.Errorf("log output:\n%s", out)
	}
}
