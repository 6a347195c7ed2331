package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/jrazmi/stockdata/bridge/scaffolding/metrics"
	"github.com/jrazmi/stockdata/infrastructure/web"
)

// Metrics counts requests and records their latency per route pattern.
func Metrics(m *metrics.Metrics) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			start := time.Now()

			resp := next(ctx, r)

			m.Observe(r.Method, r.Pattern, statusOf(resp), time.Since(start))
			return resp
		}
	}
}
