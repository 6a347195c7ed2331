// Package healthbridge serves the liveness and readiness probe.
package healthbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

type Config struct {
	Log     *logger.Logger
	Driver  string
	Check   CheckFunc
	Timeout time.Duration
}

// Status is the body of a healthy response.
type Status struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
}

func (s Status) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

// AddHttpRoutes registers GET /health on group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Second
	}
	group.GET("/health", func(ctx context.Context, r *http.Request) web.Encoder {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		if cfg.Check != nil {
			if err := cfg.Check(ctx); err != nil {
				if cfg.Log != nil {
					cfg.Log.ErrorContext(ctx, "health check", "driver", cfg.Driver, "error", err)
				}
				return errs.Newf(errs.Unavailable, "database unavailable")
			}
		}
		return Status{Status: "ok", Driver: cfg.Driver}
	})
}
