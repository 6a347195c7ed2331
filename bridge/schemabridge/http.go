// Package schemabridge reports the applied migrations and the schema check
// over HTTP.
package schemabridge

import (
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// Config holds configuration for the schema bridge
type Config struct {
	Log        *logger.Logger
	Source     Source
	Middleware []web.Middleware
}

// AddHttpRoutes registers the read-only schema routes.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Source)

	group.GET("/schema/migrations", b.httpListMigrations, cfg.Middleware...)
	group.GET("/schema/verify", b.httpVerify, cfg.Middleware...)
}
