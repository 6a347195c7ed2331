// Package stocksrepobridge exposes the stocks repository over HTTP.
package stocksrepobridge

import (
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// Config holds configuration for the Stock bridge
type Config struct {
	Log        *logger.Logger
	Repository *stocksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Stock
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)

	group.GET("/stocks", b.httpList, cfg.Middleware...)
	group.GET("/stocks/{stock_id}", b.httpGetByID, cfg.Middleware...)
	group.GET("/stock-codes/{stock_code}", b.httpGetByCode, cfg.Middleware...)
	group.POST("/stocks", b.httpCreate, cfg.Middleware...)
	group.PUT("/stocks/{stock_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/stocks/{stock_id}", b.httpDelete, cfg.Middleware...)
}
