// Package clusteringresultsrepobridge exposes clustering results over HTTP.
package clusteringresultsrepobridge

import (
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// Config holds configuration for the ClusteringResult bridge
type Config struct {
	Log        *logger.Logger
	Repository *clusteringresultsrepo.Repository
	Stocks     *stocksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for ClusteringResult, including the
// clusterings of a stock.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository, cfg.Stocks)

	group.GET("/clustering-results", b.httpList, cfg.Middleware...)
	group.GET("/clustering-results/{result_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/clustering-results", b.httpCreate, cfg.Middleware...)
	group.PUT("/clustering-results", b.httpAssign, cfg.Middleware...)
	group.PUT("/clustering-results/{result_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/clustering-results/{result_id}", b.httpDelete, cfg.Middleware...)

	group.GET("/stocks/{stock_id}/clusterings", b.httpListByStock, cfg.Middleware...)
}
