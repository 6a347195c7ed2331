// Package clusteringcriteriarepobridge exposes clustering criteria over HTTP.
package clusteringcriteriarepobridge

import (
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// Config holds configuration for the ClusteringCriterion bridge
type Config struct {
	Log        *logger.Logger
	Repository *clusteringcriteriarepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for ClusteringCriterion
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)

	group.GET("/clustering-criteria", b.httpList, cfg.Middleware...)
	group.GET("/clustering-criteria/{criterion_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/clustering-criteria", b.httpCreate, cfg.Middleware...)
	group.PUT("/clustering-criteria/{criterion_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/clustering-criteria/{criterion_id}", b.httpDelete, cfg.Middleware...)
}
