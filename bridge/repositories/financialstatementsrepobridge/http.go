// Package financialstatementsrepobridge exposes financial statements over HTTP.
package financialstatementsrepobridge

import (
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/sdk/logger"
)

// Config holds configuration for the FinancialStatement bridge
type Config struct {
	Log        *logger.Logger
	Repository *financialstatementsrepo.Repository
	Stocks     *stocksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for FinancialStatement, including
// the financials of a stock.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository, cfg.Stocks)

	group.GET("/financial-statements", b.httpList, cfg.Middleware...)
	group.GET("/financial-statements/{statement_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/financial-statements", b.httpCreate, cfg.Middleware...)
	group.PUT("/financial-statements", b.httpUpsert, cfg.Middleware...)
	group.PUT("/financial-statements/{statement_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/financial-statements/{statement_id}", b.httpDelete, cfg.Middleware...)

	group.GET("/stocks/{stock_id}/financials", b.httpListByStock, cfg.Middleware...)
}
