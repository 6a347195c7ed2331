// Package config holds the stockdata server's wiring: environment settings
// and the repositories built over the chosen datastore.
package config

import (
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo/stores/clusteringcriteriapgxstore"
	"github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo/stores/clusteringcriteriasqlitestore"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo/stores/clusteringresultspgxstore"
	"github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo/stores/clusteringresultssqlitestore"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo/stores/financialstatementspgxstore"
	"github.com/jrazmi/stockdata/core/repositories/financialstatementsrepo/stores/financialstatementssqlitestore"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo/stores/stockspgxstore"
	"github.com/jrazmi/stockdata/core/repositories/stocksrepo/stores/stockssqlitestore"
	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/sdk/logger"
	"github.com/jrazmi/stockdata/sdk/telemetry"
)

// Options are the server settings not owned by an infrastructure package.
type Options struct {
	MigrateOnStart bool `env:"MIGRATE_ON_START" default:"false"`
}

// Repositories represents the repositories this instance of stockdata serves.
type Repositories struct {
	Stocks              *stocksrepo.Repository
	FinancialStatements *financialstatementsrepo.Repository
	ClusteringCriteria  *clusteringcriteriarepo.Repository
	ClusteringResults   *clusteringresultsrepo.Repository
}

// NewRepositories builds every repository over the datastore's backend.
func NewRepositories(log *logger.Logger, ds *datastores.Datastore) Repositories {
	if ds.Driver == datastores.DriverPostgres {
		pool := ds.Postgres
		return Repositories{
			Stocks:              stocksrepo.NewRepository(log, stockspgxstore.NewStore(log, pool)),
			FinancialStatements: financialstatementsrepo.NewRepository(log, financialstatementspgxstore.NewStore(log, pool)),
			ClusteringCriteria:  clusteringcriteriarepo.NewRepository(log, clusteringcriteriapgxstore.NewStore(log, pool)),
			ClusteringResults:   clusteringresultsrepo.NewRepository(log, clusteringresultspgxstore.NewStore(log, pool)),
		}
	}

	db := ds.SQLite
	return Repositories{
		Stocks:              stocksrepo.NewRepository(log, stockssqlitestore.NewStore(log, db)),
		FinancialStatements: financialstatementsrepo.NewRepository(log, financialstatementssqlitestore.NewStore(log, db)),
		ClusteringCriteria:  clusteringcriteriarepo.NewRepository(log, clusteringcriteriasqlitestore.NewStore(log, db)),
		ClusteringResults:   clusteringresultsrepo.NewRepository(log, clusteringresultssqlitestore.NewStore(log, db)),
	}
}

// StockData is the overall configuration for the stockdata application.
type StockData struct {
	Build     string
	APIRoute  string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Datastore    *datastores.Datastore
	Repositories Repositories
}
