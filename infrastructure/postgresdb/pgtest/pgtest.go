// Package pgtest starts a disposable PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/stockdata/infrastructure/postgresdb"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// EnvDatabaseURL points tests at an existing server instead of Docker. The
// database it names is wiped by every test that uses it. Tests from different
// packages take turns through an advisory lock.
const EnvDatabaseURL = "PGTEST_DATABASE_URL"

// lockKey is the advisory lock shared by every test using EnvDatabaseURL.
const lockKey = 0x73746f636b

const (
	image    = "postgres"
	tag      = "16-alpine"
	user     = "stockdata"
	password = "stockdata"
	dbName   = "stockdata"
)

// NewDatabase returns a pool connected to an empty, migrated database. It
// skips the test when neither Docker nor EnvDatabaseURL is available.
func NewDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	url := os.Getenv(EnvDatabaseURL)
	shared := url != ""
	if !shared {
		url = startContainer(t)
	}

	var pool *pgxpool.Pool
	var err error
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err = postgresdb.NewTestDB(url, postgresdb.WithConnectTimeout(2*time.Second))
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	ctx := context.Background()
	if shared {
		lock(ctx, t, pool)
	}
	if err := reset(ctx, pool); err != nil {
		t.Fatalf("resetting test database: %v", err)
	}
	if err := postgresdb.Migrate(ctx, pool, nil); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return pool
}

func startContainer(t *testing.T) string {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
		Env: []string{
			"POSTGRES_USER=" + user,
			"POSTGRES_PASSWORD=" + password,
			"POSTGRES_DB=" + dbName,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("purging postgres container: %v", err)
		}
	})
	_ = resource.Expire(300)

	url := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		user, password, resource.GetHostPort("5432/tcp"), dbName)

	err = pool.Retry(func() error {
		db, err := postgresdb.NewTestDB(url, postgresdb.WithConnectTimeout(time.Second))
		if err != nil {
			return err
		}
		db.Close()
		return nil
	})
	if err != nil {
		t.Fatalf("waiting for postgres container: %v", err)
	}

	return url
}

// lock holds the shared advisory lock on its own connection until the test
// ends. Cleanups run last-in first-out, so it is released before the pool
// closes.
func lock(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquiring lock connection: %v", err)
	}
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		conn.Release()
		t.Fatalf("taking test database lock: %v", err)
	}
	t.Cleanup(func() {
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey); err != nil {
			t.Logf("releasing test database lock: %v", err)
		}
		conn.Release()
	})
}

func reset(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		DROP TABLE IF EXISTS
			financials_financialstatement,
			analysis_clusteringresult,
			analysis_clusteringcriterion,
			stocks_stock,
			schema_migrations
		CASCADE`)
	return err
}
