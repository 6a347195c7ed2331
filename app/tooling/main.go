package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jrazmi/stockdata/app/tooling/commands"
	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/sdk/environment"
	"github.com/jrazmi/stockdata/sdk/logger"
)

var build = "develop"
var appName = "TOOLING"

func processCommands(ctx context.Context, log *logger.Logger, command string, args []string, ds *datastores.Datastore) error {
	switch command {
	case "migrate":
		log.InfoContext(ctx, "running migration", "driver", ds.Driver)
		if err := commands.Migrate(ctx, log.Logger, ds); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.InfoContext(ctx, "migration completed successfully")
		return nil

	case "status":
		if err := commands.Status(ctx, os.Stdout, ds); err != nil {
			return fmt.Errorf("status failed: %w", err)
		}
		return nil

	case "reflect-schema":
		log.InfoContext(ctx, "running schema reflection")
		if err := commands.ReflectSchema(ctx, log.Logger, args, ds); err != nil {
			return fmt.Errorf("reflect schema failed: %w", err)
		}
		return nil

	case "verify-schema":
		if err := commands.VerifySchema(ctx, os.Stdout, args, ds); err != nil {
			return fmt.Errorf("verify schema failed: %w", err)
		}
		return nil

	default:
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate        - create the schema in the database")
	fmt.Println("  status         - list applied migrations")
	fmt.Println("  reflect-schema - reflect current database schema to JSON/SQL files")
	fmt.Println("  verify-schema  - check unique pairs and cascading keys of the stock tables")
	fmt.Println()
	fmt.Println("The backend is chosen with TOOLING_DB_DRIVER (postgres or sqlite).")
	fmt.Println("Use 'go run app/tooling/main.go <command> --help' for command-specific help.")
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "" || command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	// DATA INFRASTRUCTURE
	// ==============================================================================
	ds, err := datastores.NewFromEnv(appName, log.Logger)
	if err != nil {
		return err
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		_ = ds.Close()
	}()
	log.InfoContext(ctx, "init", "service", ds.Driver)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		args := []string{}
		if len(os.Args) > 2 {
			args = os.Args[2:]
		}
		done <- processCommands(ctx, log, command, args, ds)
	}()

	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		cancel()

		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			return fmt.Errorf("shutdown timeout after %s", sig)
		}
	}
}

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
	}

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}
