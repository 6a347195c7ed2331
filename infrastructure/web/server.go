package web

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jrazmi/stockdata/sdk/environment"
)

// WebServer is an http.Server plus the settings it was built from.
type WebServer struct {
	*http.Server
	Config ServerConfig
}

// ServerConfig is read from <PREFIX>_* environment variables.
type ServerConfig struct {
	Port              string        `env:"PORT" default:":8080"`
	APIRoute          string        `env:"API_ROUTE" default:"/api/v1"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" default:"30s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" default:"5s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" default:"20s"`
}

type serverOptions struct {
	handler  http.Handler
	errorLog *log.Logger
}

// ServerOption adjusts a server at construction.
type ServerOption func(*serverOptions)

// WithHandler sets the HTTP handler. It may also be assigned later.
func WithHandler(handler http.Handler) ServerOption {
	return func(o *serverOptions) {
		o.handler = handler
	}
}

// WithErrorLog routes net/http's internal errors to errorLog.
func WithErrorLog(errorLog *log.Logger) ServerOption {
	return func(o *serverOptions) {
		o.errorLog = errorLog
	}
}

// NewServerFromEnv creates a new WebServer from environment variables
func NewServerFromEnv(prefix string, opts ...ServerOption) (*WebServer, error) {
	var cfg ServerConfig
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing webserver config: %w", err)
	}
	return NewServer(cfg, opts...), nil
}

// NewServer builds a server from an explicit config.
func NewServer(cfg ServerConfig, opts ...ServerOption) *WebServer {
	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	return &WebServer{
		Server: &http.Server{
			Addr:              cfg.Port,
			Handler:           o.handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          o.errorLog,
		},
		Config: cfg,
	}
}
