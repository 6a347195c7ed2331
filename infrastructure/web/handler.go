package web

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/jrazmi/stockdata/sdk/environment"
)

// WebHandler routes requests through ServeMux patterns and runs every
// HandlerFunc behind the global middleware.
type WebHandler struct {
	mux              *http.ServeMux
	log              *slog.Logger
	telemetry        Telemetry
	corsOrigins      []string
	defaultHeaders   map[string]string
	requestTimeout   time.Duration
	globalMiddleware []Middleware
}

// HandlerOptions is read from <PREFIX>_* environment variables.
type HandlerOptions struct {
	CORSOrigins []string `env:"CORS_ORIGINS" default:"*" separator:","`

	// RequestTimeout bounds the context handed to handlers. Zero leaves it
	// unbounded.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"0s"`
}

// HandlerOption adjusts a WebHandler at construction.
type HandlerOption func(*WebHandler)

// WithLogging sets the logger used for respond failures.
func WithLogging(log *slog.Logger) HandlerOption {
	return func(h *WebHandler) {
		h.log = log
	}
}

// WithTelemetry stamps a trace id on every request context.
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(h *WebHandler) {
		h.telemetry = tel
	}
}

// WithCORS replaces the allowed origins.
func WithCORS(origins []string) HandlerOption {
	return func(h *WebHandler) {
		h.corsOrigins = origins
	}
}

// WithDefaultHeaders sets headers written on every routed response.
func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(h *WebHandler) {
		maps.Copy(h.defaultHeaders, headers)
	}
}

// WithRequestTimeout overrides REQUEST_TIMEOUT.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *WebHandler) {
		h.requestTimeout = d
	}
}

// WithGlobalMiddleware appends middleware that wraps every route, first
// listed outermost.
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(h *WebHandler) {
		h.globalMiddleware = append(h.globalMiddleware, middleware...)
	}
}

// NewWebHandler creates a WebHandler configured only through options.
func NewWebHandler(opts ...HandlerOption) *WebHandler {
	return newWebHandler(HandlerOptions{}, opts...)
}

// NewWebHandlerFromEnv creates a new WebHandler from environment variables
func NewWebHandlerFromEnv(prefix string, opts ...HandlerOption) (*WebHandler, error) {
	var cfg HandlerOptions
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing webhandler config: %w", err)
	}
	return newWebHandler(cfg, opts...), nil
}

func newWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	h := &WebHandler{
		mux:            http.NewServeMux(),
		corsOrigins:    cfg.CORSOrigins,
		defaultHeaders: make(map[string]string),
		requestTimeout: cfg.RequestTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}

	// CORS runs outermost, before Logger and Errors.
	if len(h.corsOrigins) > 0 {
		h.globalMiddleware = append([]Middleware{h.corsMiddleware()}, h.globalMiddleware...)
	}

	return h
}

// Handle registers handler for method and path behind the global middleware
// and any route middleware.
func (a *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	chain := a.buildHandlerChain(handler, middleware...)

	a.mux.HandleFunc(strings.ToUpper(method)+" "+path, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if a.requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.requestTimeout)
			defer cancel()
		}
		if a.telemetry != nil {
			ctx = a.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)
		for k, v := range a.defaultHeaders {
			w.Header().Set(k, v)
		}

		if err := Respond(ctx, w, chain(ctx, r)); err != nil && a.log != nil {
			a.log.ErrorContext(ctx, "respond error", "error", err)
		}
	})
}

// HandleRaw registers a plain http.Handler. Global middleware is not applied.
func (a *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	a.mux.Handle(pattern, handler)
}

func (a *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Method patterns never match a preflight, so answer it before routing.
	if r.Method == http.MethodOptions && len(a.corsOrigins) > 0 {
		a.setCORSHeaders(w, r)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.mux.ServeHTTP(w, r)
}
