package web

import (
	"net/http"
	"slices"
	"strings"
)

// Router is satisfied by both WebHandler and RouteGroup.
type Router interface {
	Handle(method, path string, handler HandlerFunc, middleware ...Middleware)
	GET(path string, handler HandlerFunc, middleware ...Middleware)
	POST(path string, handler HandlerFunc, middleware ...Middleware)
	PUT(path string, handler HandlerFunc, middleware ...Middleware)
	DELETE(path string, handler HandlerFunc, middleware ...Middleware)
}

var (
	_ Router = (*WebHandler)(nil)
	_ Router = (*RouteGroup)(nil)
)

// RouteGroup registers routes under a shared prefix and middleware.
type RouteGroup struct {
	webHandler *WebHandler
	prefix     string
	middleware []Middleware
}

// Group starts a route group at prefix. Trailing slashes are dropped.
func (a *WebHandler) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: a,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

// Group nests a group under g, inheriting its prefix and middleware.
func (g *RouteGroup) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: g.webHandler,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: slices.Concat(g.middleware, middleware),
	}
}

func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	g.webHandler.Handle(method, g.prefix+path, handler, slices.Concat(g.middleware, middleware)...)
}

func (g *RouteGroup) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodGet, path, handler, middleware...)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodPost, path, handler, middleware...)
}

func (g *RouteGroup) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodPut, path, handler, middleware...)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodDelete, path, handler, middleware...)
}

func (a *WebHandler) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle(http.MethodGet, path, handler, middleware...)
}

func (a *WebHandler) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle(http.MethodPost, path, handler, middleware...)
}

func (a *WebHandler) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle(http.MethodPut, path, handler, middleware...)
}

func (a *WebHandler) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle(http.MethodDelete, path, handler, middleware...)
}
