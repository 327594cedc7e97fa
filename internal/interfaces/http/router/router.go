package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a set of routes on an API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under a versioned prefix
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the version segment of the API prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router mounted at /api/<version>
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a registrar for Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts all queued registrars on the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Group is a declarative route group with its own middleware chain
type Group struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewGroup creates a route group mounted at prefix
func NewGroup(prefix string) *Group {
	return &Group{prefix: prefix}
}

// Use appends middleware applied to every route in the group
func (g *Group) Use(middleware ...gin.HandlerFunc) *Group {
	g.middleware = append(g.middleware, middleware...)
	return g
}

// GET registers a GET route
func (g *Group) GET(path string, handlers ...gin.HandlerFunc) *Group {
	return g.add("GET", path, handlers)
}

// POST registers a POST route
func (g *Group) POST(path string, handlers ...gin.HandlerFunc) *Group {
	return g.add("POST", path, handlers)
}

// PUT registers a PUT route
func (g *Group) PUT(path string, handlers ...gin.HandlerFunc) *Group {
	return g.add("PUT", path, handlers)
}

// DELETE registers a DELETE route
func (g *Group) DELETE(path string, handlers ...gin.HandlerFunc) *Group {
	return g.add("DELETE", path, handlers)
}

func (g *Group) add(method, path string, handlers []gin.HandlerFunc) *Group {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

// RegisterRoutes implements RouteRegistrar
func (g *Group) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix)
	if len(g.middleware) > 0 {
		group.Use(g.middleware...)
	}
	for _, rt := range g.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
}
