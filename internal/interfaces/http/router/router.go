package router

import (
	"github.com/gin-gonic/gin"
)

// Router owns the versioned API prefix. Handlers register their own route
// groups on the group it exposes, so guard middleware composes at the call
// site instead of inside a registry.
type Router struct {
	engine     *gin.Engine
	apiVersion string
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
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

// APIGroup returns the versioned API group for handlers to register on
func (r *Router) APIGroup() *gin.RouterGroup {
	return r.engine.Group("/api/" + r.apiVersion)
}
