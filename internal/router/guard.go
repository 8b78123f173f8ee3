package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/authz"
	"github.com/praxis-platform/praxis-backend/internal/middleware"
	"github.com/praxis-platform/praxis-backend/internal/service"
)

// Guard wraps a gin route group so every route states its required
// permissions at registration time. Registration both records the declaration
// in the registry and mounts the handler, so the declaration table and the
// actual routes cannot drift apart.
//
// NewGuard installs RequireAuth ahead of Authorize on the group, which is what
// guarantees identity is established before any permission check runs.
type Guard struct {
	group    *gin.RouterGroup
	registry *authz.Registry
}

// NewGuard protects a route group with the authentication and authorization
// gates, in that order.
func NewGuard(group *gin.RouterGroup, registry *authz.Registry, auth *service.AuthService, checker middleware.PermissionChecker) *Guard {
	group.Use(middleware.RequireAuth(auth), middleware.Authorize(registry, checker))
	return &Guard{group: group, registry: registry}
}

// Group derives a sub-guard under relativePath. The parent's gates already
// cover it; no middleware is re-applied.
func (g *Guard) Group(relativePath string) *Guard {
	return &Guard{group: g.group.Group(relativePath), registry: g.registry}
}

// GET declares and mounts a GET route.
func (g *Guard) GET(relativePath string, h gin.HandlerFunc, permissions ...string) {
	g.handle(http.MethodGet, relativePath, h, permissions)
}

// POST declares and mounts a POST route.
func (g *Guard) POST(relativePath string, h gin.HandlerFunc, permissions ...string) {
	g.handle(http.MethodPost, relativePath, h, permissions)
}

// PUT declares and mounts a PUT route.
func (g *Guard) PUT(relativePath string, h gin.HandlerFunc, permissions ...string) {
	g.handle(http.MethodPut, relativePath, h, permissions)
}

// PATCH declares and mounts a PATCH route.
func (g *Guard) PATCH(relativePath string, h gin.HandlerFunc, permissions ...string) {
	g.handle(http.MethodPatch, relativePath, h, permissions)
}

// DELETE declares and mounts a DELETE route.
func (g *Guard) DELETE(relativePath string, h gin.HandlerFunc, permissions ...string) {
	g.handle(http.MethodDelete, relativePath, h, permissions)
}

func (g *Guard) handle(method, relativePath string, h gin.HandlerFunc, permissions []string) {
	g.registry.Declare(method, joinPaths(g.group.BasePath(), relativePath), permissions...)
	g.group.Handle(method, relativePath, h)
}

// joinPaths mirrors gin's path joining so declarations use the same route
// pattern the dispatcher reports via FullPath.
func joinPaths(base, relative string) string {
	if relative == "" {
		return base
	}
	finalPath := strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(relative, "/")
	return strings.TrimSuffix(finalPath, "/")
}
