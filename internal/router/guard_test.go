package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/praxis-platform/praxis-backend/internal/authz"
	"github.com/praxis-platform/praxis-backend/internal/config"
	"github.com/praxis-platform/praxis-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type allowAllChecker struct{ calls int }

func (a *allowAllChecker) HasAll(_ context.Context, _ int, _ []string) (bool, error) {
	a.calls++
	return true, nil
}

func testGuardAuth() *service.AuthService {
	return service.NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestGuardDeclarationsMatchMountedRoutes(t *testing.T) {
	registry := authz.NewRegistry()
	r := gin.New()

	guard := NewGuard(r.Group("/api/v1"), registry, testGuardAuth(), &allowAllChecker{})
	users := guard.Group("/superadmin/users")
	users.GET("", ok, "VIEW_USERS")
	users.GET("/:id", ok, "VIEW_USERS")
	users.DELETE("/:id", ok, "DELETE_USERS")
	guard.POST("/campaigns", ok)

	assert.Equal(t, []string{"VIEW_USERS"}, registry.RequiredFor("GET", "/api/v1/superadmin/users"))
	assert.Equal(t, []string{"VIEW_USERS"}, registry.RequiredFor("GET", "/api/v1/superadmin/users/:id"))
	assert.Equal(t, []string{"DELETE_USERS"}, registry.RequiredFor("DELETE", "/api/v1/superadmin/users/:id"))
	assert.Empty(t, registry.RequiredFor("POST", "/api/v1/campaigns"))

	// Declared patterns must be exactly what gin reports at dispatch time.
	declared := registry.Routes()
	for _, route := range r.Routes() {
		_, found := declared[route.Method+" "+route.Path]
		assert.True(t, found, "route %s %s has no declaration", route.Method, route.Path)
	}
}

func TestGuardedRouteRejectsAnonymousCalls(t *testing.T) {
	registry := authz.NewRegistry()
	r := gin.New()

	guard := NewGuard(r.Group("/api/v1"), registry, testGuardAuth(), &allowAllChecker{})
	guard.GET("/trainings", ok, "VIEW_TRAININGS")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trainings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubGuardInheritsParentGates(t *testing.T) {
	registry := authz.NewRegistry()
	r := gin.New()
	auth := testGuardAuth()
	checker := &allowAllChecker{}

	guard := NewGuard(r.Group("/api/v1"), registry, auth, checker)
	classes := guard.Group("/classes")
	classes.GET("/:id/roster", ok, "VIEW_CLASSES")

	roleID := 1
	token, err := auth.GenerateToken(42, &roleID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/classes/9/roster", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, checker.calls, "the parent's gates must run exactly once for sub-guard routes")
}
