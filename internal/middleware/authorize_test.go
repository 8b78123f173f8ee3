package middleware

import (
	"context"
	"errors"
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

// stubChecker answers permission checks from a fixed set, or fails outright.
type stubChecker struct {
	held map[string]struct{}
	err  error
}

func (s *stubChecker) HasAll(_ context.Context, _ int, required []string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, name := range required {
		if _, ok := s.held[name]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func holding(names ...string) *stubChecker {
	held := make(map[string]struct{}, len(names))
	for _, n := range names {
		held[n] = struct{}{}
	}
	return &stubChecker{held: held}
}

func testAuth() *service.AuthService {
	return service.NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

// gatedRouter mounts GET /api/v1/users behind both gates, declared to require
// the given permissions.
func gatedRouter(t *testing.T, auth *service.AuthService, checker PermissionChecker, required ...string) *gin.Engine {
	t.Helper()
	registry := authz.NewRegistry()
	registry.Declare("GET", "/api/v1/users", required...)

	r := gin.New()
	r.GET("/api/v1/users", RequireAuth(auth), Authorize(registry, checker), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenIsUnauthorizedNotForbidden(t *testing.T) {
	r := gatedRouter(t, testAuth(), holding(), "VIEW_USERS")

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "authentication is checked before authorization")
	assert.Contains(t, w.Body.String(), "TOKEN_REQUIRED")
}

func TestGarbageTokenRejected(t *testing.T) {
	r := gatedRouter(t, testAuth(), holding("VIEW_USERS"), "VIEW_USERS")

	w := get(r, "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
}

func TestAuthorizedRequestPasses(t *testing.T) {
	auth := testAuth()
	roleID := 1
	token, err := auth.GenerateToken(42, &roleID)
	require.NoError(t, err)

	r := gatedRouter(t, auth, holding("VIEW_USERS"), "VIEW_USERS")
	assert.Equal(t, http.StatusOK, get(r, token).Code)
}

func TestConjunctiveRequirement(t *testing.T) {
	auth := testAuth()
	roleID := 1
	token, err := auth.GenerateToken(42, &roleID)
	require.NoError(t, err)

	// Holding only one of two required permissions is a denial.
	r := gatedRouter(t, auth, holding("VIEW_USERS"), "VIEW_USERS", "EDIT_USERS")
	w := get(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PERMISSION_DENIED")

	r = gatedRouter(t, auth, holding("VIEW_USERS", "EDIT_USERS"), "VIEW_USERS", "EDIT_USERS")
	assert.Equal(t, http.StatusOK, get(r, token).Code)
}

func TestUndeclaredRoutePassesAnyAuthenticatedCaller(t *testing.T) {
	auth := testAuth()
	token, err := auth.GenerateToken(42, nil)
	require.NoError(t, err)

	// No declared permissions and a checker that would deny everything: the
	// checker must never be consulted.
	r := gatedRouter(t, auth, &stubChecker{err: errors.New("must not be called")})
	assert.Equal(t, http.StatusOK, get(r, token).Code)
}

func TestRolelessCallerDeniedOnGatedRoute(t *testing.T) {
	auth := testAuth()
	token, err := auth.GenerateToken(42, nil)
	require.NoError(t, err)

	// A caller with no role has an empty effective set.
	r := gatedRouter(t, auth, holding(), "VIEW_USERS")
	w := get(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PERMISSION_DENIED")
}

func TestDirectoryErrorFailsClosed(t *testing.T) {
	auth := testAuth()
	roleID := 1
	token, err := auth.GenerateToken(42, &roleID)
	require.NoError(t, err)

	r := gatedRouter(t, auth, &stubChecker{err: errors.New("connection refused")}, "VIEW_USERS")
	w := get(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PERMISSION_DENIED")
	assert.NotContains(t, w.Body.String(), "VIEW_USERS", "denial must not name the missing permission")
}

func TestDenialNeverNamesThePermission(t *testing.T) {
	auth := testAuth()
	roleID := 1
	token, err := auth.GenerateToken(42, &roleID)
	require.NoError(t, err)

	r := gatedRouter(t, auth, holding(), "DELETE_ROLES")
	w := get(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "DELETE_ROLES")
}
