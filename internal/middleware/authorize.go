package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/praxis-platform/praxis-backend/internal/authz"
	"github.com/praxis-platform/praxis-backend/internal/response"
)

// PermissionChecker answers whether a user currently holds every required
// permission.
type PermissionChecker interface {
	HasAll(ctx context.Context, userID int, required []string) (bool, error)
}

// Authorize is the authorization gate. It looks up the dispatched route in the
// registry and requires the caller to hold every declared permission. Routes
// with no declaration pass any authenticated caller.
//
// The check fails closed: a directory error denies the request. The response
// never names the missing permission.
func Authorize(registry *authz.Registry, checker PermissionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			// Authorize without RequireAuth in front is a wiring bug.
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		required := registry.RequiredFor(c.Request.Method, c.FullPath())
		if len(required) == 0 {
			c.Next()
			return
		}

		ok, err := checker.HasAll(c.Request.Context(), claims.UserID, required)
		if err != nil {
			log.Error().Err(err).
				Int("user_id", claims.UserID).
				Str("route", c.Request.Method+" "+c.FullPath()).
				Msg("Permission resolution failed, denying request")
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
		if !ok {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}
