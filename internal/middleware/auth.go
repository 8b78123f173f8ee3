package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
)

// ContextKeyClaims is the Gin context key for verified token claims.
const ContextKeyClaims = "claims"

// RequireAuth is the authentication gate. It verifies the Bearer token and
// stores the claims for downstream middleware and handlers. It establishes
// identity only — permission checks happen in Authorize, which always runs
// after this.
func RequireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := service.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the verified claims from the Gin context, or nil when
// the request never passed the authentication gate.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}
