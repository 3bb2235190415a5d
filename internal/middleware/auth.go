package middleware

import (
	"net/http"

	"authservice/internal/models"
	"authservice/internal/roles"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// claimsKey is the context key under which verified claims are attached.
const claimsKey = "claims"

// TokenVerifier validates a raw token string and returns its decoded claims.
// Implemented by service.AuthService.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*models.Claims, error)
}

// RequireAuth creates a Gin middleware that authenticates the request from
// the "token" cookie. A missing cookie and a failed verification are
// distinct failures; both halt the chain with 401. On success the decoded
// claims are attached to the request context so downstream handlers and the
// role gate never verify the token a second time.
func RequireAuth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token required"})
			return
		}

		claims, err := verifier.VerifyToken(tokenString)
		if err != nil {
			logger.Debug("Token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token invalid"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole creates a Gin middleware that gates the request on a minimum
// role. It reads the claims RequireAuth attached and must therefore be
// registered after it; a request arriving here without claims is rejected
// rather than re-verified. An empty minimum passes everyone through.
func RequireRole(minimum string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token required"})
			return
		}

		if !roles.Satisfies(claims.RoleName, minimum) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "This is not for you"})
			return
		}

		c.Next()
	}
}

// ClaimsFromContext returns the claims attached by RequireAuth, or nil when
// the request was not authenticated.
func ClaimsFromContext(c *gin.Context) *models.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*models.Claims)
	if !ok {
		return nil
	}
	return claims
}
