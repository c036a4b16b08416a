package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kampus/orari/internal/models"
	appErrors "github.com/kampus/orari/pkg/errors"
	"github.com/kampus/orari/pkg/logger"
	"github.com/kampus/orari/pkg/response"
)

// ContextIdentityKey is the gin context key storing the resolved identity.
const ContextIdentityKey = "currentIdentity"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// IdentityFromContext returns the identity resolved by Gate or JWT.
func IdentityFromContext(c *gin.Context) (*models.Identity, bool) {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*models.Identity)
	return identity, ok && identity != nil
}

func setIdentity(c *gin.Context, identity *models.Identity) {
	c.Set(ContextIdentityKey, identity)
	c.Set(logger.IdentityKey, identity.Email)
}

// JWT protects API routes. An identity already resolved from the session
// cookie is accepted, otherwise a valid Bearer access token is required.
func JWT(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFromContext(c); ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		identity := claims.Identity()
		setIdentity(c, &identity)
		c.Next()
	}
}
