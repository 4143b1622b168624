package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/samsara-collective/circle-api/internal/constants"
	apierrors "github.com/samsara-collective/circle-api/internal/errors"
)

// RequireRealm validates the :realm path parameter against the configured
// realm list and stores it in context. Everything below a realm route is
// partitioned by it; an unknown realm is indistinguishable from a missing
// resource.
func RequireRealm(realms []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(realms))
	for _, r := range realms {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		realm := c.Param("realm")
		if !allowed[realm] {
			apierrors.NotFound(c, "Realm not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRealm, realm)
		c.Next()
	}
}

// GetRealm retrieves the validated realm from context
func GetRealm(c *gin.Context) (string, bool) {
	realm, exists := c.Get(constants.ContextKeyRealm)
	if !exists {
		return "", false
	}
	s, ok := realm.(string)
	return s, ok
}
