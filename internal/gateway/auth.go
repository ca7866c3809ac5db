package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "gateway.identity"

const bearerPrefix = "Bearer "

// RequireAuth resolves the bearer token to an Identity or aborts with 401.
func RequireAuth(store IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "authentication credentials were not provided"})
			return
		}

		key := strings.TrimSpace(header[len(bearerPrefix):])
		user, err := store.ResolveToken(c.Request.Context(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, Identity{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin})
		c.Next()
	}
}

// RequireAdmin aborts with 403 for non-admin callers. It must run after
// RequireAuth: a request with a missing or bad token gets 401 before this
// check, so the response never reveals that the resource is admin-only.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"error": "you do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the Identity resolved by RequireAuth. The zero
// Identity is returned on routes where the middleware did not run.
func CurrentIdentity(c *gin.Context) Identity {
	v, _ := c.Get(identityKey)
	ident, _ := v.(Identity)
	return ident
}
