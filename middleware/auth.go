package middleware

import (
	"strings"

	"campusops/model"
	"campusops/services"

	"github.com/gin-gonic/gin"
)

// Auth resolves the bearer token to a user through the auth service and
// aborts with 401 when that yields no user. The full user record (roles
// included) is stored in the context.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header is missing"})
			return
		}

		user := auth.ValidateToken(token)
		if user == nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "Token is expired or invalid"})
			return
		}

		c.Set("user", user)
		c.Set("userId", user.UserID)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present but lets the
// request through either way. Used by endpoints that accept anonymous
// submissions.
func OptionalAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user := auth.ValidateToken(token); user != nil {
				c.Set("user", user)
				c.Set("userId", user.UserID)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route on any of the named roles. It must run after
// Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authentication required"})
			return
		}
		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(403, gin.H{"error": "Forbidden"})
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	header := c.Request.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
