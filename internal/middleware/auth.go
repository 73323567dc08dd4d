package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// Auth returns a gin middleware that authenticates requests with a Bearer
// token. On success it stores the actor id and role in the context for
// handlers to read via pkg.Actor. Paths listed in publicPaths skip
// authentication entirely.
func Auth(jwtSvc jwt.Service, publicPaths []string) gin.HandlerFunc {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return func(c *gin.Context) {
		if public[c.Request.URL.Path] {
			c.Next()
			return
		}

		raw := bearerToken(c)
		if raw == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		token, err := jwtSvc.ValidateAndParse(raw)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		id, err := strconv.ParseUint(token.UserID, 10, 64)
		if err != nil {
			abortUnauthorized(c, "invalid token subject")
			return
		}

		role := ""
		if len(token.Roles) > 0 {
			role = token.Roles[0]
		}

		c.Set(pkg.ActorIDKey, uint(id))
		c.Set(pkg.ActorRoleKey, role)
		c.Next()
	}
}

// RequireAdmin returns a middleware restricting a route group to admins.
// It assumes Auth ran earlier in the chain.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := pkg.Actor(c)
		if !ok {
			abortUnauthorized(c, "unauthorized")
			return
		}
		if !actor.Admin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": domain.ErrForbidden.Message,
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": msg,
	})
}
