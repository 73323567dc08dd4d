package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists the origins permitted to make cross-origin
	// requests. ["*"] allows every origin.
	AllowOrigins []string

	// AllowMethods lists the HTTP methods permitted in cross-origin requests.
	AllowMethods []string

	// AllowHeaders lists the request headers permitted in cross-origin requests.
	AllowHeaders []string

	// AllowCredentials permits cookies and authorization headers on
	// cross-origin requests.
	AllowCredentials bool

	// MaxAge is how long (in seconds) browsers may cache a preflight result.
	MaxAge string
}

// DefaultCORSConfig returns a permissive configuration suitable for
// development. Release deployments should set an explicit allowlist.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           "86400",
	}
}

// CORS returns the CORS middleware with DefaultCORSConfig.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig returns a middleware handling cross-origin requests per cfg.
// Requests without an Origin header pass through untouched. Requests from an
// origin outside the allowlist get no CORS headers at all, which makes the
// browser reject the response.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	wildcard := len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*"
	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		// Caches must key on Origin whenever CORS processing is active.
		c.Writer.Header().Add("Vary", "Origin")

		switch {
		case wildcard && !cfg.AllowCredentials:
			c.Header("Access-Control-Allow-Origin", "*")
		case wildcard || matchOrigin(cfg.AllowOrigins, origin):
			// Credentialed responses must echo the concrete origin; the
			// wildcard form is rejected by browsers.
			c.Header("Access-Control-Allow-Origin", origin)
		default:
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Max-Age", cfg.MaxAge)

		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// matchOrigin reports whether origin appears in the allowlist.
func matchOrigin(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
