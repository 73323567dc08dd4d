package pkg

import (
	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
)

// Context keys set by the auth middleware.
const (
	ActorIDKey   = "actor_id"
	ActorRoleKey = "actor_role"
)

// Actor extracts the authenticated caller from the Gin context. The bool
// result is false when the request reached the handler without passing
// through the auth middleware.
func Actor(c *gin.Context) (domain.Actor, bool) {
	idValue, ok := c.Get(ActorIDKey)
	if !ok {
		return domain.Actor{}, false
	}
	id, ok := idValue.(uint)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: id, Role: c.GetString(ActorRoleKey)}, true
}

// MustActor extracts the caller or aborts with an unauthorized response.
func MustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := Actor(c)
	if !ok {
		Error(c, domain.ErrUnauthorized)
		c.Abort()
		return domain.Actor{}, false
	}
	return actor, true
}
