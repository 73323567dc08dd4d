package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for authentication.
// Both routes must be listed in the configured public paths so the auth
// middleware lets unauthenticated callers through.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule creates an AuthModule with the given handler. Panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// RegisterRoutes registers the authentication API routes.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", m.handler.Login)
	api.POST("/auth/register", m.handler.Register)
}
