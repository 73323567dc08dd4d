package client

import "github.com/gin-gonic/gin"

// ClientModule implements the app.Module interface for the client domain.
type ClientModule struct {
	handler *ClientHandler
}

// NewModule creates a ClientModule with the given handler. Panics if h is nil.
func NewModule(h *ClientHandler) *ClientModule {
	if h == nil {
		panic("client.NewModule: handler must not be nil")
	}
	return &ClientModule{handler: h}
}

// RegisterRoutes registers the client API routes.
func (m *ClientModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/clients", m.handler.Create)
	api.GET("/clients", m.handler.List)
	api.GET("/clients/:id", m.handler.Get)
	api.PUT("/clients/:id", m.handler.Update)
	api.DELETE("/clients/:id", m.handler.Delete)
}
