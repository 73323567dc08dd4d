package position

import "github.com/gin-gonic/gin"

// PositionModule implements the app.Module interface for the position domain.
type PositionModule struct {
	handler *PositionHandler
}

// NewModule creates a PositionModule with the given handler. Panics if h is nil.
func NewModule(h *PositionHandler) *PositionModule {
	if h == nil {
		panic("position.NewModule: handler must not be nil")
	}
	return &PositionModule{handler: h}
}

// RegisterRoutes registers the position API routes.
func (m *PositionModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/positions", m.handler.Create)
	api.GET("/positions", m.handler.List)
	api.GET("/positions/:id", m.handler.Get)
	api.PUT("/positions/:id", m.handler.Update)
	api.DELETE("/positions/:id", m.handler.Delete)
}
