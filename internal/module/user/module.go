package user

import (
	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/middleware"
)

// UserModule implements the app.Module interface for the user domain.
// Administration routes sit behind the admin route guard; Get stays
// outside it because consultants may read their own record. The service
// layer repeats the role checks for callers that bypass the router.
type UserModule struct {
	handler *UserHandler
}

// NewModule creates a UserModule with the given handler. Panics if h is nil.
func NewModule(h *UserHandler) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &UserModule{handler: h}
}

// RegisterRoutes registers the user API routes.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/:id", m.handler.Get)

	admin := api.Group("/users", middleware.RequireAdmin())
	admin.GET("", m.handler.List)
	admin.PUT("/:id", m.handler.Update)
	admin.DELETE("/:id", m.handler.Delete)
}
