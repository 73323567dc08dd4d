package timesheet

import "github.com/gin-gonic/gin"

// TimesheetModule implements the app.Module interface for the timesheet domain.
type TimesheetModule struct {
	handler *TimesheetHandler
}

// NewModule creates a TimesheetModule with the given handler. Panics if h is nil.
func NewModule(h *TimesheetHandler) *TimesheetModule {
	if h == nil {
		panic("timesheet.NewModule: handler must not be nil")
	}
	return &TimesheetModule{handler: h}
}

// RegisterRoutes registers the timesheet API routes.
func (m *TimesheetModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/timesheets", m.handler.Create)
	api.GET("/timesheets", m.handler.List)
	api.GET("/timesheets/:id", m.handler.Get)
	api.PUT("/timesheets/:id", m.handler.Update)
	api.DELETE("/timesheets/:id", m.handler.Delete)
}
