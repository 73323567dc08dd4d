package bulktimesheet

import "github.com/gin-gonic/gin"

// BulkTimesheetModule implements the app.Module interface for the bulk
// timesheet domain.
type BulkTimesheetModule struct {
	handler *BulkTimesheetHandler
}

// NewModule creates a BulkTimesheetModule with the given handler. Panics if h is nil.
func NewModule(h *BulkTimesheetHandler) *BulkTimesheetModule {
	if h == nil {
		panic("bulktimesheet.NewModule: handler must not be nil")
	}
	return &BulkTimesheetModule{handler: h}
}

// RegisterRoutes registers the bulk timesheet API routes.
func (m *BulkTimesheetModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/bulk-timesheets", m.handler.Create)
	api.GET("/bulk-timesheets", m.handler.List)
	api.GET("/bulk-timesheets/:id", m.handler.Get)
	api.PUT("/bulk-timesheets/:id", m.handler.Update)
	api.DELETE("/bulk-timesheets/:id", m.handler.Delete)
}
