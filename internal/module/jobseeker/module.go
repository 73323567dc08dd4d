package jobseeker

import "github.com/gin-gonic/gin"

// JobSeekerModule implements the app.Module interface for the job seeker domain.
type JobSeekerModule struct {
	handler *JobSeekerHandler
}

// NewModule creates a JobSeekerModule with the given handler. Panics if h is nil.
func NewModule(h *JobSeekerHandler) *JobSeekerModule {
	if h == nil {
		panic("jobseeker.NewModule: handler must not be nil")
	}
	return &JobSeekerModule{handler: h}
}

// RegisterRoutes registers the job seeker API routes.
func (m *JobSeekerModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/jobseekers", m.handler.Create)
	api.GET("/jobseekers", m.handler.List)
	api.GET("/jobseekers/:id", m.handler.Get)
	api.PUT("/jobseekers/:id", m.handler.Update)
	api.DELETE("/jobseekers/:id", m.handler.Delete)
}
