package jobseeker

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// JobSeekerHandler handles REST API requests for the job seeker resource.
type JobSeekerHandler struct {
	svc domain.JobSeekerService
}

// NewJobSeekerHandler creates a JobSeekerHandler with the given service.
func NewJobSeekerHandler(svc domain.JobSeekerService) *JobSeekerHandler {
	return &JobSeekerHandler{svc: svc}
}

// Create handles POST /api/v1/jobseekers.
func (h *JobSeekerHandler) Create(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	var req CreateJobSeekerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	seeker, err := h.svc.CreateJobSeeker(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "job seeker created", "jobSeeker", seeker)
}

// Get handles GET /api/v1/jobseekers/:id.
func (h *JobSeekerHandler) Get(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	seeker, err := h.svc.GetJobSeeker(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "ok", "jobSeeker", seeker)
}

// List handles GET /api/v1/jobseekers.
func (h *JobSeekerHandler) List(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	page, err := h.svc.ListJobSeekers(c.Request.Context(), actor, listquery.FromContext(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "jobSeekers", page.Items, page.Pagination)
}

// Update handles PUT /api/v1/jobseekers/:id.
func (h *JobSeekerHandler) Update(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateJobSeekerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	seeker, err := h.svc.UpdateJobSeeker(c.Request.Context(), actor, id, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "job seeker updated", "jobSeeker", seeker)
}

// Delete handles DELETE /api/v1/jobseekers/:id.
func (h *JobSeekerHandler) Delete(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteJobSeeker(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "job seeker deleted", "", nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id", errors.New("id must be a positive integer"))
	}
	return uint(id), nil
}
