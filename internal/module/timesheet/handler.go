package timesheet

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// TimesheetHandler handles REST API requests for the timesheet resource.
type TimesheetHandler struct {
	svc domain.TimesheetService
}

// NewTimesheetHandler creates a TimesheetHandler with the given service.
func NewTimesheetHandler(svc domain.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{svc: svc}
}

// Create handles POST /api/v1/timesheets.
func (h *TimesheetHandler) Create(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	var req CreateTimesheetRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	ts, err := h.svc.CreateTimesheet(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "timesheet created", "timesheet", ts)
}

// Get handles GET /api/v1/timesheets/:id.
func (h *TimesheetHandler) Get(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	ts, err := h.svc.GetTimesheet(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "ok", "timesheet", ts)
}

// List handles GET /api/v1/timesheets.
func (h *TimesheetHandler) List(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	page, err := h.svc.ListTimesheets(c.Request.Context(), actor, listquery.FromContext(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "timesheets", page.Items, page.Pagination)
}

// Update handles PUT /api/v1/timesheets/:id.
func (h *TimesheetHandler) Update(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateTimesheetRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	ts, err := h.svc.UpdateTimesheet(c.Request.Context(), actor, id, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "timesheet updated", "timesheet", ts)
}

// Delete handles DELETE /api/v1/timesheets/:id.
func (h *TimesheetHandler) Delete(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteTimesheet(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "timesheet deleted", "", nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id", errors.New("id must be a positive integer"))
	}
	return uint(id), nil
}
