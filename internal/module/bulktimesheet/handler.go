package bulktimesheet

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// BulkTimesheetHandler handles REST API requests for the bulk timesheet resource.
type BulkTimesheetHandler struct {
	svc domain.BulkTimesheetService
}

// NewBulkTimesheetHandler creates a BulkTimesheetHandler with the given service.
func NewBulkTimesheetHandler(svc domain.BulkTimesheetService) *BulkTimesheetHandler {
	return &BulkTimesheetHandler{svc: svc}
}

// Create handles POST /api/v1/bulk-timesheets.
func (h *BulkTimesheetHandler) Create(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	var req CreateBulkTimesheetRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	bt, err := h.svc.CreateBulkTimesheet(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "bulk timesheet created", "bulkTimesheet", bt)
}

// Get handles GET /api/v1/bulk-timesheets/:id.
func (h *BulkTimesheetHandler) Get(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	bt, err := h.svc.GetBulkTimesheet(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "ok", "bulkTimesheet", bt)
}

// List handles GET /api/v1/bulk-timesheets.
func (h *BulkTimesheetHandler) List(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	page, err := h.svc.ListBulkTimesheets(c.Request.Context(), actor, listquery.FromContext(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "bulkTimesheets", page.Items, page.Pagination)
}

// Update handles PUT /api/v1/bulk-timesheets/:id.
func (h *BulkTimesheetHandler) Update(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateBulkTimesheetRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	bt, err := h.svc.UpdateBulkTimesheet(c.Request.Context(), actor, id, req.toUpdate())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "bulk timesheet updated", "bulkTimesheet", bt)
}

// Delete handles DELETE /api/v1/bulk-timesheets/:id.
func (h *BulkTimesheetHandler) Delete(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteBulkTimesheet(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "bulk timesheet deleted", "", nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id", errors.New("id must be a positive integer"))
	}
	return uint(id), nil
}
