package position

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// PositionHandler handles REST API requests for the position resource.
type PositionHandler struct {
	svc domain.PositionService
}

// NewPositionHandler creates a PositionHandler with the given service.
func NewPositionHandler(svc domain.PositionService) *PositionHandler {
	return &PositionHandler{svc: svc}
}

// Create handles POST /api/v1/positions.
func (h *PositionHandler) Create(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	var req CreatePositionRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	position, err := h.svc.CreatePosition(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "position created", "position", position)
}

// Get handles GET /api/v1/positions/:id.
func (h *PositionHandler) Get(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	position, err := h.svc.GetPosition(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "ok", "position", position)
}

// List handles GET /api/v1/positions.
func (h *PositionHandler) List(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	page, err := h.svc.ListPositions(c.Request.Context(), actor, listquery.FromContext(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "positions", page.Items, page.Pagination)
}

// Update handles PUT /api/v1/positions/:id.
func (h *PositionHandler) Update(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdatePositionRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	position, err := h.svc.UpdatePosition(c.Request.Context(), actor, id, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "position updated", "position", position)
}

// Delete handles DELETE /api/v1/positions/:id.
func (h *PositionHandler) Delete(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeletePosition(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "position deleted", "", nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id", errors.New("id must be a positive integer"))
	}
	return uint(id), nil
}
