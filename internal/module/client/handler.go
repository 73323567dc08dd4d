package client

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// ClientHandler handles REST API requests for the client resource.
type ClientHandler struct {
	svc domain.ClientService
}

// NewClientHandler creates a ClientHandler with the given service.
func NewClientHandler(svc domain.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	var req CreateClientRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "client created", "client", client)
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	client, err := h.svc.GetClient(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "ok", "client", client)
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	page, err := h.svc.ListClients(c.Request.Context(), actor, listquery.FromContext(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "clients", page.Items, page.Pagination)
}

// Update handles PUT /api/v1/clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateClientRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	client, err := h.svc.UpdateClient(c.Request.Context(), actor, id, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "client updated", "client", client)
}

// Delete handles DELETE /api/v1/clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteClient(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "client deleted", "", nil)
}

// parseID extracts the numeric :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id", errors.New("id must be a positive integer"))
	}
	return uint(id), nil
}
