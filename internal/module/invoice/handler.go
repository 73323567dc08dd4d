package invoice

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// InvoiceHandler handles REST API requests for the invoice resource.
type InvoiceHandler struct {
	svc domain.InvoiceService
}

// NewInvoiceHandler creates an InvoiceHandler with the given service.
func NewInvoiceHandler(svc domain.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// NextNumber handles GET /api/v1/invoices/next-number. The preview does
// not reserve the number.
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	if _, ok := pkg.MustActor(c); !ok {
		return
	}

	num, err := h.svc.NextNumber(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invoiceNumber": num})
}

// Create handles POST /api/v1/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	inv, err := h.svc.CreateInvoice(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "invoice created", "invoice", inv)
}

// Get handles GET /api/v1/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	inv, err := h.svc.GetInvoice(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "ok", "invoice", inv)
}

// List handles GET /api/v1/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	page, err := h.svc.ListInvoices(c.Request.Context(), actor, listquery.FromContext(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "invoices", page.Items, page.Pagination)
}

// Update handles PUT /api/v1/invoices/:id.
func (h *InvoiceHandler) Update(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateInvoiceRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	inv, err := h.svc.UpdateInvoice(c.Request.Context(), actor, id, req.toUpdate())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "invoice updated", "invoice", inv)
}

// Delete handles DELETE /api/v1/invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteInvoice(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "invoice deleted", "", nil)
}

// AttachDocument handles POST /api/v1/invoices/:id/document.
func (h *InvoiceHandler) AttachDocument(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	inv, err := h.svc.AttachDocument(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "document generated", "invoice", inv)
}

// Send handles POST /api/v1/invoices/:id/send.
func (h *InvoiceHandler) Send(c *gin.Context) {
	actor, ok := pkg.MustActor(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	inv, err := h.svc.SendInvoice(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "invoice sent", "invoice", inv)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id", errors.New("id must be a positive integer"))
	}
	return uint(id), nil
}
