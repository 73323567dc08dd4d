package invoice

import "github.com/gin-gonic/gin"

// InvoiceModule implements the app.Module interface for the invoice domain.
type InvoiceModule struct {
	handler *InvoiceHandler
}

// NewModule creates an InvoiceModule with the given handler. Panics if h is nil.
func NewModule(h *InvoiceHandler) *InvoiceModule {
	if h == nil {
		panic("invoice.NewModule: handler must not be nil")
	}
	return &InvoiceModule{handler: h}
}

// RegisterRoutes registers the invoice API routes.
func (m *InvoiceModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/invoices/next-number", m.handler.NextNumber)
	api.POST("/invoices", m.handler.Create)
	api.GET("/invoices", m.handler.List)
	api.GET("/invoices/:id", m.handler.Get)
	api.PUT("/invoices/:id", m.handler.Update)
	api.DELETE("/invoices/:id", m.handler.Delete)
	api.POST("/invoices/:id/document", m.handler.AttachDocument)
	api.POST("/invoices/:id/send", m.handler.Send)
}
