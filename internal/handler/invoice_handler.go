package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/model"
	"github.com/ridwanfathin/invoice-review-service/internal/service"
)

// InvoiceHandler handles HTTP requests for persisted invoice documents
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// RegisterRoutes registers the invoice routes
func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.POST("", h.CreateInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
	}
}

// ListInvoices handles the GET /invoices endpoint
// @Summary List invoices
// @Description Retrieve a paginated list of invoices, newest first, optionally filtered by vendor name or invoice number
// @Tags invoices
// @Produce json
// @Param q query string false "Case-insensitive search over vendor name and invoice number"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10, max: 100)"
// @Success 200 {object} model.APIResponse{data=model.InvoiceListResponse} "List of invoices"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	filter := domain.InvoiceFilter{
		Query: c.Query("q"),
		Page:  getQueryInt(c, "page", domain.DefaultPage),
		Limit: getQueryInt(c, "limit", domain.DefaultLimit),
	}

	page, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, "list_invoices", err, ErrFetchInvoices)
		return
	}

	respondOK(c, model.NewInvoiceListResponse(page), "")
}

// GetInvoice handles the GET /invoices/:id endpoint
// @Summary Get an invoice
// @Description Retrieve a single invoice by its fileId
// @Tags invoices
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} model.APIResponse{data=domain.InvoiceDocument} "Invoice"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	fileID, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	doc, err := h.invoiceService.GetInvoice(c.Request.Context(), fileID)
	if err != nil {
		respondServiceError(c, "get_invoice", err, ErrFetchInvoice)
		return
	}

	respondOK(c, doc, "")
}

// CreateInvoice handles the POST /invoices endpoint
// @Summary Create an invoice
// @Description Persist a reviewed invoice document
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body domain.InvoiceDocument true "Invoice document"
// @Success 201 {object} model.APIResponse{data=domain.InvoiceDocument} "Invoice created successfully"
// @Failure 400 {object} model.ErrorResponse "Missing required fields"
// @Failure 409 {object} model.ErrorResponse "Invoice with this fileId already exists"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var input domain.InvoiceDocument
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	created, err := h.invoiceService.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, "create_invoice", err, ErrCreateInvoice)
		return
	}

	respondCreated(c, created, "Invoice created successfully")
}

// UpdateInvoice handles the PUT /invoices/:id endpoint
// @Summary Update an invoice
// @Description Replace fileName, vendor and/or invoice of an existing document; fileId and createdAt are never changed
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Param invoice body model.UpdateInvoiceRequest true "Fields to replace"
// @Success 200 {object} model.APIResponse{data=domain.InvoiceDocument} "Invoice updated successfully"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	fileID, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var input model.UpdateInvoiceRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	updated, err := h.invoiceService.UpdateInvoice(c.Request.Context(), fileID, input.ToPatch())
	if err != nil {
		respondServiceError(c, "update_invoice", err, ErrUpdateInvoice)
		return
	}

	respondOK(c, updated, "Invoice updated successfully")
}

// DeleteInvoice handles the DELETE /invoices/:id endpoint
// @Summary Delete an invoice
// @Description Delete an invoice by its fileId
// @Tags invoices
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} model.MessageResponse "Invoice deleted successfully"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	fileID, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), fileID); err != nil {
		respondServiceError(c, "delete_invoice", err, ErrDeleteInvoice)
		return
	}

	respondOK(c, nil, "Invoice deleted successfully")
}
