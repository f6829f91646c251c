package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/model"
	"github.com/ridwanfathin/invoice-review-service/internal/service"
)

// ExtractHandler handles AI extraction requests
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new extract handler
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
	}
}

// RegisterRoutes registers the extraction route
func (h *ExtractHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/extract", h.ExtractInvoice)
}

// ExtractInvoice handles the POST /extract endpoint
// @Summary Extract invoice data
// @Description Extract structured invoice fields from an uploaded PDF using the selected AI model
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body model.ExtractRequest true "File and model"
// @Success 200 {object} model.APIResponse{data=domain.InvoiceDocument} "Extracted document"
// @Failure 400 {object} model.ErrorResponse "Missing fileId or unsupported model"
// @Failure 500 {object} model.ErrorResponse "Extraction failed"
// @Router /extract [post]
func (h *ExtractHandler) ExtractInvoice(c *gin.Context) {
	var input model.ExtractRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	doc, selected, err := h.extractionService.Extract(c.Request.Context(), input.FileID, input.Model)
	if err != nil {
		respondServiceError(c, "extract_invoice", err, ErrDataExtraction)
		return
	}

	respondOK(c, doc, fmt.Sprintf("Data extracted successfully using %s", selected))
}
