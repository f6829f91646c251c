package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/model"
	"github.com/ridwanfathin/invoice-review-service/internal/service"
)

// HealthHandler reports service status
type HealthHandler struct {
	invoiceService service.InvoiceService
	environment    string
	now            func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(invoiceService service.InvoiceService, environment string) *HealthHandler {
	if environment == "" {
		environment = "development"
	}
	return &HealthHandler{
		invoiceService: invoiceService,
		environment:    environment,
		now:            time.Now,
	}
}

// Root handles the GET / endpoint
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	resp := h.status(c)
	resp.Message = "PDF Review Dashboard API"
	c.JSON(http.StatusOK, resp)
}

// Health handles the GET /health endpoint
// @Summary Health check
// @Description Reports status and the storage backend currently serving requests
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.status(c))
}

func (h *HealthHandler) status(c *gin.Context) model.HealthResponse {
	return model.HealthResponse{
		Status:      "OK",
		Timestamp:   domain.FormatTimestamp(h.now()),
		Environment: h.environment,
		Storage:     h.invoiceService.Backend(c.Request.Context()),
	}
}
