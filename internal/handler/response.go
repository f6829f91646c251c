package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/model"
)

// HTTP status codes as constants for consistency
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusBadRequest          = http.StatusBadRequest
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusInternalServerError = http.StatusInternalServerError
)

// Common error messages
const (
	ErrInvalidInput      = "Invalid input format"
	ErrInvoiceNotFound   = "Invoice not found"
	ErrInvoiceExists     = "Invoice with this fileId already exists"
	ErrInternalServer    = "Internal server error"
	ErrRouteNotFound     = "Route not found"
	ErrNoFileUploaded    = "No file uploaded"
	ErrFileTooLarge      = "File too large"
	ErrFileUpload        = "Failed to upload file"
	ErrDataExtraction    = "Failed to extract data from PDF"
	ErrFetchInvoices     = "Failed to fetch invoices"
	ErrFetchInvoice      = "Failed to fetch invoice"
	ErrCreateInvoice     = "Failed to create invoice"
	ErrUpdateInvoice     = "Failed to update invoice"
	ErrDeleteInvoice     = "Failed to delete invoice"
	ErrRetrieveFile      = "Failed to retrieve file"
	ErrFetchRates        = "Failed to fetch exchange rates"
	ErrConvertCurrency   = "Failed to convert currency"
	ErrFetchCurrencies   = "Failed to fetch supported currencies"
	ErrMissingConversion = "amount, from, and to parameters are required"
	ErrInvalidAmount     = "Invalid amount"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, message string, details ...model.ErrorDetail) {
	c.JSON(statusCode, model.APIResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, StatusBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, StatusNotFound, message)
}

// respondConflict sends a 409 Conflict response
func respondConflict(c *gin.Context, message string) {
	respondWithError(c, StatusConflict, message)
}

// respondInternalServerError sends a 500 Internal Server Error response
func respondInternalServerError(c *gin.Context, message string) {
	respondWithError(c, StatusInternalServerError, message)
}

// respondSuccess sends a standardized success response with data
func respondSuccess(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, model.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}, message string) {
	respondSuccess(c, StatusOK, data, message)
}

// respondCreated sends a 201 Created response with data
func respondCreated(c *gin.Context, data interface{}, message string) {
	respondSuccess(c, StatusCreated, data, message)
}

// respondServiceError classifies err and sends the matching response.
// Anything unclassified is logged and reported with internalMessage only.
func respondServiceError(c *gin.Context, op string, err error, internalMessage string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondBadRequest(c, verr.Error(), validationDetails(verr)...)
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(c, ErrInvoiceNotFound)
	case errors.Is(err, domain.ErrConflict):
		respondConflict(c, ErrInvoiceExists)
	default:
		logError(c, op, err, nil)
		respondInternalServerError(c, internalMessage)
	}
}

// validationDetails converts a validation error to ErrorDetail slice
func validationDetails(verr *domain.ValidationError) []model.ErrorDetail {
	if len(verr.Fields) < 2 {
		return nil
	}
	details := make([]model.ErrorDetail, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		details = append(details, model.ErrorDetail{
			Field:   f.Field,
			Message: f.Message,
		})
	}
	return details
}

// NoRoute answers requests that match no route
func NoRoute(c *gin.Context) {
	respondNotFound(c, ErrRouteNotFound)
}
