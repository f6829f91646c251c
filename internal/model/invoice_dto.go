package model

import (
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

// UploadResponse is returned by POST /upload
type UploadResponse struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl,omitempty"`
}

// ExtractRequest is the body of POST /extract
type ExtractRequest struct {
	FileID string `json:"fileId" example:"3f1c9a4e-2b7d-4e8a-9c1f-7a6b5d4c3e2f"`
	Model  string `json:"model" example:"gemini" enums:"gemini,groq"`
}

// FileURLResponse is returned by GET /files/:fileId
type FileURLResponse struct {
	FileURL string `json:"fileUrl"`
}

// Pagination describes the page returned by GET /invoices
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// InvoiceListResponse is the data of GET /invoices
type InvoiceListResponse struct {
	Invoices   []domain.InvoiceDocument `json:"invoices"`
	Pagination Pagination               `json:"pagination"`
}

// UpdateInvoiceRequest is the body of PUT /invoices/:id. Identity and
// timestamp fields are accepted but ignored.
type UpdateInvoiceRequest struct {
	FileID    *string               `json:"fileId,omitempty" swaggerignore:"true"`
	CreatedAt *string               `json:"createdAt,omitempty" swaggerignore:"true"`
	UpdatedAt *string               `json:"updatedAt,omitempty" swaggerignore:"true"`
	FileName  *string               `json:"fileName,omitempty"`
	Vendor    *domain.Vendor        `json:"vendor,omitempty"`
	Invoice   *domain.InvoiceHeader `json:"invoice,omitempty"`
}

// ToPatch converts the request into a domain patch
func (r *UpdateInvoiceRequest) ToPatch() domain.InvoicePatch {
	return domain.InvoicePatch{
		FileName: r.FileName,
		Vendor:   r.Vendor,
		Invoice:  r.Invoice,
	}
}

// NewInvoiceListResponse builds the list payload from a repository page
func NewInvoiceListResponse(page *domain.InvoicePage) InvoiceListResponse {
	invoices := page.Invoices
	if invoices == nil {
		invoices = []domain.InvoiceDocument{}
	}
	return InvoiceListResponse{
		Invoices: invoices,
		Pagination: Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages(),
		},
	}
}
