package service

import (
	"context"
	"strings"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/repository"
)

// InvoiceService defines the interface for invoice document business logic
type InvoiceService interface {
	// CRUD operations
	CreateInvoice(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error)
	GetInvoice(ctx context.Context, fileID string) (*domain.InvoiceDocument, error)
	UpdateInvoice(ctx context.Context, fileID string, patch domain.InvoicePatch) (*domain.InvoiceDocument, error)
	DeleteInvoice(ctx context.Context, fileID string) error

	// Query operations
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error)

	// Backend reports which storage backend currently serves requests
	Backend(ctx context.Context) string
}

// backendReporter is implemented by repositories that can name their live backend
type backendReporter interface {
	ActiveBackend(ctx context.Context) string
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	repository repository.InvoiceRepository
	now        func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo repository.InvoiceRepository) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		repository: repo,
		now:        time.Now,
	}
}

// CreateInvoice validates and stores a new document
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error) {
	if doc == nil {
		return nil, &ServiceError{Op: "create_invoice", Err: domain.NewValidationError("body", "invoice document is required")}
	}
	if err := doc.Validate(); err != nil {
		return nil, &ServiceError{Op: "create_invoice", Err: err}
	}

	toStore := doc.Clone()
	toStore.PrepareForCreate(s.now())

	created, err := s.repository.Create(ctx, toStore)
	if err != nil {
		return nil, &ServiceError{Op: "create_invoice", Err: err}
	}
	return created, nil
}

// GetInvoice retrieves a document by fileId
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, fileID string) (*domain.InvoiceDocument, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, &ServiceError{Op: "get_invoice", Err: domain.NewValidationError("fileId", "fileId is required")}
	}

	doc, err := s.repository.GetByFileID(ctx, fileID)
	if err != nil {
		return nil, &ServiceError{Op: "get_invoice", Err: err}
	}
	return doc, nil
}

// UpdateInvoice merges patch into an existing document
func (s *InvoiceServiceImpl) UpdateInvoice(ctx context.Context, fileID string, patch domain.InvoicePatch) (*domain.InvoiceDocument, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, &ServiceError{Op: "update_invoice", Err: domain.NewValidationError("fileId", "fileId is required")}
	}
	if err := patch.Validate(); err != nil {
		return nil, &ServiceError{Op: "update_invoice", Err: err}
	}

	updated, err := s.repository.Update(ctx, fileID, patch)
	if err != nil {
		return nil, &ServiceError{Op: "update_invoice", Err: err}
	}
	return updated, nil
}

// DeleteInvoice removes a document
func (s *InvoiceServiceImpl) DeleteInvoice(ctx context.Context, fileID string) error {
	if strings.TrimSpace(fileID) == "" {
		return &ServiceError{Op: "delete_invoice", Err: domain.NewValidationError("fileId", "fileId is required")}
	}

	if err := s.repository.Delete(ctx, fileID); err != nil {
		return &ServiceError{Op: "delete_invoice", Err: err}
	}
	return nil
}

// ListInvoices retrieves a paginated, searchable list of documents
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error) {
	page, err := s.repository.List(ctx, filter.Normalize())
	if err != nil {
		return nil, &ServiceError{Op: "list_invoices", Err: err}
	}
	return page, nil
}

// Backend implements InvoiceService
func (s *InvoiceServiceImpl) Backend(ctx context.Context) string {
	if r, ok := s.repository.(backendReporter); ok {
		return r.ActiveBackend(ctx)
	}
	return repository.BackendMemory
}
