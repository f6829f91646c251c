package repository

import (
	"context"
	"fmt"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

// InvoiceRepository defines the interface for invoice document storage.
// Implementations return domain.ErrNotFound and domain.ErrConflict (possibly
// wrapped in a *RepositoryError) so callers can classify with errors.Is.
type InvoiceRepository interface {
	// List returns one page of documents matching filter, newest first
	List(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error)

	// GetByFileID retrieves a document by its fileId
	GetByFileID(ctx context.Context, fileID string) (*domain.InvoiceDocument, error)

	// Create stores a new document; fails with domain.ErrConflict if the fileId exists
	Create(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error)

	// Update applies patch to an existing document and returns the result
	Update(ctx context.Context, fileID string, patch domain.InvoicePatch) (*domain.InvoiceDocument, error)

	// Delete removes a document
	Delete(ctx context.Context, fileID string) error
}

// Backend names reported by repositories and the health endpoint
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return &RepositoryError{Op: op, Err: ctx.Err()}
	default:
		return nil
	}
}
