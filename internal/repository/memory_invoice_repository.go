package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

// Ensure MemoryInvoiceRepository implements the interface.
var _ InvoiceRepository = (*MemoryInvoiceRepository)(nil)

// MemoryInvoiceRepository is the non-durable fallback backend. Documents are
// held in insertion order; listing is a linear scan, sort and slice.
type MemoryInvoiceRepository struct {
	mutex     sync.RWMutex
	documents []*domain.InvoiceDocument
	now       func() time.Time
}

// NewMemoryInvoiceRepository creates an empty in-memory repository
func NewMemoryInvoiceRepository() *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{
		documents: make([]*domain.InvoiceDocument, 0),
		now:       time.Now,
	}
}

// List returns one page of matching documents sorted by createdAt descending
func (r *MemoryInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error) {
	if err := checkContext(ctx, "list_invoices"); err != nil {
		return nil, err
	}

	r.mutex.RLock()
	matched := make([]*domain.InvoiceDocument, 0, len(r.documents))
	for _, doc := range r.documents {
		if doc.Matches(filter.Query) {
			matched = append(matched, doc)
		}
	}
	r.mutex.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt != matched[j].CreatedAt {
			return matched[i].CreatedAt > matched[j].CreatedAt
		}
		return matched[i].FileID < matched[j].FileID
	})

	page := &domain.InvoicePage{
		Invoices: make([]domain.InvoiceDocument, 0, filter.Limit),
		Total:    len(matched),
		Page:     filter.Page,
		Limit:    filter.Limit,
	}

	start := filter.Offset()
	if start < 0 || start >= len(matched) {
		return page, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	for _, doc := range matched[start:end] {
		page.Invoices = append(page.Invoices, *doc.Clone())
	}

	return page, nil
}

// GetByFileID retrieves a document by its fileId
func (r *MemoryInvoiceRepository) GetByFileID(ctx context.Context, fileID string) (*domain.InvoiceDocument, error) {
	if err := checkContext(ctx, "get_invoice"); err != nil {
		return nil, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx := r.indexOf(fileID)
	if idx < 0 {
		return nil, &RepositoryError{Op: "get_invoice", Err: domain.ErrNotFound}
	}
	return r.documents[idx].Clone(), nil
}

// Create appends a new document unless its fileId already exists
func (r *MemoryInvoiceRepository) Create(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error) {
	if err := checkContext(ctx, "create_invoice"); err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.indexOf(doc.FileID) >= 0 {
		return nil, &RepositoryError{Op: "create_invoice", Err: domain.ErrConflict}
	}

	stored := doc.Clone()
	stored.PrepareForCreate(r.now())
	r.documents = append(r.documents, stored)

	return stored.Clone(), nil
}

// Update applies patch to an existing document
func (r *MemoryInvoiceRepository) Update(ctx context.Context, fileID string, patch domain.InvoicePatch) (*domain.InvoiceDocument, error) {
	if err := checkContext(ctx, "update_invoice"); err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	idx := r.indexOf(fileID)
	if idx < 0 {
		return nil, &RepositoryError{Op: "update_invoice", Err: domain.ErrNotFound}
	}

	updated := r.documents[idx].Clone()
	updated.ApplyPatch(patch, r.now())
	r.documents[idx] = updated

	return updated.Clone(), nil
}

// Delete removes a document
func (r *MemoryInvoiceRepository) Delete(ctx context.Context, fileID string) error {
	if err := checkContext(ctx, "delete_invoice"); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	idx := r.indexOf(fileID)
	if idx < 0 {
		return &RepositoryError{Op: "delete_invoice", Err: domain.ErrNotFound}
	}
	r.documents = append(r.documents[:idx], r.documents[idx+1:]...)

	return nil
}

// Len returns the number of stored documents
func (r *MemoryInvoiceRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.documents)
}

func (r *MemoryInvoiceRepository) indexOf(fileID string) int {
	for i, doc := range r.documents {
		if doc.FileID == fileID {
			return i
		}
	}
	return -1
}
