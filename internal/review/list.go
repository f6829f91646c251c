package review

import (
	"context"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/model"
)

// Lister fetches pages of invoices
type Lister interface {
	ListInvoices(ctx context.Context, query string, page, limit int) (*model.InvoiceListResponse, error)
}

// InvoiceList is the local list state of the dashboard
type InvoiceList struct {
	lister     Lister
	query      string
	page       int
	limit      int
	invoices   []domain.InvoiceDocument
	pagination model.Pagination
}

// NewInvoiceList creates an empty list showing limit invoices per page
func NewInvoiceList(lister Lister, limit int) *InvoiceList {
	if limit < 1 {
		limit = domain.DefaultLimit
	}
	return &InvoiceList{lister: lister, page: domain.DefaultPage, limit: limit}
}

// Search sets the query and goes back to the first page
func (l *InvoiceList) Search(ctx context.Context, query string) error {
	return l.Load(ctx, query, domain.DefaultPage)
}

// Load fetches page n of query in a single request
func (l *InvoiceList) Load(ctx context.Context, query string, n int) error {
	if n < 1 {
		n = domain.DefaultPage
	}
	l.query = query
	l.page = n
	return l.Refresh(ctx)
}

// GoToPage loads page n of the current query
func (l *InvoiceList) GoToPage(ctx context.Context, n int) error {
	return l.Load(ctx, l.query, n)
}

// Refresh reloads the current page from the server
func (l *InvoiceList) Refresh(ctx context.Context) error {
	resp, err := l.lister.ListInvoices(ctx, l.query, l.page, l.limit)
	if err != nil {
		return err
	}
	l.invoices = resp.Invoices
	l.pagination = resp.Pagination
	return nil
}

// Invoices returns the documents of the loaded page
func (l *InvoiceList) Invoices() []domain.InvoiceDocument {
	return l.invoices
}

// Pagination returns the paging state of the loaded page
func (l *InvoiceList) Pagination() model.Pagination {
	return l.pagination
}

// Query returns the active search
func (l *InvoiceList) Query() string {
	return l.query
}

// Remove drops a deleted document from the local page. Slices returned
// earlier by Invoices are not modified.
func (l *InvoiceList) Remove(fileID string) bool {
	for i := range l.invoices {
		if l.invoices[i].FileID == fileID {
			next := make([]domain.InvoiceDocument, 0, len(l.invoices)-1)
			next = append(next, l.invoices[:i]...)
			l.invoices = append(next, l.invoices[i+1:]...)
			if l.pagination.Total > 0 {
				l.pagination.Total--
			}
			l.recountPages()
			return true
		}
	}
	return false
}

// Replace swaps in a saved document, or prepends it when it is new
func (l *InvoiceList) Replace(doc *domain.InvoiceDocument) {
	for i := range l.invoices {
		if l.invoices[i].FileID == doc.FileID {
			next := make([]domain.InvoiceDocument, len(l.invoices))
			copy(next, l.invoices)
			next[i] = *doc.Clone()
			l.invoices = next
			return
		}
	}
	l.invoices = append([]domain.InvoiceDocument{*doc.Clone()}, l.invoices...)
	l.pagination.Total++
	l.recountPages()
}

func (l *InvoiceList) recountPages() {
	page := domain.InvoicePage{Total: l.pagination.Total, Limit: l.pagination.Limit}
	l.pagination.TotalPages = page.TotalPages()
}
