package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDoc(fileID string) *domain.InvoiceDocument {
	return &domain.InvoiceDocument{
		FileID:   fileID,
		FileName: fileID + ".pdf",
		Vendor:   domain.Vendor{Name: "Acme"},
		Invoice:  domain.InvoiceHeader{Number: "INV-1", Date: "2024-01-15"},
	}
}

func TestInvoiceService_CreateInvoice_RejectsMissingFields(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)

	doc := newDoc("a")
	doc.Vendor.Name = ""

	_, err := svc.CreateInvoice(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_CreateInvoice_AppliesDefaults(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }

	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.InvoiceDocument) bool {
		return d.FileID == "a" &&
			d.CreatedAt == "2024-05-01T08:00:00.000Z" &&
			d.Invoice.Currency != nil && *d.Invoice.Currency == "USD"
	})).Return(newDoc("a"), nil)

	input := newDoc("a")
	_, err := svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	assert.Empty(t, input.CreatedAt, "caller's document must not be mutated")
	repo.AssertExpectations(t)
}

func TestInvoiceService_CreateInvoice_Conflict(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(nil, &repository.RepositoryError{Op: "create_invoice", Err: domain.ErrConflict})

	_, err := svc.CreateInvoice(context.Background(), newDoc("a"))
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestInvoiceService_GetInvoice_NotFound(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)

	repo.On("GetByFileID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := svc.GetInvoice(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestInvoiceService_UpdateInvoice_ValidatesPatch(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)

	_, err := svc.UpdateInvoice(context.Background(), "a", domain.InvoicePatch{Vendor: &domain.Vendor{}})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.UpdateInvoice(context.Background(), " ", domain.InvoicePatch{})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_UpdateInvoice_Delegates(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)

	patch := domain.InvoicePatch{FileName: strPtr("renamed.pdf")}
	updated := newDoc("a")
	updated.FileName = "renamed.pdf"
	repo.On("Update", mock.Anything, "a", patch).Return(updated, nil)

	got, err := svc.UpdateInvoice(context.Background(), "a", patch)
	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", got.FileName)
	repo.AssertExpectations(t)
}

func TestInvoiceService_DeleteInvoice(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)

	repo.On("Delete", mock.Anything, "a").Return(nil).Once()
	repo.On("Delete", mock.Anything, "a").Return(domain.ErrNotFound).Once()

	require.NoError(t, svc.DeleteInvoice(context.Background(), "a"))
	assert.True(t, errors.Is(svc.DeleteInvoice(context.Background(), "a"), domain.ErrNotFound))
}

func TestInvoiceService_ListInvoices_NormalizesFilter(t *testing.T) {
	repo := new(MockInvoiceRepository)
	svc := NewInvoiceService(repo)

	expected := domain.InvoiceFilter{Query: "acme", Page: 1, Limit: 100}
	repo.On("List", mock.Anything, expected).Return(&domain.InvoicePage{Page: 1, Limit: 100}, nil)

	_, err := svc.ListInvoices(context.Background(), domain.InvoiceFilter{Query: " acme ", Page: 0, Limit: 1000})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestInvoiceService_Backend(t *testing.T) {
	svc := NewInvoiceService(new(MockInvoiceRepository))
	assert.Equal(t, repository.BackendMemory, svc.Backend(context.Background()))

	failover := repository.NewFailoverInvoiceRepository(repository.FailoverConfig{
		Fallback: repository.NewMemoryInvoiceRepository(),
		Logger:   discardLogger(),
	})
	svc = NewInvoiceService(failover)
	assert.Equal(t, repository.BackendMemory, svc.Backend(context.Background()))
}
