package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

func newTestMemoryRepository() *MemoryInvoiceRepository {
	repo := NewMemoryInvoiceRepository()
	repo.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return repo
}

func TestMemoryInvoiceRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) InvoiceRepository {
		return newTestMemoryRepository()
	})
}

func TestMemoryInvoiceRepository_ReturnsCopies(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newDocument("copy-1", "Acme Corp", "INV-1"))
	require.NoError(t, err)

	created.Vendor.Name = "Mutated"
	created.Invoice.LineItems[0].Total = 1

	got, err := repo.GetByFileID(ctx, "copy-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Vendor.Name)
	assert.Equal(t, float64(1000), got.Invoice.LineItems[0].Total)
}

func TestMemoryInvoiceRepository_CreateDoesNotMutateInput(t *testing.T) {
	repo := newTestMemoryRepository()
	doc := newDocument("input-1", "Acme Corp", "INV-1")

	_, err := repo.Create(context.Background(), doc)
	require.NoError(t, err)

	assert.Empty(t, doc.CreatedAt)
	assert.Nil(t, doc.Invoice.Currency)
}

func TestMemoryInvoiceRepository_StaleLineTotalIsStoredAsIs(t *testing.T) {
	repo := newTestMemoryRepository()
	doc := newDocument("stale-1", "Acme Corp", "INV-1")
	doc.Invoice.LineItems[0].Total = 42

	created, err := repo.Create(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, float64(42), created.Invoice.LineItems[0].Total)
}

func TestMemoryInvoiceRepository_DeleteShrinks(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, newDocument(id, "Vendor", "INV-"+id))
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, "b"))

	assert.Equal(t, 2, repo.Len())
	page, err := repo.List(ctx, domain.InvoiceFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "c", page.Invoices[0].FileID)
	assert.Equal(t, "a", page.Invoices[1].FileID)
}

func TestMemoryInvoiceRepository_CancelledContext(t *testing.T) {
	repo := newTestMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetByFileID(ctx, "any")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
