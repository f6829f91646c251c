package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func newDocument(fileID, vendor, number string) *domain.InvoiceDocument {
	return &domain.InvoiceDocument{
		FileID:   fileID,
		FileName: fileID + ".pdf",
		Vendor:   domain.Vendor{Name: vendor},
		Invoice: domain.InvoiceHeader{
			Number: number,
			Date:   "2024-01-15",
			LineItems: []domain.LineItem{
				{Description: "Professional Services", UnitPrice: 500, Quantity: 2, Total: 1000},
			},
		},
	}
}

// fixedClock returns a clock advancing one second per call
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

// runRepositoryContract exercises the behaviour every backend must share.
// newRepo must return an empty repository.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) InvoiceRepository) {
	ctx := context.Background()

	t.Run("CreateThenGet", func(t *testing.T) {
		repo := newRepo(t)
		doc := newDocument("contract-get", "Acme Corp", "INV-1")
		doc.Vendor.Address = strPtr("1 Main St")

		created, err := repo.Create(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, "contract-get", created.FileID)
		assert.NotEmpty(t, created.CreatedAt)
		require.NotNil(t, created.Invoice.Currency)
		assert.Equal(t, "USD", *created.Invoice.Currency)

		got, err := repo.GetByFileID(ctx, "contract-get")
		require.NoError(t, err)
		assert.Equal(t, created, got)
		assert.Equal(t, "1 Main St", *got.Vendor.Address)
	})

	t.Run("CreateDuplicateConflicts", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newDocument("contract-dup", "Acme Corp", "INV-1"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newDocument("contract-dup", "Other", "INV-2"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))

		got, err := repo.GetByFileID(ctx, "contract-dup")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.Vendor.Name)
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByFileID(ctx, "missing")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("UpdateKeepsIdentityAndStampsUpdatedAt", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, newDocument("contract-upd", "Acme Corp", "INV-1"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, "contract-upd", domain.InvoicePatch{
			Vendor: &domain.Vendor{Name: "Globex"},
		})
		require.NoError(t, err)
		assert.Equal(t, "contract-upd", updated.FileID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "Globex", updated.Vendor.Name)
		assert.Equal(t, created.Invoice, updated.Invoice)
		require.NotNil(t, updated.UpdatedAt)
		assert.Greater(t, *updated.UpdatedAt, *created.UpdatedAt)

		got, err := repo.GetByFileID(ctx, "contract-upd")
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, "missing", domain.InvoicePatch{FileName: strPtr("x.pdf")})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newDocument("contract-del", "Acme Corp", "INV-1"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, "contract-del"))

		_, err = repo.GetByFileID(ctx, "contract-del")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Delete(ctx, "missing")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("SearchIsCaseInsensitiveSubstring", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newDocument("contract-s1", "Acme Corp", "INV-100"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newDocument("contract-s2", "Globex", "ACME-7"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newDocument("contract-s3", "Initech", "INV-200"))
		require.NoError(t, err)

		page, err := repo.List(ctx, domain.InvoiceFilter{Query: "acme", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		ids := []string{page.Invoices[0].FileID, page.Invoices[1].FileID}
		assert.ElementsMatch(t, []string{"contract-s1", "contract-s2"}, ids)

		page, err = repo.List(ctx, domain.InvoiceFilter{Query: "inv-2", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Invoices, 1)
		assert.Equal(t, "contract-s3", page.Invoices[0].FileID)
	})

	t.Run("SearchTreatsWildcardsLiterally", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newDocument("contract-w1", "100% Supplies", "INV-1"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newDocument("contract-w2", "1000 Supplies", "INV-2"))
		require.NoError(t, err)

		page, err := repo.List(ctx, domain.InvoiceFilter{Query: "0%", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Invoices, 1)
		assert.Equal(t, "contract-w1", page.Invoices[0].FileID)
	})

	t.Run("ListSortedNewestFirstAndPaginated", func(t *testing.T) {
		repo := newRepo(t)
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 15; i++ {
			doc := newDocument(fmt.Sprintf("contract-p%02d", i), "Vendor", fmt.Sprintf("INV-%02d", i))
			doc.CreatedAt = domain.FormatTimestamp(base.Add(time.Duration(i) * time.Minute))
			_, err := repo.Create(ctx, doc)
			require.NoError(t, err)
		}

		first, err := repo.List(ctx, domain.InvoiceFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 15, first.Total)
		assert.Equal(t, 2, first.TotalPages())
		require.Len(t, first.Invoices, 10)
		assert.Equal(t, "contract-p14", first.Invoices[0].FileID)
		assert.Equal(t, "contract-p05", first.Invoices[9].FileID)

		second, err := repo.List(ctx, domain.InvoiceFilter{Page: 2, Limit: 10})
		require.NoError(t, err)
		require.Len(t, second.Invoices, 5)
		assert.Equal(t, "contract-p04", second.Invoices[0].FileID)
		assert.Equal(t, "contract-p00", second.Invoices[4].FileID)

		beyond, err := repo.List(ctx, domain.InvoiceFilter{Page: 5, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, beyond.Invoices)
		assert.Equal(t, 15, beyond.Total)
	})

	t.Run("ListHugePageIsEmpty", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newDocument("contract-h1", "Vendor", "INV-H1"))
		require.NoError(t, err)

		for _, filter := range []domain.InvoiceFilter{
			{Page: 1<<60 + 1, Limit: 16},
			{Page: math.MaxInt, Limit: 10},
		} {
			page, err := repo.List(ctx, filter.Normalize())
			require.NoError(t, err)
			assert.Empty(t, page.Invoices)
			assert.Equal(t, 1, page.Total)
		}
	})
}
