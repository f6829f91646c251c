package extraction

import (
	"context"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

// MockExtractor returns a fixed sample invoice for every file
type MockExtractor struct {
	delay time.Duration
	now   func() time.Time
}

// NewMockExtractor creates a mock extractor that waits delay before answering
func NewMockExtractor(delay time.Duration) *MockExtractor {
	return &MockExtractor{delay: delay, now: time.Now}
}

// Name implements Extractor
func (m *MockExtractor) Name() string {
	return "mock"
}

// Extract implements Extractor
func (m *MockExtractor) Extract(ctx context.Context, fileID string, _ domain.ExtractionModel) (*domain.InvoiceDocument, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return SampleInvoice(fileID, m.now()), nil
}

// SampleInvoice builds the demo document returned by the mock backend
func SampleInvoice(fileID string, now time.Time) *domain.InvoiceDocument {
	address := "123 Business St, City, State 12345"
	taxID := "12-3456789"
	currency := "USD"
	subtotal := 1000.0
	taxPercent := 8.5
	total := 1085.0
	poNumber := "PO-2024-001"
	poDate := "2024-01-10"

	return &domain.InvoiceDocument{
		FileID:   fileID,
		FileName: domain.ExtractedFileName(fileID),
		Vendor: domain.Vendor{
			Name:    "Acme Corporation",
			Address: &address,
			TaxID:   &taxID,
		},
		Invoice: domain.InvoiceHeader{
			Number:     "INV-2024-001",
			Date:       "2024-01-15",
			Currency:   &currency,
			Subtotal:   &subtotal,
			TaxPercent: &taxPercent,
			Total:      &total,
			PONumber:   &poNumber,
			PODate:     &poDate,
			LineItems: []domain.LineItem{
				{Description: "Professional Services", UnitPrice: 500, Quantity: 2, Total: 1000},
			},
		},
		CreatedAt: domain.FormatTimestamp(now),
	}
}
