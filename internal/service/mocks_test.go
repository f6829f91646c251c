package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository mocks repository.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(*domain.InvoicePage)
	return page, args.Error(1)
}

func (m *MockInvoiceRepository) GetByFileID(ctx context.Context, fileID string) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, fileID)
	doc, _ := args.Get(0).(*domain.InvoiceDocument)
	return doc, args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, doc)
	out, _ := args.Get(0).(*domain.InvoiceDocument)
	return out, args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, fileID string, patch domain.InvoicePatch) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, fileID, patch)
	out, _ := args.Get(0).(*domain.InvoiceDocument)
	return out, args.Error(1)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

// MockExtractor mocks extraction.Extractor
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, fileID string, model domain.ExtractionModel) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, fileID, model)
	doc, _ := args.Get(0).(*domain.InvoiceDocument)
	return doc, args.Error(1)
}

func (m *MockExtractor) Name() string {
	return "mock"
}

// MockBlobStore mocks storage.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) URL(key string) string {
	return "https://blob.example.com/" + key
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
