package extraction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/openrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletion struct {
	raw     []byte
	err     error
	modelID string
	file    openrouter.FileInput
}

func (s *stubCompletion) ExtractInvoiceJSON(_ context.Context, modelID string, file openrouter.FileInput) ([]byte, error) {
	s.modelID = modelID
	s.file = file
	return s.raw, s.err
}

type staticURLs struct{}

func (staticURLs) URL(key string) string {
	return "https://files.example.com/" + key
}

var testModels = map[domain.ExtractionModel]string{
	domain.ModelGemini: "google/gemini-2.0-flash-001",
	domain.ModelGroq:   "meta-llama/llama-4-maverick",
}

func newTestOpenRouterExtractor(client CompletionClient) *OpenRouterExtractor {
	e := NewOpenRouterExtractor(client, staticURLs{}, testModels, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestMockExtractor_Extract(t *testing.T) {
	m := NewMockExtractor(0)

	doc, err := m.Extract(context.Background(), "abc", domain.ModelGemini)
	require.NoError(t, err)

	assert.Equal(t, "abc", doc.FileID)
	assert.Equal(t, "invoice-abc.pdf", doc.FileName)
	assert.Equal(t, "Acme Corporation", doc.Vendor.Name)
	assert.Equal(t, "INV-2024-001", doc.Invoice.Number)
	assert.Equal(t, 1085.0, *doc.Invoice.Total)
	require.Len(t, doc.Invoice.LineItems, 1)
	assert.Equal(t, domain.LineItem{Description: "Professional Services", UnitPrice: 500, Quantity: 2, Total: 1000}, doc.Invoice.LineItems[0])
	assert.NotEmpty(t, doc.CreatedAt)
	assert.NoError(t, doc.Validate())
}

func TestMockExtractor_DelayHonoursContext(t *testing.T) {
	m := NewMockExtractor(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Extract(ctx, "abc", domain.ModelGroq)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenRouterExtractor_Success(t *testing.T) {
	stub := &stubCompletion{raw: []byte(`{
		"vendor": {"name": "Globex", "address": "", "taxId": "99-1"},
		"invoice": {
			"number": "G-7",
			"date": "2024-02-02",
			"total": 150,
			"lineItems": [
				{"description": "Widget", "unitPrice": 50, "quantity": 3},
				{"description": "Fee", "unitPrice": 10, "quantity": 1, "total": 12}
			]
		}
	}`)}
	e := newTestOpenRouterExtractor(stub)

	doc, err := e.Extract(context.Background(), "f-1", domain.ModelGroq)
	require.NoError(t, err)

	assert.Equal(t, "meta-llama/llama-4-maverick", stub.modelID)
	assert.Equal(t, "https://files.example.com/f-1.pdf", stub.file.URL)

	assert.Equal(t, "f-1", doc.FileID)
	assert.Equal(t, "invoice-f-1.pdf", doc.FileName)
	assert.Equal(t, "Globex", doc.Vendor.Name)
	assert.Nil(t, doc.Vendor.Address)
	assert.Equal(t, "99-1", *doc.Vendor.TaxID)
	assert.Equal(t, "2024-03-01T12:00:00.000Z", doc.CreatedAt)
	require.Len(t, doc.Invoice.LineItems, 2)
	assert.Equal(t, 150.0, doc.Invoice.LineItems[0].Total)
	assert.Equal(t, 12.0, doc.Invoice.LineItems[1].Total)
}

func TestOpenRouterExtractor_Failures(t *testing.T) {
	tests := []struct {
		name  string
		stub  *stubCompletion
		model domain.ExtractionModel
	}{
		{name: "client error", stub: &stubCompletion{err: errors.New("timeout")}, model: domain.ModelGemini},
		{name: "missing vendor name", stub: &stubCompletion{raw: []byte(`{"vendor":{},"invoice":{"number":"1","date":"2024-01-01"}}`)}, model: domain.ModelGemini},
		{name: "wrong type", stub: &stubCompletion{raw: []byte(`{"vendor":{"name":"A"},"invoice":{"number":1,"date":"2024-01-01"}}`)}, model: domain.ModelGemini},
		{name: "unmapped model", stub: &stubCompletion{}, model: domain.ExtractionModel("claude")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestOpenRouterExtractor(tt.stub)

			doc, err := e.Extract(context.Background(), "f-1", tt.model)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		})
	}
}
