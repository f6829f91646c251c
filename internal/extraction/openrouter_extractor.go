package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/openrouter"
	"github.com/ridwanfathin/invoice-review-service/internal/storage"
)

// CompletionClient is the part of the OpenRouter client used for extraction
type CompletionClient interface {
	ExtractInvoiceJSON(ctx context.Context, modelID string, file openrouter.FileInput) ([]byte, error)
}

// URLResolver resolves the public URL of a stored object
type URLResolver interface {
	URL(key string) string
}

// OpenRouterExtractor extracts invoices through OpenRouter hosted models
type OpenRouterExtractor struct {
	client CompletionClient
	files  URLResolver
	models map[domain.ExtractionModel]string
	logger *slog.Logger
	now    func() time.Time
}

// NewOpenRouterExtractor creates an extractor. models maps each selector to
// an OpenRouter model ID.
func NewOpenRouterExtractor(client CompletionClient, files URLResolver, models map[domain.ExtractionModel]string, logger *slog.Logger) *OpenRouterExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenRouterExtractor{
		client: client,
		files:  files,
		models: models,
		logger: logger,
		now:    time.Now,
	}
}

// Name implements Extractor
func (e *OpenRouterExtractor) Name() string {
	return "openrouter"
}

// Extract implements Extractor
func (e *OpenRouterExtractor) Extract(ctx context.Context, fileID string, model domain.ExtractionModel) (*domain.InvoiceDocument, error) {
	modelID, ok := e.models[model]
	if !ok || modelID == "" {
		return nil, &ExtractionError{Op: "resolve_model", Err: fmt.Errorf("no model configured for %q", model)}
	}

	key := storage.ObjectKey(fileID)
	file := openrouter.FileInput{Name: key, URL: e.files.URL(key)}

	start := time.Now()
	raw, err := e.client.ExtractInvoiceJSON(ctx, modelID, file)
	if err != nil {
		return nil, &ExtractionError{Op: "request_completion", Err: err}
	}
	e.logger.Debug("model answered", "fileId", fileID, "model", modelID, "elapsed", time.Since(start))

	extracted, err := decodeExtracted(raw)
	if err != nil {
		return nil, &ExtractionError{Op: "validate_output", Err: err}
	}

	return extracted.toDocument(fileID, e.now()), nil
}

func (x *extractedInvoice) toDocument(fileID string, now time.Time) *domain.InvoiceDocument {
	doc := &domain.InvoiceDocument{
		FileID:   fileID,
		FileName: domain.ExtractedFileName(fileID),
		Vendor: domain.Vendor{
			Name:    x.Vendor.Name,
			Address: nonEmpty(x.Vendor.Address),
			TaxID:   nonEmpty(x.Vendor.TaxID),
		},
		Invoice: domain.InvoiceHeader{
			Number:     x.Invoice.Number,
			Date:       x.Invoice.Date,
			Currency:   nonEmpty(x.Invoice.Currency),
			Subtotal:   x.Invoice.Subtotal,
			TaxPercent: x.Invoice.TaxPercent,
			Total:      x.Invoice.Total,
			PONumber:   nonEmpty(x.Invoice.PONumber),
			PODate:     nonEmpty(x.Invoice.PODate),
			LineItems:  make([]domain.LineItem, 0, len(x.Invoice.LineItems)),
		},
		CreatedAt: domain.FormatTimestamp(now),
	}

	for _, li := range x.Invoice.LineItems {
		item := domain.LineItem{Description: li.Description, UnitPrice: li.UnitPrice, Quantity: 1}
		if li.Quantity != nil {
			item.Quantity = *li.Quantity
		}
		if li.Total != nil {
			item.Total = *li.Total
		} else {
			item.Recalculate()
		}
		doc.Invoice.LineItems = append(doc.Invoice.LineItems, item)
	}

	return doc
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
