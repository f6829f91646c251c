package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/extraction"
)

// ExtractionService defines the interface for extracting invoice data from uploads
type ExtractionService interface {
	// Extract runs the configured backend for fileID using the selected model
	Extract(ctx context.Context, fileID string, model string) (*domain.InvoiceDocument, domain.ExtractionModel, error)

	// Shutdown waits for in-flight extractions to release their workers
	Shutdown(ctx context.Context) error
}

// ExtractionServiceImpl implements the ExtractionService interface
type ExtractionServiceImpl struct {
	extractor   extraction.Extractor
	maxWorkers  int
	workerQueue chan struct{}
	logger      *slog.Logger
	now         func() time.Time
}

// NewExtractionService creates a new ExtractionService
func NewExtractionService(extractor extraction.Extractor, maxWorkers int, logger *slog.Logger) *ExtractionServiceImpl {
	if maxWorkers <= 0 {
		maxWorkers = 5 // Default to 5 workers
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ExtractionServiceImpl{
		extractor:   extractor,
		maxWorkers:  maxWorkers,
		workerQueue: make(chan struct{}, maxWorkers),
		logger:      logger,
		now:         time.Now,
	}
}

// Extract implements ExtractionService
func (s *ExtractionServiceImpl) Extract(ctx context.Context, fileID string, model string) (*domain.InvoiceDocument, domain.ExtractionModel, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, "", &ServiceError{Op: "validate_extract", Err: domain.NewValidationError("fileId", "fileId is required")}
	}

	selected, err := domain.ParseExtractionModel(model)
	if err != nil {
		return nil, "", &ServiceError{Op: "validate_extract", Err: err}
	}

	// Acquire a worker from the pool
	select {
	case s.workerQueue <- struct{}{}:
		defer func() {
			<-s.workerQueue
		}()
	case <-ctx.Done():
		return nil, selected, &ServiceError{Op: "acquire_worker", Err: ctx.Err()}
	}

	start := time.Now()
	doc, err := s.extractor.Extract(ctx, fileID, selected)
	if err != nil {
		return nil, selected, &ServiceError{Op: "extract_" + s.extractor.Name(), Err: err}
	}
	if doc == nil {
		return nil, selected, &ServiceError{
			Op:  "extract_" + s.extractor.Name(),
			Err: fmt.Errorf("%w: backend returned no document", domain.ErrExtractionFailed),
		}
	}

	if doc.FileID == "" {
		doc.FileID = fileID
	}
	if doc.FileName == "" {
		doc.FileName = domain.ExtractedFileName(fileID)
	}
	if doc.CreatedAt == "" {
		doc.CreatedAt = domain.FormatTimestamp(s.now())
	}
	if doc.Invoice.LineItems == nil {
		doc.Invoice.LineItems = []domain.LineItem{}
	}

	s.logger.Info("invoice extracted",
		"fileId", fileID,
		"model", selected.String(),
		"backend", s.extractor.Name(),
		"lineItems", len(doc.Invoice.LineItems),
		"elapsed", time.Since(start),
	)
	return doc, selected, nil
}

// Shutdown implements ExtractionService by draining the worker queue
func (s *ExtractionServiceImpl) Shutdown(ctx context.Context) error {
	for i := 0; i < s.maxWorkers; i++ {
		select {
		case s.workerQueue <- struct{}{}:
		case <-ctx.Done():
			return &ServiceError{Op: "shutdown", Err: ctx.Err()}
		}
	}
	return nil
}
