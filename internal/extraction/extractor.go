package extraction

import (
	"context"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

// Extractor turns an uploaded PDF into an invoice document
type Extractor interface {
	// Extract returns the document extracted from the file stored under fileID
	Extract(ctx context.Context, fileID string, model domain.ExtractionModel) (*domain.InvoiceDocument, error)

	// Name identifies the backend in logs
	Name() string
}

// ExtractionError wraps a backend failure so that it matches
// domain.ErrExtractionFailed
type ExtractionError struct {
	Op  string
	Err error
}

// Error returns a string representation of the error
func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return "extraction error: " + e.Op
	}
	return "extraction error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, domain.ErrExtractionFailed) true
func (e *ExtractionError) Is(target error) bool {
	return target == domain.ErrExtractionFailed
}
