package review

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ridwanfathin/invoice-review-service/internal/currency"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Store is the part of the API the review state persists through
type Store interface {
	CreateInvoice(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error)
	UpdateInvoice(ctx context.Context, fileID string, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error)
	DeleteInvoice(ctx context.Context, fileID string) error
}

// RateSource converts amounts between currencies
type RateSource interface {
	ConvertCurrency(ctx context.Context, amount float64, from, to string) (*currency.Conversion, error)
}

// ErrUnknownField is returned when a setter is given a field it does not edit
var ErrUnknownField = errors.New("unknown field")

// Session is the editable copy of one invoice document
type Session struct {
	store     Store
	doc       *domain.InvoiceDocument
	persisted bool
	dirty     bool
	deleted   bool
}

// NewExtractedSession starts a session for a freshly extracted document.
// The first Save creates it.
func NewExtractedSession(store Store, doc *domain.InvoiceDocument) *Session {
	return newSession(store, doc, false)
}

// OpenSession starts a session for a document already stored on the server
func OpenSession(store Store, doc *domain.InvoiceDocument) *Session {
	return newSession(store, doc, true)
}

func newSession(store Store, doc *domain.InvoiceDocument, persisted bool) *Session {
	working := doc.Clone()
	if working.Invoice.LineItems == nil {
		working.Invoice.LineItems = []domain.LineItem{}
	}
	return &Session{store: store, doc: working, persisted: persisted}
}

// Document returns a copy of the working document
func (s *Session) Document() *domain.InvoiceDocument {
	return s.doc.Clone()
}

// Dirty reports whether there are edits not yet saved
func (s *Session) Dirty() bool {
	return s.dirty
}

// Persisted reports whether the document exists on the server
func (s *Session) Persisted() bool {
	return s.persisted
}

// SetVendorField sets name, address or taxId
func (s *Session) SetVendorField(field, value string) error {
	switch field {
	case "name":
		s.doc.Vendor.Name = value
	case "address":
		s.doc.Vendor.Address = optionalString(value)
	case "taxId":
		s.doc.Vendor.TaxID = optionalString(value)
	default:
		return fmt.Errorf("%w: vendor.%s", ErrUnknownField, field)
	}
	s.dirty = true
	return nil
}

// SetInvoiceField sets a header field. Document totals are stored as given
// and never derived from the line items.
func (s *Session) SetInvoiceField(field, value string) error {
	h := &s.doc.Invoice
	switch field {
	case "number":
		h.Number = value
	case "date":
		h.Date = value
	case "currency":
		h.Currency = optionalString(value)
	case "poNumber":
		h.PONumber = optionalString(value)
	case "poDate":
		h.PODate = optionalString(value)
	case "subtotal", "taxPercent", "total":
		n, err := optionalNumber(field, value)
		if err != nil {
			return err
		}
		switch field {
		case "subtotal":
			h.Subtotal = n
		case "taxPercent":
			h.TaxPercent = n
		default:
			h.Total = n
		}
	default:
		return fmt.Errorf("%w: invoice.%s", ErrUnknownField, field)
	}
	s.dirty = true
	return nil
}

// UpdateLineItem edits one field of the line at index. Editing unitPrice or
// quantity recomputes the line total; description edits leave it alone.
func (s *Session) UpdateLineItem(index int, field, value string) error {
	item, err := s.lineItem(index)
	if err != nil {
		return err
	}

	switch field {
	case "description":
		item.Description = value
	case "unitPrice", "quantity":
		n, err := parseNumber(field, value)
		if err != nil {
			return err
		}
		if field == "unitPrice" {
			item.UnitPrice = n
		} else {
			item.Quantity = n
		}
		item.Recalculate()
	default:
		return fmt.Errorf("%w: lineItems.%s", ErrUnknownField, field)
	}
	s.dirty = true
	return nil
}

// AddLineItem appends an empty line and returns its index
func (s *Session) AddLineItem() int {
	s.doc.Invoice.LineItems = append(s.doc.Invoice.LineItems, domain.LineItem{Quantity: 1})
	s.dirty = true
	return len(s.doc.Invoice.LineItems) - 1
}

// RemoveLineItem deletes the line at index
func (s *Session) RemoveLineItem(index int) error {
	if _, err := s.lineItem(index); err != nil {
		return err
	}
	items := s.doc.Invoice.LineItems
	s.doc.Invoice.LineItems = append(items[:index:index], items[index+1:]...)
	s.dirty = true
	return nil
}

// ConvertCurrency re-expresses every amount of the document in code. A
// document without a currency is treated as DefaultCurrency.
func (s *Session) ConvertCurrency(ctx context.Context, rates RateSource, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.NewValidationError("currency", "target currency is required")
	}

	from := domain.DefaultCurrency
	if s.doc.Invoice.Currency != nil && *s.doc.Invoice.Currency != "" {
		from = strings.ToUpper(*s.doc.Invoice.Currency)
	}
	if from == code {
		return nil
	}

	conv, err := rates.ConvertCurrency(ctx, 1, from, code)
	if err != nil {
		return fmt.Errorf("convert %s to %s: %w", from, code, err)
	}
	s.doc.ConvertAmounts(code, decimal.NewFromFloat(conv.Rate))
	s.dirty = true
	return nil
}

// Save sends the full document to the server: a create the first time a
// freshly extracted document is saved, an update afterwards. There is no
// concurrency check; the last write wins.
func (s *Session) Save(ctx context.Context) (*domain.InvoiceDocument, error) {
	if s.deleted {
		return nil, fmt.Errorf("save %s: %w", s.doc.FileID, domain.ErrNotFound)
	}

	var saved *domain.InvoiceDocument
	var err error
	if s.persisted {
		saved, err = s.store.UpdateInvoice(ctx, s.doc.FileID, s.doc)
	} else {
		saved, err = s.store.CreateInvoice(ctx, s.doc)
	}
	if err != nil {
		return nil, err
	}

	s.doc = saved.Clone()
	if s.doc.Invoice.LineItems == nil {
		s.doc.Invoice.LineItems = []domain.LineItem{}
	}
	s.persisted = true
	s.dirty = false
	return saved, nil
}

// Delete removes the document from the server
func (s *Session) Delete(ctx context.Context) error {
	if err := s.store.DeleteInvoice(ctx, s.doc.FileID); err != nil {
		return err
	}
	s.deleted = true
	s.persisted = false
	s.dirty = false
	return nil
}

func (s *Session) lineItem(index int) (*domain.LineItem, error) {
	if index < 0 || index >= len(s.doc.Invoice.LineItems) {
		return nil, domain.NewValidationError("lineItems", fmt.Sprintf("line item %d does not exist", index))
	}
	return &s.doc.Invoice.LineItems[index], nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalNumber(field, value string) (*float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	n, err := parseNumber(field, value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseNumber(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, domain.NewValidationError(field, fmt.Sprintf("%s must be a number", field))
	}
	return n, nil
}
