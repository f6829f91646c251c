package domain

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied at creation when the invoice carries no currency
const DefaultCurrency = "USD"

// TimestampLayout is the ISO-8601 layout used for createdAt/updatedAt.
// Fixed millisecond precision keeps lexicographic and chronological order equal.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Vendor represents the issuer of an invoice
type Vendor struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	TaxID   *string `json:"taxId,omitempty"`
}

// LineItem represents a single item in an invoice
type LineItem struct {
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    float64 `json:"quantity"`
	Total       float64 `json:"total"`
}

// InvoiceHeader holds the invoice-level fields of a document
type InvoiceHeader struct {
	Number     string     `json:"number"`
	Date       string     `json:"date"`
	Currency   *string    `json:"currency,omitempty"`
	Subtotal   *float64   `json:"subtotal,omitempty"`
	TaxPercent *float64   `json:"taxPercent,omitempty"`
	Total      *float64   `json:"total,omitempty"`
	PONumber   *string    `json:"poNumber,omitempty"`
	PODate     *string    `json:"poDate,omitempty"`
	LineItems  []LineItem `json:"lineItems"`
}

// InvoiceDocument is the persisted record combining vendor, invoice header
// and line items. FileID is the primary key assigned at upload time.
type InvoiceDocument struct {
	FileID    string        `json:"fileId"`
	FileName  string        `json:"fileName"`
	Vendor    Vendor        `json:"vendor"`
	Invoice   InvoiceHeader `json:"invoice"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt *string       `json:"updatedAt,omitempty"`
}

// InvoicePatch is a partial update. Nil members are left untouched; a
// non-nil Vendor or Invoice replaces the whole sub-document.
type InvoicePatch struct {
	FileName *string
	Vendor   *Vendor
	Invoice  *InvoiceHeader
}

// IsEmpty reports whether the patch changes nothing besides updatedAt
func (p InvoicePatch) IsEmpty() bool {
	return p.FileName == nil && p.Vendor == nil && p.Invoice == nil
}

// InvoiceFilter represents the query for listing invoices
type InvoiceFilter struct {
	Query string
	Page  int
	Limit int
}

// Pagination defaults applied by Normalize
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize replaces missing or out-of-range paging values with defaults
func (f InvoiceFilter) Normalize() InvoiceFilter {
	f.Query = strings.TrimSpace(f.Query)
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	// (Page-1)*Limit must fit in an int
	if maxPage := math.MaxInt/f.Limit + 1; f.Page > maxPage {
		f.Page = maxPage
	}
	return f
}

// Offset returns the number of documents skipped before the page starts
func (f InvoiceFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// InvoicePage is one page of a filtered, sorted listing
type InvoicePage struct {
	Invoices []InvoiceDocument
	Total    int
	Page     int
	Limit    int
}

// TotalPages returns ceil(Total/Limit)
func (p *InvoicePage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// FormatTimestamp formats t in UTC with TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Validate checks the fields required to create a document
func (d *InvoiceDocument) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.FileID) == "" {
		verr.Add("fileId", "fileId is required")
	}
	if strings.TrimSpace(d.FileName) == "" {
		verr.Add("fileName", "fileName is required")
	}
	validateVendor(verr, &d.Vendor)
	validateHeader(verr, &d.Invoice)
	return verr.OrNil()
}

// PrepareForCreate applies creation defaults: currency, createdAt and updatedAt
func (d *InvoiceDocument) PrepareForCreate(now time.Time) {
	if d.Invoice.Currency == nil || *d.Invoice.Currency == "" {
		currency := DefaultCurrency
		d.Invoice.Currency = &currency
	}
	if d.Invoice.LineItems == nil {
		d.Invoice.LineItems = []LineItem{}
	}
	if d.CreatedAt == "" {
		d.CreatedAt = FormatTimestamp(now)
	}
	updated := d.CreatedAt
	d.UpdatedAt = &updated
}

// ApplyPatch merges patch into the document. FileID and CreatedAt are never
// modified and UpdatedAt is always overwritten with now.
func (d *InvoiceDocument) ApplyPatch(patch InvoicePatch, now time.Time) {
	if patch.FileName != nil {
		d.FileName = *patch.FileName
	}
	if patch.Vendor != nil {
		d.Vendor = *patch.Vendor
	}
	if patch.Invoice != nil {
		d.Invoice = *patch.Invoice
		if d.Invoice.LineItems == nil {
			d.Invoice.LineItems = []LineItem{}
		}
	}
	updated := FormatTimestamp(now)
	d.UpdatedAt = &updated
}

// Clone returns a deep copy of the document
func (d *InvoiceDocument) Clone() *InvoiceDocument {
	out := *d
	out.Vendor.Address = cloneString(d.Vendor.Address)
	out.Vendor.TaxID = cloneString(d.Vendor.TaxID)
	out.Invoice.Currency = cloneString(d.Invoice.Currency)
	out.Invoice.Subtotal = cloneFloat(d.Invoice.Subtotal)
	out.Invoice.TaxPercent = cloneFloat(d.Invoice.TaxPercent)
	out.Invoice.Total = cloneFloat(d.Invoice.Total)
	out.Invoice.PONumber = cloneString(d.Invoice.PONumber)
	out.Invoice.PODate = cloneString(d.Invoice.PODate)
	out.UpdatedAt = cloneString(d.UpdatedAt)
	if d.Invoice.LineItems != nil {
		out.Invoice.LineItems = make([]LineItem, len(d.Invoice.LineItems))
		copy(out.Invoice.LineItems, d.Invoice.LineItems)
	}
	return &out
}

// Matches reports whether query is a case-insensitive substring of the
// vendor name or the invoice number. An empty query matches everything.
func (d *InvoiceDocument) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(d.Vendor.Name), q) ||
		strings.Contains(strings.ToLower(d.Invoice.Number), q)
}

// Validate checks that replaced sub-documents still carry their required fields
func (p InvoicePatch) Validate() error {
	verr := &ValidationError{}
	if p.FileName != nil && strings.TrimSpace(*p.FileName) == "" {
		verr.Add("fileName", "fileName cannot be empty")
	}
	if p.Vendor != nil {
		validateVendor(verr, p.Vendor)
	}
	if p.Invoice != nil {
		validateHeader(verr, p.Invoice)
	}
	return verr.OrNil()
}

// Recalculate sets Total to UnitPrice * Quantity
func (li *LineItem) Recalculate() {
	total := decimal.NewFromFloat(li.UnitPrice).Mul(decimal.NewFromFloat(li.Quantity))
	li.Total = total.InexactFloat64()
}

// ConvertAmounts rescales every monetary field by rate, rounded to cents,
// and sets the currency to code. Quantities and taxPercent are unchanged.
func (d *InvoiceDocument) ConvertAmounts(code string, rate decimal.Decimal) {
	scale := func(v float64) float64 {
		return decimal.NewFromFloat(v).Mul(rate).Round(2).InexactFloat64()
	}
	for i := range d.Invoice.LineItems {
		li := &d.Invoice.LineItems[i]
		li.UnitPrice = scale(li.UnitPrice)
		li.Total = scale(li.Total)
	}
	for _, amount := range []*float64{d.Invoice.Subtotal, d.Invoice.Total} {
		if amount != nil {
			*amount = scale(*amount)
		}
	}
	d.Invoice.Currency = &code
}

func validateVendor(verr *ValidationError, v *Vendor) {
	if strings.TrimSpace(v.Name) == "" {
		verr.Add("vendor.name", "vendor name is required")
	}
}

func validateHeader(verr *ValidationError, h *InvoiceHeader) {
	if strings.TrimSpace(h.Number) == "" {
		verr.Add("invoice.number", "invoice number is required")
	}
	if strings.TrimSpace(h.Date) == "" {
		verr.Add("invoice.date", "invoice date is required")
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
