package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// invoiceSchema describes the JSON an AI backend must return
const invoiceSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["vendor", "invoice"],
  "properties": {
    "vendor": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "address": {"type": ["string", "null"]},
        "taxId": {"type": ["string", "null"]}
      }
    },
    "invoice": {
      "type": "object",
      "required": ["number", "date"],
      "properties": {
        "number": {"type": "string", "minLength": 1},
        "date": {"type": "string", "minLength": 1},
        "currency": {"type": ["string", "null"]},
        "subtotal": {"type": ["number", "null"]},
        "taxPercent": {"type": ["number", "null"]},
        "total": {"type": ["number", "null"]},
        "poNumber": {"type": ["string", "null"]},
        "poDate": {"type": ["string", "null"]},
        "lineItems": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "properties": {
              "description": {"type": "string"},
              "unitPrice": {"type": "number"},
              "quantity": {"type": "number"},
              "total": {"type": "number"}
            }
          }
        }
      }
    }
  }
}`

var compiledInvoiceSchema = jsonschema.MustCompileString("invoice.schema.json", invoiceSchema)

// extractedInvoice is the shape of a validated AI answer
type extractedInvoice struct {
	Vendor struct {
		Name    string  `json:"name"`
		Address *string `json:"address"`
		TaxID   *string `json:"taxId"`
	} `json:"vendor"`
	Invoice struct {
		Number     string   `json:"number"`
		Date       string   `json:"date"`
		Currency   *string  `json:"currency"`
		Subtotal   *float64 `json:"subtotal"`
		TaxPercent *float64 `json:"taxPercent"`
		Total      *float64 `json:"total"`
		PONumber   *string  `json:"poNumber"`
		PODate     *string  `json:"poDate"`
		LineItems  []struct {
			Description string   `json:"description"`
			UnitPrice   float64  `json:"unitPrice"`
			Quantity    *float64 `json:"quantity"`
			Total       *float64 `json:"total"`
		} `json:"lineItems"`
	} `json:"invoice"`
}

// decodeExtracted validates raw against the invoice schema and decodes it
func decodeExtracted(raw []byte) (*extractedInvoice, error) {
	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to decode extracted JSON: %w", err)
	}

	if err := compiledInvoiceSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("extracted JSON does not match invoice schema: %w", err)
	}

	var out extractedInvoice
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode extracted invoice: %w", err)
	}
	return &out, nil
}
