package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ExtractionPrompt instructs the model to answer with an invoice document
const ExtractionPrompt = `You are an invoice data extraction assistant. Extract invoice data from the attached PDF and return it as JSON in this exact format:
{
  "vendor": {
    "name": "string",
    "address": "string",
    "taxId": "string"
  },
  "invoice": {
    "number": "string",
    "date": "YYYY-MM-DD",
    "currency": "string",
    "subtotal": number,
    "taxPercent": number,
    "total": number,
    "poNumber": "string",
    "poDate": "YYYY-MM-DD",
    "lineItems": [
      {
        "description": "string",
        "unitPrice": number,
        "quantity": number,
        "total": number
      }
    ]
  }
}

Omit optional fields you cannot find. Do not include any other text in your response, only provide the JSON.`

// FileInput references the PDF the model should read
type FileInput struct {
	Name string
	URL  string
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []interface{} `json:"content"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type fileContent struct {
	Type string `json:"type"`
	File struct {
		Filename string `json:"filename"`
		FileData string `json:"file_data"`
	} `json:"file"`
}

// ExtractInvoiceJSON asks modelID to extract invoice data from file and
// returns the JSON object found in the answer
func (c *Client) ExtractInvoiceJSON(ctx context.Context, modelID string, file FileInput) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &OpenRouterError{
			Op:  "validate_configuration",
			Err: fmt.Errorf("OpenRouter API key is not configured. Please set OPENROUTER_API_KEY environment variable"),
		}
	}

	pdf := fileContent{Type: "file"}
	pdf.File.Filename = file.Name
	pdf.File.FileData = file.URL

	requestPayload := map[string]interface{}{
		"model": modelID,
		"messages": []chatMessage{
			{
				Role:    "system",
				Content: []interface{}{textContent{Type: "text", Text: ExtractionPrompt}},
			},
			{
				Role: "user",
				Content: []interface{}{
					textContent{Type: "text", Text: "Extract the data from this invoice."},
					pdf,
				},
			},
		},
		"temperature": 0.1,
	}

	// Convert the request payload to JSON
	requestData, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, &OpenRouterError{
			Op:  "marshal_request",
			Err: fmt.Errorf("failed to marshal request payload: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return nil, &OpenRouterError{
			Op:  "create_extract_request",
			Err: fmt.Errorf("failed to create request: %w", err),
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &OpenRouterError{
			Op:  "send_extract_request",
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &OpenRouterError{
			Op:  "read_response",
			Err: fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &OpenRouterError{
			Op:  "check_api_response",
			Err: fmt.Errorf("API error: %s - %s", resp.Status, truncate(string(respBody), 500)),
		}
	}

	return parseCompletion(respBody)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "... (truncated)"
}
