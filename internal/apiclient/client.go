package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/currency"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/model"
)

// DefaultBaseURL is the API root of a locally running server
const DefaultBaseURL = "http://localhost:3001/api"

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
	Details    []model.ErrorDetail
}

// Error returns a string representation of the error
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Is maps the response status onto the domain sentinel errors
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusConflict:
		return target == domain.ErrConflict
	case http.StatusBadRequest:
		return target == domain.ErrValidation
	}
	return false
}

// Client is a typed client for the invoice review HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the API client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new API client
func NewClient(config *Config) *Client {
	baseURL := DefaultBaseURL
	timeout := 60 * time.Second
	if config != nil {
		if config.BaseURL != "" {
			baseURL = config.BaseURL
		}
		if config.Timeout > 0 {
			timeout = config.Timeout
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details []model.ErrorDetail `json:"details"`
}

// Upload sends a PDF to POST /upload
func (c *Client) Upload(ctx context.Context, fileName string, data []byte) (*model.UploadResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(fileName)))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	var out model.UploadResponse
	if _, err := c.do(ctx, http.MethodPost, "/upload", writer.FormDataContentType(), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Extract runs extraction of an uploaded file with the given model
func (c *Client) Extract(ctx context.Context, fileID string, extractionModel domain.ExtractionModel) (*domain.InvoiceDocument, error) {
	var out domain.InvoiceDocument
	req := model.ExtractRequest{FileID: fileID, Model: extractionModel.String()}
	if err := c.doJSON(ctx, http.MethodPost, "/extract", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvoices fetches one page of invoices matching query
func (c *Client) ListInvoices(ctx context.Context, query string, page, limit int) (*model.InvoiceListResponse, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	path := "/invoices"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out model.InvoiceListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvoice fetches one invoice by fileId
func (c *Client) GetInvoice(ctx context.Context, fileID string) (*domain.InvoiceDocument, error) {
	var out domain.InvoiceDocument
	if err := c.doJSON(ctx, http.MethodGet, "/invoices/"+url.PathEscape(fileID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInvoice stores a new invoice
func (c *Client) CreateInvoice(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error) {
	var out domain.InvoiceDocument
	if err := c.doJSON(ctx, http.MethodPost, "/invoices", doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInvoice sends the full document to PUT /invoices/:id. The server
// ignores fileId and createdAt in the body.
func (c *Client) UpdateInvoice(ctx context.Context, fileID string, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error) {
	var out domain.InvoiceDocument
	if err := c.doJSON(ctx, http.MethodPut, "/invoices/"+url.PathEscape(fileID), doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInvoice removes an invoice
func (c *Client) DeleteInvoice(ctx context.Context, fileID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(fileID), nil, nil)
}

// FileURL resolves the public URL of an uploaded file
func (c *Client) FileURL(ctx context.Context, fileID string) (string, error) {
	var out model.FileURLResponse
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+url.PathEscape(fileID), nil, &out); err != nil {
		return "", err
	}
	return out.FileURL, nil
}

// ConvertCurrency converts amount through GET /currency/convert
func (c *Client) ConvertCurrency(ctx context.Context, amount float64, from, to string) (*currency.Conversion, error) {
	params := url.Values{
		"amount": {strconv.FormatFloat(amount, 'f', -1, 64)},
		"from":   {from},
		"to":     {to},
	}
	var out currency.Conversion
	if err := c.doJSON(ctx, http.MethodGet, "/currency/convert?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports server status. The health endpoint is not enveloped.
func (c *Client) Health(ctx context.Context) (*model.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var out model.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}
	_, err := c.do(ctx, method, path, contentType, body, out)
	return err
}

// do sends the request, unwraps the response envelope into out and
// returns the envelope message
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		return "", &APIError{StatusCode: resp.StatusCode, Message: env.Error, Details: env.Details}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return env.Message, nil
}
