package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLineItem represents a line item in the API
type TestLineItem struct {
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    float64 `json:"quantity"`
	Total       float64 `json:"total"`
}

// TestInvoice represents an invoice document in the API
type TestInvoice struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Vendor   struct {
		Name    string `json:"name"`
		Address string `json:"address,omitempty"`
	} `json:"vendor"`
	Invoice struct {
		Number    string         `json:"number"`
		Date      string         `json:"date"`
		Currency  string         `json:"currency,omitempty"`
		Total     *float64       `json:"total,omitempty"`
		LineItems []TestLineItem `json:"lineItems"`
	} `json:"invoice"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// TestPagination represents pagination data in API responses
type TestPagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TestEnvelope represents the response envelope
type TestEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func doRequest(t *testing.T, client *http.Client, method, url, contentType string, body []byte) (int, TestEnvelope) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err, "Failed to create request")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	var env TestEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env), "Failed to decode response body")
	return resp.StatusCode, env
}

// TestInvoiceAPI runs the review flow against a running server
func TestInvoiceAPI(t *testing.T) {
	// Configure base URL - use environment variable or default
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3001/api"
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	if resp, err := client.Get(baseURL + "/health"); err != nil {
		t.Skipf("Skipping integration test, server not reachable at %s: %v", baseURL, err)
	} else {
		resp.Body.Close()
	}

	// Variables to store data between tests
	var fileID string

	// 1. Upload a PDF
	t.Run("UploadFile", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="integration.pdf"`)
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		status, env := doRequest(t, client, http.MethodPost, baseURL+"/upload", writer.FormDataContentType(), body.Bytes())
		assert.Equal(t, http.StatusOK, status, "Expected status code 200")
		assert.True(t, env.Success)

		var uploaded struct {
			FileID   string `json:"fileId"`
			FileName string `json:"fileName"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &uploaded))
		assert.Equal(t, "integration.pdf", uploaded.FileName)
		assert.Len(t, uploaded.FileID, 36, "fileId should be a UUID")
		fileID = uploaded.FileID
	})

	if fileID == "" {
		t.Skip("Skipping remaining tests as upload failed")
	}

	// 2. Reject a non-PDF
	t.Run("UploadRejectsText", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", "notes.txt")
		require.NoError(t, err)
		_, _ = part.Write([]byte("plain text"))
		require.NoError(t, writer.Close())

		status, env := doRequest(t, client, http.MethodPost, baseURL+"/upload", writer.FormDataContentType(), body.Bytes())
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Only PDF files are allowed", env.Error)
	})

	var extracted TestInvoice

	// 3. Extract with an unknown model
	t.Run("ExtractRejectsUnknownModel", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{"fileId": fileID, "model": "gpt-4"})
		status, env := doRequest(t, client, http.MethodPost, baseURL+"/extract", "application/json", payload)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, env.Success)
	})

	// 4. Extract invoice data
	t.Run("ExtractInvoice", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{"fileId": fileID, "model": "gemini"})
		status, env := doRequest(t, client, http.MethodPost, baseURL+"/extract", "application/json", payload)
		require.Equal(t, http.StatusOK, status, env.Error)
		assert.Equal(t, "Data extracted successfully using gemini", env.Message)

		require.NoError(t, json.Unmarshal(env.Data, &extracted))
		assert.Equal(t, fileID, extracted.FileID)
		assert.NotEmpty(t, extracted.Vendor.Name)
	})

	// 5. Create the invoice, then a duplicate
	t.Run("CreateInvoice", func(t *testing.T) {
		payload, _ := json.Marshal(extracted)
		status, env := doRequest(t, client, http.MethodPost, baseURL+"/invoices", "application/json", payload)
		assert.Equal(t, http.StatusCreated, status, env.Error)
		assert.Equal(t, "Invoice created successfully", env.Message)

		status, env = doRequest(t, client, http.MethodPost, baseURL+"/invoices", "application/json", payload)
		assert.Equal(t, http.StatusConflict, status)
		assert.False(t, env.Success)
	})

	// 6. Update with a spoofed fileId
	t.Run("UpdateInvoice", func(t *testing.T) {
		extracted.Vendor.Name = "Integration Vendor"
		body := map[string]interface{}{
			"fileId":    "spoofed",
			"createdAt": "1999-01-01T00:00:00.000Z",
			"vendor":    extracted.Vendor,
		}
		payload, _ := json.Marshal(body)
		status, env := doRequest(t, client, http.MethodPut, fmt.Sprintf("%s/invoices/%s", baseURL, fileID), "application/json", payload)
		require.Equal(t, http.StatusOK, status, env.Error)

		var updated TestInvoice
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, fileID, updated.FileID)
		assert.Equal(t, extracted.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "Integration Vendor", updated.Vendor.Name)
		assert.NotEmpty(t, updated.UpdatedAt)
	})

	// 7. Search
	t.Run("SearchInvoices", func(t *testing.T) {
		status, env := doRequest(t, client, http.MethodGet, baseURL+"/invoices?q=integration%20VENDOR&limit=5", "", nil)
		require.Equal(t, http.StatusOK, status)

		var list struct {
			Invoices   []TestInvoice  `json:"invoices"`
			Pagination TestPagination `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Equal(t, 5, list.Pagination.Limit)
		found := false
		for _, inv := range list.Invoices {
			if inv.FileID == fileID {
				found = true
			}
		}
		assert.True(t, found, "Search should return the updated invoice")
	})

	// 8. Delete, then delete again
	t.Run("DeleteInvoice", func(t *testing.T) {
		url := fmt.Sprintf("%s/invoices/%s", baseURL, fileID)
		status, env := doRequest(t, client, http.MethodDelete, url, "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Invoice deleted successfully", env.Message)

		status, _ = doRequest(t, client, http.MethodGet, url, "", nil)
		assert.Equal(t, http.StatusNotFound, status, "Expected status code 404 after deletion")

		status, _ = doRequest(t, client, http.MethodDelete, url, "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}
