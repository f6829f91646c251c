package model

import (
	"encoding/json"
	"testing"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateInvoiceRequest_ToPatchDropsIdentity(t *testing.T) {
	var req UpdateInvoiceRequest
	body := `{"fileId":"other","createdAt":"1999-01-01T00:00:00.000Z","fileName":"new.pdf"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	patch := req.ToPatch()
	require.NotNil(t, patch.FileName)
	assert.Equal(t, "new.pdf", *patch.FileName)
	assert.Nil(t, patch.Vendor)
	assert.Nil(t, patch.Invoice)
}

func TestNewInvoiceListResponse(t *testing.T) {
	resp := NewInvoiceListResponse(&domain.InvoicePage{Total: 21, Page: 3, Limit: 10})

	assert.NotNil(t, resp.Invoices)
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Total: 21, TotalPages: 3}, resp.Pagination)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoices":[],"pagination":{"page":3,"limit":10,"total":21,"totalPages":3}}`, string(data))
}

func TestAPIResponse_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(APIResponse{Success: false, Error: "Route not found"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Route not found"}`, string(data))
}
