package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completion(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestExtractInvoiceJSON_MissingKey(t *testing.T) {
	client := NewClient(&Config{})

	_, err := client.ExtractInvoiceJSON(context.Background(), "google/gemini", FileInput{Name: "a.pdf", URL: "http://x/a.pdf"})
	require.Error(t, err)

	var orErr *OpenRouterError
	require.True(t, errors.As(err, &orErr))
	assert.Equal(t, "validate_configuration", orErr.Op)
}

func TestExtractInvoiceJSON_Success(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(completion("```json\n{\"vendor\":{\"name\":\"Acme\"}}\n```")))
	}))
	defer server.Close()

	client := NewClient(&Config{APIKey: "key", APIURL: server.URL})
	out, err := client.ExtractInvoiceJSON(context.Background(), "groq/llama", FileInput{Name: "a.pdf", URL: "http://x/a.pdf"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"vendor":{"name":"Acme"}}`, string(out))
	assert.Equal(t, "groq/llama", received["model"])
}

func TestExtractInvoiceJSON_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := NewClient(&Config{APIKey: "key", APIURL: server.URL})
	_, err := client.ExtractInvoiceJSON(context.Background(), "m", FileInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestParseCompletion(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "plain object", body: completion(`{"a":1}`), want: `{"a":1}`},
		{name: "fenced", body: completion("```\n{\"a\":1}\n```"), want: `{"a":1}`},
		{name: "prose around", body: completion(`Here you go: {"a":1} hope it helps`), want: `{"a":1}`},
		{name: "no choices", body: `{"choices":[]}`, wantErr: true},
		{name: "no object", body: completion("sorry, I cannot read that"), wantErr: true},
		{name: "broken json", body: completion(`{"a":}`), wantErr: true},
		{name: "not json at all", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := parseCompletion([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}
