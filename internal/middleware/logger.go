package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody caps how much of a non-JSON body is logged
const maxLoggedBody = 1000

// sensitiveFields contains patterns for fields that should be redacted
var sensitiveFields = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"api-key",
	"secret",
	"authorization",
	"bearer",
	"credential",
	"session",
	"cookie",
}

// sensitiveHeaderPatterns contains regex patterns for sensitive headers
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)bearer`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)session`),
}

// responseWriter is a custom response writer to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	// LogBodies includes redacted JSON request and response bodies
	LogBodies bool

	// SkipPaths are not logged at all
	SkipPaths []string
}

// RequestResponseLogger creates a middleware that logs all API requests and responses
func RequestResponseLogger(logger *slog.Logger, config LoggerConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		startTime := time.Now()

		// Multipart uploads are large binary payloads; only their size is logged
		var requestBody []byte
		multipart := strings.HasPrefix(c.ContentType(), "multipart/")
		if config.LogBodies && c.Request.Body != nil && !multipart {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBodyWriter := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = responseBodyWriter

		c.Next()

		entry := buildLogEntry(c, requestBody, responseBodyWriter.body.Bytes(), time.Since(startTime), config.LogBodies)

		level := slog.LevelInfo
		switch {
		case entry.StatusCode >= 500:
			level = slog.LevelError
		case entry.StatusCode >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "http request", entry.attrs()...)
	}
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Method        string
	Path          string
	StatusCode    int
	Latency       time.Duration
	ClientIP      string
	UserAgent     string
	RequestID     string
	ContentLength int64
	Headers       map[string]string
	QueryParams   map[string][]string
	RequestBody   interface{}
	ResponseBody  interface{}
	Error         string
}

func (e LogEntry) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", e.Method),
		slog.String("path", e.Path),
		slog.Int("status", e.StatusCode),
		slog.Duration("latency", e.Latency),
		slog.String("client_ip", e.ClientIP),
		slog.String("user_agent", e.UserAgent),
	}
	if e.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", e.RequestID))
	}
	if e.ContentLength > 0 {
		attrs = append(attrs, slog.Int64("content_length", e.ContentLength))
	}
	if len(e.Headers) > 0 {
		attrs = append(attrs, slog.Any("headers", e.Headers))
	}
	if len(e.QueryParams) > 0 {
		attrs = append(attrs, slog.Any("query", e.QueryParams))
	}
	if e.RequestBody != nil {
		attrs = append(attrs, slog.Any("request_body", e.RequestBody))
	}
	if e.ResponseBody != nil {
		attrs = append(attrs, slog.Any("response_body", e.ResponseBody))
	}
	if e.Error != "" {
		attrs = append(attrs, slog.String("error", e.Error))
	}
	return attrs
}

// buildLogEntry constructs a log entry from request and response data
func buildLogEntry(c *gin.Context, requestBody, responseBody []byte, latency time.Duration, withBodies bool) LogEntry {
	entry := LogEntry{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		StatusCode:    c.Writer.Status(),
		Latency:       latency,
		ClientIP:      c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		RequestID:     c.GetString(RequestIDKey),
		ContentLength: c.Request.ContentLength,
		QueryParams:   c.Request.URL.Query(),
	}

	if withBodies {
		entry.Headers = redactHeaders(c.Request.Header)
		if len(requestBody) > 0 {
			entry.RequestBody = parseAndRedactBody(requestBody)
		}
		if len(responseBody) > 0 {
			entry.ResponseBody = parseAndRedactBody(responseBody)
		}
	}

	if len(c.Errors) > 0 {
		entry.Error = c.Errors.String()
	}

	return entry
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}
	return redacted
}

// isSensitiveHeader checks if a header name is sensitive
func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}

// parseAndRedactBody parses JSON body and redacts sensitive fields
func parseAndRedactBody(body []byte) interface{} {
	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		bodyStr := string(body)
		if len(bodyStr) > maxLoggedBody {
			bodyStr = bodyStr[:maxLoggedBody] + "... (truncated)"
		}
		return bodyStr
	}

	redactSensitiveFields(jsonBody)
	return jsonBody
}

// redactSensitiveFields recursively redacts sensitive fields in JSON data
func redactSensitiveFields(data interface{}) {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if isSensitiveField(key) {
				v[key] = "[REDACTED]"
			} else {
				redactSensitiveFields(value)
			}
		}
	case []interface{}:
		for _, item := range v {
			redactSensitiveFields(item)
		}
	}
}

// isSensitiveField checks if a field name is sensitive
func isSensitiveField(fieldName string) bool {
	lowerField := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lowerField, sensitive) {
			return true
		}
	}
	return false
}
