package handler

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/middleware"
)

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := strings.TrimSpace(c.Param(paramName))
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getQueryInt retrieves an integer query parameter. Missing or non-numeric
// values yield defaultValue.
func getQueryInt(c *gin.Context, paramName string, defaultValue int) int {
	valueStr := strings.TrimSpace(c.Query(paramName))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// logError logs an upstream or internal failure with request context
func logError(c *gin.Context, op string, err error, fields map[string]interface{}) {
	attrs := []any{
		"op", op,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	if requestID := c.GetString(middleware.RequestIDKey); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	slog.Default().ErrorContext(c.Request.Context(), "request failed", attrs...)
}
