package openrouter

import (
	"net/http"
	"time"
)

// DefaultAPIURL is the OpenRouter chat completions endpoint
const DefaultAPIURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterError represents an error that occurred during OpenRouter API interaction
type OpenRouterError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *OpenRouterError) Error() string {
	if e.Err == nil {
		return "openrouter error: " + e.Op
	}
	return "openrouter error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *OpenRouterError) Unwrap() error {
	return e.Err
}

// Client represents a client for the OpenRouter API
type Client struct {
	apiKey     string
	apiURL     string
	referer    string
	httpClient *http.Client
}

// Config holds configuration for the OpenRouter client
type Config struct {
	APIKey  string
	APIURL  string
	Referer string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for the OpenRouter client
func DefaultConfig() *Config {
	return &Config{
		APIURL:  DefaultAPIURL,
		Referer: "https://github.com/ridwanfathin/invoice-review-service",
		Timeout: 60 * time.Second,
	}
}

// NewClient creates a new OpenRouter client
func NewClient(config *Config) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.APIURL == "" {
		config.APIURL = defaults.APIURL
	}
	if config.Referer == "" {
		config.Referer = defaults.Referer
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}

	return &Client{
		apiKey:  config.APIKey,
		apiURL:  config.APIURL,
		referer: config.Referer,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.apiKey != ""
}
