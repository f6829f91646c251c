package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Extractor backends
const (
	ExtractorMock       = "mock"
	ExtractorOpenRouter = "openrouter"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port               int
	Environment        string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	MaxWorkers         int
	MaxUploadBytes     int64

	// Logging configuration
	LogFormat string
	LogLevel  string
	LogBodies bool

	// Database configuration
	PostgresDBURL string
	DBPingTimeout time.Duration
	DBHealthTTL   time.Duration

	// Blob storage configuration
	S3Endpoint        string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string
	S3Region          string
	S3PublicURL       string

	// Extraction configuration
	Extractor             string
	OpenRouterAPIKey      string
	OpenRouterGeminiModel string
	OpenRouterGroqModel   string
	OpenRouterTimeout     time.Duration
	MockExtractionDelay   time.Duration

	// Currency configuration
	CurrencyAPIURL string
}

// LoadConfig loads the application configuration from .env and environment variables
func LoadConfig() (*Config, error) {
	loadDotEnv()

	config := &Config{
		// Server configuration
		Port:               getEnvInt("PORT", 3001),
		Environment:        getEnvString("APP_ENV", "development"),
		ReadTimeout:        time.Duration(getEnvInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:       time.Duration(getEnvInt("WRITE_TIMEOUT", 60)) * time.Second,
		ShutdownTimeout:    time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 10)) * time.Second,
		CORSAllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		MaxWorkers:         getEnvInt("MAX_WORKERS", 5),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 25)) * 1024 * 1024,

		// Logging configuration
		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogBodies: getEnvBool("LOG_BODIES", false),

		// Database configuration
		PostgresDBURL: os.Getenv("POSTGRES_DB_URL"),
		DBPingTimeout: time.Duration(getEnvInt("DB_PING_TIMEOUT", 2)) * time.Second,
		DBHealthTTL:   time.Duration(getEnvInt("DB_HEALTH_TTL", 0)) * time.Millisecond,

		// Blob storage configuration
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessKeySecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:          getEnvString("S3_BUCKET", "invoices"),
		S3Region:          getEnvString("S3_REGION", "us-east-1"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),

		// Extraction configuration
		Extractor:             strings.ToLower(getEnvString("EXTRACTOR", ExtractorMock)),
		OpenRouterAPIKey:      os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterGeminiModel: getEnvString("OPENROUTER_GEMINI_MODEL", "google/gemini-2.0-flash-001"),
		OpenRouterGroqModel:   getEnvString("OPENROUTER_GROQ_MODEL", "meta-llama/llama-4-maverick"),
		OpenRouterTimeout:     time.Duration(getEnvInt("OPENROUTER_TIMEOUT", 60)) * time.Second,
		MockExtractionDelay:   time.Duration(getEnvInt("MOCK_EXTRACTION_DELAY_MS", 0)) * time.Millisecond,

		// Currency configuration
		CurrencyAPIURL: os.Getenv("CURRENCY_API_URL"),
	}

	return config, nil
}

// Warnings lists the degraded-mode conditions of the configuration
func (c *Config) Warnings() []string {
	var warnings []string

	if c.PostgresDBURL == "" {
		warnings = append(warnings, "POSTGRES_DB_URL not set: invoices are kept in memory only")
	}

	if c.S3Endpoint == "" || c.S3AccessKeyID == "" || c.S3AccessKeySecret == "" {
		warnings = append(warnings, "S3 storage not configured: uploaded files will not be persisted")
	}

	switch c.Extractor {
	case ExtractorOpenRouter:
		if c.OpenRouterAPIKey == "" {
			warnings = append(warnings, "No OpenRouter API key provided: extraction requests will fail")
		}
	case ExtractorMock:
	default:
		warnings = append(warnings, "Unknown EXTRACTOR "+strconv.Quote(c.Extractor)+": using mock extraction")
	}

	return warnings
}

// NewLogger builds the process logger from LogFormat and LogLevel
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if c.LogFormat == "pretty" || c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadDotEnv loads .env next to the project root, then the working directory
func loadDotEnv() {
	execPath, err := os.Executable()
	if err == nil {
		projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
		if err := godotenv.Load(filepath.Join(projectRoot, ".env")); err == nil {
			return
		}
	}
	_ = godotenv.Load()
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
