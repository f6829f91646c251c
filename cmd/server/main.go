package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/ridwanfathin/invoice-review-service/docs"
	"github.com/ridwanfathin/invoice-review-service/internal/config"
	"github.com/ridwanfathin/invoice-review-service/internal/currency"
	"github.com/ridwanfathin/invoice-review-service/internal/database"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/extraction"
	"github.com/ridwanfathin/invoice-review-service/internal/openrouter"
	"github.com/ridwanfathin/invoice-review-service/internal/repository"
	"github.com/ridwanfathin/invoice-review-service/internal/server"
	"github.com/ridwanfathin/invoice-review-service/internal/service"
	"github.com/ridwanfathin/invoice-review-service/internal/storage"
)

// @title PDF Review Dashboard API
// @version 1.0
// @description Backend for reviewing invoices extracted from uploaded PDFs.
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	ctx := context.Background()

	repo, closeDB := newInvoiceRepository(ctx, cfg, logger)
	defer closeDB()

	blobStore := newBlobStore(cfg, logger)

	invoiceService := service.NewInvoiceService(repo)
	uploadService := service.NewUploadService(blobStore, cfg.MaxUploadBytes, logger)
	extractionService := service.NewExtractionService(newExtractor(cfg, blobStore, logger), cfg.MaxWorkers, logger)

	appServer := server.NewServer(cfg, server.Dependencies{
		InvoiceService:    invoiceService,
		UploadService:     uploadService,
		ExtractionService: extractionService,
		Currency:          currency.NewClient(cfg.CurrencyAPIURL),
		Logger:            logger,
	})

	if err := appServer.Start(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newInvoiceRepository wires Postgres behind the failover repository when
// a database URL is configured. The in-memory store serves every request
// the database cannot.
func newInvoiceRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.InvoiceRepository, func()) {
	failover := repository.FailoverConfig{
		Fallback: repository.NewMemoryInvoiceRepository(),
		TTL:      cfg.DBHealthTTL,
		Logger:   logger,
	}

	if cfg.PostgresDBURL == "" {
		return repository.NewFailoverInvoiceRepository(failover), func() {}
	}

	db, err := database.NewPostgresDB(ctx, cfg.PostgresDBURL, cfg.DBPingTimeout)
	if err != nil {
		logger.Warn("database unavailable, using in-memory storage", "error", err)
		return repository.NewFailoverInvoiceRepository(failover), func() {}
	}

	if err := db.Migrate(ctx); err != nil {
		logger.Warn("failed to apply migrations", "error", err)
	}

	postgresRepo := repository.NewPostgresInvoiceRepository(db)
	failover.Durable = postgresRepo
	failover.Health = postgresRepo

	logger.Info("invoice repository configured", "backend", "postgres")
	return repository.NewFailoverInvoiceRepository(failover), db.Close
}

// newBlobStore returns nil when S3 is not configured
func newBlobStore(cfg *config.Config, logger *slog.Logger) storage.BlobStore {
	s3Config := &storage.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		AccessKeySecret: cfg.S3AccessKeySecret,
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		PublicURL:       cfg.S3PublicURL,
	}
	if !s3Config.Configured() {
		return nil
	}

	store, err := storage.NewS3BlobStore(s3Config)
	if err != nil {
		logger.Warn("failed to create S3 blob store", "error", err)
		return nil
	}
	return store
}

func newExtractor(cfg *config.Config, blobStore storage.BlobStore, logger *slog.Logger) extraction.Extractor {
	if cfg.Extractor != config.ExtractorOpenRouter {
		logger.Info("using mock extractor", "delay", cfg.MockExtractionDelay)
		return extraction.NewMockExtractor(cfg.MockExtractionDelay)
	}

	client := openrouter.NewClient(&openrouter.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		Timeout: cfg.OpenRouterTimeout,
	})

	var files extraction.URLResolver = storage.URLFunc(func(key string) string {
		return service.PlaceholderFileBaseURL + "/" + key
	})
	if blobStore != nil {
		files = blobStore
	}

	logger.Info("using OpenRouter extractor",
		"gemini", cfg.OpenRouterGeminiModel,
		"groq", cfg.OpenRouterGroqModel,
	)
	return extraction.NewOpenRouterExtractor(client, files, map[domain.ExtractionModel]string{
		domain.ModelGemini: cfg.OpenRouterGeminiModel,
		domain.ModelGroq:   cfg.OpenRouterGroqModel,
	}, logger)
}
