package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/config"
	"github.com/ridwanfathin/invoice-review-service/internal/handler"
	"github.com/ridwanfathin/invoice-review-service/internal/middleware"
	"github.com/ridwanfathin/invoice-review-service/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIPrefix is the route group every dashboard endpoint is mounted under
const APIPrefix = "/api"

// Dependencies holds the services the HTTP layer is built from
type Dependencies struct {
	InvoiceService    service.InvoiceService
	UploadService     service.UploadService
	ExtractionService service.ExtractionService
	Currency          handler.CurrencyConverter
	Logger            *slog.Logger
}

// Server represents the HTTP server for the invoice review dashboard
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	deps       Dependencies
	config     *config.Config
	logger     *slog.Logger
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.RequestResponseLogger(logger, middleware.LoggerConfig{
		LogBodies: cfg.LogBodies,
		SkipPaths: []string{"/health"},
	}))

	server := &Server{
		router: router,
		deps:   deps,
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupRoutes()

	return server
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	health := handler.NewHealthHandler(s.deps.InvoiceService, s.config.Environment)
	s.router.GET("/", health.Root)
	s.router.GET("/health", health.Health)

	api := s.router.Group(APIPrefix)
	api.GET("/health", health.Health)
	handler.NewUploadHandler(s.deps.UploadService).RegisterRoutes(api)
	handler.NewExtractHandler(s.deps.ExtractionService).RegisterRoutes(api)
	handler.NewInvoiceHandler(s.deps.InvoiceService).RegisterRoutes(api)
	if s.deps.Currency != nil {
		handler.NewCurrencyHandler(s.deps.Currency).RegisterCurrencyRoutes(api)
	}

	// Access the Swagger UI at http://localhost:3001/api-docs/index.html
	s.router.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	s.router.NoRoute(handler.NoRoute)
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM,
// then shuts down gracefully
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "port", s.config.Port, "environment", s.config.Environment)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down server", "signal", sig.String())
	}

	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("server exited gracefully")
	return nil
}

// Shutdown stops accepting requests, then drains in-flight extractions
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	httpErr := s.httpServer.Shutdown(ctx)

	var extractErr error
	if s.deps.ExtractionService != nil {
		extractErr = s.deps.ExtractionService.Shutdown(ctx)
	}

	return errors.Join(httpErr, extractErr)
}
