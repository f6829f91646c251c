package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

// HealthChecker reports whether the durable backend is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Ensure FailoverInvoiceRepository implements the interface.
var _ InvoiceRepository = (*FailoverInvoiceRepository)(nil)

// FailoverInvoiceRepository routes every call to the durable backend while
// its health check passes and to the fallback otherwise. The check happens
// at call time, so a running process degrades (and recovers) without restart.
type FailoverInvoiceRepository struct {
	durable  InvoiceRepository
	health   HealthChecker
	fallback InvoiceRepository
	logger   *slog.Logger

	// ttl caches the last probe result; zero probes on every call
	ttl time.Duration
	now func() time.Time

	mu          sync.Mutex
	lastBackend string
	lastProbe   time.Time
	lastHealthy bool
}

// FailoverConfig holds the backends of a FailoverInvoiceRepository
type FailoverConfig struct {
	// Durable may be nil when no database is configured
	Durable  InvoiceRepository
	Health   HealthChecker
	Fallback InvoiceRepository
	TTL      time.Duration
	Logger   *slog.Logger
}

// NewFailoverInvoiceRepository creates a repository that selects a backend per call
func NewFailoverInvoiceRepository(cfg FailoverConfig) *FailoverInvoiceRepository {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := cfg.Fallback
	if fallback == nil {
		fallback = NewMemoryInvoiceRepository()
	}
	return &FailoverInvoiceRepository{
		durable:  cfg.Durable,
		health:   cfg.Health,
		fallback: fallback,
		logger:   logger,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// ActiveBackend returns the name of the backend the next call would use
func (r *FailoverInvoiceRepository) ActiveBackend(ctx context.Context) string {
	_, name := r.active(ctx)
	return name
}

// List returns one page of documents from the live backend
func (r *FailoverInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error) {
	repo, _ := r.active(ctx)
	return repo.List(ctx, filter)
}

// GetByFileID retrieves a document from the live backend
func (r *FailoverInvoiceRepository) GetByFileID(ctx context.Context, fileID string) (*domain.InvoiceDocument, error) {
	repo, _ := r.active(ctx)
	return repo.GetByFileID(ctx, fileID)
}

// Create stores a document in the live backend
func (r *FailoverInvoiceRepository) Create(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error) {
	repo, _ := r.active(ctx)
	return repo.Create(ctx, doc)
}

// Update patches a document in the live backend
func (r *FailoverInvoiceRepository) Update(ctx context.Context, fileID string, patch domain.InvoicePatch) (*domain.InvoiceDocument, error) {
	repo, _ := r.active(ctx)
	return repo.Update(ctx, fileID, patch)
}

// Delete removes a document from the live backend
func (r *FailoverInvoiceRepository) Delete(ctx context.Context, fileID string) error {
	repo, _ := r.active(ctx)
	return repo.Delete(ctx, fileID)
}

func (r *FailoverInvoiceRepository) active(ctx context.Context) (InvoiceRepository, string) {
	if r.durable == nil || r.health == nil {
		r.observe(BackendMemory, nil)
		return r.fallback, BackendMemory
	}

	healthy, err := r.probe(ctx)
	if healthy {
		r.observe(BackendPostgres, nil)
		return r.durable, BackendPostgres
	}
	r.observe(BackendMemory, err)
	return r.fallback, BackendMemory
}

func (r *FailoverInvoiceRepository) probe(ctx context.Context) (bool, error) {
	if r.ttl > 0 {
		r.mu.Lock()
		if !r.lastProbe.IsZero() && r.now().Sub(r.lastProbe) < r.ttl {
			healthy := r.lastHealthy
			r.mu.Unlock()
			return healthy, nil
		}
		r.mu.Unlock()
	}

	err := r.health.Ping(ctx)

	r.mu.Lock()
	r.lastProbe = r.now()
	r.lastHealthy = err == nil
	r.mu.Unlock()

	return err == nil, err
}

// observe logs backend transitions once per change
func (r *FailoverInvoiceRepository) observe(backend string, cause error) {
	r.mu.Lock()
	previous := r.lastBackend
	r.lastBackend = backend
	r.mu.Unlock()

	if previous == backend {
		return
	}
	switch {
	case previous == "":
		r.logger.Info("invoice storage backend selected", "backend", backend)
	case backend == BackendMemory:
		r.logger.Warn("durable storage unreachable, serving from in-memory fallback", "error", cause)
	default:
		r.logger.Warn("durable storage reachable again, serving from database", "backend", backend)
	}
}
