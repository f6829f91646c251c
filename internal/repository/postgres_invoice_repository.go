package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ridwanfathin/invoice-review-service/internal/database"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate keys
const uniqueViolation = "23505"

// Ensure PostgresInvoiceRepository implements the interface.
var _ InvoiceRepository = (*PostgresInvoiceRepository)(nil)

// PostgresInvoiceRepository is the durable backend. Each document is stored
// as JSONB next to the columns used for lookup, search and ordering.
type PostgresInvoiceRepository struct {
	db  *database.PostgresDB
	now func() time.Time

	schemaMu    sync.Mutex
	schemaReady bool
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *database.PostgresDB) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db:  db,
		now: time.Now,
	}
}

// Ping reports whether the database is reachable, so the repository can be
// used as the failover health checker
func (r *PostgresInvoiceRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// ensureSchema runs the migrations once per process, retrying on the next
// call if the database was unreachable
func (r *PostgresInvoiceRepository) ensureSchema(ctx context.Context) error {
	r.schemaMu.Lock()
	defer r.schemaMu.Unlock()

	if r.schemaReady {
		return nil
	}
	if err := r.db.Migrate(ctx); err != nil {
		return err
	}
	r.schemaReady = true
	return nil
}

// List returns one page of matching documents sorted by createdAt descending
func (r *PostgresInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) (*domain.InvoicePage, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, &RepositoryError{Op: "list_invoices", Err: err}
	}

	where := ""
	args := []any{}
	if filter.Query != "" {
		where = `WHERE vendor_name ILIKE $1 ESCAPE '\' OR invoice_number ILIKE $1 ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter.Query)+"%")
	}

	page := &domain.InvoicePage{
		Invoices: make([]domain.InvoiceDocument, 0, filter.Limit),
		Page:     filter.Page,
		Limit:    filter.Limit,
	}

	if err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM invoices `+where, args...).Scan(&page.Total); err != nil {
		return nil, &RepositoryError{Op: "list_invoices", Err: fmt.Errorf("failed to count invoices: %w", err)}
	}

	query := fmt.Sprintf(`
		SELECT document
		FROM invoices
		%s
		ORDER BY created_at COLLATE "C" DESC, file_id COLLATE "C" ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, &RepositoryError{Op: "list_invoices", Err: fmt.Errorf("failed to query invoices: %w", err)}
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, &RepositoryError{Op: "list_invoices", Err: fmt.Errorf("failed to scan invoice: %w", err)}
		}
		var doc domain.InvoiceDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, &RepositoryError{Op: "list_invoices", Err: fmt.Errorf("failed to decode invoice: %w", err)}
		}
		page.Invoices = append(page.Invoices, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &RepositoryError{Op: "list_invoices", Err: fmt.Errorf("error iterating invoices: %w", err)}
	}

	return page, nil
}

// GetByFileID retrieves a document by its fileId
func (r *PostgresInvoiceRepository) GetByFileID(ctx context.Context, fileID string) (*domain.InvoiceDocument, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, &RepositoryError{Op: "get_invoice", Err: err}
	}

	doc, err := scanDocument(r.db.GetPool().QueryRow(ctx, `SELECT document FROM invoices WHERE file_id = $1`, fileID))
	if err != nil {
		return nil, &RepositoryError{Op: "get_invoice", Err: err}
	}
	return doc, nil
}

// Create inserts a new document. The primary key rejects duplicates atomically.
func (r *PostgresInvoiceRepository) Create(ctx context.Context, doc *domain.InvoiceDocument) (*domain.InvoiceDocument, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, &RepositoryError{Op: "create_invoice", Err: err}
	}

	stored := doc.Clone()
	stored.PrepareForCreate(r.now())

	raw, err := json.Marshal(stored)
	if err != nil {
		return nil, &RepositoryError{Op: "create_invoice", Err: fmt.Errorf("failed to encode invoice: %w", err)}
	}

	_, err = r.db.GetPool().Exec(ctx, `
		INSERT INTO invoices (file_id, vendor_name, invoice_number, created_at, document)
		VALUES ($1, $2, $3, $4, $5)
	`, stored.FileID, stored.Vendor.Name, stored.Invoice.Number, stored.CreatedAt, raw)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, &RepositoryError{Op: "create_invoice", Err: domain.ErrConflict}
		}
		return nil, &RepositoryError{Op: "create_invoice", Err: fmt.Errorf("failed to insert invoice: %w", err)}
	}

	return stored, nil
}

// Update applies patch inside a transaction holding a row lock
func (r *PostgresInvoiceRepository) Update(ctx context.Context, fileID string, patch domain.InvoicePatch) (*domain.InvoiceDocument, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, &RepositoryError{Op: "update_invoice", Err: err}
	}

	var updated *domain.InvoiceDocument
	err := r.db.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		doc, err := scanDocument(tx.QueryRow(ctx, `SELECT document FROM invoices WHERE file_id = $1 FOR UPDATE`, fileID))
		if err != nil {
			return err
		}

		doc.ApplyPatch(patch, r.now())

		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode invoice: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE invoices
			SET vendor_name = $2, invoice_number = $3, document = $4
			WHERE file_id = $1
		`, fileID, doc.Vendor.Name, doc.Invoice.Number, raw); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, &RepositoryError{Op: "update_invoice", Err: err}
	}

	return updated, nil
}

// Delete removes a document
func (r *PostgresInvoiceRepository) Delete(ctx context.Context, fileID string) error {
	if err := r.ensureSchema(ctx); err != nil {
		return &RepositoryError{Op: "delete_invoice", Err: err}
	}

	tag, err := r.db.GetPool().Exec(ctx, `DELETE FROM invoices WHERE file_id = $1`, fileID)
	if err != nil {
		return &RepositoryError{Op: "delete_invoice", Err: fmt.Errorf("failed to delete invoice: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return &RepositoryError{Op: "delete_invoice", Err: domain.ErrNotFound}
	}

	return nil
}

func scanDocument(row pgx.Row) (*domain.InvoiceDocument, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	var doc domain.InvoiceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode invoice: %w", err)
	}
	return &doc, nil
}

// escapeLike escapes LIKE wildcards so the query matches as a literal substring
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
