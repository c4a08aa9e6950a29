package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"villa_backend/internal/models"
)

// InvoiceRepository defines the interface for invoice-related database operations.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, executor SQLExecutor, invoice *models.Invoice) error
	GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error)
	GetInvoices(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, int, error)
	UpdateInvoiceStatus(ctx context.Context, executor SQLExecutor, invoice *models.Invoice) error
	LastInvoiceNumberSeq(ctx context.Context, prefix string) (int64, error)
}

type invoiceRepository struct {
	db *sqlx.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository.
func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, reservation_id, amount, status, issued_at, due_date, paid_at, notes, created_at, updated_at`

func (r *invoiceRepository) CreateInvoice(ctx context.Context, executor SQLExecutor, invoice *models.Invoice) error {
	query := `INSERT INTO invoices
	            (invoice_number, reservation_id, amount, status, issued_at, due_date, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	if invoice.IssuedAt.IsZero() {
		invoice.IssuedAt = now
	}

	err := executor.QueryRowxContext(ctx, query,
		invoice.InvoiceNumber, invoice.ReservationID, invoice.Amount, invoice.Status,
		invoice.IssuedAt, invoice.DueDate, invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt,
	).Scan(&invoice.ID)
	if err != nil {
		return classifyWriteError(err, "creating invoice")
	}
	return nil
}

func (r *invoiceRepository) GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.GetContext(ctx, &invoice, "SELECT "+invoiceColumns+" FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting invoice by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &invoice, nil
}

type invoiceRow struct {
	models.Invoice
	TotalCount int `db:"total_count"`
}

func (r *invoiceRepository) GetInvoices(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + invoiceColumns + ", COUNT(*) OVER() AS total_count FROM invoices")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ReservationID != nil {
		conditions = append(conditions, fmt.Sprintf("reservation_id = $%d", argCount))
		args = append(args, *filters.ReservationID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY issued_at DESC, id DESC")

	limit, args := pageClause(filters.Page, filters.PageSize, argCount, args)
	queryBuilder.WriteString(limit)

	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, queryBuilder.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("%w: querying invoices: %v", ErrDatabaseError, err)
	}

	invoices := make([]models.Invoice, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		invoices = append(invoices, row.Invoice)
		totalCount = row.TotalCount
	}
	return invoices, totalCount, nil
}

// UpdateInvoiceStatus persists status and paid_at. Amount and number are immutable.
func (r *invoiceRepository) UpdateInvoiceStatus(ctx context.Context, executor SQLExecutor, invoice *models.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	result, err := executor.ExecContext(ctx,
		`UPDATE invoices SET status = $1, paid_at = $2, notes = $3, updated_at = $4 WHERE id = $5`,
		invoice.Status, invoice.PaidAt, invoice.Notes, invoice.UpdatedAt, invoice.ID,
	)
	if err != nil {
		return classifyWriteError(err, fmt.Sprintf("updating invoice ID %d", invoice.ID))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating invoice ID %d: %v", ErrDatabaseError, invoice.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) LastInvoiceNumberSeq(ctx context.Context, prefix string) (int64, error) {
	return lastCodeSeq(ctx, r.db, "invoices", "invoice_number", prefix)
}
