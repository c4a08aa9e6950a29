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

// ExpenseRepository defines the interface for expense-related database operations.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, executor SQLExecutor, expense *models.Expense) error
	GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error)
	GetExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, int, error)
	UpdateExpense(ctx context.Context, executor SQLExecutor, expense *models.Expense) error
	DeleteExpense(ctx context.Context, executor SQLExecutor, id int64) error
	ListExpensesBetween(ctx context.Context, from, to time.Time) ([]models.Expense, error)
}

type expenseRepository struct {
	db *sqlx.DB
}

// NewExpenseRepository creates a new instance of ExpenseRepository.
func NewExpenseRepository(db *sqlx.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, category, description, amount, expense_date, created_at, updated_at`

func (r *expenseRepository) CreateExpense(ctx context.Context, executor SQLExecutor, expense *models.Expense) error {
	query := `INSERT INTO expenses (category, description, amount, expense_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	err := executor.QueryRowxContext(ctx, query,
		expense.Category, expense.Description, expense.Amount, expense.ExpenseDate,
		expense.CreatedAt, expense.UpdatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return classifyWriteError(err, "creating expense")
	}
	return nil
}

func (r *expenseRepository) GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.GetContext(ctx, &expense, "SELECT "+expenseColumns+" FROM expenses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting expense by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &expense, nil
}

type expenseRow struct {
	models.Expense
	TotalCount int `db:"total_count"`
}

func (r *expenseRepository) GetExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + expenseColumns + ", COUNT(*) OVER() AS total_count FROM expenses")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if !filters.DateFrom.IsZero() {
		conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", argCount))
		args = append(args, filters.DateFrom)
		argCount++
	}
	if !filters.DateTo.IsZero() {
		conditions = append(conditions, fmt.Sprintf("expense_date <= $%d", argCount))
		args = append(args, filters.DateTo)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY expense_date DESC, id DESC")

	limit, args := pageClause(filters.Page, filters.PageSize, argCount, args)
	queryBuilder.WriteString(limit)

	var rows []expenseRow
	if err := r.db.SelectContext(ctx, &rows, queryBuilder.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("%w: querying expenses: %v", ErrDatabaseError, err)
	}

	expenses := make([]models.Expense, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		expenses = append(expenses, row.Expense)
		totalCount = row.TotalCount
	}
	return expenses, totalCount, nil
}

func (r *expenseRepository) UpdateExpense(ctx context.Context, executor SQLExecutor, expense *models.Expense) error {
	query := `UPDATE expenses SET category = $1, description = $2, amount = $3, expense_date = $4, updated_at = $5
	          WHERE id = $6`

	expense.UpdatedAt = time.Now().UTC()
	result, err := executor.ExecContext(ctx, query,
		expense.Category, expense.Description, expense.Amount, expense.ExpenseDate, expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return classifyWriteError(err, fmt.Sprintf("updating expense ID %d", expense.ID))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating expense ID %d: %v", ErrDatabaseError, expense.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *expenseRepository) DeleteExpense(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return classifyWriteError(err, fmt.Sprintf("deleting expense ID %d", id))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting expense ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListExpensesBetween returns every expense dated within [from, to]. Zero
// bounds are open.
func (r *expenseRepository) ListExpensesBetween(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM expenses"
	var conditions []string
	var args []interface{}
	if !from.IsZero() {
		args = append(args, from)
		conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", len(args)))
	}
	if !to.IsZero() {
		args = append(args, to)
		conditions = append(conditions, fmt.Sprintf("expense_date <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY expense_date ASC, id ASC"

	expenses := []models.Expense{}
	if err := r.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, fmt.Errorf("%w: listing expenses: %v", ErrDatabaseError, err)
	}
	return expenses, nil
}
