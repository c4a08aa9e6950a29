package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrReferenced is returned when a delete violates a foreign key constraint.
	ErrReferenced = errors.New("record is referenced by other records")
)

// SQLExecutor is satisfied by *sqlx.DB and *sqlx.Tx, so write methods can run
// inside a transaction or directly on the pool.
type SQLExecutor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// classifyWriteError maps a driver error from an INSERT/UPDATE/DELETE onto the
// repository sentinels.
func classifyWriteError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s (constraint: %s)", ErrReferenced, op, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
}

// lastCodeSeq returns the highest numeric suffix after prefix in column, or 0
// when no row matches. Suffixes are compared as numbers so BK-...-10000 sorts
// after BK-...-9999.
func lastCodeSeq(ctx context.Context, q sqlx.QueryerContext, table, column, prefix string) (int64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(CAST(SUBSTRING(%[2]s FROM $2::int) AS BIGINT)), 0)
	          FROM %[1]s
	          WHERE %[2]s LIKE $1 AND SUBSTRING(%[2]s FROM $2::int) ~ '^[0-9]+$'`, table, column)

	var last int64
	if err := sqlx.GetContext(ctx, q, &last, query, prefix+"%", len(prefix)+1); err != nil {
		return 0, fmt.Errorf("%w: reading last %s with prefix %s: %v", ErrDatabaseError, column, prefix, err)
	}
	return last, nil
}

// pageClause appends LIMIT/OFFSET placeholders starting at argCount.
func pageClause(page, pageSize, argCount int, args []interface{}) (string, []interface{}) {
	if pageSize <= 0 {
		return "", args
	}
	clause := fmt.Sprintf(" LIMIT $%d", argCount)
	args = append(args, pageSize)
	if page > 1 {
		clause += fmt.Sprintf(" OFFSET $%d", argCount+1)
		args = append(args, (page-1)*pageSize)
	}
	return clause, args
}
