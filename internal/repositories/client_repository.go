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

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(ctx context.Context, executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	GetClientByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Client, error)
	GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) // Clients, total count, error
	UpdateClient(ctx context.Context, executor SQLExecutor, client *models.Client) error
	DeleteClient(ctx context.Context, executor SQLExecutor, id int64) error
}

type clientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, full_name, phone_number, email, nationality, notes, created_at, updated_at`

// CreateClient inserts a new client into the database.
func (r *clientRepository) CreateClient(ctx context.Context, executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (full_name, phone_number, email, nationality, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	err := executor.QueryRowxContext(ctx, query,
		client.FullName, client.PhoneNumber, client.Email, client.Nationality, client.Notes,
		client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		return 0, classifyWriteError(err, "creating client")
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	err := r.db.GetContext(ctx, &client, "SELECT "+clientColumns+" FROM clients WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &client, nil
}

// GetClientByPhoneNumber retrieves a client by their phone number.
func (r *clientRepository) GetClientByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Client, error) {
	var client models.Client
	err := r.db.GetContext(ctx, &client, "SELECT "+clientColumns+" FROM clients WHERE phone_number = $1", phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by phone number %s: %v", ErrDatabaseError, phoneNumber, err)
	}
	return &client, nil
}

type clientRow struct {
	models.Client
	TotalCount int `db:"total_count"`
}

// GetClients retrieves a list of clients with pagination and optional search.
func (r *clientRepository) GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + clientColumns + ", COUNT(*) OVER() AS total_count FROM clients")

	var args []interface{}
	argCount := 1

	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (full_name ILIKE $%d OR phone_number ILIKE $%d OR email ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+strings.TrimSpace(*searchTerm)+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY full_name ASC")

	limit, args := pageClause(page, pageSize, argCount, args)
	queryBuilder.WriteString(limit)

	var rows []clientRow
	if err := r.db.SelectContext(ctx, &rows, queryBuilder.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}

	clients := make([]models.Client, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		clients = append(clients, row.Client)
		totalCount = row.TotalCount
	}
	return clients, totalCount, nil
}

// UpdateClient updates an existing client in the database.
func (r *clientRepository) UpdateClient(ctx context.Context, executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            full_name = $1, phone_number = $2, email = $3, nationality = $4, notes = $5, updated_at = $6
	          WHERE id = $7`

	client.UpdatedAt = time.Now().UTC()
	result, err := executor.ExecContext(ctx, query,
		client.FullName, client.PhoneNumber, client.Email, client.Nationality, client.Notes,
		client.UpdatedAt, client.ID,
	)
	if err != nil {
		return classifyWriteError(err, fmt.Sprintf("updating client ID %d", client.ID))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client. Clients referenced by reservations cannot be deleted.
func (r *clientRepository) DeleteClient(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return classifyWriteError(err, fmt.Sprintf("deleting client ID %d", id))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
