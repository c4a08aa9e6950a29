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

// ReservationSource produces the records consumed by the aggregator. Both the
// PostgreSQL repository and the Mongo store implement it.
type ReservationSource interface {
	ListReservationRecords(ctx context.Context, filter models.ReservationRecordFilter) ([]models.ReservationRecord, error)
}

// ReservationRepository defines the interface for reservation-related database operations.
type ReservationRepository interface {
	ReservationSource
	CreateReservation(ctx context.Context, executor SQLExecutor, reservation *models.Reservation) error
	GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error)
	GetReservationByBookingCode(ctx context.Context, code string) (*models.Reservation, error)
	GetReservations(ctx context.Context, filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservation(ctx context.Context, executor SQLExecutor, reservation *models.Reservation) error
	DeleteReservation(ctx context.Context, executor SQLExecutor, id int64) error
	LastBookingCodeSeq(ctx context.Context, prefix string) (int64, error)
}

type reservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sqlx.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, booking_code, client_id, guest_name, villa_name, gro, status,
	check_in, check_out, number_of_guests, total_price, discount, final_price, notes, created_at, updated_at`

func (r *reservationRepository) CreateReservation(ctx context.Context, executor SQLExecutor, reservation *models.Reservation) error {
	query := `INSERT INTO reservations
	            (booking_code, client_id, guest_name, villa_name, gro, status, check_in, check_out,
	             number_of_guests, total_price, discount, final_price, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id`

	now := time.Now().UTC()
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = now
	}
	reservation.UpdatedAt = reservation.CreatedAt

	err := executor.QueryRowxContext(ctx, query,
		reservation.BookingCode, reservation.ClientID, reservation.GuestName, reservation.VillaName,
		reservation.Gro, reservation.Status, reservation.CheckIn, reservation.CheckOut,
		reservation.NumberOfGuests, reservation.TotalPrice, reservation.Discount, reservation.FinalPrice,
		reservation.Notes, reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID)
	if err != nil {
		return classifyWriteError(err, "creating reservation")
	}
	return nil
}

func (r *reservationRepository) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.GetContext(ctx, &reservation, "SELECT "+reservationColumns+" FROM reservations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reservation by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &reservation, nil
}

func (r *reservationRepository) GetReservationByBookingCode(ctx context.Context, code string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.GetContext(ctx, &reservation, "SELECT "+reservationColumns+" FROM reservations WHERE booking_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reservation by booking code %s: %v", ErrDatabaseError, code, err)
	}
	return &reservation, nil
}

type reservationRow struct {
	models.Reservation
	TotalCount int `db:"total_count"`
}

func (r *reservationRepository) GetReservations(ctx context.Context, filters models.ReservationFilters) ([]models.Reservation, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + reservationColumns + ", COUNT(*) OVER() AS total_count FROM reservations")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Gro != nil && *filters.Gro != "" {
		conditions = append(conditions, fmt.Sprintf("gro = $%d", argCount))
		args = append(args, *filters.Gro)
		argCount++
	}
	if filters.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argCount))
		args = append(args, *filters.ClientID)
		argCount++
	}
	if !filters.CheckInFrom.IsZero() {
		conditions = append(conditions, fmt.Sprintf("check_in >= $%d", argCount))
		args = append(args, filters.CheckInFrom)
		argCount++
	}
	if !filters.CheckInTo.IsZero() {
		conditions = append(conditions, fmt.Sprintf("check_in <= $%d", argCount))
		args = append(args, filters.CheckInTo)
		argCount++
	}
	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		conditions = append(conditions, fmt.Sprintf("(booking_code ILIKE $%d OR guest_name ILIKE $%d OR villa_name ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+strings.TrimSpace(*filters.Search)+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY check_in DESC, id DESC")

	limit, args := pageClause(filters.Page, filters.PageSize, argCount, args)
	queryBuilder.WriteString(limit)

	var rows []reservationRow
	if err := r.db.SelectContext(ctx, &rows, queryBuilder.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}

	reservations := make([]models.Reservation, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		reservations = append(reservations, row.Reservation)
		totalCount = row.TotalCount
	}
	return reservations, totalCount, nil
}

func (r *reservationRepository) UpdateReservation(ctx context.Context, executor SQLExecutor, reservation *models.Reservation) error {
	query := `UPDATE reservations SET
	            client_id = $1, guest_name = $2, villa_name = $3, gro = $4, status = $5,
	            check_in = $6, check_out = $7, number_of_guests = $8, total_price = $9,
	            discount = $10, final_price = $11, notes = $12, updated_at = $13
	          WHERE id = $14`

	reservation.UpdatedAt = time.Now().UTC()
	result, err := executor.ExecContext(ctx, query,
		reservation.ClientID, reservation.GuestName, reservation.VillaName, reservation.Gro, reservation.Status,
		reservation.CheckIn, reservation.CheckOut, reservation.NumberOfGuests, reservation.TotalPrice,
		reservation.Discount, reservation.FinalPrice, reservation.Notes, reservation.UpdatedAt,
		reservation.ID,
	)
	if err != nil {
		return classifyWriteError(err, fmt.Sprintf("updating reservation ID %d", reservation.ID))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) DeleteReservation(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return classifyWriteError(err, fmt.Sprintf("deleting reservation ID %d", id))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) LastBookingCodeSeq(ctx context.Context, prefix string) (int64, error) {
	return lastCodeSeq(ctx, r.db, "reservations", "booking_code", prefix)
}

// ListReservationRecords returns the aggregation projection of reservations,
// oldest first.
func (r *reservationRepository) ListReservationRecords(ctx context.Context, filter models.ReservationRecordFilter) ([]models.ReservationRecord, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id::text AS id, booking_code, gro, status, final_price, check_in, check_out, created_at
	                          FROM reservations`)

	var conditions []string
	var args []interface{}
	if filter.Gro != nil {
		args = append(args, *filter.Gro)
		conditions = append(conditions, fmt.Sprintf("gro = $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at ASC, id ASC")

	records := []models.ReservationRecord{}
	if err := r.db.SelectContext(ctx, &records, queryBuilder.String(), args...); err != nil {
		return nil, fmt.Errorf("%w: listing reservation records: %v", ErrDatabaseError, err)
	}
	return records, nil
}
