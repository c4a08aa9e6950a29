package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villa_backend/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var recordColumns = []string{"id", "booking_code", "gro", "status", "final_price", "check_in", "check_out", "created_at"}

func TestListReservationRecords_MapsRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	created := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("1", "BK-20250302-0001", "Made", "SELESAI", 1500000.0, checkIn, checkOut, created).
		AddRow("2", "BK-20250302-0002", nil, "PENDING", nil, checkIn, checkOut, created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations ORDER BY created_at ASC, id ASC")).
		WillReturnRows(rows)

	got, err := repo.ListReservationRecords(context.Background(), models.ReservationRecordFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1", got[0].ID)
	require.NotNil(t, got[0].Gro)
	assert.Equal(t, "Made", *got[0].Gro)
	assert.Equal(t, models.ReservationStatusSelesai, got[0].Status)
	require.NotNil(t, got[0].FinalPrice)
	assert.Equal(t, 1500000.0, *got[0].FinalPrice)
	assert.Equal(t, created, got[0].CreatedAt)

	assert.Nil(t, got[1].Gro)
	assert.Nil(t, got[1].FinalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReservationRecords_AppliesFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	gro := "Made"
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE gro = $1 AND created_at >= $2")).
		WithArgs(gro, from).
		WillReturnRows(sqlmock.NewRows(recordColumns))

	got, err := repo.ListReservationRecords(context.Background(), models.ReservationRecordFilter{Gro: &gro, CreatedFrom: &from})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReservationRecords_WrapsDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectQuery("FROM reservations").WillReturnError(errors.New("connection refused"))

	_, err := repo.ListReservationRecords(context.Background(), models.ReservationRecordFilter{})
	assert.ErrorIs(t, err, ErrDatabaseError)
}

func TestGetReservationByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetReservationByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReservations_PaginatesAndReturnsTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	now := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "booking_code", "client_id", "guest_name", "villa_name", "gro", "status",
		"check_in", "check_out", "number_of_guests", "total_price", "discount", "final_price", "notes",
		"created_at", "updated_at", "total_count"}
	rows := sqlmock.NewRows(cols).
		AddRow(int64(11), "BK-20250302-0001", nil, "Jane Doe", "Villa Kamboja", "Made", "PROSES",
			now, now.AddDate(0, 0, 2), int64(2), 2000000.0, 100000.0, 1900000.0, nil, now, now, 23)

	status := "PROSES"
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY check_in DESC, id DESC LIMIT $2 OFFSET $3")).
		WithArgs(status, 10, 10).
		WillReturnRows(rows)

	got, total, err := repo.GetReservations(context.Background(), models.ReservationFilters{Status: &status, Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 23, total)
	require.Len(t, got, 1)
	assert.Equal(t, int64(11), got[0].ID)
	assert.Equal(t, "Villa Kamboja", got[0].VillaName)
	assert.Equal(t, 2, got[0].NumberOfGuests)
	assert.Equal(t, 1900000.0, got[0].FinalPrice)
	assert.Nil(t, got[0].ClientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_DuplicateBookingCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key", Constraint: "reservations_booking_code_key"})

	err := repo.CreateReservation(context.Background(), db, &models.Reservation{
		BookingCode: "BK-20250302-0001",
		Status:      models.ReservationStatusPending,
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCreateReservation_SetsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	res := &models.Reservation{BookingCode: "BK-20250302-0003", Status: models.ReservationStatusPending}
	require.NoError(t, repo.CreateReservation(context.Background(), db, res))
	assert.Equal(t, int64(7), res.ID)
	assert.False(t, res.CreatedAt.IsZero())
	assert.Equal(t, res.CreatedAt, res.UpdatedAt)
}

func TestDeleteReservation_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteReservation(context.Background(), db, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastBookingCodeSeq_UsesHighestSuffix(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(CAST(SUBSTRING(booking_code FROM $2::int) AS BIGINT)), 0)")).
		WithArgs("BK-20250302-%", len("BK-20250302-")+1).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(12)))

	got, err := repo.LastBookingCodeSeq(context.Background(), "BK-20250302-")
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastInvoiceNumberSeq_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM invoices")).
		WithArgs("INV/2025/03/%", len("INV/2025/03/")+1).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.LastInvoiceNumberSeq(context.Background(), "INV/2025/03/")
	assert.ErrorIs(t, err, ErrDatabaseError)
}

func TestDeleteReservation_RowsAffectedError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("driver lost result")))

	err := repo.DeleteReservation(context.Background(), db, 9)
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteClient_ReferencedByReservations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "reservations_client_id_fkey"})

	err := repo.DeleteClient(context.Background(), db, 5)
	assert.ErrorIs(t, err, ErrReferenced)
}

func TestGetClients_SearchIsCaseInsensitive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	term := "  jane "
	mock.ExpectQuery(regexp.QuoteMeta("WHERE (full_name ILIKE $1 OR phone_number ILIKE $1 OR email ILIKE $1) ORDER BY full_name ASC LIMIT $2")).
		WithArgs("%jane%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "total_count"}))

	got, total, err := repo.GetClients(context.Background(), 1, 20, &term)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
