package services_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villa_backend/internal/bookingcode"
	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
	"villa_backend/internal/services"
	"villa_backend/mocks"
)

// memoryReservationRepo keeps reservations in a map and enforces the unique
// booking code like the reservations table does.
type memoryReservationRepo struct {
	mocks.MockReservationRepo

	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Reservation
}

func newMemoryReservationRepo() *memoryReservationRepo {
	return &memoryReservationRepo{byID: make(map[int64]*models.Reservation)}
}

func (r *memoryReservationRepo) CreateReservation(_ context.Context, _ repositories.SQLExecutor, reservation *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.BookingCode == reservation.BookingCode {
			return repositories.ErrDuplicateKey
		}
	}
	r.nextID++
	reservation.ID = r.nextID
	stored := *reservation
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memoryReservationRepo) GetReservationByID(_ context.Context, id int64) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *memoryReservationRepo) DeleteReservation(_ context.Context, _ repositories.SQLExecutor, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryReservationRepo) LastBookingCodeSeq(_ context.Context, prefix string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last int64
	for _, res := range r.byID {
		if !strings.HasPrefix(res.BookingCode, prefix) {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(res.BookingCode, prefix), 10, 64)
		if err == nil && n > last {
			last = n
		}
	}
	return last, nil
}

func TestReservationService_CreateAfterDeletingEarlierReservation(t *testing.T) {
	repo := newMemoryReservationRepo()
	seq := bookingcode.NewStoreSequencer(repo.LastBookingCodeSeq)
	svc := services.NewReservationService(repo, new(mocks.MockClientRepo), seq, nil, time.UTC)
	ctx := context.Background()

	first, err := svc.CreateReservation(ctx, validCreateRequest())
	require.NoError(t, err)
	second, err := svc.CreateReservation(ctx, validCreateRequest())
	require.NoError(t, err)
	assert.Regexp(t, `-0001$`, first.BookingCode)
	assert.Regexp(t, `-0002$`, second.BookingCode)

	require.NoError(t, svc.DeleteReservation(ctx, first.ID))

	for _, want := range []string{`-0003$`, `-0004$`} {
		next, err := svc.CreateReservation(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.Regexp(t, want, next.BookingCode)
	}
}

func TestReservationService_CreateRetriesPastStaleStore(t *testing.T) {
	repo := newMemoryReservationRepo()
	// the store lags behind: it never reports the row holding 0001
	stale := func(context.Context, string) (int64, error) { return 0, nil }
	svc := services.NewReservationService(repo, new(mocks.MockClientRepo), bookingcode.NewStoreSequencer(stale), nil, time.UTC)
	ctx := context.Background()

	first, err := svc.CreateReservation(ctx, validCreateRequest())
	require.NoError(t, err)
	assert.Regexp(t, `-0001$`, first.BookingCode)

	// a fresh sequencer has no memory of 0001, so only the retry can move past it
	svc = services.NewReservationService(repo, new(mocks.MockClientRepo), bookingcode.NewStoreSequencer(stale), nil, time.UTC)
	second, err := svc.CreateReservation(ctx, validCreateRequest())
	require.NoError(t, err)
	assert.Regexp(t, `-0002$`, second.BookingCode)
}
