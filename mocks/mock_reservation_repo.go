package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
)

// MockReservationRepo is a mock implementation of repositories.ReservationRepository.
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) ListReservationRecords(ctx context.Context, filter models.ReservationRecordFilter) ([]models.ReservationRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReservationRecord), args.Error(1)
}

func (m *MockReservationRepo) CreateReservation(ctx context.Context, executor repositories.SQLExecutor, reservation *models.Reservation) error {
	args := m.Called(ctx, executor, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetReservationByBookingCode(ctx context.Context, code string) (*models.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetReservations(ctx context.Context, filters models.ReservationFilters) ([]models.Reservation, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Reservation), args.Int(1), args.Error(2)
}

func (m *MockReservationRepo) UpdateReservation(ctx context.Context, executor repositories.SQLExecutor, reservation *models.Reservation) error {
	args := m.Called(ctx, executor, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) DeleteReservation(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

func (m *MockReservationRepo) LastBookingCodeSeq(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

// MockReservationSource is a mock implementation of repositories.ReservationSource.
type MockReservationSource struct {
	mock.Mock
}

func (m *MockReservationSource) ListReservationRecords(ctx context.Context, filter models.ReservationRecordFilter) ([]models.ReservationRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReservationRecord), args.Error(1)
}

// MockSequencer is a mock implementation of bookingcode.Sequencer.
type MockSequencer struct {
	mock.Mock
}

func (m *MockSequencer) Next(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}
