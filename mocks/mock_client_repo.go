package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
)

// MockClientRepo is a mock implementation of repositories.ClientRepository.
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) CreateClient(ctx context.Context, executor repositories.SQLExecutor, client *models.Client) (int64, error) {
	args := m.Called(ctx, executor, client)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepo) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepo) GetClientByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Client, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepo) GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	args := m.Called(ctx, page, pageSize, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Client), args.Int(1), args.Error(2)
}

func (m *MockClientRepo) UpdateClient(ctx context.Context, executor repositories.SQLExecutor, client *models.Client) error {
	args := m.Called(ctx, executor, client)
	return args.Error(0)
}

func (m *MockClientRepo) DeleteClient(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}
