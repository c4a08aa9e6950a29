package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
)

// MockInvoiceRepo is a mock implementation of repositories.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) CreateInvoice(ctx context.Context, executor repositories.SQLExecutor, invoice *models.Invoice) error {
	args := m.Called(ctx, executor, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) GetInvoices(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) UpdateInvoiceStatus(ctx context.Context, executor repositories.SQLExecutor, invoice *models.Invoice) error {
	args := m.Called(ctx, executor, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) LastInvoiceNumberSeq(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

// MockExpenseRepo is a mock implementation of repositories.ExpenseRepository.
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) CreateExpense(ctx context.Context, executor repositories.SQLExecutor, expense *models.Expense) error {
	args := m.Called(ctx, executor, expense)
	return args.Error(0)
}

func (m *MockExpenseRepo) GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepo) GetExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Expense), args.Int(1), args.Error(2)
}

func (m *MockExpenseRepo) UpdateExpense(ctx context.Context, executor repositories.SQLExecutor, expense *models.Expense) error {
	args := m.Called(ctx, executor, expense)
	return args.Error(0)
}

func (m *MockExpenseRepo) DeleteExpense(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

func (m *MockExpenseRepo) ListExpensesBetween(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}
