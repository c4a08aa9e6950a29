package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"villa_backend/internal/models"
	"villa_backend/internal/services"
)

// MockAnalyticsService is a mock implementation of services.AnalyticsService.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GroSummary(ctx context.Context) ([]models.GroSummaryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroSummaryEntry), args.Error(1)
}

func (m *MockAnalyticsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockAnalyticsService) MonthlyRevenue(ctx context.Context, year int) ([]models.MonthlyRevenuePoint, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlyRevenuePoint), args.Error(1)
}

func (m *MockAnalyticsService) GroReservations(ctx context.Context, gro string) ([]models.ReservationRecord, error) {
	args := m.Called(ctx, gro)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReservationRecord), args.Error(1)
}

// MockReservationService is a mock implementation of services.ReservationService.
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) reservation(args mock.Arguments) (*models.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationService) CreateReservation(ctx context.Context, req services.CreateReservationRequest) (*models.Reservation, error) {
	return m.reservation(m.Called(ctx, req))
}

func (m *MockReservationService) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	return m.reservation(m.Called(ctx, id))
}

func (m *MockReservationService) GetReservationByBookingCode(ctx context.Context, code string) (*models.Reservation, error) {
	return m.reservation(m.Called(ctx, code))
}

func (m *MockReservationService) GetReservations(ctx context.Context, filters models.ReservationFilters) ([]models.Reservation, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Reservation), args.Int(1), args.Error(2)
}

func (m *MockReservationService) UpdateReservation(ctx context.Context, id int64, req services.UpdateReservationRequest) (*models.Reservation, error) {
	return m.reservation(m.Called(ctx, id, req))
}

func (m *MockReservationService) UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	return m.reservation(m.Called(ctx, id, status))
}

func (m *MockReservationService) CancelReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return m.reservation(m.Called(ctx, id))
}

func (m *MockReservationService) CompleteReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return m.reservation(m.Called(ctx, id))
}

func (m *MockReservationService) DeleteReservation(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientService is a mock implementation of services.ClientService.
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) client(args mock.Arguments) (*models.Client, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientService) CreateClient(ctx context.Context, req services.CreateClientRequest) (*models.Client, error) {
	return m.client(m.Called(ctx, req))
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID int64) (*models.Client, error) {
	return m.client(m.Called(ctx, clientID))
}

func (m *MockClientService) GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	args := m.Called(ctx, page, pageSize, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Client), args.Int(1), args.Error(2)
}

func (m *MockClientService) UpdateClient(ctx context.Context, clientID int64, req services.UpdateClientRequest) (*models.Client, error) {
	return m.client(m.Called(ctx, clientID, req))
}

func (m *MockClientService) DeleteClient(ctx context.Context, clientID int64) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// MockInvoiceService is a mock implementation of services.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*models.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req services.CreateInvoiceRequest) (*models.Invoice, error) {
	return m.invoice(m.Called(ctx, req))
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	return m.invoice(m.Called(ctx, id))
}

func (m *MockInvoiceService) GetInvoices(ctx context.Context, filters models.InvoiceFilters) ([]models.Invoice, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) MarkInvoicePaid(ctx context.Context, id int64) (*models.Invoice, error) {
	return m.invoice(m.Called(ctx, id))
}

func (m *MockInvoiceService) VoidInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	return m.invoice(m.Called(ctx, id))
}

// MockExpenseService is a mock implementation of services.ExpenseService.
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) expense(args mock.Arguments) (*models.Expense, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, req services.CreateExpenseRequest) (*models.Expense, error) {
	return m.expense(m.Called(ctx, req))
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	return m.expense(m.Called(ctx, id))
}

func (m *MockExpenseService) GetExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Expense), args.Int(1), args.Error(2)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, id int64, req services.UpdateExpenseRequest) (*models.Expense, error) {
	return m.expense(m.Called(ctx, id, req))
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseService) Summarize(ctx context.Context, from, to time.Time) (*models.ExpenseSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExpenseSummary), args.Error(1)
}
