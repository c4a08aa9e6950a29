package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"villa_backend/internal/handlers"
	"villa_backend/internal/models"
	"villa_backend/internal/services"
	"villa_backend/mocks"
)

func TestExpenseHandler_CreateExpense_CategoryBinding(t *testing.T) {
	mockSvc := new(mocks.MockExpenseService)
	h := handlers.NewExpenseHandler(mockSvc)
	mockSvc.On("CreateExpense", mock.Anything, mock.Anything).Return(&models.Expense{ID: 1}, nil).Once()

	c, w := newTestContext(http.MethodPost, "/api/expenses", []byte(`{"category":"utilities","description":"Power","amount":10,"expenseDate":"2024-07-01"}`))
	h.CreateExpense(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext(http.MethodPost, "/api/expenses", []byte(`{"category":"travel","description":"Taxi","amount":10,"expenseDate":"2024-07-01"}`))
	h.CreateExpense(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockSvc.AssertNumberOfCalls(t, "CreateExpense", 1)
}

func TestExpenseHandler_GetExpenseSummary(t *testing.T) {
	mockSvc := new(mocks.MockExpenseService)
	h := handlers.NewExpenseHandler(mockSvc)

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	mockSvc.On("Summarize", mock.Anything, from, time.Time{}).Return(&models.ExpenseSummary{GrandTotal: 42}, nil)

	c, w := newTestContext(http.MethodGet, "/api/expenses/summary?from=2024-07-01", nil)
	h.GetExpenseSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"grandTotal":42`)
	mockSvc.AssertExpectations(t)
}

func TestExpenseHandler_GetExpenseSummary_BadDate(t *testing.T) {
	mockSvc := new(mocks.MockExpenseService)
	h := handlers.NewExpenseHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/api/expenses/summary?to=31-07-2024", nil)
	h.GetExpenseSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseHandler_GetExpenseSummary_InvertedRange(t *testing.T) {
	mockSvc := new(mocks.MockExpenseService)
	h := handlers.NewExpenseHandler(mockSvc)
	mockSvc.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return(nil, services.ErrExpenseValidation)

	c, w := newTestContext(http.MethodGet, "/api/expenses/summary?from=2024-08-01&to=2024-07-01", nil)
	h.GetExpenseSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
