package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
)

var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrExpenseValidation = errors.New("expense data validation error")
)

type CreateExpenseRequest struct {
	Category    string  `json:"category" binding:"required,expense_category"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	ExpenseDate string  `json:"expenseDate" binding:"required"` // YYYY-MM-DD
}

type UpdateExpenseRequest struct {
	Category    *string  `json:"category" binding:"omitempty,expense_category"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	ExpenseDate *string  `json:"expenseDate"`
}

type ExpenseService interface {
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (*models.Expense, error)
	GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error)
	GetExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, int, error)
	UpdateExpense(ctx context.Context, id int64, req UpdateExpenseRequest) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	Summarize(ctx context.Context, from, to time.Time) (*models.ExpenseSummary, error)
}

type expenseService struct {
	expenseRepo repositories.ExpenseRepository
	db          repositories.SQLExecutor
}

func NewExpenseService(repo repositories.ExpenseRepository, db repositories.SQLExecutor) ExpenseService {
	return &expenseService{expenseRepo: repo, db: db}
}

func (s *expenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*models.Expense, error) {
	category, err := models.ParseExpenseCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpenseValidation, err)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description cannot be empty", ErrExpenseValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrExpenseValidation)
	}
	date, err := parseDate(req.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expenseDate: %v", ErrExpenseValidation, err)
	}

	expense := &models.Expense{
		Category:    category,
		Description: description,
		Amount:      req.Amount,
		ExpenseDate: date,
	}
	if err := s.expenseRepo.CreateExpense(ctx, s.db, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense in repository: %w", err)
	}
	return expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}
	return expense, nil
}

func (s *expenseService) GetExpenses(ctx context.Context, filters models.ExpenseFilters) ([]models.Expense, int, error) {
	filters.Page, filters.PageSize = NormalizePage(filters.Page, filters.PageSize)
	if filters.Category != nil && *filters.Category != "" {
		category, err := models.ParseExpenseCategory(*filters.Category)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrExpenseValidation, err)
		}
		normalized := string(category)
		filters.Category = &normalized
	}
	if !filters.DateFrom.IsZero() && !filters.DateTo.IsZero() && filters.DateTo.Before(filters.DateFrom) {
		return nil, 0, fmt.Errorf("%w: to is before from", ErrExpenseValidation)
	}

	expenses, total, err := s.expenseRepo.GetExpenses(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get expenses: %w", err)
	}
	return expenses, total, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, id int64, req UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		category, parseErr := models.ParseExpenseCategory(*req.Category)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrExpenseValidation, parseErr)
		}
		expense.Category = category
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrExpenseValidation)
		}
		expense.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be greater than zero", ErrExpenseValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		date, parseErr := parseDate(*req.ExpenseDate)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: expenseDate: %v", ErrExpenseValidation, parseErr)
		}
		expense.ExpenseDate = date
	}

	if err := s.expenseRepo.UpdateExpense(ctx, s.db, expense); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense in repository: %w", err)
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int64) error {
	err := s.expenseRepo.DeleteExpense(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// Summarize totals expenses per category within [from, to]. Zero bounds are
// open. Every category is listed, including those without expenses.
func (s *expenseService) Summarize(ctx context.Context, from, to time.Time) (*models.ExpenseSummary, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: to is before from", ErrExpenseValidation)
	}

	expenses, err := s.expenseRepo.ListExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for summary: %w", err)
	}

	totals := make(map[models.ExpenseCategory]decimal.Decimal, len(models.AllExpenseCategories))
	counts := make(map[models.ExpenseCategory]int, len(models.AllExpenseCategories))
	grand := decimal.Zero
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		totals[e.Category] = totals[e.Category].Add(amount)
		counts[e.Category]++
		grand = grand.Add(amount)
	}

	summary := &models.ExpenseSummary{
		Categories: make([]models.ExpenseCategoryTotal, 0, len(models.AllExpenseCategories)),
		GrandTotal: grand.InexactFloat64(),
	}
	if !from.IsZero() {
		summary.From = &from
	}
	if !to.IsZero() {
		summary.To = &to
	}
	for _, c := range models.AllExpenseCategories {
		summary.Categories = append(summary.Categories, models.ExpenseCategoryTotal{
			Category: c,
			Count:    counts[c],
			Total:    totals[c].InexactFloat64(),
		})
	}
	return summary, nil
}
