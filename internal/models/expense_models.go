package models

import (
	"fmt"
	"strings"
	"time"
)

// ExpenseCategory is the closed set of expense categories.
type ExpenseCategory string

const (
	ExpenseCategoryOperational ExpenseCategory = "OPERATIONAL"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategorySalary      ExpenseCategory = "SALARY"
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategorySupplies    ExpenseCategory = "SUPPLIES"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// AllExpenseCategories lists every category in display order.
var AllExpenseCategories = []ExpenseCategory{
	ExpenseCategoryOperational,
	ExpenseCategoryMaintenance,
	ExpenseCategorySalary,
	ExpenseCategoryUtilities,
	ExpenseCategorySupplies,
	ExpenseCategoryOther,
}

// IsValid reports whether c is a known category.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range AllExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseExpenseCategory validates a raw category string, case-insensitively.
func ParseExpenseCategory(raw string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid expense category %q", raw)
	}
	return c, nil
}

// Expense is an operating cost of the property.
type Expense struct {
	ID          int64           `json:"id" db:"id"`
	Category    ExpenseCategory `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	Amount      float64         `json:"amount" db:"amount"`
	ExpenseDate time.Time       `json:"expenseDate" db:"expense_date"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// ExpenseFilters defines the available filters for listing expenses.
type ExpenseFilters struct {
	Category *string   `form:"category"`
	DateFrom time.Time `form:"from" time_format:"2006-01-02"`
	DateTo   time.Time `form:"to" time_format:"2006-01-02"`
	Page     int       `form:"page"`
	PageSize int       `form:"pageSize"`
}

// ExpenseCategoryTotal is the sum of expenses in one category.
type ExpenseCategoryTotal struct {
	Category ExpenseCategory `json:"category" db:"category"`
	Count    int             `json:"count" db:"count"`
	Total    float64         `json:"total" db:"total"`
}

// ExpenseSummary groups expense totals for a date range.
type ExpenseSummary struct {
	From       *time.Time             `json:"from,omitempty"`
	To         *time.Time             `json:"to,omitempty"`
	Categories []ExpenseCategoryTotal `json:"categories"`
	GrandTotal float64                `json:"grandTotal"`
}
