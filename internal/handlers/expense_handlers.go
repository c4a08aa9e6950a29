package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"villa_backend/internal/models"
	"villa_backend/internal/services"
	"villa_backend/pkg/utils"
)

// ExpenseHandler holds the expense service.
type ExpenseHandler struct {
	expenseService services.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(es services.ExpenseService) *ExpenseHandler {
	RegisterValidators()
	return &ExpenseHandler{expenseService: es}
}

func (h *ExpenseHandler) respondError(c *gin.Context, err error, op, fallback string) {
	utils.LogError(err, op)
	switch {
	case errors.Is(err, services.ErrExpenseNotFound):
		respondNotFound(c, "Expense not found.", err)
	case errors.Is(err, services.ErrExpenseValidation):
		utils.RespondValidationFailed(c, err.Error())
	default:
		utils.RespondInternalError(c, fallback)
	}
}

// CreateExpense handles POST /api/expenses.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req services.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateExpense", err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "CreateExpense: Error from expenseService.CreateExpense", "Failed to create expense.")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// GetExpenses handles listing expenses by category and date range.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var filters models.ExpenseFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, "GetExpenses", err)
		return
	}
	filters.Page, filters.PageSize = services.NormalizePage(filters.Page, filters.PageSize)

	expenses, total, err := h.expenseService.GetExpenses(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err, "GetExpenses: Error from expenseService.GetExpenses", "Failed to fetch expenses.")
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	c.JSON(http.StatusOK, ListResponse{Data: expenses, Total: total, Page: filters.Page, PageSize: filters.PageSize})
}

// GetExpenseByID handles GET /api/expenses/:id.
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "expense")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "GetExpenseByID: Error for ID "+c.Param("id"), "Failed to fetch expense.")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// UpdateExpense handles PUT /api/expenses/:id.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "expense")
	if !ok {
		return
	}

	var req services.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateExpense", err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "UpdateExpense: Error for ID "+c.Param("id"), "Failed to update expense.")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles DELETE /api/expenses/:id.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "expense")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "DeleteExpense: Error for ID "+c.Param("id"), "Failed to delete expense.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// GetExpenseSummary handles GET /api/expenses/summary?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Either bound may be omitted.
func (h *ExpenseHandler) GetExpenseSummary(c *gin.Context) {
	from, ok := parseQueryDate(c, "from")
	if !ok {
		return
	}
	to, ok := parseQueryDate(c, "to")
	if !ok {
		return
	}

	summary, err := h.expenseService.Summarize(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err, "GetExpenseSummary: Error from expenseService.Summarize", "Failed to summarize expenses.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func parseQueryDate(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		utils.RespondValidationFailed(c, key+": "+services.ErrDateFormat.Error())
		return time.Time{}, false
	}
	return d, true
}
