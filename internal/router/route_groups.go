package router

import (
	"github.com/gin-gonic/gin"

	"villa_backend/internal/handlers"
	"villa_backend/internal/middleware"
)

var adminOnly = middleware.RoleAuthMiddleware(middleware.RoleAdmin)

// SetupAnalyticsRoutes sets up the GRO, dashboard and report routes.
func SetupAnalyticsRoutes(authenticatedGroup *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler) {
	groRoutes := authenticatedGroup.Group("/gro")
	{
		groRoutes.GET("/summary", analyticsHandler.GetGroSummary)
		groRoutes.GET("/summary/export", analyticsHandler.ExportGroSummary)
		groRoutes.GET("/:gro/reservations", analyticsHandler.GetGroReservations)
	}

	authenticatedGroup.GET("/dashboard/stats", analyticsHandler.GetDashboardStats)
	authenticatedGroup.GET("/reports/monthly-revenue", analyticsHandler.GetMonthlyRevenue)
}

// SetupReservationRoutes sets up the reservation routes.
func SetupReservationRoutes(authenticatedGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler) {
	reservationRoutes := authenticatedGroup.Group("/reservations")
	{
		reservationRoutes.POST("", reservationHandler.CreateReservation)
		reservationRoutes.GET("", reservationHandler.GetReservations)
		reservationRoutes.GET("/code/:code", reservationHandler.GetReservationByBookingCode)
		reservationRoutes.GET("/:id", reservationHandler.GetReservationByID)
		reservationRoutes.PUT("/:id", reservationHandler.UpdateReservation)
		reservationRoutes.PATCH("/:id/status", reservationHandler.UpdateReservationStatus)
		reservationRoutes.POST("/:id/cancel", reservationHandler.CancelReservation)
		reservationRoutes.POST("/:id/complete", reservationHandler.CompleteReservation)
		reservationRoutes.DELETE("/:id", adminOnly, reservationHandler.DeleteReservation)
	}
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", adminOnly, clientHandler.DeleteClient)
	}
}

// SetupInvoiceRoutes sets up the invoice routes.
func SetupInvoiceRoutes(authenticatedGroup *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler) {
	invoiceRoutes := authenticatedGroup.Group("/invoices")
	{
		invoiceRoutes.POST("", invoiceHandler.CreateInvoice)
		invoiceRoutes.GET("", invoiceHandler.GetInvoices)
		invoiceRoutes.GET("/:id", invoiceHandler.GetInvoiceByID)
		invoiceRoutes.POST("/:id/pay", invoiceHandler.MarkInvoicePaid)
		invoiceRoutes.POST("/:id/void", adminOnly, invoiceHandler.VoidInvoice)
	}
}

// SetupExpenseRoutes sets up the expense routes.
func SetupExpenseRoutes(authenticatedGroup *gin.RouterGroup, expenseHandler *handlers.ExpenseHandler) {
	expenseRoutes := authenticatedGroup.Group("/expenses")
	{
		expenseRoutes.POST("", expenseHandler.CreateExpense)
		expenseRoutes.GET("", expenseHandler.GetExpenses)
		expenseRoutes.GET("/summary", expenseHandler.GetExpenseSummary)
		expenseRoutes.GET("/:id", expenseHandler.GetExpenseByID)
		expenseRoutes.PUT("/:id", expenseHandler.UpdateExpense)
		expenseRoutes.DELETE("/:id", adminOnly, expenseHandler.DeleteExpense)
	}
}
