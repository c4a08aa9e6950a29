package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"villa_backend/internal/config"
	"villa_backend/internal/handlers"
	"villa_backend/internal/middleware"
	"villa_backend/pkg/utils"
)

// Handlers bundles every HTTP handler the API mounts.
type Handlers struct {
	Analytics    *handlers.AnalyticsHandler
	Reservations *handlers.ReservationHandler
	Clients      *handlers.ClientHandler
	Invoices     *handlers.InvoiceHandler
	Expenses     *handlers.ExpenseHandler
}

// NewEngine creates the gin engine with the global middleware chain.
func NewEngine(cfg config.ServerConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	return engine
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Setup mounts the API routes. Everything under /api except /api/ping
// requires a bearer token.
func Setup(engine *gin.Engine, h Handlers, verifier *utils.TokenVerifier) {
	handlers.RegisterValidators()

	api := engine.Group("/api")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(verifier))
	{
		SetupAnalyticsRoutes(authenticated, h.Analytics)
		SetupReservationRoutes(authenticated, h.Reservations)
		SetupClientRoutes(authenticated, h.Clients)
		SetupInvoiceRoutes(authenticated, h.Invoices)
		SetupExpenseRoutes(authenticated, h.Expenses)
	}
}
