package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/config"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/handler"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/middleware"
	"github.com/sparetrack/sparetrack-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Item      *handler.ItemHandler
	Category  *handler.CategoryHandler
	Directory *handler.DirectoryHandler
	Invoice   *handler.InvoiceHandler
	Ledger    *handler.LedgerHandler
	Order     *handler.OrderHandler
	Return    *handler.ReturnHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-shop rate limiter
		rateLimiter := middleware.NewShopRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
	shopSide := middleware.RequireRole(enum.UserRoleMaster, enum.UserRoleStaff)
	masterOnly := middleware.RequireRole(enum.UserRoleMaster)
	retailerSide := middleware.RequireRole(enum.UserRoleRetailer)

	// Profile
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", shopSide, h.Dashboard.Stats)

	// Catalog management (shop side)
	items := protected.Group("/items", shopSide)
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
	}

	categories := protected.Group("/categories", shopSide)
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Rename)
		categories.DELETE("/:id", h.Category.Delete)
		categories.POST("/:id/move-and-delete", h.Category.MoveAndDelete)
	}

	locations := protected.Group("/locations", shopSide)
	{
		locations.GET("", h.Directory.ListLocations)
		locations.POST("", h.Directory.CreateLocation)
		locations.DELETE("/:id", h.Directory.DeleteLocation)
	}

	partners := protected.Group("/delivery-partners", shopSide)
	{
		partners.GET("", h.Directory.ListPartners)
		partners.POST("", h.Directory.CreatePartner)
		partners.DELETE("/:id", h.Directory.DeletePartner)
	}

	// Billing (shop side). Creation is idempotency-guarded: a retried POST
	// must not deduct stock or post to the ledger twice.
	invoices := protected.Group("/invoices", shopSide)
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", idempotency, h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.DELETE("/:id", h.Invoice.Cancel)
	}

	// Customer ledger (shop side)
	protected.GET("/customers/:id/ledger", shopSide, h.Ledger.GetCustomerLedger)
	protected.POST("/payments", shopSide, idempotency, h.Ledger.RecordPayment)

	// Shop users
	users := protected.Group("/users")
	{
		users.POST("/staff", masterOnly, h.User.CreateStaff)
		users.GET("/staff", shopSide, h.User.ListStaff)
		users.POST("/retailers", shopSide, h.User.CreateRetailer)
		users.GET("/retailers", shopSide, h.User.ListRetailers)
		users.GET("/:id", shopSide, h.User.GetUser)
		users.PUT("/retailers/:id", shopSide, h.User.UpdateRetailer)
		users.DELETE("/:id", masterOnly, h.User.Deactivate)
	}

	// Wholesale flow, shop side
	orders := protected.Group("/orders", shopSide)
	{
		orders.GET("", h.Order.ListIncoming)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/dispatch", idempotency, h.Order.Dispatch)
		orders.POST("/:id/deliver", h.Order.MarkDelivered)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	returns := protected.Group("/returns", shopSide)
	{
		returns.GET("", h.Return.List)
		returns.POST("/:id/process", idempotency, h.Return.Process)
	}

	// Wholesale flow, retailer side
	retailer := protected.Group("/retailer", retailerSide)
	{
		retailer.GET("/catalog", h.Order.Catalog)
		retailer.POST("/orders", h.Order.Place)
		retailer.GET("/orders", h.Order.MyOrders)
		retailer.POST("/returns", h.Return.Create)
	}
}
