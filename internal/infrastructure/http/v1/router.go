// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "karobar/internal/core/context"
	"karobar/internal/domain/assist"
	"karobar/internal/domain/auth"
	"karobar/internal/domain/catalogs/customer"
	"karobar/internal/domain/catalogs/product"
	"karobar/internal/domain/expense"
	"karobar/internal/domain/ledger"
	"karobar/internal/domain/reports"
	"karobar/internal/domain/tasks"
	"karobar/internal/infrastructure/http/v1/handlers"
	"karobar/internal/infrastructure/http/v1/middleware"
	"karobar/internal/infrastructure/storage/postgres"
	"karobar/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool *postgres.Pool

	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService     *auth.Service
	ProductService  *product.Service
	CustomerService *customer.Service
	LedgerService   *ledger.Service
	ExpenseService  *expense.Service
	TaskService     *tasks.Service
	ReportsService  *reports.Service

	AuditStore *postgres.AuditStore

	// AssistService is optional; assist routes are skipped when nil.
	AssistService *assist.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	adminOnly := middleware.RequireRole(appctx.RoleAdmin, appctx.RoleManager)
	sellers := middleware.RequireRole(
		appctx.RoleAdmin, appctx.RoleManager, appctx.RoleCashier, appctx.RoleSalesman,
	)

	// API v1
	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

		// Public auth endpoints
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// Everything else requires a valid token
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)
		protected.GET("/auth/users", adminOnly, authHandler.ListUsers)
		protected.PATCH("/auth/users/:id/role", middleware.RequireRole(appctx.RoleAdmin), authHandler.ChangeRole)
		protected.DELETE("/auth/users/:id", middleware.RequireRole(appctx.RoleAdmin), authHandler.Deactivate)

		auditHandler := handlers.NewAuditHandler(base, cfg.AuditStore)
		protected.GET("/audit/:entityType/:id", adminOnly, auditHandler.History)

		registerCatalogRoutes(protected, base, cfg, adminOnly)
		registerLedgerRoutes(protected, base, cfg, sellers)
		registerExpenseRoutes(protected, base, cfg, adminOnly)
		registerTaskRoutes(protected, base, cfg, adminOnly)
		registerReportRoutes(protected, base, cfg, adminOnly)
		registerAssistRoutes(protected, base, cfg, adminOnly)
	}

	return router
}

// registerCatalogRoutes registers product and customer endpoints.
// Catalog mutations are restricted to admin/manager; reads are open to
// any authenticated role.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, adminOnly gin.HandlerFunc) {
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	products := rg.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", adminOnly, productHandler.Create)
		products.PUT("/:id", adminOnly, productHandler.Update)
		products.POST("/:id/restock", adminOnly, productHandler.Restock)
		products.DELETE("/:id", adminOnly, productHandler.Delete)
	}

	customerHandler := handlers.NewCustomerHandler(base, cfg.CustomerService)
	customers := rg.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.POST("", customerHandler.Create)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", adminOnly, customerHandler.Delete)
	}
}

// registerLedgerRoutes registers sale and payment endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, sellers gin.HandlerFunc) {
	saleHandler := handlers.NewSaleHandler(base, cfg.LedgerService)
	sales := rg.Group("/sales")
	{
		sales.GET("", saleHandler.List)
		sales.GET("/:id", saleHandler.Get)
		sales.POST("", sellers, saleHandler.Create)
	}

	paymentHandler := handlers.NewPaymentHandler(base, cfg.LedgerService)
	payments := rg.Group("/payments")
	{
		payments.GET("", paymentHandler.List)
		payments.POST("", sellers, paymentHandler.Create)
	}
}

// registerExpenseRoutes registers expense endpoints (admin/manager only).
func registerExpenseRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, adminOnly gin.HandlerFunc) {
	expenseHandler := handlers.NewExpenseHandler(base, cfg.ExpenseService)
	expenses := rg.Group("/expenses")
	expenses.Use(adminOnly)
	{
		expenses.GET("", expenseHandler.List)
		expenses.GET("/:id", expenseHandler.Get)
		expenses.POST("", expenseHandler.Create)
		expenses.PUT("/:id", expenseHandler.Update)
		expenses.DELETE("/:id", expenseHandler.Delete)
	}
}

// registerTaskRoutes registers worker task and salesman plan endpoints.
// Assignment is admin/manager; progress updates go through the service
// which enforces that workers touch only their own record.
func registerTaskRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, adminOnly gin.HandlerFunc) {
	taskHandler := handlers.NewTaskHandler(base, cfg.TaskService)

	tasksGroup := rg.Group("/tasks")
	{
		tasksGroup.GET("/worker", adminOnly, taskHandler.ListWorkerTasks)
		tasksGroup.PUT("/worker/:workerId", adminOnly, taskHandler.AssignWorkerTask)
		tasksGroup.GET("/worker/:workerId", taskHandler.GetWorkerTask)
		tasksGroup.PATCH("/worker/:workerId/progress", taskHandler.UpdateProgress)
		tasksGroup.POST("/worker/:workerId/complete", taskHandler.CompleteWorkerTask)
		tasksGroup.GET("/history", taskHandler.ListHistory)
	}

	plans := rg.Group("/plans")
	{
		plans.PUT("/salesman/:salesmanId", adminOnly, taskHandler.AssignSalesmanPlan)
		plans.GET("/salesman/:salesmanId", taskHandler.GetSalesmanPlan)
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, adminOnly gin.HandlerFunc) {
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService, cfg.AssistService)

	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/sales", reportsHandler.Sales)
		reportsGroup.GET("/expenses", adminOnly, reportsHandler.Expenses)
		reportsGroup.GET("/profit-loss", adminOnly, reportsHandler.ProfitLoss)
		reportsGroup.GET("/worker-tasks", adminOnly, reportsHandler.WorkerTasks)
	}
}

// registerAssistRoutes registers text generation endpoints.
func registerAssistRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, adminOnly gin.HandlerFunc) {
	if cfg.AssistService == nil {
		return
	}

	assistHandler := handlers.NewAssistHandler(base, cfg.AssistService)
	assistGroup := rg.Group("/assist")
	assistGroup.Use(adminOnly)
	{
		assistGroup.POST("/task-description", assistHandler.TaskDescription)
		assistGroup.POST("/plan-items", assistHandler.PlanItems)
		assistGroup.POST("/financial-summary", assistHandler.FinancialSummary)
		assistGroup.POST("/anomaly-detection", assistHandler.AnomalyDetection)
	}
}
