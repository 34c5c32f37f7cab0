// Package main is the entry point for the karobar API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karobar/internal/app"
	"karobar/internal/domain/assist"
	"karobar/internal/domain/auth"
	"karobar/internal/domain/catalogs/customer"
	"karobar/internal/domain/catalogs/product"
	"karobar/internal/domain/expense"
	"karobar/internal/domain/ledger"
	"karobar/internal/domain/reports"
	"karobar/internal/domain/tasks"
	assistclient "karobar/internal/infrastructure/assist"
	v1 "karobar/internal/infrastructure/http/v1"
	"karobar/internal/infrastructure/storage/postgres"
	"karobar/internal/infrastructure/storage/postgres/auth_repo"
	"karobar/internal/infrastructure/storage/postgres/catalog_repo"
	"karobar/internal/infrastructure/storage/postgres/expense_repo"
	"karobar/internal/infrastructure/storage/postgres/ledger_repo"
	"karobar/internal/infrastructure/storage/postgres/report_repo"
	"karobar/internal/infrastructure/storage/postgres/task_repo"
	"karobar/pkg/logger"
	"karobar/pkg/numerator"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting karobar server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit store", "error", err)
	}

	// --- Repositories ---
	userRepo := auth_repo.NewUserRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	saleRepo := ledger_repo.NewSaleRepo(txManager)
	paymentRepo := ledger_repo.NewPaymentRepo(txManager)
	expenseRepo := expense_repo.NewExpenseRepo(txManager)
	taskRepo := task_repo.NewTaskRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Services ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL,
	})
	authService := auth.NewService(userRepo, jwtService)

	productService := product.NewService(productRepo)
	customerService := customer.NewService(customerRepo)
	expenseService := expense.NewService(expenseRepo, auditStore, txManager)
	taskService := tasks.NewService(taskRepo, txManager)
	reportsService := reports.NewService(reportRepo, expenseService)

	// Receipt numbers come straight off the pool: allocation must not
	// join the sale transaction, a rollback only leaves a gap.
	numeratorService := numerator.New(pool)

	ledgerService := ledger.NewService(
		saleRepo,
		paymentRepo,
		productRepo,
		customerRepo,
		numeratorService,
		auditStore,
		txManager,
	)

	var assistService *assist.Service
	if cfg.AssistBaseURL != "" {
		client := assistclient.NewClient(assistclient.Config{
			BaseURL: cfg.AssistBaseURL,
			APIKey:  cfg.AssistAPIKey,
			Timeout: cfg.AssistTimeout,
		})
		if err := client.Ping(ctx); err != nil {
			log.Warnw("assist service unreachable, continuing without it", "error", err)
		}
		assistService = assist.NewService(client)
	} else {
		log.Info("assist service not configured, text generation disabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		JWTValidator:    jwtService,
		AuthService:     authService,
		ProductService:  productService,
		CustomerService: customerService,
		LedgerService:   ledgerService,
		ExpenseService:  expenseService,
		TaskService:     taskService,
		ReportsService:  reportsService,
		AuditStore:      auditStore,
		AssistService:   assistService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.AppAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
