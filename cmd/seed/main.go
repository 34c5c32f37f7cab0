// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	appctx "karobar/internal/core/context"
	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain/auth"
	"karobar/internal/domain/catalogs/product"
	"karobar/internal/infrastructure/storage/postgres"
	"karobar/internal/infrastructure/storage/postgres/auth_repo"
	"karobar/internal/infrastructure/storage/postgres/catalog_repo"
	"karobar/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, txManager, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoProducts(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo products", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@karobar.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, adminEmail).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := auth.NewUser("Administrator", adminEmail, string(hash), appctx.RoleAdmin)

	userRepo := auth_repo.NewUserRepo(txManager)
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", admin.ID)
	return nil
}

func seedDemoProducts(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	productRepo := catalog_repo.NewProductRepo(txManager)

	demo := []*product.Product{
		product.New("Rose Soap 12pc", "SOAP-R12", 12, 40, types.MustMoney("380"), types.MustMoney("480")),
		product.New("Lemon Dish Bar 24pc", "DISH-L24", 24, 25, types.MustMoney("520"), types.MustMoney("650")),
		product.New("Laundry Powder 1kg x10", "PWD-1K10", 10, 30, types.MustMoney("900"), types.MustMoney("1100")),
	}

	expiry := time.Now().AddDate(1, 6, 0)
	demo[0].ExpiryDate = &expiry

	for _, p := range demo {
		existing, err := productRepo.GetBySKU(ctx, p.SKU)
		if err == nil && existing != nil {
			log.Infow("product already exists", "sku", p.SKU)
			continue
		}
		if err := productRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %s: %w", p.SKU, err)
		}
		log.Infow("product created", "sku", p.SKU, "id", p.ID)
	}

	return nil
}
