// Seed loads the schema and demo catalog data into an empty database.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"packquote/internal/core/apperror"
	"packquote/internal/domain/catalogs/client"
	"packquote/internal/domain/catalogs/product"
	"packquote/internal/infrastructure/storage/postgres"
	catalogrepo "packquote/internal/infrastructure/storage/postgres/catalog_repo"
	"packquote/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init("info", "development"); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.Config{DSN: os.Getenv("DATABASE_URL")})
	if err != nil {
		logger.Fatal(ctx, "database connection failed", zap.Error(err))
	}
	defer pool.Close()

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := applyMigrations(ctx, pool, migrationsDir); err != nil {
		logger.Fatal(ctx, "migrations failed", zap.Error(err))
	}

	txManager := postgres.NewTxManager(pool, 30*time.Second)
	products := product.NewService(catalogrepo.NewProductRepo(pool), txManager)
	clients := client.NewService(catalogrepo.NewClientRepo(pool), txManager)

	for _, p := range demoProducts() {
		if _, err := products.Create(ctx, p); err != nil {
			if apperror.IsConflict(err) {
				continue
			}
			logger.Fatal(ctx, "seed product failed", zap.String("code", p.Code), zap.Error(err))
		}
		logger.Info(ctx, "product seeded", zap.String("code", p.Code))
	}

	for _, c := range demoClients() {
		if _, err := clients.Create(ctx, c); err != nil {
			if apperror.IsConflict(err) {
				continue
			}
			logger.Fatal(ctx, "seed client failed", zap.String("code", c.Code), zap.Error(err))
		}
		logger.Info(ctx, "client seeded", zap.String("code", c.Code))
	}

	logger.Info(ctx, "seed complete")
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	entries, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, path := range entries {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(raw)); err != nil {
			return err
		}
		logger.Info(ctx, "migration applied", zap.String("file", filepath.Base(path)))
	}
	return nil
}

func demoProducts() []*product.Product {
	type row struct {
		code, name, dims string
		category         product.Category
		price            string
		unitsPerBox      int
		weightKg         float64
	}
	rows := []row{
		{"POT-250", "Round pot 250ml", "30x30x25", product.CategoryPot, "0.58", 100, 3.2},
		{"POT-500", "Round pot 500ml", "35x35x30", product.CategoryPot, "0.82", 60, 3.8},
		{"POT-1000", "Round pot 1L", "40x40x35", product.CategoryPot, "1.24", 40, 4.1},
		{"LID-250", "Lid for pot 250ml", "30x30x15", product.CategoryPot, "0.21", 200, 1.9},
		{"LID-500", "Lid for pot 500ml", "35x35x15", product.CategoryPot, "0.27", 150, 2.2},
		{"BOX-3020", "Box 30x20x10", "62x42x40", product.CategoryBox, "2.35", 25, 6.5},
		{"BOX-4030", "Box 40x30x20", "82x62x45", product.CategoryBox, "3.90", 15, 8.0},
		{"BOX-SILK", "Box 30x20x10 silkscreen print", "62x42x40", product.CategoryBox, "3.15", 25, 6.5},
	}
	out := make([]*product.Product, 0, len(rows))
	for _, r := range rows {
		p := &product.Product{
			Category:      r.category,
			BasePrice:     decimal.RequireFromString(r.price),
			UnitsPerBox:   r.unitsPerBox,
			BoxWeightKg:   decimal.NewFromFloat(r.weightKg),
			BoxDimensions: r.dims,
		}
		p.Code = r.code
		p.Name = r.name
		out = append(out, p)
	}
	return out
}

func demoClients() []*client.Client {
	mk := func(code, legal, trade, city, state, cep string) *client.Client {
		c := &client.Client{
			TradeName:  trade,
			City:       city,
			State:      state,
			PostalCode: cep,
		}
		c.Code = code
		c.Name = legal
		return c
	}
	return []*client.Client{
		mk("CLI-001", "Globex Alimentos Ltda", "Globex", "Sao Paulo", "SP", "01000-000"),
		mk("CLI-002", "ACME Packaging Ltda", "ACME", "Curitiba", "PR", "80000-000"),
		mk("CLI-003", "Northwind Distribuidora SA", "Northwind", "Blumenau", "SC", "89000-000"),
	}
}
