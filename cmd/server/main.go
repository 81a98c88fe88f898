package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"packquote/internal/domain/catalogs/client"
	"packquote/internal/domain/catalogs/product"
	"packquote/internal/domain/freight"
	"packquote/internal/domain/pricing"
	"packquote/internal/domain/quotation"
	v1 "packquote/internal/infrastructure/http/v1"
	"packquote/internal/infrastructure/storage/postgres"
	catalogrepo "packquote/internal/infrastructure/storage/postgres/catalog_repo"
	quotationrepo "packquote/internal/infrastructure/storage/postgres/quotation_repo"
	"packquote/pkg/logger"
	"packquote/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(getEnv("LOG_LEVEL", "info"), getEnv("APP_ENV", "production")); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.Config{
		DSN:      mustEnv("DATABASE_URL"),
		MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
	})
	if err != nil {
		logger.Fatal(ctx, "database connection failed", zap.Error(err))
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool,
		time.Duration(getEnvInt("STATEMENT_TIMEOUT_MS", 30000))*time.Millisecond)

	auditLog, err := postgres.NewAuditLog(pool)
	if err != nil {
		logger.Fatal(ctx, "audit log init failed", zap.Error(err))
	}

	rules, err := pricing.LoadRuleSet(os.Getenv("PRICING_RULES_PATH"))
	if err != nil {
		logger.Fatal(ctx, "pricing rules load failed", zap.Error(err))
	}
	engine := pricing.NewEngine(rules)
	exemptions := pricing.NewExemptionList(
		strings.Split(os.Getenv("FREIGHT_EXEMPT_CLIENTS"), ","))

	productRepo := catalogrepo.NewProductRepo(pool)
	clientRepo := catalogrepo.NewClientRepo(pool)
	quotationRepo := quotationrepo.New(pool)

	productSvc := product.NewService(productRepo, txManager)
	clientSvc := client.NewService(clientRepo, txManager)
	quotationSvc := quotation.NewService(
		quotationRepo, productRepo, clientRepo,
		engine, exemptions, txManager,
		numerator.New(postgres.PoolQuerier(pool)), auditLog)

	var freightSvc *freight.Service
	if apiURL := os.Getenv("FREIGHT_API_URL"); apiURL != "" {
		quoter := freight.NewClient(apiURL, os.Getenv("FREIGHT_API_TOKEN"),
			time.Duration(getEnvInt("FREIGHT_TIMEOUT_MS", 15000))*time.Millisecond)
		freightSvc = freight.NewService(quoter, productRepo, clientRepo,
			os.Getenv("FREIGHT_ORIGIN_POSTAL_CODE"))
	} else {
		logger.Warn(ctx, "FREIGHT_API_URL not set, freight quoting disabled")
	}

	router := v1.NewRouter(v1.RouterConfig{
		Pool:       pool,
		Products:   productSvc,
		Clients:    clientSvc,
		Quotations: quotationSvc,
		Freight:    freightSvc,
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Mode:       getEnv("GIN_MODE", "release"),
	})

	addr := getEnv("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown failed", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("missing required environment variable: " + key)
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
