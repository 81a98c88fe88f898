// Package v1 assembles the HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"packquote/internal/domain/catalogs/client"
	"packquote/internal/domain/catalogs/product"
	"packquote/internal/domain/freight"
	"packquote/internal/domain/quotation"
	"packquote/internal/infrastructure/http/v1/dto"
	"packquote/internal/infrastructure/http/v1/handlers"
	"packquote/internal/infrastructure/http/v1/middleware"
)

// RouterConfig carries everything the API needs.
type RouterConfig struct {
	Pool       *pgxpool.Pool
	Products   *product.Service
	Clients    *client.Service
	Quotations *quotation.Service
	Freight    *freight.Service

	// JWTSecret enables bearer authentication when non-empty.
	JWTSecret string

	// Mode is the gin mode: debug, release or test.
	Mode string
}

// NewRouter builds the gin engine with the full middleware chain and
// all v1 routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.Logger(),
		middleware.ErrorHandler(),
	)

	engine.GET("/health", handlers.NewHealthHandler(cfg.Pool).Check)

	api := engine.Group("/api/v1")
	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}

	productHandler := handlers.NewCatalogHandler[product.Product](
		cfg.Products,
		func(req dto.CreateProductRequest) *product.Product { return req.ToEntity() },
		func(req dto.UpdateProductRequest, p *product.Product) { req.ApplyTo(p) },
	)
	productHandler.Register(api, "/products")

	clientHandler := handlers.NewCatalogHandler[client.Client](
		cfg.Clients,
		func(req dto.CreateClientRequest) *client.Client { return req.ToEntity() },
		func(req dto.UpdateClientRequest, c *client.Client) { req.ApplyTo(c) },
	)
	clientHandler.Register(api, "/clients")

	handlers.NewQuotationHandler(cfg.Quotations, cfg.Freight).Register(api)

	return engine
}
