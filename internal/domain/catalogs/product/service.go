package product

import (
	"packquote/internal/core/tx"
	"packquote/internal/domain"
)

// Repository is the product persistence contract.
type Repository = domain.CatalogRepository[Product]

// Service manages the product catalog.
type Service struct {
	*domain.CatalogService[Product, *Product]
}

// NewService creates the product catalog service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[Product, *Product](repo, txManager, "product"),
	}
}
