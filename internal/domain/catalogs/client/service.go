package client

import (
	"context"

	"packquote/internal/core/apperror"
	"packquote/internal/core/tx"
	"packquote/internal/domain"
)

// Repository is the client persistence contract. On top of the generic
// catalog CRUD it answers tax-document uniqueness checks.
type Repository interface {
	domain.CatalogRepository[Client]

	// ExistsByTaxDocument reports whether another client already carries
	// the given tax document for the same invoicing entity.
	ExistsByTaxDocument(ctx context.Context, taxDocument, defaultEntity, excludeID string) (bool, error)
}

// Service manages the client directory.
type Service struct {
	*domain.CatalogService[Client, *Client]

	repo Repository
}

// NewService creates the client directory service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[Client, *Client](repo, txManager, "client"),
		repo:           repo,
	}
}

// Create rejects a duplicate tax document before delegating to the
// generic catalog create.
func (s *Service) Create(ctx context.Context, c *Client) (*Client, error) {
	if err := s.checkTaxDocument(ctx, c); err != nil {
		return nil, err
	}
	return s.CatalogService.Create(ctx, c)
}

// Update rejects a duplicate tax document before delegating.
func (s *Service) Update(ctx context.Context, c *Client) (*Client, error) {
	if err := s.checkTaxDocument(ctx, c); err != nil {
		return nil, err
	}
	return s.CatalogService.Update(ctx, c)
}

// checkTaxDocument enforces tax-document uniqueness per invoicing
// entity. Clients without a tax document coexist freely; the partial
// unique index is the race backstop behind this pre-check.
func (s *Service) checkTaxDocument(ctx context.Context, c *Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.TaxDocument == "" {
		return nil
	}
	exists, err := s.repo.ExistsByTaxDocument(ctx, c.TaxDocument, c.DefaultEntity, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("client", "tax_document", c.TaxDocument)
	}
	return nil
}
