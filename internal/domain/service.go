package domain

import (
	"context"

	"go.uber.org/zap"

	"packquote/internal/core/apperror"
	"packquote/internal/core/entity"
	"packquote/internal/core/id"
	"packquote/internal/core/tx"
	"packquote/pkg/logger"
)

// CatalogEntity is the constraint for reference data managed by CatalogService.
type CatalogEntity interface {
	entity.Validatable
	entity.Identifiable
}

// CatalogService implements shared CRUD orchestration for catalogs.
// Concrete services embed it and add domain-specific queries.
type CatalogService[T any, PT interface {
	*T
	CatalogEntity
}] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	name      string
}

// NewCatalogService creates a catalog service. name is used in errors and logs.
func NewCatalogService[T any, PT interface {
	*T
	CatalogEntity
}](repo CatalogRepository[T], txManager tx.Manager, name string) *CatalogService[T, PT] {
	return &CatalogService[T, PT]{repo: repo, txManager: txManager, name: name}
}

// Create validates the item, assigns an id and persists it.
func (s *CatalogService[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	p := PT(item)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.GetID() == "" {
		p.SetID(id.New())
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "catalog item created",
		zap.String("catalog", s.name),
		zap.String("id", p.GetID()))
	return item, nil
}

// GetByID loads one item; not-found is surfaced, never defaulted.
func (s *CatalogService[T, PT]) GetByID(ctx context.Context, itemID string) (*T, error) {
	if itemID == "" {
		return nil, apperror.NewValidation("id is required")
	}
	return s.repo.GetByID(ctx, itemID)
}

// GetByCode loads one item by business code.
func (s *CatalogService[T, PT]) GetByCode(ctx context.Context, code string) (*T, error) {
	if code == "" {
		return nil, apperror.NewValidation("code is required")
	}
	return s.repo.GetByCode(ctx, code)
}

// Update validates and persists changes with optimistic locking.
func (s *CatalogService[T, PT]) Update(ctx context.Context, item *T) (*T, error) {
	p := PT(item)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.GetID() == "" {
		return nil, apperror.NewValidation("id is required")
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "catalog item updated",
		zap.String("catalog", s.name),
		zap.String("id", p.GetID()))
	return item, nil
}

// Delete marks the item as deleted.
func (s *CatalogService[T, PT]) Delete(ctx context.Context, itemID string) error {
	if itemID == "" {
		return apperror.NewValidation("id is required")
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, itemID)
	})
}

// List returns a filtered page of items.
func (s *CatalogService[T, PT]) List(ctx context.Context, filter ListFilter) (*ListResult[T], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return s.repo.List(ctx, filter)
}
