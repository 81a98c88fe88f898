// Package domain holds the business layer: catalogs, pricing, and the
// quotation lifecycle. Repository interfaces are declared here and
// implemented under internal/infrastructure/storage.
package domain

import "context"

// ListFilter carries common list query parameters.
type ListFilter struct {
	// Search matches against code and name (catalogs) or number (documents).
	Search string

	// IncludeDeleted returns soft-deleted records as well.
	IncludeDeleted bool

	// Limit caps the page size. Zero means the server default.
	Limit int

	// Offset skips the first N records.
	Offset int

	// OrderBy is a whitelisted column name; empty means the default order.
	OrderBy string

	// OrderDesc reverses the sort direction.
	OrderDesc bool
}

// ListResult is a page of records plus the unpaged total.
type ListResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// CatalogRepository is the generic persistence contract for reference data.
type CatalogRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	GetByCode(ctx context.Context, code string) (*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) (*ListResult[T], error)
}
