package quotation

import (
	"context"
	"time"

	"packquote/internal/domain"
)

// ListFilter extends the common filter with quotation-specific criteria.
type ListFilter struct {
	domain.ListFilter

	Status   Status
	ClientID string
	DateFrom *time.Time
	DateTo   *time.Time
}

// StatusCount is one bucket of the status breakdown report.
type StatusCount struct {
	Status Status `json:"status" db:"status"`
	Count  int64  `json:"count" db:"count"`
}

// Repository is the transactional persistence contract for the aggregate.
// Create and UpdateItems are always invoked inside a transaction opened
// by the service; implementations join it through the context.
type Repository interface {
	// Create persists the root and then its items (two explicit phases,
	// same transaction).
	Create(ctx context.Context, q *Quotation) error

	// GetByID loads the root with all its items.
	GetByID(ctx context.Context, id string) (*Quotation, error)

	// Update persists root scalar fields and totals with optimistic
	// locking on the version column.
	Update(ctx context.Context, q *Quotation) error

	// UpdateItems rewrites the priced fields of existing items after a
	// tax recompute.
	UpdateItems(ctx context.Context, quotationID string, items []Item) error

	// Delete removes the root, cascading to items.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter ListFilter) (*domain.ListResult[Quotation], error)

	// CountByStatus breaks quotation counts down by status within an
	// optional creation-date range.
	CountByStatus(ctx context.Context, from, to *time.Time) ([]StatusCount, error)

	// ExistsByManualNumber reports whether another quotation already
	// carries the given non-empty manual order number.
	ExistsByManualNumber(ctx context.Context, number, excludeID string) (bool, error)
}
