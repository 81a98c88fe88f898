// Package quotationrepo implements the quotation aggregate persistence:
// explicit two-phase writes for the root and its items inside the
// caller's transaction.
package quotationrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"packquote/internal/core/apperror"
	"packquote/internal/domain"
	"packquote/internal/domain/quotation"
	"packquote/internal/infrastructure/storage/postgres"
)

const itemsTable = "doc_quotation_items"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo implements quotation.Repository.
type Repo struct {
	pool        *pgxpool.Pool
	table       string
	rootColumns []string
	itemColumns []string
}

var _ quotation.Repository = (*Repo)(nil)

// New creates the quotation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool:        pool,
		table:       quotation.Quotation{}.TableName(),
		rootColumns: postgres.ExtractDBColumns[quotation.Quotation](),
		itemColumns: postgres.ExtractDBColumns[quotation.Item](),
	}
}

func (r *Repo) querier(ctx context.Context) postgres.Querier {
	return postgres.QuerierFrom(ctx, r.pool)
}

// Create persists the root first, then every item. Both phases run in
// the ambient transaction so a failed item insert voids the root too.
func (r *Repo) Create(ctx context.Context, q *quotation.Quotation) error {
	q.Version = 1
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	values := postgres.StructToMap(q)
	query, args, err := psql.Insert(r.table).SetMap(values).ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build insert: %w", err))
	}
	if _, err := r.querier(ctx).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "quotation")
	}

	for i := range q.Items {
		item := &q.Items[i]
		item.QuotationID = q.ID
		itemQuery, itemArgs, err := psql.Insert(itemsTable).
			SetMap(postgres.StructToMap(item)).
			ToSql()
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("build item insert: %w", err))
		}
		if _, err := r.querier(ctx).Exec(ctx, itemQuery, itemArgs...); err != nil {
			return postgres.MapError(err, "quotation_item")
		}
	}
	return nil
}

// GetByID loads the root with all its items, in creation order.
func (r *Repo) GetByID(ctx context.Context, id string) (*quotation.Quotation, error) {
	query, args, err := psql.Select(r.rootColumns...).
		From(r.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build select: %w", err))
	}

	var q quotation.Quotation
	if err := pgxscan.Get(ctx, r.querier(ctx), &q, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("quotation", id)
		}
		return nil, postgres.MapError(err, "quotation")
	}

	// UUIDv7 item ids are time-ordered, so id order is creation order.
	itemQuery, itemArgs, err := psql.Select(r.itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"quotation_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build items select: %w", err))
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &q.Items, itemQuery, itemArgs...); err != nil {
		return nil, postgres.MapError(err, "quotation_item")
	}
	return &q, nil
}

// Update persists root scalar fields guarded by the version column.
func (r *Repo) Update(ctx context.Context, q *quotation.Quotation) error {
	currentVersion := q.Version
	q.Version = currentVersion + 1
	q.UpdatedAt = time.Now()

	values := postgres.StructToMap(q)
	delete(values, "id")
	delete(values, "created_at")

	query, args, err := psql.Update(r.table).
		SetMap(values).
		Where(sq.Eq{"id": q.ID, "version": currentVersion}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build update: %w", err))
	}

	tag, err := r.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		q.Version = currentVersion
		return postgres.MapError(err, "quotation")
	}
	if tag.RowsAffected() == 0 {
		q.Version = currentVersion
		if _, err := r.GetByID(ctx, q.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("quotation", q.ID)
	}
	return nil
}

// UpdateItems rewrites the priced fields of existing items.
func (r *Repo) UpdateItems(ctx context.Context, quotationID string, items []quotation.Item) error {
	for i := range items {
		item := &items[i]
		query, args, err := psql.Update(itemsTable).
			Set("subtotal", item.Subtotal).
			Set("tax_amount", item.TaxAmount).
			Set("tax_rate", item.TaxRate).
			Set("unit_price_ex_tax", item.UnitPriceExTax).
			Where(sq.Eq{"id": item.ID, "quotation_id": quotationID}).
			ToSql()
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("build item update: %w", err))
		}
		if _, err := r.querier(ctx).Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "quotation_item")
		}
	}
	return nil
}

// Delete removes items first, then the root.
func (r *Repo) Delete(ctx context.Context, id string) error {
	itemQuery, itemArgs, err := psql.Delete(itemsTable).
		Where(sq.Eq{"quotation_id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build items delete: %w", err))
	}
	if _, err := r.querier(ctx).Exec(ctx, itemQuery, itemArgs...); err != nil {
		return postgres.MapError(err, "quotation_item")
	}

	query, args, err := psql.Delete(r.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build delete: %w", err))
	}
	tag, err := r.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "quotation")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("quotation", id)
	}
	return nil
}

// List returns a page of roots without items; callers needing lines
// load them through GetByID.
func (r *Repo) List(ctx context.Context, filter quotation.ListFilter) (*domain.ListResult[quotation.Quotation], error) {
	base := psql.Select().From(r.table)
	if filter.Status != "" {
		base = base.Where(sq.Eq{"status": filter.Status})
	}
	if filter.ClientID != "" {
		base = base.Where(sq.Eq{"client_id": filter.ClientID})
	}
	if filter.DateFrom != nil {
		base = base.Where(sq.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		base = base.Where(sq.LtOrEq{"created_at": *filter.DateTo})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"number": pattern},
			sq.ILike{"manual_order_number": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build count: %w", err))
	}
	var total int64
	if err := r.querier(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, postgres.MapError(err, "quotation")
	}

	page := base.Columns(r.rootColumns...).OrderBy("date DESC", "number DESC")
	if filter.Limit > 0 {
		page = page.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		page = page.Offset(uint64(filter.Offset))
	}

	query, args, err := page.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build list: %w", err))
	}
	var items []quotation.Quotation
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, query, args...); err != nil {
		return nil, postgres.MapError(err, "quotation")
	}
	return &domain.ListResult[quotation.Quotation]{Items: items, Total: total}, nil
}

// CountByStatus reports counts per status within an optional
// creation-date range.
func (r *Repo) CountByStatus(ctx context.Context, from, to *time.Time) ([]quotation.StatusCount, error) {
	base := psql.Select("status", "COUNT(*) AS count").
		From(r.table).
		GroupBy("status").
		OrderBy("status")
	if from != nil {
		base = base.Where(sq.GtOrEq{"created_at": *from})
	}
	if to != nil {
		base = base.Where(sq.LtOrEq{"created_at": *to})
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build count by status: %w", err))
	}
	var counts []quotation.StatusCount
	if err := pgxscan.Select(ctx, r.querier(ctx), &counts, query, args...); err != nil {
		return nil, postgres.MapError(err, "quotation")
	}
	return counts, nil
}

// ExistsByManualNumber checks manual-number uniqueness among non-empty
// values. The partial unique index enforces it too; this pre-check
// turns the race loser into a clean duplicate error.
func (r *Repo) ExistsByManualNumber(ctx context.Context, number, excludeID string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM doc_quotations
		WHERE manual_order_number = $1 AND id <> $2
	)`
	var exists bool
	if err := r.querier(ctx).QueryRow(ctx, query, number, excludeID).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "quotation")
	}
	return exists, nil
}
