// Package catalogrepo implements generic Postgres persistence for
// catalogs. Concrete repositories are thin specializations.
package catalogrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"packquote/internal/core/apperror"
	"packquote/internal/core/entity"
	"packquote/internal/domain"
	"packquote/internal/infrastructure/storage/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// BaseRepo is the generic CRUD implementation over one catalog table.
type BaseRepo[T any, PT interface {
	*T
	entity.Identifiable
	entity.Versioned
}] struct {
	pool    *pgxpool.Pool
	table   string
	name    string
	columns []string
}

// New creates a catalog repository for the given table. name appears in
// error messages.
func New[T any, PT interface {
	*T
	entity.Identifiable
	entity.Versioned
}](pool *pgxpool.Pool, table, name string) *BaseRepo[T, PT] {
	return &BaseRepo[T, PT]{
		pool:    pool,
		table:   table,
		name:    name,
		columns: postgres.ExtractDBColumns[T](),
	}
}

func (r *BaseRepo[T, PT]) querier(ctx context.Context) postgres.Querier {
	return postgres.QuerierFrom(ctx, r.pool)
}

// Create inserts a new record with version 1.
func (r *BaseRepo[T, PT]) Create(ctx context.Context, item *T) error {
	p := PT(item)
	p.SetVersion(1)

	now := time.Now()
	values := postgres.StructToMap(item)
	values["created_at"] = now
	values["updated_at"] = now

	query, args, err := psql.Insert(r.table).SetMap(values).ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build insert: %w", err))
	}
	if _, err := r.querier(ctx).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, r.name)
	}
	return nil
}

// GetByID loads one record by primary key.
func (r *BaseRepo[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.getBy(ctx, sq.Eq{"id": id}, id)
}

// GetByCode loads one record by business code.
func (r *BaseRepo[T, PT]) GetByCode(ctx context.Context, code string) (*T, error) {
	return r.getBy(ctx, sq.Eq{"code": code}, code)
}

func (r *BaseRepo[T, PT]) getBy(ctx context.Context, where sq.Eq, key any) (*T, error) {
	query, args, err := psql.Select(r.columns...).From(r.table).Where(where).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build select: %w", err))
	}

	var item T
	if err := pgxscan.Get(ctx, r.querier(ctx), &item, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.name, key)
		}
		return nil, postgres.MapError(err, r.name)
	}
	return &item, nil
}

// Update persists changes guarded by the version column. A zero row
// count means either a concurrent modification or a missing record.
func (r *BaseRepo[T, PT]) Update(ctx context.Context, item *T) error {
	p := PT(item)
	currentVersion := p.GetVersion()
	p.SetVersion(currentVersion + 1)

	values := postgres.StructToMap(item)
	delete(values, "id")
	delete(values, "created_at")
	values["updated_at"] = time.Now()

	query, args, err := psql.Update(r.table).
		SetMap(values).
		Where(sq.Eq{"id": p.GetID(), "version": currentVersion}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build update: %w", err))
	}

	tag, err := r.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		p.SetVersion(currentVersion)
		return postgres.MapError(err, r.name)
	}
	if tag.RowsAffected() == 0 {
		p.SetVersion(currentVersion)
		if _, err := r.GetByID(ctx, p.GetID()); err != nil {
			return err
		}
		return apperror.NewConcurrentModification(r.name, p.GetID())
	}
	return nil
}

// Delete sets the deletion mark; records are never physically removed.
func (r *BaseRepo[T, PT]) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Update(r.table).
		Set("deletion_mark", true).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build delete: %w", err))
	}

	tag, err := r.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, r.name)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.name, id)
	}
	return nil
}

// List returns a filtered page plus the unpaged total.
func (r *BaseRepo[T, PT]) List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[T], error) {
	base := psql.Select().From(r.table)
	if !filter.IncludeDeleted {
		base = base.Where(sq.Eq{"deletion_mark": false})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"code": pattern},
			sq.ILike{"name": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build count: %w", err))
	}
	var total int64
	if err := r.querier(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, postgres.MapError(err, r.name)
	}

	orderBy := "code"
	if filter.OrderBy != "" && r.hasColumn(filter.OrderBy) {
		orderBy = filter.OrderBy
	}
	if filter.OrderDesc {
		orderBy += " DESC"
	}

	page := base.Columns(r.columns...).OrderBy(orderBy)
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

	var items []T
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, query, args...); err != nil {
		return nil, postgres.MapError(err, r.name)
	}
	return &domain.ListResult[T]{Items: items, Total: total}, nil
}

func (r *BaseRepo[T, PT]) hasColumn(name string) bool {
	for _, col := range r.columns {
		if col == name {
			return true
		}
	}
	return false
}
