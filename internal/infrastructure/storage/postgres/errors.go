package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"packquote/internal/core/apperror"
)

// Postgres error codes mapped to the application taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MapError converts low-level pgx errors into AppError values. Unique
// violations become duplicates, foreign-key violations conflicts, and
// everything else a persistence failure.
func MapError(err error, entityName string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(entityName, pgErr.ConstraintName, "").WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewConflict("record is referenced by other documents").WithCause(err)
		}
	}
	return apperror.NewDatabase(err)
}
