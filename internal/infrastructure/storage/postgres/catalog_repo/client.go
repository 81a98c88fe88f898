package catalogrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"packquote/internal/domain/catalogs/client"
	"packquote/internal/infrastructure/storage/postgres"
)

// ClientRepo extends the generic catalog CRUD with directory-specific
// lookups.
type ClientRepo struct {
	*BaseRepo[client.Client, *client.Client]
}

var _ client.Repository = (*ClientRepo)(nil)

// NewClientRepo creates the client directory repository.
func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{
		BaseRepo: New[client.Client, *client.Client](pool, client.Client{}.TableName(), "client"),
	}
}

// ExistsByTaxDocument checks tax-document uniqueness per invoicing
// entity among live records. The partial unique index enforces it too;
// this pre-check turns the race loser into a clean duplicate error.
func (r *ClientRepo) ExistsByTaxDocument(ctx context.Context, taxDocument, defaultEntity, excludeID string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM cat_clients
		WHERE tax_document = $1 AND default_entity = $2
		  AND deletion_mark = FALSE AND id <> $3
	)`
	var exists bool
	if err := r.querier(ctx).QueryRow(ctx, query, taxDocument, defaultEntity, excludeID).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "client")
	}
	return exists, nil
}
