package catalogrepo

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"packquote/internal/domain/catalogs/product"
)

// NewProductRepo creates the product catalog repository.
func NewProductRepo(pool *pgxpool.Pool) product.Repository {
	return New[product.Product, *product.Product](pool, product.Product{}.TableName(), "product")
}
