// Package catalog_repo implements catalog repositories over PostgreSQL.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"movistock/internal/domain/catalogs/product"
	"movistock/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepo creates a new product repository.
func NewProductRepo(pool *postgres.Pool) *ProductRepo {
	return &ProductRepo{pool: pool.Pool}
}

var _ product.Repository = (*ProductRepo)(nil)

// List retrieves all products in catalog order.
func (r *ProductRepo) List(ctx context.Context) ([]product.Product, error) {
	sql, args, err := qb.Select("id", "name").
		From(productTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []product.Product
	if err := pgxscan.Select(ctx, r.pool, &products, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Exists reports whether a product ID is in the catalog.
func (r *ProductRepo) Exists(ctx context.Context, productID string) (bool, error) {
	sql, args, err := qb.Select("1").
		From(productTable).
		Where(squirrel.Eq{"id": productID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	if err := pgxscan.Get(ctx, r.pool, &one, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check product: %w", err)
	}
	return true, nil
}
