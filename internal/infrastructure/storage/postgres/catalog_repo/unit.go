package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"movistock/internal/domain/catalogs/unit"
	"movistock/internal/infrastructure/storage/postgres"
)

const unitTable = "cat_units"

// UnitRepo implements unit.Repository.
type UnitRepo struct {
	pool *pgxpool.Pool
}

// NewUnitRepo creates a new unit repository.
func NewUnitRepo(pool *postgres.Pool) *UnitRepo {
	return &UnitRepo{pool: pool.Pool}
}

var _ unit.Repository = (*UnitRepo)(nil)

// List retrieves all units in catalog order.
func (r *UnitRepo) List(ctx context.Context) ([]unit.Unit, error) {
	sql, args, err := qb.Select("code", "name").
		From(unitTable).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var units []unit.Unit
	if err := pgxscan.Select(ctx, r.pool, &units, sql, args...); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// Exists reports whether a unit code is in the catalog.
func (r *UnitRepo) Exists(ctx context.Context, code string) (bool, error) {
	sql, args, err := qb.Select("1").
		From(unitTable).
		Where(squirrel.Eq{"code": code}).
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
		return false, fmt.Errorf("check unit: %w", err)
	}
	return true, nil
}
