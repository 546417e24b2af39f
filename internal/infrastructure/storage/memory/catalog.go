// Package memory provides seeded in-memory catalog repositories used
// when the service runs without a database.
package memory

import (
	"context"

	"movistock/internal/domain/catalogs/product"
	"movistock/internal/domain/catalogs/unit"
)

// ProductRepo implements product.Repository over a fixed seed catalog.
type ProductRepo struct {
	products []product.Product
}

// NewProductRepo creates a product repository seeded with the default
// pharmacy catalog.
func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		products: []product.Product{
			{ID: "1", Name: "Paracetamol 500mg"},
			{ID: "2", Name: "Dipyrone 500mg"},
			{ID: "3", Name: "Amoxicillin 500mg"},
			{ID: "4", Name: "Omeprazole 20mg"},
			{ID: "5", Name: "Losartan 50mg"},
		},
	}
}

var _ product.Repository = (*ProductRepo)(nil)

// List implements product.Repository.
func (r *ProductRepo) List(ctx context.Context) ([]product.Product, error) {
	out := make([]product.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Exists implements product.Repository.
func (r *ProductRepo) Exists(ctx context.Context, productID string) (bool, error) {
	for _, p := range r.products {
		if p.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

// UnitRepo implements unit.Repository over the fixed unit set.
type UnitRepo struct {
	units []unit.Unit
}

// NewUnitRepo creates a unit repository seeded with the measurement
// units line items are counted in.
func NewUnitRepo() *UnitRepo {
	return &UnitRepo{
		units: []unit.Unit{
			{Code: "box", Name: "Box"},
			{Code: "unit", Name: "Unit"},
			{Code: "ampoule", Name: "Ampoule"},
			{Code: "bottle", Name: "Bottle"},
		},
	}
}

var _ unit.Repository = (*UnitRepo)(nil)

// List implements unit.Repository.
func (r *UnitRepo) List(ctx context.Context) ([]unit.Unit, error) {
	out := make([]unit.Unit, len(r.units))
	copy(out, r.units)
	return out, nil
}

// Exists implements unit.Repository.
func (r *UnitRepo) Exists(ctx context.Context, code string) (bool, error) {
	for _, u := range r.units {
		if u.Code == code {
			return true, nil
		}
	}
	return false, nil
}
