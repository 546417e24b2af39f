package dto

import (
	"movistock/internal/domain/catalogs/product"
	"movistock/internal/domain/catalogs/unit"
)

// ProductResponse is one product catalog entry.
type ProductResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FromProducts maps catalog products to the API shape.
func FromProducts(products []product.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductResponse{ID: p.ID, Name: p.Name}
	}
	return out
}

// UnitResponse is one unit catalog entry.
type UnitResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FromUnits maps catalog units to the API shape.
func FromUnits(units []unit.Unit) []UnitResponse {
	out := make([]UnitResponse, len(units))
	for i, u := range units {
		out[i] = UnitResponse{Code: u.Code, Name: u.Name}
	}
	return out
}
