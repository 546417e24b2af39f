// Package unit provides the measurement unit catalog for line items.
package unit

// Unit represents a measurement unit a line item quantity is counted in.
type Unit struct {
	// Code is the token stored on line items (e.g. "box")
	Code string `db:"code" json:"code"`

	// Name is the display name (e.g. "Box")
	Name string `db:"name" json:"name"`
}
