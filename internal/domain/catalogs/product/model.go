// Package product provides the product catalog consumed by the
// movement form. The form treats product IDs as opaque tokens; this
// catalog owns their definitions.
package product

// Product represents one catalog entry.
type Product struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
