// Package movement provides the stock movement form: a dynamic table of
// line items with derived totals, movement-type dependent field groups
// and pre-submission validation.
package movement

import (
	"context"
	"time"

	"movistock/internal/core/apperror"
	"movistock/internal/core/types"
)

// Type classifies a movement as stock-in or stock-out.
type Type string

const (
	TypeNone Type = "none"
	TypeIn   Type = "in"
	TypeOut  Type = "out"
)

// ParseType maps raw input to a movement type.
// Unrecognized values behave as TypeNone.
func ParseType(raw string) Type {
	switch Type(raw) {
	case TypeIn:
		return TypeIn
	case TypeOut:
		return TypeOut
	default:
		return TypeNone
	}
}

// FieldVisibility tells the presentation layer which optional field
// groups are active for the current movement type.
type FieldVisibility struct {
	// InvoiceGroup covers invoice number and supplier (stock-in only)
	InvoiceGroup bool `json:"invoiceGroup"`

	// ExitReasonGroup covers the exit reason (stock-out only)
	ExitReasonGroup bool `json:"exitReasonGroup"`
}

// VisibilityFor returns the field groups active for a movement type.
// Transitions are total: every input maps to exactly one state.
func VisibilityFor(t Type) FieldVisibility {
	switch t {
	case TypeIn:
		return FieldVisibility{InvoiceGroup: true}
	case TypeOut:
		return FieldVisibility{ExitReasonGroup: true}
	default:
		return FieldVisibility{}
	}
}

// Editable line item fields, as named by the presentation layer.
const (
	FieldProduct   = "product"
	FieldLot       = "lot"
	FieldExpiry    = "expiry"
	FieldQuantity  = "quantity"
	FieldUnit      = "unit"
	FieldUnitPrice = "unitPrice"
)

// LineItem represents one row of the movement table.
// Position is both identity and display order: 1-based, dense, unique.
// Quantity and UnitPrice keep the raw input; parsing happens at
// computation time so non-numeric input coerces to zero instead of
// failing. Subtotal is derived and never independently settable.
type LineItem struct {
	Position   int         `json:"position"`
	ProductID  string      `json:"productId"`
	LotCode    string      `json:"lotCode"`
	ExpiryDate string      `json:"expiryDate"`
	Quantity   string      `json:"quantity"`
	Unit       string      `json:"unit"`
	UnitPrice  string      `json:"unitPrice"`
	Subtotal   types.Money `json:"subtotal"`
}

// MovementForm is one form session's state: header fields plus the
// line item ledger and the derived grand total.
type MovementForm struct {
	// Date is the movement timestamp as entered ("2006-01-02T15:04"),
	// initialized to the current time when the session opens.
	Date string `json:"date"`

	Type Type `json:"movementType"`

	// Stock-in fields (active only for TypeIn)
	InvoiceNumber string `json:"invoiceNumber"`
	Supplier      string `json:"supplier"`

	// Stock-out field (active only for TypeOut)
	ExitReason string `json:"exitReason"`

	// Items is the line item ledger. Never empty.
	Items *Ledger `json:"items"`

	// Total is derived: sum of all subtotals, rounded to 2 decimals.
	Total types.Money `json:"total"`
}

// DateLayout is the format of the movement timestamp.
const DateLayout = "2006-01-02T15:04"

// NewForm creates a form with one empty row, no movement type selected
// and the date set to now.
func NewForm(now time.Time) *MovementForm {
	f := &MovementForm{
		Date:  now.Format(DateLayout),
		Type:  TypeNone,
		Items: NewLedger(),
	}
	f.recalcTotal()
	return f
}

// SetType changes the movement type and returns the resulting field
// visibility. Unrecognized input falls back to TypeNone.
func (f *MovementForm) SetType(raw string) FieldVisibility {
	f.Type = ParseType(raw)
	return f.Visibility()
}

// Visibility returns the field groups active for the current type.
func (f *MovementForm) Visibility() FieldVisibility {
	return VisibilityFor(f.Type)
}

// AddItem appends an empty row and returns its position.
func (f *MovementForm) AddItem() int {
	pos := f.Items.Append()
	f.recalcTotal()
	return pos
}

// RemoveItem removes the row at pos. The remaining rows are reindexed
// to a dense 1..N range and the total is recomputed before returning,
// so no stale position or total is ever observable.
func (f *MovementForm) RemoveItem(pos int) error {
	if err := f.Items.RemoveAt(pos); err != nil {
		return err
	}
	f.recalcTotal()
	return nil
}

// SetItemField applies a single field edit to the row at pos.
// Editing quantity or unit price recomputes the row subtotal and then
// the total, synchronously. Returns the updated row.
func (f *MovementForm) SetItemField(pos int, field, value string) (LineItem, error) {
	item, err := f.Items.at(pos)
	if err != nil {
		return LineItem{}, err
	}

	switch field {
	case FieldProduct:
		item.ProductID = value
	case FieldLot:
		item.LotCode = value
	case FieldExpiry:
		item.ExpiryDate = value
	case FieldQuantity:
		item.Quantity = value
		item.Subtotal = Subtotal(item.Quantity, item.UnitPrice)
	case FieldUnitPrice:
		item.UnitPrice = value
		item.Subtotal = Subtotal(item.Quantity, item.UnitPrice)
	case FieldUnit:
		item.Unit = value
	default:
		return LineItem{}, apperror.NewValidation("unknown item field").
			WithDetail("field", field)
	}

	f.recalcTotal()
	return *item, nil
}

// recalcTotal updates the grand total from the current ledger state.
func (f *MovementForm) recalcTotal() {
	f.Total = Total(f.Items.Items())
}

// Validate checks the form before submission. Checks run in order and
// stop at the first failure; each failure carries a distinct message
// and no partial submit happens.
func (f *MovementForm) Validate(ctx context.Context) error {
	if f.Type == TypeNone {
		return apperror.NewValidation("select a movement type").
			WithDetail("field", "movementType")
	}

	switch f.Type {
	case TypeIn:
		if f.InvoiceNumber == "" {
			return apperror.NewValidation("invoice number is required").
				WithDetail("field", "invoiceNumber")
		}
		if f.Supplier == "" {
			return apperror.NewValidation("supplier is required").
				WithDetail("field", "supplier")
		}
	case TypeOut:
		if f.ExitReason == "" {
			return apperror.NewValidation("exit reason is required").
				WithDetail("field", "exitReason")
		}
	}

	for _, item := range f.Items.Items() {
		if item.ProductID == "" || item.LotCode == "" || item.ExpiryDate == "" || item.Quantity == "" {
			return apperror.NewValidation("fill in all required item fields").
				WithDetail("position", item.Position)
		}
	}

	return nil
}
