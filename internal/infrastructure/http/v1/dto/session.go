// Package dto defines request and response shapes for the v1 API.
package dto

import (
	"movistock/internal/domain/movement"
)

// ItemResponse is one line item row. Subtotal is formatted with two
// decimal places, as displayed.
type ItemResponse struct {
	Position   int    `json:"position"`
	ProductID  string `json:"productId"`
	LotCode    string `json:"lotCode"`
	ExpiryDate string `json:"expiryDate"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
	UnitPrice  string `json:"unitPrice"`
	Subtotal   string `json:"subtotal"`
}

// SessionResponse is a full form session snapshot.
type SessionResponse struct {
	ID            string                   `json:"id"`
	Date          string                   `json:"date"`
	MovementType  string                   `json:"movementType"`
	InvoiceNumber string                   `json:"invoiceNumber"`
	Supplier      string                   `json:"supplier"`
	ExitReason    string                   `json:"exitReason"`
	Visibility    movement.FieldVisibility `json:"visibility"`
	Items         []ItemResponse           `json:"items"`
	Total         string                   `json:"total"`
}

// FromSnapshot maps a movement snapshot to the API shape.
func FromSnapshot(snap movement.Snapshot) SessionResponse {
	items := make([]ItemResponse, len(snap.Items))
	for i, item := range snap.Items {
		items[i] = fromItem(item)
	}

	return SessionResponse{
		ID:            snap.SessionID.String(),
		Date:          snap.Date,
		MovementType:  string(snap.Type),
		InvoiceNumber: snap.InvoiceNumber,
		Supplier:      snap.Supplier,
		ExitReason:    snap.ExitReason,
		Visibility:    snap.Visibility,
		Items:         items,
		Total:         snap.Total.StringFixed(2),
	}
}

func fromItem(item movement.LineItem) ItemResponse {
	return ItemResponse{
		Position:   item.Position,
		ProductID:  item.ProductID,
		LotCode:    item.LotCode,
		ExpiryDate: item.ExpiryDate,
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		UnitPrice:  item.UnitPrice,
		Subtotal:   item.Subtotal.StringFixed(2),
	}
}

// UpdateHeaderRequest carries header field changes. Absent fields are
// left untouched.
type UpdateHeaderRequest struct {
	MovementType  *string `json:"movementType"`
	InvoiceNumber *string `json:"invoiceNumber"`
	Supplier      *string `json:"supplier"`
	ExitReason    *string `json:"exitReason"`
	Date          *string `json:"date"`
}

// ToPatch maps the request to a domain header patch.
func (r UpdateHeaderRequest) ToPatch() movement.HeaderPatch {
	return movement.HeaderPatch{
		MovementType:  r.MovementType,
		InvoiceNumber: r.InvoiceNumber,
		Supplier:      r.Supplier,
		ExitReason:    r.ExitReason,
		Date:          r.Date,
	}
}

// UpdateItemRequest is a single item field edit.
type UpdateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ItemUpdateResponse is the result of an item field edit: the updated
// row plus the recomputed grand total.
type ItemUpdateResponse struct {
	Item  ItemResponse `json:"item"`
	Total string       `json:"total"`
}

// FromItemUpdate maps a domain item update to the API shape.
func FromItemUpdate(update movement.ItemUpdate) ItemUpdateResponse {
	return ItemUpdateResponse{
		Item:  fromItem(update.Item),
		Total: update.Total.StringFixed(2),
	}
}

// SubmitResponse acknowledges a successful submission.
type SubmitResponse struct {
	MovementID string `json:"movementId"`
	Message    string `json:"message"`
}
