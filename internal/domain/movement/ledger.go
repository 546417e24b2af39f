package movement

import (
	"movistock/internal/core/apperror"
)

// Ledger is the ordered collection of line items for one form.
// Invariants, held after every completed operation:
//   - positions form the dense range 1..Count()
//   - each item's Position equals its 1-based index in the sequence
//   - Count() >= 1 (the last remaining item cannot be removed)
type Ledger struct {
	items []LineItem
}

// NewLedger creates a ledger holding the initial single empty row.
func NewLedger() *Ledger {
	l := &Ledger{}
	l.Append()
	return l
}

// Append creates a new empty item at position Count()+1 and returns
// its position. The subtotal of a new row is computed immediately.
// There is no failure mode; growth is unbounded.
func (l *Ledger) Append() int {
	pos := len(l.items) + 1
	l.items = append(l.items, LineItem{
		Position: pos,
		Subtotal: Subtotal("", ""),
	})
	return pos
}

// RemoveAt removes the item at pos and reindexes the remainder so
// positions stay dense. Removing the last remaining item is refused
// with a LAST_ITEM error and the ledger is left untouched. Positions
// captured before a successful RemoveAt are stale and must be
// refreshed from Items().
func (l *Ledger) RemoveAt(pos int) error {
	if len(l.items) <= 1 {
		return apperror.NewLastItem()
	}
	if pos < 1 || pos > len(l.items) {
		return apperror.NewNotFound("line item", pos)
	}

	l.items = append(l.items[:pos-1], l.items[pos:]...)
	l.reindex()
	return nil
}

// reindex renumbers positions to match the 1-based sequence order.
// Only the Position tag changes; item data is preserved.
func (l *Ledger) reindex() {
	for i := range l.items {
		l.items[i].Position = i + 1
	}
}

// Get returns a copy of the item at pos.
func (l *Ledger) Get(pos int) (LineItem, error) {
	item, err := l.at(pos)
	if err != nil {
		return LineItem{}, err
	}
	return *item, nil
}

// at returns the mutable item at pos for in-package edits.
func (l *Ledger) at(pos int) (*LineItem, error) {
	if pos < 1 || pos > len(l.items) {
		return nil, apperror.NewNotFound("line item", pos)
	}
	return &l.items[pos-1], nil
}

// Items returns a snapshot of all items in position order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Count returns the number of items.
func (l *Ledger) Count() int {
	return len(l.items)
}
