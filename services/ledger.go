// Package services holds the charge letter domain: the item ledger, the
// letter content model, PDF layout, rendering and draft composition.
package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one billable entry. It is not modified after being added.
type LineItem struct {
	Description string
	Amount      decimal.Decimal
}

// Ledger is the ordered list of billable items for one letter session.
// It is not safe for concurrent use.
type Ledger struct {
	items []LineItem
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add validates and appends an item. On failure the ledger is unchanged.
func (l *Ledger) Add(description, rawAmount string) (LineItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return LineItem{}, newValidationError("description", "item name is required")
	}

	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return LineItem{}, err
	}

	item := LineItem{Description: description, Amount: amount}
	l.items = append(l.items, item)
	return item, nil
}

// RemoveAt removes and returns the item at index.
func (l *Ledger) RemoveAt(index int) (LineItem, error) {
	if index < 0 || index >= len(l.items) {
		return LineItem{}, &IndexError{Index: index, Len: len(l.items)}
	}

	removed := l.items[index]
	l.items = append(l.items[:index:index], l.items[index+1:]...)
	return removed, nil
}

// Total sums the current items.
func (l *Ledger) Total() decimal.Decimal {
	return SumItems(l.items)
}

// Items returns a copy of the items in insertion order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Clear removes every item.
func (l *Ledger) Clear() {
	l.items = nil
}

// SumItems returns the exact sum of the item amounts.
func SumItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
