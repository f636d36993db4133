package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrItemNotFound  = errors.New("inventory item not found")
	ErrStockConflict = errors.New("stock changed concurrently, retries exhausted")
)

// ItemFailure is a stock write that did not land.
type ItemFailure struct {
	ItemID string
	Err    error
}

// Oversell records an item whose stock was already below the purchased
// quantity at write time. Stock is clamped to zero.
type Oversell struct {
	ItemID    string
	Requested int
	Available int
}

// ReconcileError reports a post-commit inventory update that did not fully
// succeed. The committed order is not affected.
type ReconcileError struct {
	Failures []ItemFailure
	Oversold []Oversell
}

func (e *ReconcileError) Error() string {
	parts := make([]string, 0, len(e.Failures)+len(e.Oversold))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.ItemID, f.Err))
	}
	for _, o := range e.Oversold {
		parts = append(parts, fmt.Sprintf("%s: oversold (requested %d, available %d)", o.ItemID, o.Requested, o.Available))
	}
	return "inventory reconciliation incomplete: " + strings.Join(parts, "; ")
}

// ItemIDs lists every affected item, failures first.
func (e *ReconcileError) ItemIDs() []string {
	ids := make([]string, 0, len(e.Failures)+len(e.Oversold))
	for _, f := range e.Failures {
		ids = append(ids, f.ItemID)
	}
	for _, o := range e.Oversold {
		ids = append(ids, o.ItemID)
	}
	return ids
}
