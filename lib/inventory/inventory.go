// Package inventory cross-checks inventory accounts against the cash
// accounts that paid for the goods, detecting missing and mismatched
// entries.
package inventory

import (
	"fmt"
	"time"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// Account wraps a validated inventory account.
type Account struct {
	*ledger.Account
}

// New checks that the account is a usable inventory account.
func New(a *ledger.Account) (*Account, error) {
	if a.Settings.AccountType != ledger.InventoryType {
		return nil, fmt.Errorf("%s is not an inventory account", a.Name)
	}
	if len(a.Settings.InCategories) == 0 || len(a.Settings.OutCategories) == 0 {
		return nil, fmt.Errorf("%s has no inCategories/outCategories", a.Name)
	}
	if a.Settings.QtyKey == "" {
		return nil, fmt.Errorf("%s has no qtyKey", a.Name)
	}
	return &Account{Account: a}, nil
}

// IsLivestock reports whether this inventory tracks livestock: head counts
// growing at a rate of gain.
func (ia *Account) IsLivestock() bool {
	return !ia.Settings.ROG.IsZero()
}

// StartDate is the first day covered by reconciliation.
func (ia *Account) StartDate() time.Time {
	return date.Date(ia.Settings.StartYear, time.January, 1)
}

// Tracks reports whether the category belongs to this inventory.
func (ia *Account) Tracks(cat string) bool {
	return ledger.CategoryIn(cat, ia.Settings.InCategories) ||
		ledger.CategoryIn(cat, ia.Settings.OutCategories)
}

// Incoming reports whether the category adds to the inventory.
func (ia *Account) Incoming(cat string) bool {
	return ledger.CategoryIn(cat, ia.Settings.InCategories)
}

// LineQty extracts the stored quantity of an inventory line. Livestock
// sheets carry a qty column; other inventories keep the quantity in the
// note under the account's qtyKey.
func (ia *Account) LineQty(t *ledger.Tx) decimal.Decimal {
	if ia.IsLivestock() {
		if q, ok := ledger.ParseMoney(t.Raw["qty"]); ok {
			return q
		}
		return decimal.Zero
	}
	q, _ := t.Note.Decimal(ia.Settings.QtyKey)
	return q
}

// LineWeight extracts the stored weight of a livestock line.
func (ia *Account) LineWeight(t *ledger.Tx) decimal.Decimal {
	if w, ok := ledger.ParseMoney(t.Raw["weight"]); ok {
		return w
	}
	return decimal.Zero
}
