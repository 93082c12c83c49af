package inventory

import (
	"fmt"
	"time"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// ExpectedTx is the inventory transaction a cash line should correspond to.
type ExpectedTx struct {
	Date     time.Time
	Category string
	Amount   decimal.Decimal
	Qty      decimal.Decimal
	Weight   decimal.Decimal
	Note     ledger.Note
	// Lineno is where the missing entry belongs in the inventory sheet.
	Lineno int
	// Src is the cash line this expectation was derived from. Synthetic
	// livestock entries (dead, dailygain) have no source.
	Src *ledger.Tx
}

// Mismatch pairs an inventory line with the cash-derived expectation it
// matches on date and category but diverges from in amount, qty or weight.
type Mismatch struct {
	Ivty     *ledger.Tx
	Expected ExpectedTx
}

// MissingResult is the reconciliation report.
type MissingResult struct {
	// MissingInCash holds inventory entries with no matching cash entry.
	MissingInCash []*ledger.Tx
	// MissingInIvty holds cash-derived entries absent from the inventory.
	MissingInIvty []ExpectedTx
	// PresentInBothButWrong holds same-day same-category pairs whose
	// amounts or quantities diverge.
	PresentInBothButWrong []Mismatch
}

// FindMissingTx diffs the independently maintained inventory and cash
// ledgers. Both sides are filtered to the account's start year, to dates up
// to today and to tracked categories; every cash line is turned into the
// inventory entry it implies, and the two sets are matched.
func FindMissingTx(ia *Account, cashAccts []*ledger.Account, today time.Time) (*MissingResult, error) {
	if today.IsZero() {
		today = date.Today()
	}
	start := ia.StartDate()

	var ivty []*ledger.Tx
	for _, t := range ia.Lines {
		if t.Date.Before(start) || t.Date.After(today) || !ia.Tracks(t.Category) {
			continue
		}
		ivty = append(ivty, t)
	}
	var expected []ExpectedTx
	for _, ca := range cashAccts {
		if ca.Settings.AccountType != ledger.CashType {
			return nil, fmt.Errorf("%s is not a cash account", ca.Name)
		}
		for _, t := range ca.Lines {
			if t.Date.Before(start) || t.Date.After(today) || !ia.Tracks(t.Category) {
				continue
			}
			expected = append(expected, createInventoryTxFromCash(ia, t))
		}
	}

	// First pass: exact matches drop out of both sides.
	matched := make([]bool, len(expected))
	var missingInCash []*ledger.Tx
	for _, t := range ivty {
		found := false
		for i, e := range expected {
			if matched[i] || !equivalent(ia, t, e) {
				continue
			}
			matched[i] = true
			found = true
			break
		}
		if !found {
			missingInCash = append(missingInCash, t)
		}
	}
	var missingInIvty []ExpectedTx
	for i, e := range expected {
		if !matched[i] {
			missingInIvty = append(missingInIvty, e)
		}
	}

	// Second pass: entries present on both sides on the same day with the
	// same category are not missing, they disagree. First match wins.
	res := &MissingResult{}
	taken := make([]bool, len(missingInIvty))
	for _, t := range missingInCash {
		paired := false
		for i, e := range missingInIvty {
			if taken[i] || !date.SameDay(t.Date, e.Date) || t.Category != e.Category {
				continue
			}
			taken[i] = true
			res.PresentInBothButWrong = append(res.PresentInBothButWrong, Mismatch{Ivty: t, Expected: e})
			paired = true
			break
		}
		if !paired {
			res.MissingInCash = append(res.MissingInCash, t)
		}
	}
	for i, e := range missingInIvty {
		if taken[i] {
			continue
		}
		e.Lineno = insertionLineno(ia.Lines, e.Date)
		res.MissingInIvty = append(res.MissingInIvty, e)
	}
	return res, nil
}

// createInventoryTxFromCash derives the inventory entry a cash line implies:
// quantity from the note's designated key, sign flipped so outgoing goods
// are negative, and the amount mirroring the cash amount.
func createInventoryTxFromCash(ia *Account, t *ledger.Tx) ExpectedTx {
	e := ExpectedTx{
		Date:     t.Date,
		Category: t.Category,
		Amount:   t.Amount.Neg(),
		Note:     t.Note,
		Src:      t,
	}
	qtyKey := ia.Settings.QtyKey
	if ia.IsLivestock() {
		qtyKey = "head"
	}
	e.Qty, _ = t.Note.Decimal(qtyKey)
	if ia.IsLivestock() {
		e.Weight, _ = t.Note.Decimal("weight")
	}
	if !ia.Incoming(t.Category) {
		e.Qty = e.Qty.Neg()
		e.Weight = e.Weight.Neg()
	}
	return e
}

// equivalent tests an actual inventory line against an expectation: same
// category, same calendar day, money-equal amount, equal qty, and for
// livestock equal weight.
func equivalent(ia *Account, t *ledger.Tx, e ExpectedTx) bool {
	if t.Category != e.Category || !date.SameDay(t.Date, e.Date) {
		return false
	}
	if !ledger.MoneyEquals(t.Amount, e.Amount) {
		return false
	}
	if !ia.LineQty(t).Equal(e.Qty) {
		return false
	}
	if ia.IsLivestock() && !ia.LineWeight(t).Equal(e.Weight) {
		return false
	}
	return true
}

// insertionLineno places a missing transaction at the first existing line
// whose date is on or after it, else right past the end.
func insertionLineno(lines []*ledger.Tx, d time.Time) int {
	for _, t := range lines {
		if !t.Date.Before(d) {
			return t.Lineno
		}
	}
	if len(lines) == 0 {
		return 2
	}
	return lines[len(lines)-1].Lineno + 1
}
