package process

import (
	"github.com/hallfarms/books/lib/common/compare"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// Separate partitions the fully validated accounts into the tax-basis and
// market-basis views and merges each partition into one globally sorted
// ledger with a recomputed running balance.
//
// Cash-type accounts default to appearing in both views; mktonly/taxonly
// settings restrict them, and asset-like accounts appear only where their
// settings put them.
func Separate(accts []*ledger.Account) *ledger.FinalAccounts {
	fa := &ledger.FinalAccounts{Originals: accts}
	for _, a := range accts {
		if inTax(a.Settings) {
			fa.Tax.Accts = append(fa.Tax.Accts, a)
		}
		if inMkt(a.Settings) {
			fa.Mkt.Accts = append(fa.Mkt.Accts, a)
		}
	}
	fa.Tax.Lines = mergeLines(fa.Tax.Accts)
	fa.Mkt.Lines = mergeLines(fa.Mkt.Accts)
	return fa
}

func inTax(s ledger.Settings) bool {
	return s.TaxOnly || (s.AccountType.CashLike() && !s.MktOnly)
}

func inMkt(s ledger.Settings) bool {
	return s.MktOnly || (s.AccountType.CashLike() && !s.TaxOnly)
}

// mergeLines concatenates the accounts' lines, sorts them by date and
// recomputes the single authoritative running balance. The sort is stable:
// same-date lines keep account order, then line order. Stored per-account
// balances are ignored; a START line contributes its opening balance as its
// amount so openings survive in the merged view.
func mergeLines(accts []*ledger.Account) []*ledger.Tx {
	var lines []*ledger.Tx
	for _, a := range accts {
		for _, t := range a.Lines {
			c := t.Clone()
			if c.IsStart {
				c.Amount = c.Balance
			}
			lines = append(lines, c)
		}
	}
	compare.Sort(lines, ledger.CompareDate)
	running := decimal.Zero
	for _, t := range lines {
		running = running.Add(t.Amount)
		t.Balance = running
		t.HasBalance = true
	}
	return lines
}
