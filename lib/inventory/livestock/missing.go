package livestock

import (
	"context"
	"time"

	"github.com/hallfarms/books/lib/cards"
	"github.com/hallfarms/books/lib/common/compare"
	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/common/set"
	"github.com/hallfarms/books/lib/inventory"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// MissingDailyGains synthesizes a zero-amount daily-gain placeholder for
// every calendar day from the account's first line through today that has no
// daily-gain line yet. A daily gain belongs at the end of its day, so the
// insertion lineno is the first line strictly after the day.
func MissingDailyGains(ia *inventory.Account, today time.Time) []inventory.ExpectedTx {
	if len(ia.Lines) == 0 {
		return nil
	}
	if today.IsZero() {
		today = date.Today()
	}
	cat := DailyGainCategory(ia)
	have := set.New[time.Time]()
	for _, t := range ia.Lines {
		if ledger.CategoryMatches(t.Category, cat) {
			have.Add(date.Trunc(t.Date))
		}
	}
	var res []inventory.ExpectedTx
	date.EachDay(ia.Lines[0].Date, today, func(day time.Time) error {
		if have.Has(day) {
			return nil
		}
		res = append(res, inventory.ExpectedTx{
			Date:     day,
			Category: cat,
			Lineno:   linenoAfter(ia.Lines, day),
		})
		return nil
	})
	return res
}

// MissingDead fetches per-day death counts from the card store and
// synthesizes a starter dead line for every day that has no dead line with a
// matching head count yet. Days before the account start are ignored.
func MissingDead(ctx context.Context, ia *inventory.Account, st cards.Store, org string) ([]inventory.ExpectedTx, error) {
	counts, err := cards.DeadCounts(ctx, st, org)
	if err != nil {
		return nil, err
	}
	start := ia.StartDate()
	if len(ia.Lines) > 0 && ia.Lines[0].Date.After(start) {
		start = date.Trunc(ia.Lines[0].Date)
	}
	cat := DeadCategory(ia)
	var res []inventory.ExpectedTx
	for day, count := range counts {
		if day.Before(start) {
			continue
		}
		qty := decimal.NewFromInt(int64(-count))
		if hasDeadLine(ia, cat, day, qty) {
			continue
		}
		res = append(res, inventory.ExpectedTx{
			Date:     day,
			Category: cat,
			Qty:      qty,
			Lineno:   linenoOnOrAfter(ia.Lines, day),
		})
	}
	return res, nil
}

func hasDeadLine(ia *inventory.Account, cat string, day time.Time, qty decimal.Decimal) bool {
	for _, t := range ia.Lines {
		if ledger.CategoryMatches(t.Category, cat) &&
			date.SameDay(t.Date, day) &&
			ia.LineQty(t).Equal(qty) {
			return true
		}
	}
	return false
}

// FindMissingTx runs the generic cash-vs-inventory reconciliation and merges
// in the livestock-specific synthetic lines. The merged missing list is
// sorted by insertion point, with daily gains last within their day.
func FindMissingTx(ctx context.Context, ia *inventory.Account, cashAccts []*ledger.Account, st cards.Store, org string, today time.Time) (*inventory.MissingResult, error) {
	res, err := inventory.FindMissingTx(ia, cashAccts, today)
	if err != nil {
		return nil, err
	}
	res.MissingInIvty = append(res.MissingInIvty, MissingDailyGains(ia, today)...)
	if st != nil {
		dead, err := MissingDead(ctx, ia, st, org)
		if err != nil {
			return nil, err
		}
		res.MissingInIvty = append(res.MissingInIvty, dead...)
	}
	gainCat := DailyGainCategory(ia)
	compare.Sort(res.MissingInIvty, compare.Combine(
		func(a, b inventory.ExpectedTx) compare.Order { return compare.Ordered(a.Lineno, b.Lineno) },
		func(a, b inventory.ExpectedTx) compare.Order { return compare.Time(a.Date, b.Date) },
		func(a, b inventory.ExpectedTx) compare.Order {
			return compare.Ordered(boolInt(a.Category == gainCat), boolInt(b.Category == gainCat))
		},
	))
	return res, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func linenoOnOrAfter(lines []*ledger.Tx, d time.Time) int {
	for _, t := range lines {
		if !t.Date.Before(d) {
			return t.Lineno
		}
	}
	return endLineno(lines)
}

func linenoAfter(lines []*ledger.Tx, d time.Time) int {
	for _, t := range lines {
		if t.Date.After(d) && !date.SameDay(t.Date, d) {
			return t.Lineno
		}
	}
	return endLineno(lines)
}

func endLineno(lines []*ledger.Tx) int {
	if len(lines) == 0 {
		return 2
	}
	return lines[len(lines)-1].Lineno + 1
}
