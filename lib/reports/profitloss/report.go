// Package profitloss aggregates ledger lines into a profit and loss
// statement by category.
package profitloss

import (
	"fmt"
	"time"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/common/multimap"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// Value is the aggregate at one node of the category tree.
type Value struct {
	Category string
	Amount   decimal.Decimal
	Qty      decimal.Decimal
}

type Node = multimap.Node[Value]

// Report is a profit/loss statement over a period.
type Report struct {
	From, To time.Time
	Type     string
	Root     *Node
}

// Options select the view and year.
type Options struct {
	Year int
	Type string // tax | mkt
}

// categoriesOutOfPL are ledger plumbing, not income or expense.
var categoriesOutOfPL = []string{"START", "transfer"}

// Annual builds the profit/loss statement for one calendar year.
func Annual(fa *ledger.FinalAccounts, opts Options) (*Report, error) {
	var led ledger.Ledger
	switch opts.Type {
	case "tax":
		led = fa.Tax
	case "mkt":
		led = fa.Mkt
	default:
		return nil, fmt.Errorf("unknown profit/loss type %q (want tax or mkt)", opts.Type)
	}
	from := date.Date(opts.Year, time.January, 1)
	to := date.EndOfYear(opts.Year)
	root := multimap.New[Value]("")
	for _, t := range led.Lines {
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		if t.IsStart || skipCategory(t.Category) {
			continue
		}
		n := root.GetOrCreate(ledger.CategoryParts(ledger.StripViewPrefix(t.Category)))
		n.Value.Category = t.Category
		n.Value.Amount = n.Value.Amount.Add(t.Amount)
		if key := t.Acct.Settings.QtyKey; key != "" {
			if q, ok := t.Note.Decimal(key); ok {
				n.Value.Qty = n.Value.Qty.Add(q)
			}
		}
	}
	root.PostOrder(func(n *Node) {
		for _, ch := range n.Children {
			n.Value.Amount = n.Value.Amount.Add(ch.Value.Amount)
			n.Value.Qty = n.Value.Qty.Add(ch.Value.Qty)
		}
	})
	root.Sort(multimap.SortAlpha[Value])
	return &Report{From: from, To: to, Type: opts.Type, Root: root}, nil
}

func skipCategory(cat string) bool {
	for _, c := range categoriesOutOfPL {
		if ledger.CategoryMatches(cat, c) {
			return true
		}
	}
	return false
}

// At returns the aggregate amount for the given category path.
func (r *Report) At(category string) (decimal.Decimal, bool) {
	n, ok := r.Root.GetPath(ledger.CategoryParts(ledger.StripViewPrefix(category)))
	if !ok {
		return decimal.Zero, false
	}
	return n.Value.Amount, true
}

// Net returns the overall profit or loss.
func (r *Report) Net() decimal.Decimal {
	return r.Root.Value.Amount
}
