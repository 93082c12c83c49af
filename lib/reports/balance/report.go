// Package balance builds balance sheets from the separated ledger views.
package balance

import (
	"fmt"
	"strings"
	"time"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/common/multimap"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// Value is the aggregate at one node of the account tree.
type Value struct {
	// Name is set on leaf nodes holding an actual account.
	Name    string
	Balance decimal.Decimal
	Qty     decimal.Decimal
}

type Node = multimap.Node[Value]

// Report is a balance sheet as of a date.
type Report struct {
	AsOf time.Time
	Type string
	Root *Node
}

// Options select the view and the year of an annual balance sheet.
type Options struct {
	Year int
	Type string // tax | mkt
}

// Annual builds the year-end balance sheet for the given year.
func Annual(fa *ledger.FinalAccounts, opts Options) (*Report, error) {
	return AsOf(fa, opts.Type, date.EndOfYear(opts.Year))
}

// AsOf builds a balance sheet from the separated ledger as of the given day.
func AsOf(fa *ledger.FinalAccounts, typ string, asOf time.Time) (*Report, error) {
	var led ledger.Ledger
	switch typ {
	case "tax":
		led = fa.Tax
	case "mkt":
		led = fa.Mkt
	default:
		return nil, fmt.Errorf("unknown balance sheet type %q (want tax or mkt)", typ)
	}
	root := multimap.New[Value]("")
	for _, t := range led.Lines {
		if t.Date.After(asOf) {
			continue
		}
		n := root.GetOrCreate(PathOf(t.Acct.Name))
		n.Value.Name = t.Acct.Name
		n.Value.Balance = n.Value.Balance.Add(t.Amount)
		if key := t.Acct.Settings.QtyKey; key != "" {
			if q, ok := t.Note.Decimal(key); ok {
				n.Value.Qty = n.Value.Qty.Add(q)
			}
		}
	}
	// Roll leaf balances up into the category nodes.
	root.PostOrder(func(n *Node) {
		for _, ch := range n.Children {
			n.Value.Balance = n.Value.Balance.Add(ch.Value.Balance)
			n.Value.Qty = n.Value.Qty.Add(ch.Value.Qty)
		}
	})
	root.Sort(multimap.SortAlpha[Value])
	return &Report{AsOf: asOf, Type: typ, Root: root}, nil
}

// PathOf maps an account name to its position in the balance tree: dash
// separates categories, dot separates subaccounts within one.
func PathOf(name string) []string {
	return strings.FieldsFunc(ledger.StripViewPrefix(name), func(r rune) bool {
		return r == '-' || r == '.'
	})
}

// At returns the aggregate balance at the given account path. The path may
// carry a "tax." or "mkt." disambiguator.
func (r *Report) At(path string) (decimal.Decimal, bool) {
	n, ok := r.Root.GetPath(PathOf(path))
	if !ok {
		return decimal.Zero, false
	}
	return n.Value.Balance, true
}

// Total returns the grand total.
func (r *Report) Total() decimal.Decimal {
	return r.Root.Value.Balance
}
