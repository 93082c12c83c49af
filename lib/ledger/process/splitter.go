package process

import (
	"context"

	"github.com/hallfarms/books/lib/common/cpr"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// SplitResolver expands multi-line SPLIT transaction groups into standalone
// transactions, one per allocation. A split parent (category "SPLIT", or a
// "splits" directive in its note) is followed by contiguous child lines with
// description "SPLIT", each carrying its own category and splitAmount.
//
// After resolution no line carries a "SPLIT" category or who.
type SplitResolver struct{}

func (pr *SplitResolver) Process(ctx context.Context, inCh <-chan *ledger.Account, outCh chan<- *ledger.Account) error {
	return cpr.Consume(ctx, inCh, func(a *ledger.Account) error {
		pr.resolve(a)
		return cpr.Push(ctx, outCh, a)
	})
}

func (pr *SplitResolver) resolve(a *ledger.Account) {
	if a.Failed() || a.Stage != ledger.StageStandardized {
		return
	}
	out := make([]*ledger.Tx, 0, len(a.Lines))
	for i := 0; i < len(a.Lines); {
		parent := a.Lines[i]
		if !isSplitParent(parent) {
			out = append(out, parent)
			i++
			continue
		}
		var children []*ledger.Tx
		for j := i + 1; j < len(a.Lines) && a.Lines[j].Description == "SPLIT"; j++ {
			children = append(children, a.Lines[j])
		}
		i += 1 + len(children)
		expanded, err := pr.expand(a, parent, children)
		if err != nil {
			parent.AddError(err)
			out = append(out, parent)
			out = append(out, children...)
			continue
		}
		out = append(out, expanded...)
	}
	a.Lines = out
	a.Stage = ledger.StageSplitsResolved
}

func isSplitParent(t *ledger.Tx) bool {
	if t.Category == "SPLIT" {
		return true
	}
	_, ok := t.Note.Get("splits")
	return ok
}

func (pr *SplitResolver) expand(a *ledger.Account, parent *ledger.Tx, children []*ledger.Tx) ([]*ledger.Tx, error) {
	if len(children) == 0 {
		return nil, ledger.Errorf(a.Name, parent.Lineno, "split transaction has no SPLIT lines after it")
	}
	sum := decimal.Zero
	for _, c := range children {
		if !c.HasSplit {
			return nil, ledger.Errorf(a.Name, c.Lineno, "SPLIT line has no splitAmount")
		}
		sum = sum.Add(c.SplitAmount)
	}
	if !ledger.MoneyEquals(sum, parent.Amount) {
		return nil, ledger.Errorf(a.Name, parent.Lineno,
			"sum of splits %s does not equal transaction amount %s", sum, parent.Amount)
	}
	res := make([]*ledger.Tx, 0, len(children))
	for i, c := range children {
		nt := c.Clone()
		nt.Amount = c.SplitAmount
		nt.HasSplit = false
		nt.SplitAmount = decimal.Zero
		nt.Who = parent.Who
		nt.Description = parent.Description
		nt.IsStart = false
		if nt.Date.IsZero() {
			nt.Date = parent.Date
		}
		nt.DateRaw = ""
		if nt.WrittenDate.IsZero() {
			nt.WrittenDate = parent.WrittenDate
		}
		if nt.PostDate.IsZero() {
			nt.PostDate = parent.PostDate
		}
		if nt.Note.IsZero() {
			nt.Note = parent.Note
		}
		// The parent's stated balance survives on the last allocation, so
		// the balance replay still has a checkpoint for the group.
		nt.HasBalance = false
		if i == len(children)-1 && parent.HasBalance {
			nt.Balance = parent.Balance
			nt.HasBalance = true
		}
		res = append(res, nt)
	}
	return res, nil
}
