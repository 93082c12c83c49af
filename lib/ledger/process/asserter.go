package process

import (
	"context"
	"fmt"

	"github.com/hallfarms/books/lib/common/cpr"
	"github.com/hallfarms/books/lib/ledger"
)

// Asserter is the final type-soundness gate before balance validation. Any
// account still carrying accumulated line errors is rejected here, and every
// surviving line is checked for structural soundness. An account that never
// went through the earlier stages is a caller error, reported distinctly from
// genuinely invalid data.
type Asserter struct{}

func (pr *Asserter) Process(ctx context.Context, inCh <-chan *ledger.Account, outCh chan<- *ledger.Account) error {
	return cpr.Consume(ctx, inCh, func(a *ledger.Account) error {
		pr.assert(a)
		return cpr.Push(ctx, outCh, a)
	})
}

func (pr *Asserter) assert(a *ledger.Account) {
	if a.Failed() {
		return
	}
	if a.Stage != ledger.StageSplitsResolved {
		a.AddError(ledger.AccountError{
			Acct: a.Name,
			Msg:  fmt.Sprintf("account was never processed: still in stage %q", a.Stage),
		})
		return
	}
	if errs := a.LineErrors(); len(errs) > 0 {
		a.AddError(ledger.AccountError{
			Acct: a.Name,
			Msg:  fmt.Sprintf("account has %d invalid lines", len(errs)),
		})
		return
	}
	for _, t := range a.Lines {
		pr.assertLine(a, t)
	}
	if errs := a.LineErrors(); len(errs) > 0 {
		a.AddError(ledger.AccountError{
			Acct: a.Name,
			Msg:  fmt.Sprintf("account failed assertion with %d faults", len(errs)),
		})
		return
	}
	a.Stage = ledger.StageAsserted
}

func (pr *Asserter) assertLine(a *ledger.Account, t *ledger.Tx) {
	if t.Lineno < 2 {
		t.AddError(ledger.Errorf(a.Name, t.Lineno, "line has an invalid lineno"))
	}
	if t.Date.IsZero() {
		t.AddError(ledger.Errorf(a.Name, t.Lineno, "line has no date"))
	}
	if t.Category == "" {
		t.AddError(ledger.Errorf(a.Name, t.Lineno, "line has no category"))
	}
	if t.Category == "SPLIT" || t.Who == "SPLIT" {
		t.AddError(ledger.Errorf(a.Name, t.Lineno, "unresolved SPLIT line"))
	}
	if t.IsStart && !t.HasBalance {
		t.AddError(ledger.Errorf(a.Name, t.Lineno, "START line has no balance"))
	}
}
