package process

import (
	"context"

	"github.com/hallfarms/books/lib/common/cpr"
	"github.com/hallfarms/books/lib/ledger"
)

// BalanceChecker replays each account's running balance and fails accounts
// whose stated balances diverge from the computed balance. The first
// divergence aborts further checking for the account: balance errors do not
// self-correct, so everything after the first one is noise.
type BalanceChecker struct{}

func (pr *BalanceChecker) Process(ctx context.Context, inCh <-chan *ledger.Account, outCh chan<- *ledger.Account) error {
	return cpr.Consume(ctx, inCh, func(a *ledger.Account) error {
		pr.check(a)
		return cpr.Push(ctx, outCh, a)
	})
}

func (pr *BalanceChecker) check(a *ledger.Account) {
	if a.Failed() || a.Stage != ledger.StageAsserted {
		return
	}
	first := a.Lines[0]
	if !first.IsStart {
		a.AddError(ledger.Errorf(a.Name, first.Lineno, "START line is not first"))
		return
	}
	running := first.Balance
	for _, t := range a.Lines[1:] {
		running = running.Add(t.Amount)
		if !t.HasBalance {
			continue
		}
		if !ledger.MoneyEquals(running, t.Balance) {
			a.AddError(ledger.Errorf(a.Name, t.Lineno,
				"balance mismatch: computed %s, stated %s", running.StringFixed(2), t.Balance.StringFixed(2)))
			return
		}
		// Pin the replay to the stated balance so cent-level rounding does
		// not accumulate across thousands of lines.
		running = t.Balance
	}
	a.Stage = ledger.StageBalanced
}
