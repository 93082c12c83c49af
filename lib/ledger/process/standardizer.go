package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hallfarms/books/lib/common/cpr"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// Standardizer normalizes lines into canonical transaction shape: debit/
// credit vs. amount, written/post vs. date, and inverted sign conventions.
// Inverted sign settings apply to every account type; the remaining rules
// only concern cash-like accounts.
//
// A fault in one line degrades that line into an error-carrying stub instead
// of aborting the account.
type Standardizer struct{}

func (pr *Standardizer) Process(ctx context.Context, inCh <-chan *ledger.Account, outCh chan<- *ledger.Account) error {
	return cpr.Consume(ctx, inCh, func(a *ledger.Account) error {
		pr.standardize(a)
		return cpr.Push(ctx, outCh, a)
	})
}

func (pr *Standardizer) standardize(a *ledger.Account) {
	if a.Failed() || a.Stage != ledger.StageValidated {
		return
	}
	for i, t := range a.Lines {
		if err := pr.line(a, t); err != nil {
			stub := &ledger.Tx{
				Acct:    t.Acct,
				Lineno:  t.Lineno,
				IsStart: t.IsStart,
				Raw:     t.Raw,
			}
			stub.AddError(err)
			a.Lines[i] = stub
		}
	}
	a.Stage = ledger.StageStandardized
}

func (pr *Standardizer) line(a *ledger.Account, t *ledger.Tx) error {
	if a.Settings.AccountType.CashLike() {
		if _, ok := t.Raw["amount"]; !ok || t.Raw["amount"] == "" {
			credit, _ := ledger.ParseMoney(t.Raw["credit"])
			debit, _ := ledger.ParseMoney(t.Raw["debit"])
			t.Amount = credit.Sub(debit)
		}
	}
	if a.Settings.AmountInverted() {
		t.Amount = t.Amount.Neg()
	}
	if a.Settings.BalanceInverted() && t.HasBalance {
		t.Balance = t.Balance.Neg()
	}
	if !a.Settings.AccountType.CashLike() {
		return nil
	}

	// Checks the farm writes clear on the written date; deposits clear when
	// the bank posts them.
	isDebit := t.Amount.IsNegative()
	if t.HasSplit {
		isDebit = t.SplitAmount.IsNegative()
	}
	if t.Date.IsZero() && t.DateRaw == "" {
		if isDebit {
			t.Date = firstNonZero(t.WrittenDate, t.PostDate)
		} else {
			t.Date = firstNonZero(t.PostDate, t.WrittenDate)
		}
	}
	if t.WrittenDate.IsZero() {
		t.WrittenDate = t.Date
	}
	if t.PostDate.IsZero() {
		t.PostDate = t.Date
	}

	if t.Category == "" {
		switch {
		case t.IsStart:
			t.Category = "START"
		case t.Raw["txtype"] != "" && t.Raw["commodity"] != "":
			cat, err := futuresCategory(a, t)
			if err != nil {
				return ledger.Errorf(a.Name, t.Lineno, "%v", err)
			}
			t.Category = cat
		}
	}
	return nil
}

// futuresCategory synthesizes a category for futures statement rows, which
// carry a txtype and commodity instead of one.
func futuresCategory(a *ledger.Account, t *ledger.Tx) (string, error) {
	txtype := strings.ToUpper(t.Raw["txtype"])
	if txtype == "CASH" || txtype == "TRANSFER" {
		if t.Amount.GreaterThanOrEqual(decimal.Zero) {
			return fmt.Sprintf("transfer-from:bank,to:%s", a.Name), nil
		}
		return fmt.Sprintf("transfer-from:%s,to:bank", a.Name), nil
	}
	month := strings.ToLower(t.Raw["month"])
	if month == "" {
		if t.Date.IsZero() {
			return "", fmt.Errorf("futures row has neither month nor date")
		}
		month = strings.ToLower(t.Date.Month().String()[:3])
	}
	return fmt.Sprintf("futures-%s-%s", strings.ToLower(t.Raw["commodity"]), month), nil
}

func firstNonZero(dates ...time.Time) time.Time {
	for _, d := range dates {
		if !d.IsZero() {
			return d
		}
	}
	return time.Time{}
}
