package process

import (
	"testing"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/ledger"
)

func standardized(t *testing.T, a *ledger.Account) *ledger.Account {
	t.Helper()
	return runStage(t, &Standardizer{}, a)[0]
}

func TestStandardizerCreditDebit(t *testing.T) {
	header := []string{"writtenDate", "postDate", "description", "credit", "debit", "balance", "who", "category"}
	a := validated(t, "checking", header,
		ledger.Row{"writtenDate": "2020-01-01", "postDate": "2020-01-01", "description": "opening", "balance": "500"},
		ledger.Row{"writtenDate": "2020-01-03", "postDate": "2020-01-06", "description": "seed", "debit": "120", "category": "expense-seed"},
		ledger.Row{"writtenDate": "2020-01-04", "postDate": "2020-01-07", "description": "corn", "credit": "300", "category": "sales-grain-corn"},
	)
	a = standardized(t, a)
	if a.Stage != ledger.StageStandardized {
		t.Fatalf("stage = %v", a.Stage)
	}
	debit, credit := a.Lines[1], a.Lines[2]
	if debit.Amount.String() != "-120" {
		t.Errorf("debit amount = %s", debit.Amount)
	}
	if credit.Amount.String() != "300" {
		t.Errorf("credit amount = %s", credit.Amount)
	}
	// Checks clear on the written date, deposits when the bank posts them.
	if !date.SameDay(debit.Date, date.MustParse("2020-01-03")) {
		t.Errorf("debit date = %s", date.Format(debit.Date))
	}
	if !date.SameDay(credit.Date, date.MustParse("2020-01-07")) {
		t.Errorf("credit date = %s", date.Format(credit.Date))
	}
}

func TestStandardizerInvertedSigns(t *testing.T) {
	a := validated(t, "loan", cashHeader,
		ledger.Row{"date": "SETTINGS", "note": "amounttype: inverted; balancetype: inverted"},
		ledger.Row{"date": "2020-01-01", "description": "opening", "balance": "250000"},
		ledger.Row{"date": "2020-02-01", "description": "payment", "amount": "1200", "balance": "248800", "category": "loan-payment"},
	)
	a = standardized(t, a)
	if a.Lines[0].Balance.String() != "-250000" {
		t.Errorf("opening balance = %s", a.Lines[0].Balance)
	}
	if a.Lines[1].Amount.String() != "-1200" || a.Lines[1].Balance.String() != "-248800" {
		t.Errorf("payment = %s, balance = %s", a.Lines[1].Amount, a.Lines[1].Balance)
	}
}

func TestStandardizerStartCategory(t *testing.T) {
	a := validated(t, "checking", cashHeader,
		ledger.Row{"date": "2020-01-01", "description": "opening", "balance": "500"},
	)
	a = standardized(t, a)
	if a.Lines[0].Category != "START" {
		t.Errorf("category = %q", a.Lines[0].Category)
	}
}

func TestStandardizerFuturesCategory(t *testing.T) {
	header := []string{"date", "txtype", "commodity", "month", "amount", "balance"}
	a := validated(t, "hedging", header,
		ledger.Row{"date": "SETTINGS", "amount": "accounttype: futures-cash"},
		ledger.Row{"date": "2020-01-01", "txtype": "CASH", "commodity": "USD", "amount": "10000", "balance": "10000"},
		ledger.Row{"date": "2020-03-02", "txtype": "TRADE", "commodity": "Corn", "month": "Dec", "amount": "-450", "balance": "9550"},
		ledger.Row{"date": "2020-04-09", "txtype": "CASH", "commodity": "USD", "amount": "-2000", "balance": "7550"},
	)
	a = standardized(t, a)
	if got := a.Lines[1].Category; got != "futures-corn-dec" {
		t.Errorf("trade category = %q", got)
	}
	if got := a.Lines[2].Category; got != "transfer-from:hedging,to:bank" {
		t.Errorf("withdrawal category = %q", got)
	}
}

func TestStandardizerBadLineBecomesStub(t *testing.T) {
	header := []string{"date", "txtype", "commodity", "amount", "balance"}
	a := validated(t, "hedging", header,
		ledger.Row{"date": "SETTINGS", "amount": "accounttype: futures-cash"},
		ledger.Row{"date": "2020-01-01", "txtype": "CASH", "commodity": "USD", "amount": "10000", "balance": "10000"},
		ledger.Row{"txtype": "TRADE", "commodity": "Corn", "amount": "-450", "balance": "9550"},
	)
	a = standardized(t, a)
	if a.Failed() {
		t.Fatalf("one bad line must not fail the account: %v", a.Errors)
	}
	if a.Lines[1].Valid() {
		t.Error("undated futures trade must degrade into an errored stub")
	}
	if a.Lines[0].Valid() != true {
		t.Error("good lines must survive")
	}
}
