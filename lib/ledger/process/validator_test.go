package process

import (
	"context"
	"strings"
	"testing"

	"github.com/hallfarms/books/lib/common/cpr"
	"github.com/hallfarms/books/lib/ledger"
)

var cashHeader = []string{"date", "description", "amount", "balance", "who", "category", "note", "splitAmount"}

func runStage(t *testing.T, pr cpr.Processor[*ledger.Account], accts ...*ledger.Account) []*ledger.Account {
	t.Helper()
	res, err := cpr.RunTestEngine[*ledger.Account](context.Background(), pr, accts...)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != len(accts) {
		t.Fatalf("stage returned %d accounts, want %d", len(res), len(accts))
	}
	return res
}

func rawAccount(name string, header []string, rows ...ledger.Row) *ledger.Account {
	return ledger.FromRaw(&ledger.RawAccount{
		Name:     name,
		Filename: name + ".csv",
		Header:   header,
		Rows:     rows,
	})
}

func validated(t *testing.T, name string, header []string, rows ...ledger.Row) *ledger.Account {
	t.Helper()
	a := runStage(t, &Validator{}, rawAccount(name, header, rows...))[0]
	if err := a.Err(); err != nil {
		t.Fatalf("validate %s: %v", name, err)
	}
	return a
}

func TestValidatorSettingsAndLinenos(t *testing.T) {
	a := validated(t, "checking", cashHeader,
		ledger.Row{"date": "SETTINGS", "note": "accounttype: cash; startYear: 2020"},
		ledger.Row{"date": "2020-01-01", "description": "opening", "balance": "1000"},
		ledger.Row{"date": "2020-01-05", "description": "seed", "amount": "-200", "category": "expense-seed"},
	)
	if a.Settings.AccountType != ledger.CashType || a.Settings.StartYear != 2020 {
		t.Errorf("settings = %+v", a.Settings)
	}
	if len(a.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(a.Lines))
	}
	// Header is sheet line 1, settings row line 2, data starts at line 3.
	if a.Lines[0].Lineno != 3 || a.Lines[1].Lineno != 4 {
		t.Errorf("linenos = %d, %d, want 3, 4", a.Lines[0].Lineno, a.Lines[1].Lineno)
	}
	if !a.Lines[0].IsStart || a.Lines[1].IsStart {
		t.Error("first line must be the START line")
	}
	if !a.Lines[0].HasBalance || a.Lines[0].Balance.String() != "1000" {
		t.Errorf("start balance = %s", a.Lines[0].Balance)
	}
	if a.Lines[1].Amount.String() != "-200" {
		t.Errorf("amount = %s", a.Lines[1].Amount)
	}
	if a.Stage != ledger.StageValidated {
		t.Errorf("stage = %v", a.Stage)
	}
}

func TestValidatorNormalizesMoneyCells(t *testing.T) {
	a := validated(t, "checking", cashHeader,
		ledger.Row{"date": "2020-01-01", "description": "opening", "balance": "$1,000.00"},
		ledger.Row{"date": "2020-02-01", "description": "cattle", "amount": "($2,500)", "category": "purchase-cattle"},
	)
	if a.Lines[0].Balance.String() != "1000" {
		t.Errorf("balance = %s", a.Lines[0].Balance)
	}
	if a.Lines[1].Amount.String() != "-2500" {
		t.Errorf("amount = %s", a.Lines[1].Amount)
	}
	if a.Lines[1].Raw["amount"] != "-2500" {
		t.Errorf("raw amount = %q", a.Lines[1].Raw["amount"])
	}
}

func TestValidatorMissingColumn(t *testing.T) {
	a := runStage(t, &Validator{}, rawAccount("checking",
		[]string{"date", "description", "amount"},
		ledger.Row{"date": "2020-01-01", "description": "opening"},
	))[0]
	if !a.Failed() {
		t.Fatal("expected account errors")
	}
	if !strings.Contains(a.Err().Error(), "missing required column") {
		t.Errorf("err = %v", a.Err())
	}
}

func TestValidatorEmptyAccount(t *testing.T) {
	a := runStage(t, &Validator{}, rawAccount("checking", cashHeader))[0]
	if !a.Failed() || !strings.Contains(a.Err().Error(), "account is empty") {
		t.Errorf("err = %v", a.Err())
	}
}

func TestValidatorBadNoteIsLineError(t *testing.T) {
	a := runStage(t, &Validator{}, rawAccount("checking", cashHeader,
		ledger.Row{"date": "2020-01-01", "description": "opening", "balance": "0"},
		ledger.Row{"date": "2020-01-02", "description": "corn", "amount": "100",
			"category": "sales-grain-corn", "note": "bushels: 50; stray"},
	))[0]
	if a.Failed() {
		t.Fatalf("bad note must not fail the account: %v", a.Errors)
	}
	if len(a.LineErrors()) != 1 {
		t.Fatalf("line errors = %v", a.LineErrors())
	}
	if a.Lines[1].Valid() {
		t.Error("line with bad note must carry the error")
	}
}

func TestValidatorInventoryNeedsSettings(t *testing.T) {
	a := runStage(t, &Validator{}, rawAccount("cattle",
		[]string{"date", "description", "amount", "balance", "category", "note"},
		ledger.Row{"date": "SETTINGS", "note": "accounttype: inventory; mktonly: yes"},
		ledger.Row{"date": "2020-01-01", "description": "opening", "balance": "0"},
	))[0]
	err := a.Err()
	if err == nil {
		t.Fatal("expected errors for missing inventory settings")
	}
	for _, want := range []string{"inCategories", "outCategories", "qtyKey"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s: %v", want, err)
		}
	}
}
