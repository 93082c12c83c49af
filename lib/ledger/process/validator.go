package process

import (
	"context"
	"fmt"

	"github.com/hallfarms/books/lib/common/cpr"
	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/common/set"
	"github.com/hallfarms/books/lib/ledger"
)

// settingsSentinel marks a spreadsheet row holding account settings.
const settingsSentinel = "SETTINGS"

// Validator turns raw spreadsheet rows into typed per-account transaction
// records. Structural faults accumulate on the account or on individual
// lines; a bad account never aborts its siblings.
type Validator struct{}

func (pr *Validator) Process(ctx context.Context, inCh <-chan *ledger.Account, outCh chan<- *ledger.Account) error {
	return cpr.Consume(ctx, inCh, func(a *ledger.Account) error {
		pr.validate(a)
		return cpr.Push(ctx, outCh, a)
	})
}

func (pr *Validator) validate(a *ledger.Account) {
	if a.Name == "" {
		a.AddError(ledger.AccountError{Acct: a.Filename, Msg: "account has no name"})
		return
	}
	var datarows []ledger.Row
	var linenos []int
	for i, row := range a.Rows {
		lineno := i + 2 // 1-based, header is line 1
		if isSettingsRow(row) {
			pr.mergeSettings(a, lineno, row)
			continue
		}
		datarows = append(datarows, row)
		linenos = append(linenos, lineno)
	}
	if len(datarows) == 0 {
		a.AddError(ledger.AccountError{Acct: a.Name, Msg: "account is empty"})
		return
	}
	pr.checkColumns(a)
	if a.Failed() {
		return
	}
	for i, row := range datarows {
		a.Lines = append(a.Lines, pr.line(a, linenos[i], row))
	}
	a.Lines[0].IsStart = true
	a.Stage = ledger.StageValidated
}

func isSettingsRow(row ledger.Row) bool {
	for _, v := range row {
		if v == settingsSentinel {
			return true
		}
	}
	return false
}

func (pr *Validator) mergeSettings(a *ledger.Account, lineno int, row ledger.Row) {
	for col, cell := range row {
		if cell == "" || cell == settingsSentinel || col == "lineno" {
			continue
		}
		fields, err := ledger.ParseSettings(cell)
		if err != nil {
			a.AddError(ledger.Errorf(a.Name, lineno, "invalid settings cell in column %s: %v", col, err))
			continue
		}
		a.Settings = a.Settings.Merge(fields)
	}
}

// requiredColumns is the per-accounttype column contract, asserted against
// the sheet header.
var requiredColumns = map[ledger.AccountType][]string{
	ledger.CashType:         {"description", "balance", "who", "category"},
	ledger.AssetType:        {"date", "description", "amount", "balance", "category"},
	ledger.InventoryType:    {"date", "description", "amount", "balance", "category", "note"},
	ledger.FuturesCashType:  {"date", "txtype", "commodity", "amount", "balance"},
	ledger.FuturesAssetType: {"date", "description", "amount", "balance"},
}

func (pr *Validator) checkColumns(a *ledger.Account) {
	cols, ok := requiredColumns[a.Settings.AccountType]
	if !ok {
		a.AddError(ledger.AccountError{Acct: a.Name, Msg: fmt.Sprintf("unknown accounttype %q", a.Settings.AccountType)})
		return
	}
	have := set.Of(a.Header...)
	for _, c := range cols {
		if !have.Has(c) {
			a.AddError(ledger.AccountError{Acct: a.Name, Msg: fmt.Sprintf("missing required column %q", c)})
		}
	}
	if a.Settings.AccountType == ledger.CashType {
		if !have.Has("date") && !(have.Has("writtenDate") && have.Has("postDate")) {
			a.AddError(ledger.AccountError{Acct: a.Name, Msg: `missing required column "date" (or "writtenDate" and "postDate")`})
		}
	}
	pr.checkSettings(a)
}

func (pr *Validator) checkSettings(a *ledger.Account) {
	missing := func(key string) {
		a.AddError(ledger.AccountError{Acct: a.Name, Msg: fmt.Sprintf("missing required setting %q", key)})
	}
	switch a.Settings.AccountType {
	case ledger.AssetType:
		if !a.Settings.MktOnly && !a.Settings.TaxOnly {
			a.AddError(ledger.AccountError{Acct: a.Name, Msg: "asset account must be mktonly or taxonly"})
		}
	case ledger.InventoryType:
		if !a.Settings.MktOnly {
			a.AddError(ledger.AccountError{Acct: a.Name, Msg: "inventory account must have truthy mktonly setting"})
		}
		if len(a.Settings.InCategories) == 0 {
			missing("inCategories")
		}
		if len(a.Settings.OutCategories) == 0 {
			missing("outCategories")
		}
		if a.Settings.QtyKey == "" {
			missing("qtyKey")
		}
	case ledger.FuturesAssetType:
		if !a.Settings.MktOnly {
			a.AddError(ledger.AccountError{Acct: a.Name, Msg: "futures-asset account must have truthy mktonly setting"})
		}
	}
}

func (pr *Validator) line(a *ledger.Account, lineno int, row ledger.Row) *ledger.Tx {
	t := &ledger.Tx{
		Acct:   a,
		Lineno: lineno,
		Raw:    make(ledger.Row, len(row)),
	}
	for col, cell := range row {
		switch col {
		case "lineno":
			// Statement-supplied line numbers would shadow ours; keep them
			// under a separate key for audit.
			t.StmtLineno = cell
			t.Raw["stmtlineno"] = cell
			continue
		case "date", "writtenDate", "postDate":
			t.Raw[col] = cell
			continue
		}
		if d, ok := ledger.ParseMoney(cell); ok {
			cell = d.String()
		}
		t.Raw[col] = cell
	}
	if d, ok := ledger.ParseMoney(t.Raw["amount"]); ok {
		t.Amount = d
	}
	if d, ok := ledger.ParseMoney(t.Raw["balance"]); ok {
		t.Balance = d
		t.HasBalance = true
	}
	if d, ok := ledger.ParseMoney(t.Raw["splitAmount"]); ok {
		t.SplitAmount = d
		t.HasSplit = true
	}
	t.Category = t.Raw["category"]
	t.Who = t.Raw["who"]
	t.Description = t.Raw["description"]
	if raw := t.Raw["date"]; raw != "" {
		if d, err := date.Parse(raw); err == nil {
			t.Date = d
		} else {
			// Rows not yet dated carry a literal placeholder (e.g. "SPLIT").
			t.DateRaw = raw
		}
	}
	if raw := t.Raw["writtenDate"]; raw != "" {
		if d, err := date.Parse(raw); err == nil {
			t.WrittenDate = d
		}
	}
	if raw := t.Raw["postDate"]; raw != "" {
		if d, err := date.Parse(raw); err == nil {
			t.PostDate = d
		}
	}
	note, err := ledger.ParseNote(t.Raw["note"])
	if err != nil {
		t.AddError(ledger.Errorf(a.Name, lineno, "invalid note: %v", err))
	} else {
		t.Note = note
	}
	return t
}
