package ledger

import (
	"go.uber.org/multierr"
)

// Row is one raw spreadsheet row, keyed by header column name.
type Row map[string]string

// Clone copies the row.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// RawAccount is an account as fetched from the spreadsheet store, before any
// validation.
type RawAccount struct {
	Name     string
	Filename string
	Header   []string
	Rows     []Row
}

// Stage tracks how far an account has progressed through the load pipeline.
type Stage int

const (
	StageRaw Stage = iota
	StageValidated
	StageStandardized
	StageSplitsResolved
	StageAsserted
	StageBalanced
)

func (s Stage) String() string {
	switch s {
	case StageRaw:
		return "raw"
	case StageValidated:
		return "validated"
	case StageStandardized:
		return "standardized"
	case StageSplitsResolved:
		return "splits resolved"
	case StageAsserted:
		return "asserted"
	case StageBalanced:
		return "balanced"
	}
	return "unknown"
}

// Account is a per-account ledger, progressively refined by the pipeline
// stages.
type Account struct {
	Name     string
	Filename string
	Settings Settings
	Header   []string
	Rows     []Row
	Lines    []*Tx
	Stage    Stage
	Errors   []error
}

// FromRaw seeds a pipeline account from raw sheet data.
func FromRaw(raw *RawAccount) *Account {
	return &Account{
		Name:     raw.Name,
		Filename: raw.Filename,
		Header:   raw.Header,
		Rows:     raw.Rows,
		Settings: NewSettings(),
	}
}

// AddError records an account-wide fault. Accounts carrying errors are
// skipped by downstream stages.
func (a *Account) AddError(err error) {
	a.Errors = append(a.Errors, err)
}

// Failed reports whether the account carries account-wide errors.
func (a *Account) Failed() bool {
	return len(a.Errors) > 0
}

// Err aggregates all account and line errors.
func (a *Account) Err() error {
	err := multierr.Combine(a.Errors...)
	for _, l := range a.Lines {
		err = multierr.Append(err, multierr.Combine(l.Errors...))
	}
	return err
}

// LineErrors collects the errors of all lines.
func (a *Account) LineErrors() []error {
	var errs []error
	for _, l := range a.Lines {
		errs = append(errs, l.Errors...)
	}
	return errs
}

// Ledger is a flattened, globally sorted view over many accounts, with a
// single recomputed running balance.
type Ledger struct {
	Lines []*Tx
	Accts []*Account
}

// FinalAccounts is the terminal artifact of the load pipeline.
type FinalAccounts struct {
	Tax Ledger
	Mkt Ledger
	// Originals retains the settings-bearing per-account views needed by
	// inventory reconciliation.
	Originals []*Account
}

// Original returns the original account with the given name.
func (fa *FinalAccounts) Original(name string) *Account {
	for _, a := range fa.Originals {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// CashAccounts returns the original cash accounts.
func (fa *FinalAccounts) CashAccounts() []*Account {
	var res []*Account
	for _, a := range fa.Originals {
		if a.Settings.AccountType == CashType {
			res = append(res, a)
		}
	}
	return res
}
