// Package sheets defines the spreadsheet row store the ledger is loaded from
// and written back to. The store owns all persistence; the core never talks
// to a database.
package sheets

import (
	"context"

	"github.com/hallfarms/books/lib/ledger"
)

// UpsertMode selects the write semantics of BatchUpsertRows.
type UpsertMode int

const (
	// Insert shifts all subsequent rows down by the count of same-lineno
	// insertions: N items sharing lineno L become consecutive rows
	// L..L+N-1, and the original row L is pushed to L+N.
	Insert UpsertMode = iota
	// Update overwrites rows in place.
	Update
)

// RowUpdate addresses one row of an account sheet.
type RowUpdate struct {
	Lineno int
	Row    ledger.Row
}

// Store is a spreadsheet row store holding semantically typed rows.
type Store interface {
	// FetchAccounts fetches every account sheet wholesale.
	FetchAccounts(ctx context.Context) ([]*ledger.RawAccount, error)
	// PutRow writes a single row of an account sheet.
	PutRow(ctx context.Context, acct string, lineno int, row ledger.Row) error
	// BatchUpsertRows writes many rows of one account sheet.
	BatchUpsertRows(ctx context.Context, acct string, updates []RowUpdate, header []string, mode UpsertMode) error
}
