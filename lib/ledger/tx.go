package ledger

import (
	"strings"
	"time"

	"github.com/hallfarms/books/lib/common/compare"
	"github.com/shopspring/decimal"
)

// Tx is a single ledger line.
type Tx struct {
	Acct   *Account
	Lineno int // 1-based sheet line number, header row counted

	// StmtLineno preserves a statement-supplied line number column, kept for
	// audit only.
	StmtLineno string

	Date time.Time
	// DateRaw passes through the literal cell value of rows not yet dated
	// (e.g. "SPLIT" children before date inheritance).
	DateRaw     string
	WrittenDate time.Time
	PostDate    time.Time

	Amount      decimal.Decimal
	Balance     decimal.Decimal
	HasBalance  bool
	SplitAmount decimal.Decimal
	HasSplit    bool

	Category    string
	Who         string
	Description string
	Note        Note
	IsStart     bool

	Errors []error
	Raw    Row
}

// AddError records a fault on this line. Errored lines are excluded from
// business logic but retained for reporting.
func (t *Tx) AddError(err error) {
	t.Errors = append(t.Errors, err)
}

// Valid reports whether the line carries no errors.
func (t *Tx) Valid() bool {
	return len(t.Errors) == 0
}

// Clone copies the line. Raw and Errors are shared.
func (t *Tx) Clone() *Tx {
	c := *t
	return &c
}

// CompareDate orders lines by date.
func CompareDate(t1, t2 *Tx) compare.Order {
	return compare.Time(t1.Date, t2.Date)
}

// CategoryParts splits a dash-delimited category into its hierarchy.
func CategoryParts(cat string) []string {
	return strings.Split(cat, "-")
}

// CategoryMatches reports whether cat equals pattern or sits below it in the
// dash-delimited hierarchy ("sales-grain-corn" matches "sales-grain").
func CategoryMatches(cat, pattern string) bool {
	return cat == pattern || strings.HasPrefix(cat, pattern+"-")
}

// CategoryIn reports whether cat matches any of the patterns.
func CategoryIn(cat string, patterns []string) bool {
	for _, p := range patterns {
		if CategoryMatches(cat, p) {
			return true
		}
	}
	return false
}

// StripViewPrefix removes a leading "tax." or "mkt." disambiguator from a
// category or account path segment.
func StripViewPrefix(s string) string {
	s = strings.TrimPrefix(s, "tax.")
	return strings.TrimPrefix(s, "mkt.")
}
