package ledger

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the money equality tolerance. Spreadsheet balances are entered
// by hand and rounded to cents.
var Tolerance = decimal.New(1, -2)

// MoneyEquals reports whether two amounts are equal within Tolerance.
func MoneyEquals(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// RoundMoney rounds an amount to cents.
func RoundMoney(a decimal.Decimal) decimal.Decimal {
	return a.Round(2)
}

var (
	numericPat = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	datePat    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseMoney normalizes a currency-looking cell into a number. It strips
// dollar signs and thousands separators, turns the parenthesis convention
// into a negative sign, and collapses the "-$-" double-negative artifact
// seen in bank exports. Cells that look like dates or contain any other
// non-numeric characters are left alone (ok is false).
func ParseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || LooksLikeDate(s) {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, "-$-", "-")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	s = strings.TrimSpace(s)
	if !numericPat.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// LooksLikeDate reports whether a cell value looks like a calendar date
// rather than a number.
func LooksLikeDate(s string) bool {
	return strings.Contains(s, "/") || datePat.MatchString(s)
}
