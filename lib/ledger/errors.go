package ledger

import (
	"fmt"
)

// LineError is a fault on a single ledger line.
type LineError struct {
	Acct   string
	Lineno int
	Msg    string
}

func (e LineError) Error() string {
	return fmt.Sprintf("%s: lineno %d: %s", e.Acct, e.Lineno, e.Msg)
}

// Errorf creates a LineError for the given line.
func Errorf(acct string, lineno int, format string, args ...any) LineError {
	return LineError{Acct: acct, Lineno: lineno, Msg: fmt.Sprintf(format, args...)}
}

// AccountError is an account-wide fault.
type AccountError struct {
	Acct string
	Msg  string
}

func (e AccountError) Error() string {
	return fmt.Sprintf("%s: %s", e.Acct, e.Msg)
}
