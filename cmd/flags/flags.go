// Package flags holds shared custom flag types.
package flags

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/hallfarms/books/lib/common/date"
)

// DateFlag manages a flag to determine a date.
type DateFlag time.Time

var _ pflag.Value = (*DateFlag)(nil)

func (df DateFlag) String() string {
	if time.Time(df).IsZero() {
		return ""
	}
	return date.Format(time.Time(df))
}

// Set implements pflag.Value.
func (df *DateFlag) Set(v string) error {
	t, err := date.Parse(v)
	if err != nil {
		return err
	}
	*df = DateFlag(t)
	return nil
}

// Type implements pflag.Value.
func (df DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (df DateFlag) Value() time.Time {
	return time.Time(df)
}
