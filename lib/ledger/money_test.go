package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		desc  string
		input string
		want  string
		ok    bool
	}{
		{desc: "plain", input: "1234.56", want: "1234.56", ok: true},
		{desc: "dollar sign", input: "$1,234.56", want: "1234.56", ok: true},
		{desc: "negative", input: "-42", want: "-42", ok: true},
		{desc: "parenthesis convention", input: "($500)", want: "-500", ok: true},
		{desc: "double negative artifact", input: "-$-25.10", want: "-25.1", ok: true},
		{desc: "zero", input: "0", want: "0", ok: true},
		{desc: "padded", input: "  12.00 ", want: "12", ok: true},
		{desc: "empty", input: "", ok: false},
		{desc: "iso date", input: "2020-01-02", ok: false},
		{desc: "us date", input: "1/2/2020", ok: false},
		{desc: "placeholder", input: "SPLIT", ok: false},
		{desc: "text", input: "pending", ok: false},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, ok := ParseMoney(test.input)
			if ok != test.ok {
				t.Fatalf("ParseMoney(%q) ok = %t, want %t", test.input, ok, test.ok)
			}
			if !ok {
				return
			}
			if got.String() != test.want {
				t.Errorf("ParseMoney(%q) = %s, want %s", test.input, got, test.want)
			}
		})
	}
}

func TestMoneyEquals(t *testing.T) {
	tests := []struct {
		desc string
		a, b string
		want bool
	}{
		{desc: "equal", a: "100", b: "100", want: true},
		{desc: "within tolerance", a: "100.00", b: "100.01", want: true},
		{desc: "outside tolerance", a: "100.00", b: "100.02", want: false},
		{desc: "negative within", a: "-5.005", b: "-5.00", want: true},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			a := decimal.RequireFromString(test.a)
			b := decimal.RequireFromString(test.b)
			if got := MoneyEquals(a, b); got != test.want {
				t.Errorf("MoneyEquals(%s, %s) = %t, want %t", test.a, test.b, got, test.want)
			}
		})
	}
}
