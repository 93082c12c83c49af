package table

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
)

func TestTextRenderer(t *testing.T) {
	tbl := New(2)
	tbl.AddSeparatorRow()
	tbl.AddRow().
		AddText("Account", Center).
		AddText("2020-12-31", Center)
	tbl.AddSeparatorRow()
	tbl.AddRow().
		AddIndented("checking", 0).
		AddNumber(decimal.NewFromInt(17000))
	tbl.AddRow().
		AddIndented("loan", 2).
		AddNumber(decimal.RequireFromString("-970000"))
	tbl.AddSeparatorRow()

	var buf bytes.Buffer
	rn := TextRenderer{Color: false, Round: 2}
	if err := rn.Render(tbl, &buf); err != nil {
		t.Fatal(err)
	}
	goldie.New(t).Assert(t, "balance", buf.Bytes())
}

func TestAddThousandsSep(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"0.00", "0.00"},
		{"100.00", "100.00"},
		{"1000.00", "1,000.00"},
		{"-970000.00", "-970,000.00"},
		{"1234567", "1,234,567"},
	}
	for _, test := range tests {
		if got := addThousandsSep(test.input); got != test.want {
			t.Errorf("addThousandsSep(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}
