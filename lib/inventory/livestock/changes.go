package livestock

import (
	"github.com/hallfarms/books/lib/inventory"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// Change is one line whose stored values diverge from the FIFO-computed
// ones, together with the corrected row. Applying it is the caller's job.
type Change struct {
	Lineno int
	Fields []string
	Row    ledger.Row
}

var countOne = decimal.New(1, 0)

// ChangesNeeded replays the account and diffs the stored lines against the
// FIFO-computed values. Amounts are compared with the money tolerance;
// head counts and weights count as equal below a whole unit of difference.
func ChangesNeeded(ia *inventory.Account) ([]Change, error) {
	exp, err := ComputeExpected(ia)
	if err != nil {
		return nil, err
	}
	lines, err := Lines(ia)
	if err != nil {
		return nil, err
	}
	var res []Change
	for i, l := range lines {
		e := exp[i]
		var fields []string
		if !ledger.MoneyEquals(l.Amount, e.Amount) {
			fields = append(fields, "amount")
		}
		if !ledger.MoneyEquals(l.TaxAmount, e.TaxAmount) {
			fields = append(fields, "taxAmount")
		}
		if !countsEqual(l.Weight, e.Weight) {
			fields = append(fields, "weight")
		}
		if !countsEqual(l.Qty, e.Qty) {
			fields = append(fields, "qty")
		}
		if !countsEqual(rawDecimal(l.Tx, "qtyBalance"), e.QtyBalance) {
			fields = append(fields, "qtyBalance")
		}
		if len(fields) == 0 {
			continue
		}
		res = append(res, Change{Lineno: l.Tx.Lineno, Fields: fields, Row: correctedRow(l, e)})
	}
	return res, nil
}

func countsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(countOne)
}

// correctedRow rebuilds the stored row with every derived column replaced
// by its rounded expected value. Hand-entered columns (date, category,
// description, note) pass through untouched.
func correctedRow(l *Line, e Expected) ledger.Row {
	row := ledger.Row{}
	for k, v := range l.Tx.Raw {
		row[k] = v
	}
	row["amount"] = ledger.RoundMoney(e.Amount).String()
	row["balance"] = ledger.RoundMoney(e.Balance).String()
	row["taxAmount"] = ledger.RoundMoney(e.TaxAmount).String()
	row["taxBalance"] = ledger.RoundMoney(e.TaxBalance).String()
	row["qty"] = e.Qty.Round(0).String()
	row["qtyBalance"] = e.QtyBalance.Round(0).String()
	row["weight"] = e.Weight.Round(0).String()
	row["weightBalance"] = e.WeightBalance.Round(0).String()
	row["aveValuePerQty"] = ledger.RoundMoney(e.AveValuePerQty).String()
	row["aveValuePerWeight"] = ledger.RoundMoney(e.AveValuePerWeight).String()
	row["aveWeightPerQty"] = e.AveWeightPerQty.Round(0).String()
	return row
}
