package livestock

import (
	"fmt"
	"time"

	"github.com/hallfarms/books/lib/inventory"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/shopspring/decimal"
)

// Default categories for the synthetic livestock lines; overridable through
// account settings.
const (
	defaultDailyGainCategory = "inventory-cattle-dailygain"
	defaultDeadCategory      = "inventory-cattle-dead"
)

// DailyGainCategory returns the account's category for daily-gain lines.
func DailyGainCategory(ia *inventory.Account) string {
	if c := ia.Settings.Raw["dailygainCategory"]; c != "" {
		return c
	}
	return defaultDailyGainCategory
}

// DeadCategory returns the account's category for death-loss lines.
func DeadCategory(ia *inventory.Account) string {
	if c := ia.Settings.Raw["deadCategory"]; c != "" {
		return c
	}
	return defaultDeadCategory
}

// Line is one stored line of a livestock inventory sheet, with the columns
// the FIFO engine works on.
type Line struct {
	Tx         *ledger.Tx
	Qty        decimal.Decimal // head, signed
	Weight     decimal.Decimal // lbs, signed
	Amount     decimal.Decimal // market-basis
	TaxAmount  decimal.Decimal // FIFO cost basis
	Balance    decimal.Decimal
	TaxBalance decimal.Decimal
}

// Lines extracts the livestock view of the account's lines.
func Lines(ia *inventory.Account) ([]*Line, error) {
	if !ia.IsLivestock() {
		return nil, fmt.Errorf("%s is not a livestock account: no rog setting", ia.Name)
	}
	res := make([]*Line, 0, len(ia.Lines))
	for _, t := range ia.Lines {
		l := &Line{
			Tx:      t,
			Qty:     rawDecimal(t, "qty"),
			Weight:  rawDecimal(t, "weight"),
			Amount:  t.Amount,
			Balance: t.Balance,

			TaxAmount:  rawDecimal(t, "taxAmount"),
			TaxBalance: rawDecimal(t, "taxBalance"),
		}
		res = append(res, l)
	}
	return res, nil
}

func rawDecimal(t *ledger.Tx, col string) decimal.Decimal {
	if d, ok := ledger.ParseMoney(t.Raw[col]); ok {
		return d
	}
	return decimal.Zero
}

// Expected holds the FIFO-computed values for one line.
type Expected struct {
	Lineno int

	Amount    decimal.Decimal
	TaxAmount decimal.Decimal
	Weight    decimal.Decimal
	Qty       decimal.Decimal

	Balance       decimal.Decimal
	TaxBalance    decimal.Decimal
	WeightBalance decimal.Decimal
	QtyBalance    decimal.Decimal

	AveValuePerQty    decimal.Decimal
	AveValuePerWeight decimal.Decimal
	AveWeightPerQty   decimal.Decimal
}

type lineKind int

const (
	kindStart lineKind = iota
	kindPurchase
	kindSale
	kindDead
	kindDailyGain
	kindOther
)

func kindOf(ia *inventory.Account, l *Line, first bool) lineKind {
	switch {
	case first:
		return kindStart
	case ledger.CategoryMatches(l.Tx.Category, DailyGainCategory(ia)):
		return kindDailyGain
	case ledger.CategoryMatches(l.Tx.Category, DeadCategory(ia)):
		return kindDead
	case l.Qty.IsPositive():
		return kindPurchase
	case l.Qty.IsNegative():
		return kindSale
	}
	return kindOther
}

// ComputeExpected replays the account's lines through the FIFO cost-layer
// simulation and returns per-line expected amounts, weights and balances on
// both the tax and market basis.
//
// Purchase and sale lines report their own stated amount and weight verbatim
// (they must match the bank account); their tax amounts and head counts stay
// FIFO-derived. Daily-gain and dead lines are fully FIFO-derived. Errors
// here are fatal for the account: an inconsistent simulation would silently
// produce nonsensical financial figures.
func ComputeExpected(ia *inventory.Account) ([]Expected, error) {
	lines, err := Lines(ia)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	rog := ia.Settings.ROG

	curve := Curve{}
	if v := ia.Settings.Raw["aveValuePerWeight"]; v != "" {
		if curve, err = ParseCurve(v); err != nil {
			return nil, fmt.Errorf("%s: %w", ia.Name, err)
		}
	}

	var (
		ar         arena
		mktBalance = decimal.Zero
		wgtBalance = decimal.Zero
		prevQty    = decimal.Zero
		prevTax    = decimal.Zero
	)
	res := make([]Expected, len(lines))
	for i, l := range lines {
		// A new pricing formula on any line permanently replaces the active
		// curve going forward.
		if v, ok := l.Tx.Note.Get("aveValuePerWeight"); ok {
			if curve, err = ParseCurve(v); err != nil {
				return nil, ledger.Errorf(ia.Name, l.Tx.Lineno, "%v", err)
			}
		}
		if curve.IsZero() {
			return nil, ledger.Errorf(ia.Name, l.Tx.Lineno, "no aveValuePerWeight price formula in effect")
		}
		d := l.Tx.Date
		exp := Expected{Lineno: l.Tx.Lineno}

		switch kindOf(ia, l, i == 0) {
		case kindStart:
			if !l.Qty.IsZero() {
				cost := l.TaxBalance
				if cost.IsZero() {
					cost = l.TaxAmount
				}
				ar.add(&group{date: d, qty: l.Qty, weight: l.Weight, amount: cost})
			}
			ar.resort(rog, d)
			wgtBalance = ar.expectedWeight(rog, d)
			mktBalance = marketValue(&ar, curve, rog, d)
			exp.Amount = l.Amount
			exp.Weight = l.Weight

		case kindPurchase:
			ar.add(&group{date: d, qty: l.Qty, weight: l.Weight, amount: l.Amount})
			ar.resort(rog, d)
			exp.Amount = l.Amount
			exp.Weight = l.Weight
			mktBalance = mktBalance.Add(l.Amount)
			wgtBalance = wgtBalance.Add(l.Weight)

		case kindSale:
			weightRemoved, _, err := ar.remove(l.Qty.Neg(), rog, d)
			if err != nil {
				return nil, ledger.Errorf(ia.Name, l.Tx.Lineno, "%v", err)
			}
			exp.Amount = l.Amount
			exp.Weight = l.Weight
			mktBalance = mktBalance.Add(l.Amount)
			wgtBalance = wgtBalance.Sub(weightRemoved)

		case kindDead:
			weightRemoved, _, err := ar.remove(l.Qty.Neg(), rog, d)
			if err != nil {
				return nil, ledger.Errorf(ia.Name, l.Tx.Lineno, "%v", err)
			}
			// Dead animals are expensed at the price their removal-day
			// weight implies, not today's.
			aveDead := decimal.Zero
			if !l.Qty.IsZero() {
				aveDead = weightRemoved.Div(l.Qty.Neg())
			}
			exp.Amount = curve.PricePerLb(aveDead).Mul(weightRemoved).Neg()
			exp.Weight = weightRemoved.Neg()
			mktBalance = mktBalance.Add(exp.Amount)
			wgtBalance = wgtBalance.Sub(weightRemoved)

		case kindDailyGain:
			// Growth affects market value only; the cost layers are
			// untouched, so any stored tax effect is data corruption.
			if !l.TaxAmount.IsZero() {
				return nil, ledger.Errorf(ia.Name, l.Tx.Lineno, "DAILYGAIN line has nonzero taxAmount %s", l.TaxAmount)
			}
			newW := ar.expectedWeight(rog, d)
			newB := marketValue(&ar, curve, rog, d)
			exp.Weight = newW.Sub(wgtBalance)
			exp.Amount = newB.Sub(mktBalance)
			wgtBalance = newW
			mktBalance = newB

		case kindOther:
			exp.Amount = l.Amount
			exp.Weight = l.Weight
			mktBalance = mktBalance.Add(l.Amount)
		}

		exp.QtyBalance = ar.totalQty()
		exp.Qty = exp.QtyBalance.Sub(prevQty)
		exp.TaxBalance = ar.totalCost()
		exp.TaxAmount = exp.TaxBalance.Sub(prevTax)
		exp.WeightBalance = wgtBalance
		exp.Balance = mktBalance
		if !exp.QtyBalance.IsZero() {
			exp.AveWeightPerQty = exp.WeightBalance.Div(exp.QtyBalance)
			exp.AveValuePerQty = exp.Balance.Div(exp.QtyBalance)
		}
		if !exp.WeightBalance.IsZero() {
			exp.AveValuePerWeight = exp.Balance.Div(exp.WeightBalance)
		}
		prevQty = exp.QtyBalance
		prevTax = exp.TaxBalance
		res[i] = exp
	}
	return res, nil
}

// marketValue prices the whole herd: head count times average weight times
// the $/lb the average weight implies.
func marketValue(ar *arena, curve Curve, rog decimal.Decimal, asOf time.Time) decimal.Decimal {
	qty := ar.totalQty()
	if qty.IsZero() {
		return decimal.Zero
	}
	w := ar.expectedWeight(rog, asOf)
	ave := w.Div(qty)
	return w.Mul(curve.PricePerLb(ave))
}
