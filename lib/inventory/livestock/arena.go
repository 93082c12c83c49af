package livestock

import (
	"time"

	"github.com/hallfarms/books/lib/common/compare"
	"github.com/hallfarms/books/lib/common/date"
	"github.com/shopspring/decimal"
)

// group is one FIFO cost layer: the animals bought together in one lot.
// Groups live only for the duration of one replay pass.
type group struct {
	date   time.Time
	qty    decimal.Decimal
	weight decimal.Decimal
	amount decimal.Decimal

	inAmountPerHead decimal.Decimal
	inWeightPerHead decimal.Decimal
}

// expWeightPerHead is the expected per-head weight as of the given day,
// assuming steady daily gain since purchase.
func (g *group) expWeightPerHead(rog decimal.Decimal, asOf time.Time) decimal.Decimal {
	days := date.DaysBetween(g.date, asOf)
	if days < 0 {
		days = 0
	}
	return g.inWeightPerHead.Add(rog.Mul(decimal.NewFromInt(int64(days))))
}

// arena owns the cost layers of one replay pass. Layers are stored in
// insertion order and never move; the order index holds the live layers
// sorted heaviest-expected-weight first, so removals consume the fattest
// cattle.
type arena struct {
	groups []*group
	order  []int
}

func (ar *arena) add(g *group) {
	if g.qty.IsPositive() {
		g.inAmountPerHead = g.amount.Div(g.qty)
		g.inWeightPerHead = g.weight.Div(g.qty)
	}
	ar.groups = append(ar.groups, g)
	ar.order = append(ar.order, len(ar.groups)-1)
}

// resort reorders the live layers by expected weight as of the day, heaviest
// first. Stable, so same-weight layers keep insertion order.
func (ar *arena) resort(rog decimal.Decimal, asOf time.Time) {
	compare.Sort(ar.order, func(i, j int) compare.Order {
		return compare.Decimal(
			ar.groups[j].expWeightPerHead(rog, asOf),
			ar.groups[i].expWeightPerHead(rog, asOf))
	})
}

func (ar *arena) totalQty() decimal.Decimal {
	sum := decimal.Zero
	for _, i := range ar.order {
		sum = sum.Add(ar.groups[i].qty)
	}
	return sum
}

func (ar *arena) totalCost() decimal.Decimal {
	sum := decimal.Zero
	for _, i := range ar.order {
		sum = sum.Add(ar.groups[i].amount)
	}
	return sum
}

// expectedWeight is the total live weight as of the day.
func (ar *arena) expectedWeight(rog decimal.Decimal, asOf time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, i := range ar.order {
		g := ar.groups[i]
		sum = sum.Add(g.qty.Mul(g.expWeightPerHead(rog, asOf)))
	}
	return sum
}

// remove consumes head from the heaviest layers, reducing a partially
// consumed layer proportionally. The removed weight is valued at yesterday's
// expected weight: an animal leaving today did not gain today.
func (ar *arena) remove(head decimal.Decimal, rog decimal.Decimal, asOf time.Time) (weightRemoved, costRemoved decimal.Decimal, err error) {
	if ar.totalQty().LessThan(head) {
		return decimal.Zero, decimal.Zero, errInsufficient{have: ar.totalQty(), want: head}
	}
	yesterday := asOf.AddDate(0, 0, -1)
	toRemove := head
	live := ar.order[:0]
	for _, i := range ar.order {
		g := ar.groups[i]
		if toRemove.IsZero() || g.qty.IsZero() {
			if !g.qty.IsZero() {
				live = append(live, i)
			}
			continue
		}
		take := decimal.Min(g.qty, toRemove)
		weightRemoved = weightRemoved.Add(take.Mul(g.expWeightPerHead(rog, yesterday)))
		cost := g.amount.Mul(take).Div(g.qty)
		weight := g.weight.Mul(take).Div(g.qty)
		g.amount = g.amount.Sub(cost)
		g.weight = g.weight.Sub(weight)
		g.qty = g.qty.Sub(take)
		costRemoved = costRemoved.Add(cost)
		toRemove = toRemove.Sub(take)
		if !g.qty.IsZero() {
			live = append(live, i)
		}
	}
	ar.order = live
	return weightRemoved, costRemoved, nil
}

type errInsufficient struct {
	have, want decimal.Decimal
}

func (e errInsufficient) Error() string {
	return "cannot remove " + e.want.String() + " head, only " + e.have.String() + " in inventory"
}
