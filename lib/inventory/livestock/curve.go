package livestock

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PricePoint is one point of the price-vs-weight formula: the $/lb price
// paid for an animal of the given weight.
type PricePoint struct {
	Weight decimal.Decimal
	Price  decimal.Decimal
}

// Curve is a piecewise-linear price-per-pound formula over animal weight.
// Beyond the first and last points it extrapolates flat.
type Curve struct {
	points []PricePoint
}

// NewCurve builds a curve. Points must be strictly ascending by weight.
func NewCurve(points []PricePoint) (Curve, error) {
	if len(points) == 0 {
		return Curve{}, fmt.Errorf("price curve has no points")
	}
	for i := 1; i < len(points); i++ {
		if points[i].Weight.LessThanOrEqual(points[i-1].Weight) {
			return Curve{}, fmt.Errorf("price curve weights are not ascending at %s", points[i].Weight)
		}
	}
	return Curve{points: points}, nil
}

// FlatCurve prices every weight at the same $/lb.
func FlatCurve(price decimal.Decimal) Curve {
	return Curve{points: []PricePoint{{Weight: decimal.Zero, Price: price}}}
}

// ParseCurve parses an aveValuePerWeight note value: either a scalar $/lb
// ("1.25") or a list of weight@price points ("550@1.80 900@1.40").
func ParseCurve(v string) (Curve, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Curve{}, fmt.Errorf("empty aveValuePerWeight value")
	}
	if !strings.Contains(v, "@") {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return Curve{}, fmt.Errorf("invalid aveValuePerWeight %q", v)
		}
		return FlatCurve(price), nil
	}
	var points []PricePoint
	for _, tok := range strings.Fields(v) {
		ws, ps, ok := strings.Cut(tok, "@")
		if !ok {
			return Curve{}, fmt.Errorf("invalid price point %q", tok)
		}
		w, err := decimal.NewFromString(ws)
		if err != nil {
			return Curve{}, fmt.Errorf("invalid price point weight %q", ws)
		}
		p, err := decimal.NewFromString(ps)
		if err != nil {
			return Curve{}, fmt.Errorf("invalid price point price %q", ps)
		}
		points = append(points, PricePoint{Weight: w, Price: p})
	}
	return NewCurve(points)
}

// IsZero reports whether no curve has been set.
func (c Curve) IsZero() bool {
	return len(c.points) == 0
}

// PricePerLb interpolates the $/lb price for the given weight.
func (c Curve) PricePerLb(weight decimal.Decimal) decimal.Decimal {
	ps := c.points
	if weight.LessThanOrEqual(ps[0].Weight) {
		return ps[0].Price
	}
	last := ps[len(ps)-1]
	if weight.GreaterThanOrEqual(last.Weight) {
		return last.Price
	}
	for i := 1; i < len(ps); i++ {
		if weight.GreaterThan(ps[i].Weight) {
			continue
		}
		p1, p2 := ps[i-1], ps[i]
		frac := weight.Sub(p1.Weight).Div(p2.Weight.Sub(p1.Weight))
		return p1.Price.Add(p2.Price.Sub(p1.Price).Mul(frac))
	}
	return last.Price
}
