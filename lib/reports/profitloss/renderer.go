package profitloss

import (
	"fmt"
	"io"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/common/table"
)

// Renderer renders a profit/loss statement as a text table.
type Renderer struct {
	Color bool
}

func (rn *Renderer) Render(r *Report, w io.Writer) error {
	t := table.New(3)
	t.AddSeparatorRow()
	t.AddRow().
		AddText("Category", table.Center).
		AddText(fmt.Sprintf("%s to %s", date.Format(r.From), date.Format(r.To)), table.Center).
		AddText("Qty", table.Center)
	t.AddSeparatorRow()
	for _, ch := range r.Root.Sorted {
		renderNode(t, ch, 0)
	}
	t.AddSeparatorRow()
	t.AddRow().
		AddText("Net", table.Left).
		AddNumber(r.Net().Round(2)).
		AddEmpty()
	t.AddSeparatorRow()
	tr := table.TextRenderer{Color: rn.Color, Round: 2}
	return tr.Render(t, w)
}

func renderNode(t *table.Table, n *Node, indent int) {
	row := t.AddRow().
		AddIndented(n.Segment, indent).
		AddNumber(n.Value.Amount.Round(2))
	if n.Value.Qty.IsZero() {
		row.AddEmpty()
	} else {
		row.AddNumber(n.Value.Qty)
	}
	for _, ch := range n.Sorted {
		renderNode(t, ch, indent+2)
	}
}
