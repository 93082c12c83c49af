package balance

import (
	"io"

	"github.com/hallfarms/books/lib/common/date"
	"github.com/hallfarms/books/lib/common/table"
)

// Renderer renders a balance sheet as a text table.
type Renderer struct {
	Color bool
}

func (rn *Renderer) Render(r *Report, w io.Writer) error {
	t := table.New(2)
	t.AddSeparatorRow()
	t.AddRow().
		AddText("Account", table.Center).
		AddText(date.Format(r.AsOf), table.Center)
	t.AddSeparatorRow()
	for _, ch := range r.Root.Sorted {
		renderNode(t, ch, 0)
	}
	t.AddSeparatorRow()
	t.AddRow().
		AddText("Total", table.Left).
		AddNumber(r.Total().Round(2))
	t.AddSeparatorRow()
	tr := table.TextRenderer{Color: rn.Color, Round: 2}
	return tr.Render(t, w)
}

func renderNode(t *table.Table, n *Node, indent int) {
	t.AddRow().
		AddIndented(n.Segment, indent).
		AddNumber(n.Value.Balance.Round(2))
	for _, ch := range n.Sorted {
		renderNode(t, ch, indent+2)
	}
}
