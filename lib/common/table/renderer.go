package table

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// TextRenderer renders a table to text.
type TextRenderer struct {
	Color bool
	Round int32
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render renders the table.
func (rn *TextRenderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !rn.Color

	widths := make([]int, t.width)
	for _, row := range t.rows {
		for i, c := range row.cells {
			if l := rn.minLength(c); widths[i] < l {
				widths[i] = l
			}
		}
	}
	for _, row := range t.rows {
		sep := len(row.cells) > 0 && row.cells[0].isSep()
		if sep {
			if _, err := io.WriteString(w, "+-"); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, "| "); err != nil {
				return err
			}
		}
		for i, c := range row.cells {
			if err := rn.renderCell(c, widths[i], w); err != nil {
				return err
			}
			if i < len(row.cells)-1 {
				if _, err := io.WriteString(w, cellSep(c, row.cells[i+1])); err != nil {
					return err
				}
			}
		}
		end := " |\n"
		if sep {
			end = "-+\n"
		}
		if _, err := io.WriteString(w, end); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (rn *TextRenderer) renderCell(c cell, l int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell:
		return writeSpace(w, l)

	case separatorCell:
		return writeStrings(w, "-", l)

	case textCell:
		var before int
		switch t.Align {
		case Left:
			before = t.Indent
		case Right:
			before = l - utf8.RuneCountInString(t.Content)
		case Center:
			before = (l - utf8.RuneCountInString(t.Content)) / 2
		}
		if err := writeSpace(w, before); err != nil {
			return err
		}
		if _, err := io.WriteString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, l-before-utf8.RuneCountInString(t.Content))

	case numberCell:
		s := rn.numToString(t.n)
		before := l - utf8.RuneCountInString(s)
		if err := writeSpace(w, before); err != nil {
			return err
		}
		var err error
		switch {
		case t.n.LessThan(decimal.Zero):
			_, err = red.Fprint(w, s)
		case t.n.GreaterThan(decimal.Zero):
			_, err = green.Fprint(w, s)
		default:
			_, err = fmt.Fprint(w, s)
		}
		return err
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func cellSep(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}

func writeStrings(w io.Writer, s string, l int) error {
	for i := 0; i < l; i++ {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeSpace(w io.Writer, l int) error {
	return writeStrings(w, " ", l)
}

func (rn *TextRenderer) minLength(c cell) int {
	switch t := c.(type) {
	case emptyCell, separatorCell:
		return 0
	case textCell:
		if t.Align == Left {
			return t.Indent + utf8.RuneCountInString(t.Content)
		}
		return utf8.RuneCountInString(t.Content)
	case numberCell:
		return utf8.RuneCountInString(rn.numToString(t.n))
	}
	return 0
}

func (rn *TextRenderer) numToString(d decimal.Decimal) string {
	return addThousandsSep(d.StringFixed(rn.Round))
}

func addThousandsSep(e string) string {
	index := strings.Index(e, ".")
	if index < 0 {
		index = len(e)
	}
	var (
		b  strings.Builder
		ok bool
	)
	for i, ch := range e {
		if i >= index && ch != '-' {
			b.WriteString(e[i:])
			break
		}
		if (index-i)%3 == 0 && ok {
			b.WriteRune(',')
		}
		b.WriteRune(ch)
		if unicode.IsDigit(ch) {
			ok = true
		}
	}
	return b.String()
}
