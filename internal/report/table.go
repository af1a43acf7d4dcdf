package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

func writeTable[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	header, rows, err := rowsOf(Table, items)
	if err != nil {
		return err
	}
	widths := columnWidths(header, rows)
	aligns := alignmentsOf(items[0], len(widths))

	if err := drawRule(w, widths, "+"); err != nil {
		return err
	}
	if header != nil {
		if err := drawRow(w, header, widths, aligns); err != nil {
			return err
		}
		if err := drawRule(w, widths, "+"); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := drawRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return drawRule(w, widths, "+")
}

func writeMarkdown[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	header, rows, err := rowsOf(Markdown, items)
	if err != nil {
		return err
	}
	if header == nil {
		return fmt.Errorf("%w: format %q requires Headed, not implemented by %T", ErrMissingInterface, Markdown, items[0])
	}
	header = escapePipes(header)
	for i := range rows {
		rows[i] = escapePipes(rows[i])
	}
	widths := columnWidths(header, rows)
	for i := range widths {
		// Room for the alignment marker.
		widths[i] = max(widths[i], 3)
	}
	aligns := alignmentsOf(items[0], len(widths))

	if err := markdownRow(w, header, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		if aligns[i] == AlignRight {
			sep[i] = strings.Repeat("-", width-1) + ":"
		} else {
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := markdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func columnWidths(header []string, rows [][]string) []int {
	n := len(header)
	for _, row := range rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	for i, h := range header {
		widths[i] = max(widths[i], runewidth.StringWidth(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func alignmentsOf(item any, n int) []Alignment {
	aligns := make([]Alignment, n)
	if a, ok := item.(Aligned); ok {
		copy(aligns, a.Alignments())
	}
	return aligns
}

func drawRule(w io.Writer, widths []int, joint string) error {
	var sb strings.Builder
	sb.WriteString(joint)
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString(joint)
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	var sb strings.Builder
	sb.WriteString("|")
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(alignCell(cellAt(cells, i), width, aligns[i]))
		sb.WriteString(" |")
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func markdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cellAt(cells, i), width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func escapePipes(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}
