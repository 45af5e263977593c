package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// The reader exposes no table model, only text fragments with
// positions. Tables are recovered heuristically: a horizontal gap much
// wider than the font size splits a row into cells, and two or more
// consecutive multi-cell rows form a table.
const (
	// wordGapFactor times the font size separates words within a cell.
	wordGapFactor = 0.3
	// cellGapFactor times the font size separates cells within a row.
	cellGapFactor = 2.0
	// minTableRows is the minimum run of multi-cell rows treated as a table.
	minTableRows = 2
)

// detectTables scans position-sorted rows and returns each table as a
// slice of rows, each row a slice of cell strings.
func detectTables(rows pdf.Rows) [][][]string {
	var tables [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= minTableRows {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, row := range rows {
		cells := splitCells(row.Content)
		if len(cells) >= 2 {
			current = append(current, cells)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// splitCells groups a row's text fragments into cells by the size of
// the horizontal gaps between them.
func splitCells(fragments []pdf.Text) []string {
	var cells []string
	var cell strings.Builder

	var prev *pdf.Text
	for i := range fragments {
		t := fragments[i]
		if t.S == "" {
			continue
		}
		if prev != nil {
			gap := t.X - (prev.X + prev.W)
			size := prev.FontSize
			if size <= 0 {
				size = 12
			}
			switch {
			case gap > cellGapFactor*size:
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			case gap > wordGapFactor*size:
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(t.S)
		prev = &fragments[i]
	}
	if cell.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cell.String()))
	}

	// Drop rows that collapse to nothing after trimming.
	out := cells[:0]
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// renderTable renders a detected table with tab-delimited cells, one
// row per line.
func renderTable(table [][]string) string {
	var b strings.Builder
	for _, row := range table {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
