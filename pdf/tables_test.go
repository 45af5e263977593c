package pdf

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
)

// frag builds a positioned text fragment for table-detection tests.
func frag(s string, x, w, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, W: w, FontSize: size}
}

func TestSplitCells_wide_gaps_separate_cells(t *testing.T) {
	t.Parallel()

	row := []pdf.Text{
		frag("Name", 0, 30, 10),
		frag("Qty", 100, 20, 10),
		frag("Price", 200, 30, 10),
	}

	assert.Equal(t, []string{"Name", "Qty", "Price"}, splitCells(row))
}

func TestSplitCells_small_gaps_join_words_within_a_cell(t *testing.T) {
	t.Parallel()

	row := []pdf.Text{
		frag("Total", 0, 30, 10),
		frag("amount", 34, 40, 10), // word gap, same cell
		frag("42", 200, 15, 10),    // column gap, new cell
	}

	assert.Equal(t, []string{"Total amount", "42"}, splitCells(row))
}

func TestSplitCells_adjacent_fragments_concatenate(t *testing.T) {
	t.Parallel()

	row := []pdf.Text{
		frag("He", 0, 12, 10),
		frag("llo", 12, 18, 10),
	}

	assert.Equal(t, []string{"Hello"}, splitCells(row))
}

func TestDetectTables_requires_consecutive_multicell_rows(t *testing.T) {
	t.Parallel()

	prose := &pdf.Row{Content: []pdf.Text{frag("Just a sentence.", 0, 100, 10)}}
	tableRow1 := &pdf.Row{Content: []pdf.Text{frag("A", 0, 10, 10), frag("1", 100, 10, 10)}}
	tableRow2 := &pdf.Row{Content: []pdf.Text{frag("B", 0, 10, 10), frag("2", 100, 10, 10)}}
	loneMulti := &pdf.Row{Content: []pdf.Text{frag("X", 0, 10, 10), frag("Y", 100, 10, 10)}}

	tables := detectTables(pdf.Rows{prose, tableRow1, tableRow2, prose, loneMulti, prose})

	assert.Len(t, tables, 1, "a single multi-cell row is not a table")
	assert.Equal(t, [][]string{{"A", "1"}, {"B", "2"}}, tables[0])
}

func TestDetectTables_no_tables_in_prose(t *testing.T) {
	t.Parallel()

	rows := pdf.Rows{
		{Content: []pdf.Text{frag("First line.", 0, 80, 10)}},
		{Content: []pdf.Text{frag("Second line.", 0, 85, 10)}},
	}

	assert.Empty(t, detectTables(rows))
}

func TestRenderTable_tab_delimits_cells(t *testing.T) {
	t.Parallel()

	got := renderTable([][]string{{"Name", "Qty"}, {"Widget", "3"}})
	assert.Equal(t, "Name\tQty\nWidget\t3\n", got)
}
