// Package tsv reads and writes the tab-separated text used for clipboard
// interchange.
//
// Cells are separated by a tab and rows by a newline. Inside a cell the tab,
// newline, carriage return and backslash characters are escaped as \t, \n,
// \r and \\. An empty cell is written as a single space.
package tsv

import (
	"iter"
	"strings"
)

func WriteTab(sb *strings.Builder) { sb.WriteByte('\t') }

func WriteNewline(sb *strings.Builder) { sb.WriteByte('\n') }

// WriteContent writes one escaped cell value.
func WriteContent(sb *strings.Builder, item string) {
	if item == "" {
		item = " "
	}

	sb.Grow(len(item))
	for _, r := range item {
		switch r {
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
}

// Encode writes rows as they are: ragged rows stay ragged and no trailing
// newline is emitted.
func Encode(rows [][]string) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			WriteNewline(&sb)
		}
		for j, cell := range row {
			if j > 0 {
				WriteTab(&sb)
			}
			WriteContent(&sb, cell)
		}
	}
	return sb.String()
}

type span struct {
	start, end int
}

// Table is parsed TSV text. Cell text is unescaped and stored in one
// rebuilt buffer; cells are byte spans into it.
type Table struct {
	data       string
	cells      []span
	rowOffsets []int
}

// Parse scans text once. A tab always closes a cell, even an empty one; a
// newline closes the pending cell only when it is non-empty, then closes the
// row. Carriage returns outside escapes are dropped. An unknown escape keeps
// its backslash.
func Parse(text string) *Table {
	var (
		data      strings.Builder
		cells     []span
		rows      = []int{0}
		cellStart = 0
		escaping  = false
	)

	for _, r := range text {
		if escaping {
			switch r {
			case 't':
				data.WriteByte('\t')
			case 'n':
				data.WriteByte('\n')
			case 'r':
				data.WriteByte('\r')
			case '\\':
				data.WriteByte('\\')
			default:
				data.WriteByte('\\')
				data.WriteRune(r)
			}
			escaping = false
			continue
		}

		switch r {
		case '\t', '\n':
			if r == '\t' || cellStart != data.Len() {
				cells = append(cells, span{start: cellStart, end: data.Len()})
				cellStart = data.Len()
			}
			if r == '\n' {
				rows = append(rows, len(cells))
			}
		case '\r':
		case '\\':
			escaping = true
		default:
			data.WriteRune(r)
		}
	}

	if escaping {
		data.WriteByte('\\')
	}
	if cellStart != data.Len() {
		cells = append(cells, span{start: cellStart, end: data.Len()})
	}
	if rows[len(rows)-1] != len(cells) {
		rows = append(rows, len(cells))
	}

	return &Table{
		data:       data.String(),
		cells:      cells,
		rowOffsets: rows,
	}
}

func (t *Table) NumRows() int { return len(t.rowOffsets) - 1 }

func (t *Table) NumColumnsAt(row int) int {
	if row < 0 || row >= t.NumRows() {
		return 0
	}
	return t.rowOffsets[row+1] - t.rowOffsets[row]
}

// Width returns the column count of the widest row.
func (t *Table) Width() int {
	w := 0
	for row := 0; row < t.NumRows(); row++ {
		w = max(w, t.NumColumnsAt(row))
	}
	return w
}

func (t *Table) Cell(row, col int) (string, bool) {
	if col < 0 || col >= t.NumColumnsAt(row) {
		return "", false
	}
	s := t.cells[t.rowOffsets[row]+col]
	return t.data[s.start:s.end], true
}

// Rows yields every row index with an iterator over its (column, text)
// pairs. Rows are often shorter than the grid, so only present cells are
// visited.
func (t *Table) Rows() iter.Seq2[int, iter.Seq2[int, string]] {
	return func(yield func(int, iter.Seq2[int, string]) bool) {
		for row := 0; row < t.NumRows(); row++ {
			start, end := t.rowOffsets[row], t.rowOffsets[row+1]
			cells := func(yield func(int, string) bool) {
				for i := start; i < end; i++ {
					s := t.cells[i]
					if !yield(i-start, t.data[s.start:s.end]) {
						return
					}
				}
			}
			if !yield(row, cells) {
				return
			}
		}
	}
}
