package main

import (
	"cmp"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iw2rmb/tabula/grid"
)

const (
	colName = iota
	colQty
	colPrice
	colNote
	numCols
)

var columnNames = [numCols]string{"name", "qty", "price", "note"}

// itemViewer presents items as four columns. Names sort by the collation
// rules of the configured locale.
type itemViewer struct {
	coll   *collate.Collator
	filter string
}

func newItemViewer(locale, filter string) (*itemViewer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &itemViewer{
		coll:   collate.New(tag, collate.IgnoreCase),
		filter: strings.ToLower(filter),
	}, nil
}

func (v *itemViewer) NumColumns() int               { return numCols }
func (v *itemViewer) ColumnName(col int) string     { return columnNames[col] }
func (v *itemViewer) IsSortableColumn(col int) bool { return col != colNote }

func (v *itemViewer) CompareCell(a, b *item, col int) int {
	switch col {
	case colName:
		return v.coll.CompareString(a.Name, b.Name)
	case colQty:
		return cmp.Compare(a.Qty, b.Qty)
	case colPrice:
		return cmp.Compare(a.Price, b.Price)
	default:
		return strings.Compare(a.Note, b.Note)
	}
}

func (v *itemViewer) NewEmptyRow(grid.EmptyRowContext) item { return item{} }
func (v *itemViewer) CloneRow(src *item) item               { return *src }

func (v *itemViewer) SetCellValue(src, dst *item, col int) {
	switch col {
	case colName:
		dst.Name = src.Name
	case colQty:
		dst.Qty = src.Qty
	case colPrice:
		dst.Price = src.Price
	case colNote:
		dst.Note = src.Note
	}
}

func (v *itemViewer) CellText(row *item, col int) string {
	switch col {
	case colName:
		return row.Name
	case colQty:
		return strconv.Itoa(row.Qty)
	case colPrice:
		return strconv.FormatFloat(row.Price, 'f', 2, 64)
	default:
		return row.Note
	}
}

func (v *itemViewer) EditText(row *item, col int) string { return v.CellText(row, col) }

// SetEditText keeps the last value that parsed; the editor still shows what
// was typed.
func (v *itemViewer) SetEditText(row *item, col int, text string) {
	v.DecodeCell(text, col, row)
}

func (v *itemViewer) EncodeCell(row *item, col int) string { return v.CellText(row, col) }

func (v *itemViewer) DecodeCell(text string, col int, dst *item) grid.DecodeResult {
	switch col {
	case colName:
		dst.Name = text
	case colQty:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return grid.DecodeSkipCell
		}
		dst.Qty = n
	case colPrice:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return grid.DecodeSkipCell
		}
		dst.Price = f
	case colNote:
		dst.Note = text
	}
	return grid.DecodeOK
}

// ConvertCell lets quantities and prices be pasted across each other.
func (v *itemViewer) ConvertCell(src *item, srcCol int, dst *item, dstCol int) bool {
	return v.DecodeCell(v.CellText(src, srcCol), dstCol, dst) == grid.DecodeOK
}

func (v *itemViewer) FilterRow(row *item) bool {
	return v.filter == "" || strings.Contains(strings.ToLower(row.Name), v.filter)
}

func (v *itemViewer) FilterHash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(v.filter))
	return h.Sum64()
}
