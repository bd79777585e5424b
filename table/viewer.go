package table

import "github.com/iw2rmb/tabula/grid"

// Viewer is the grid capability interface plus the display text of a cell.
//
// A Viewer may additionally implement CellEditor to allow inline editing and
// HotkeyProvider to replace the default key bindings.
type Viewer[R any] interface {
	grid.RowViewer[R]

	// CellText returns the text shown for col of row. It may span several
	// lines; Config.MaxRowHeight limits how many are shown.
	CellText(row *R, col int) string
}

// CellEditor converts a cell to and from the text edited in place.
//
// SetEditText writes into the scratch row of the current edit; the live
// row changes only when the edit is committed.
type CellEditor[R any] interface {
	EditText(row *R, col int) string
	SetEditText(row *R, col int, text string)
}
