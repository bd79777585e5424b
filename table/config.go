package table

import "github.com/iw2rmb/tabula/grid"

// Config configures the table Model.
type Config struct {
	// Forwarded to grid.New.
	Options grid.Options

	Style Style

	// Clipboard, when set, receives copied text and is read before a paste.
	Clipboard Clipboard

	ShowRowNumbers bool

	ColumnWidth  int // cells per column; default: 14
	MaxRowHeight int // lines per row; default: 1

	// SingleClickEdit starts editing on a plain click. Otherwise a click on
	// the cell that is already the only selection starts editing.
	SingleClickEdit bool

	// OnChange is called after any update that changed the grid.
	OnChange func(ChangeEvent)
}

func (c Config) withDefaults() Config {
	if c.ColumnWidth <= 0 {
		c.ColumnWidth = 14
	}
	if c.MaxRowHeight <= 0 {
		c.MaxRowHeight = 1
	}
	if c.Style.Separator == "" {
		c.Style.Separator = " "
	}
	return c
}
