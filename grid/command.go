package grid

// Command is one primitive mutation of a grid. The set is closed; hosts build
// the exported command types and hand them to Grid.Push.
type Command interface {
	isCommand()
}

// HideColumn removes a logical column from the visible order.
type HideColumn struct {
	Column ColumnIdx
}

// ShowColumn inserts a hidden logical column at a visible position.
type ShowColumn struct {
	Column ColumnIdx
	At     VisCol
}

// ReorderColumn moves the visible column at From so that it lands before the
// column currently at To. To may equal the visible column count.
type ReorderColumn struct {
	From VisCol
	To   VisCol
}

type SetVisibleColumns struct {
	Columns []ColumnIdx
}

type SetColumnSort struct {
	Keys []SortKey
}

// SetSelection replaces the committed selection. It never enters history.
type SetSelection struct {
	Rects       []Selection
	Interactive LinearIdx
}

// EditStart switches the cursor into edit mode on one cell. Scratch is the
// working copy edits are applied to until CommitEdit.
type EditStart[R any] struct {
	Row     RowID
	Column  VisCol
	Scratch R
}

type CancelEdit struct{}

type CommitEdit struct{}

// SetRowValue replaces a whole row.
type SetRowValue[R any] struct {
	Row   RowID
	Value R
}

// CellWrite copies column Column of Slab[Slab] into row Row.
type CellWrite struct {
	Row    RowID
	Column ColumnIdx
	Slab   int
}

// SetCells writes a sparse batch of cells.
type SetCells[R any] struct {
	Slab   []R
	Writes []CellWrite
}

// InsertRows inserts a contiguous run of rows before At.
type InsertRows[R any] struct {
	At   RowID
	Rows []R
}

// RemoveRows removes rows by logical index. Order and duplicates do not
// matter.
type RemoveRows struct {
	Rows []RowID
}

func (HideColumn) isCommand()        {}
func (ShowColumn) isCommand()        {}
func (ReorderColumn) isCommand()     {}
func (SetVisibleColumns) isCommand() {}
func (SetColumnSort) isCommand()     {}
func (SetSelection) isCommand()      {}
func (EditStart[R]) isCommand()      {}
func (CancelEdit) isCommand()        {}
func (CommitEdit) isCommand()        {}
func (SetRowValue[R]) isCommand()    {}
func (SetCells[R]) isCommand()       {}
func (InsertRows[R]) isCommand()     {}
func (RemoveRows) isCommand()        {}
