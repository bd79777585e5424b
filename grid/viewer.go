package grid

// RowViewer is the capability interface a host implements to describe its
// row type R. The grid never inspects row values itself.
//
// Optional capabilities are discovered by type assertion on the viewer:
// IdentityProvider, RowFilter, EditPolicy, WriteGate, RowCodec,
// ColumnConverter and Notifier.
type RowViewer[R any] interface {
	NumColumns() int
	ColumnName(col int) string
	IsSortableColumn(col int) bool

	// CompareCell orders two rows by one column: negative, zero or positive.
	CompareCell(a, b *R, col int) int

	NewEmptyRow(ctx EmptyRowContext) R
	CloneRow(src *R) R

	// SetCellValue copies column col from src into dst.
	SetCellValue(src, dst *R, col int)
}

// EmptyRowContext tells NewEmptyRow why a row is being created.
type EmptyRowContext uint8

const (
	// EmptyRowDefault is a plain template row.
	EmptyRowDefault EmptyRowContext = iota
	// EmptyRowDeletion supplies the values written when cells are cleared.
	EmptyRowDeletion
	// EmptyRowInsertion is a fresh line inserted into the table.
	EmptyRowInsertion
)

// Identity distinguishes viewer configurations. A change of Kind or Columns
// discards all UI state; a change of Version only invalidates the view
// cache.
type Identity struct {
	Kind    string
	Columns int
	Version uint64
}

// IdentityProvider lets a viewer describe itself explicitly. Viewers that do
// not implement it are identified by their column count alone.
type IdentityProvider interface {
	Identity() Identity
}

// RowFilter hides rows from the visible projection. FilterHash must change
// whenever the filter configuration changes.
type RowFilter[R any] interface {
	FilterRow(row *R) bool
	FilterHash() uint64
}

// EditPolicy restricts which cells can be edited and whether the row count
// may change through the UI.
type EditPolicy[R any] interface {
	IsEditableCell(col int, row RowID, value *R) bool
	AllowRowInsertions() bool
	AllowRowDeletions() bool
}

// CellWriteContext describes why a UI-driven cell write happens.
type CellWriteContext uint8

const (
	CellWritePaste CellWriteContext = iota
	CellWriteClear
	CellWriteFill
)

// WriteGate may veto individual UI-driven writes. A vetoed cell or row is
// left out of the batch; the rest of the action still happens.
type WriteGate[R any] interface {
	ConfirmCellWrite(current, next *R, col int, ctx CellWriteContext) bool
	ConfirmRowDeletion(row *R) bool
}

// DecodeResult is the outcome of decoding one pasted cell.
type DecodeResult uint8

const (
	DecodeOK DecodeResult = iota
	// DecodeSkipCell drops the cell.
	DecodeSkipCell
	// DecodeSkipRow drops every cell of the pasted row.
	DecodeSkipRow
	// DecodeAbort abandons the pasted text; the internal clipboard is used.
	DecodeAbort
)

// RowCodec converts single cells to and from clipboard text. Without it,
// copy and paste only use the internal clipboard.
type RowCodec[R any] interface {
	EncodeCell(row *R, col int) string
	DecodeCell(text string, col int, dst *R) DecodeResult
}

// ColumnConverter copies a value between two different columns. It is used
// when a clipboard cell lands in a column other than the one it was copied
// from; ok=false skips the cell.
type ColumnConverter[R any] interface {
	ConvertCell(src *R, srcCol int, dst *R, dstCol int) (ok bool)
}

// Notifier receives fire-and-forget notifications after rows change or the
// set of highlighted rows changes.
type Notifier[R any] interface {
	OnRowUpdated(row RowID, before, after *R)
	OnRowInserted(row RowID, value *R)
	OnRowRemoved(row RowID, value *R)
	OnHighlightChange(highlighted, unhighlighted []RowID)
}

func identityOf[R any](v RowViewer[R]) Identity {
	if p, ok := v.(IdentityProvider); ok {
		id := p.Identity()
		if id.Columns == 0 {
			id.Columns = v.NumColumns()
		}
		return id
	}
	return Identity{Columns: v.NumColumns()}
}
