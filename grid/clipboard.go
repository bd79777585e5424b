package grid

import (
	"cmp"
	"slices"

	"github.com/iw2rmb/tabula/internal/tsv"
)

// clipCell places column Column of slab[Slab] at an offset from the paste
// origin.
type clipCell struct {
	rowOffset int
	colOffset int
	column    ColumnIdx
	slab      int
}

type clipboard[R any] struct {
	slab  []R
	cells []clipCell
}

func (c *clipboard[R]) rowCount() int {
	n := 0
	for _, cell := range c.cells {
		n = max(n, cell.rowOffset+1)
	}
	return n
}

type clipboardState[R any] struct {
	internal *clipboard[R]

	// serialized is the text produced by the last copy; outgoing holds it
	// until the host takes it.
	serialized  string
	outgoing    string
	hasOutgoing bool

	offered string
}

// TakeSystemClipboard returns text the host should put on the system
// clipboard after a copy or cut. It is only produced when the viewer
// implements RowCodec.
func (g *Grid[R]) TakeSystemClipboard() (string, bool) {
	c := &g.state().clip
	if !c.hasOutgoing {
		return "", false
	}
	c.hasOutgoing = false
	return c.outgoing, true
}

// OfferClipboardText hands the current system clipboard text to the grid
// ahead of a paste.
//
// Offered text wins over the internal clipboard when it differs from what
// the grid itself last copied, parses to at most the visible column count
// and decodes without an abort. Otherwise the internal clipboard is used.
func (g *Grid[R]) OfferClipboardText(text string) {
	g.state().clip.offered = text
}

// selectedCells returns every selected visible cell once, in row-major order.
func (u *uiState[R]) selectedCells() []cellPos {
	ncol := len(u.visCols)
	var cells []cellPos
	for _, s := range u.selections() {
		for r, c := range s.Cells(ncol) {
			cells = append(cells, cellPos{r: r, c: c})
		}
	}
	slices.SortFunc(cells, compareCellPos)
	return slices.Compact(cells)
}

type cellPos struct {
	r VisRow
	c VisCol
}

func compareCellPos(a, b cellPos) int {
	return cmp.Or(cmp.Compare(a.r, b.r), cmp.Compare(a.c, b.c))
}

// copySelection captures the selected cells into the internal clipboard and,
// when the viewer can encode cells, serializes them for the host.
func (g *Grid[R]) copySelection() bool {
	ui := g.ui
	v := g.viewer

	cells := ui.selectedCells()
	if len(cells) == 0 {
		return false
	}

	minR, minC := cells[0].r, cells[0].c
	for _, p := range cells {
		minC = min(minC, p.c)
	}

	clip := &clipboard[R]{}
	slabOf := make(map[VisRow]int)
	for _, p := range cells {
		idx, ok := slabOf[p.r]
		if !ok {
			idx = len(clip.slab)
			slabOf[p.r] = idx
			clip.slab = append(clip.slab, v.CloneRow(&g.rows[ui.cache.rows[p.r]]))
		}
		clip.cells = append(clip.cells, clipCell{
			rowOffset: int(p.r - minR),
			colOffset: int(p.c - minC),
			column:    ui.visCols[p.c],
			slab:      idx,
		})
	}
	ui.clip.internal = clip

	if codec, ok := v.(RowCodec[R]); ok {
		text := encodeClipboard(clip, codec)
		ui.clip.serialized = text
		ui.clip.outgoing = text
		ui.clip.hasOutgoing = true
	}
	return true
}

// encodeClipboard writes clip as a dense block; cells that were not copied
// are written empty.
func encodeClipboard[R any](clip *clipboard[R], codec RowCodec[R]) string {
	width := 0
	for _, c := range clip.cells {
		width = max(width, c.colOffset+1)
	}
	rows := make([][]string, clip.rowCount())
	for i := range rows {
		rows[i] = make([]string, width)
	}
	for _, c := range clip.cells {
		rows[c.rowOffset][c.colOffset] = codec.EncodeCell(&clip.slab[c.slab], int(c.column))
	}
	return tsv.Encode(rows)
}

// pasteSource picks the clipboard a paste reads from and consumes any
// offered system text.
func (g *Grid[R]) pasteSource() *clipboard[R] {
	ui := g.ui
	text := ui.clip.offered
	ui.clip.offered = ""

	if text != "" && text != ui.clip.serialized {
		if clip, ok := g.decodeClipboard(text); ok {
			return clip
		}
	}
	return ui.clip.internal
}

// decodeClipboard parses system text into a clipboard anchored at the
// interactive column, following the codec's per-cell decisions.
func (g *Grid[R]) decodeClipboard(text string) (*clipboard[R], bool) {
	ui := g.ui
	v := g.viewer
	codec, ok := v.(RowCodec[R])
	if !ok {
		return nil, false
	}

	tbl := tsv.Parse(text)
	ncol := len(ui.visCols)
	if tbl.NumRows() == 0 || tbl.Width() > ncol {
		return nil, false
	}

	_, c0 := ui.interactive.RowCol(ncol)
	clip := &clipboard[R]{}
	for row, cells := range tbl.Rows() {
		dst := v.NewEmptyRow(EmptyRowDefault)
		var decoded []clipCell
		skipRow := false

	cellLoop:
		for col, cellText := range cells {
			vc := int(c0) + col
			if vc >= ncol {
				continue
			}
			column := ui.visCols[vc]
			switch codec.DecodeCell(cellText, int(column), &dst) {
			case DecodeOK:
				decoded = append(decoded, clipCell{
					rowOffset: row,
					colOffset: col,
					column:    column,
					slab:      len(clip.slab),
				})
			case DecodeSkipCell:
			case DecodeSkipRow:
				skipRow = true
				break cellLoop
			case DecodeAbort:
				g.opt.Logger.Debug("clipboard text decode aborted", "grid", g.id, "row", row, "col", col)
				return nil, false
			}
		}

		if skipRow || len(decoded) == 0 {
			continue
		}
		clip.slab = append(clip.slab, dst)
		clip.cells = append(clip.cells, decoded...)
	}

	if len(clip.cells) == 0 {
		return nil, false
	}
	return clip, true
}

// pasteInPlace writes the clipboard at the interactive cell as one SetCells
// batch. Cells landing outside the visible range are dropped.
func (g *Grid[R]) pasteInPlace() bool {
	ui := g.ui
	v := g.viewer
	clip := g.pasteSource()
	nrow, ncol := len(ui.cache.rows), len(ui.visCols)
	if clip == nil || nrow == 0 {
		return false
	}

	converter, canConvert := v.(ColumnConverter[R])
	r0, c0 := ui.interactive.RowCol(ncol)
	batch := SetCells[R]{Slab: slices.Clone(clip.slab)}

	for _, cell := range clip.cells {
		vr, vc := int(r0)+cell.rowOffset, int(c0)+cell.colOffset
		if vr >= nrow || vc >= ncol {
			continue
		}
		row := ui.cache.rows[vr]
		col := ui.visCols[vc]
		if !g.cellEditable(row, col) {
			continue
		}

		slab := cell.slab
		if col != cell.column {
			if !canConvert {
				continue
			}
			next := v.CloneRow(&g.rows[row])
			if !converter.ConvertCell(&clip.slab[cell.slab], int(cell.column), &next, int(col)) {
				continue
			}
			slab = len(batch.Slab)
			batch.Slab = append(batch.Slab, next)
		}

		if !g.confirmWrite(row, &batch.Slab[slab], col, CellWritePaste) {
			continue
		}
		batch.Writes = append(batch.Writes, CellWrite{Row: row, Column: col, Slab: slab})
	}

	return g.Push(batch)
}

// pasteInsert builds fresh rows from the clipboard, one per row offset, and
// inserts them as one block.
func (g *Grid[R]) pasteInsert() bool {
	v := g.viewer
	if !g.rowInsertionsAllowed() {
		return false
	}
	clip := g.pasteSource()
	if clip == nil {
		return false
	}

	rows := make([]R, clip.rowCount())
	for i := range rows {
		rows[i] = v.NewEmptyRow(EmptyRowInsertion)
	}
	for _, cell := range clip.cells {
		v.SetCellValue(&clip.slab[cell.slab], &rows[cell.rowOffset], int(cell.column))
	}

	return g.Push(InsertRows[R]{At: g.insertionPoint(0), Rows: rows})
}

// insertionPoint returns where new rows go: offset rows below the
// interactive row, or the end of the store when a sort is active or nothing
// is visible.
func (g *Grid[R]) insertionPoint(offset int) RowID {
	ui := g.ui
	if len(ui.sort) > 0 || len(ui.cache.rows) == 0 {
		return RowID(len(g.rows))
	}
	r, _ := ui.interactive.RowCol(len(ui.visCols))
	return ui.cache.rows[r] + RowID(offset)
}
