package grid

import "slices"

// ActionKind identifies a high-level user action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionStartEditing
	ActionCancelEdition
	ActionCommitEdition
	ActionCommitEditionAndMove
	ActionMoveSelection
	ActionExtendSelection
	ActionUndo
	ActionRedo
	ActionCopySelection
	ActionCutSelection
	ActionPasteInPlace
	ActionPasteInsert
	ActionDeleteSelection
	ActionDeleteRow
	ActionDuplicateRow
	ActionInsertRowAbove
	ActionInsertRowBelow
	ActionFillSelection
	ActionSelectAll
	ActionNavPageUp
	ActionNavPageDown
	ActionNavTop
	ActionNavBottom
	ActionHeaderClick
)

var actionNames = [...]string{
	ActionNone:                 "none",
	ActionStartEditing:         "start-editing",
	ActionCancelEdition:        "cancel-edition",
	ActionCommitEdition:        "commit-edition",
	ActionCommitEditionAndMove: "commit-edition-and-move",
	ActionMoveSelection:        "move-selection",
	ActionExtendSelection:      "extend-selection",
	ActionUndo:                 "undo",
	ActionRedo:                 "redo",
	ActionCopySelection:        "copy",
	ActionCutSelection:         "cut",
	ActionPasteInPlace:         "paste",
	ActionPasteInsert:          "paste-insert",
	ActionDeleteSelection:      "delete-selection",
	ActionDeleteRow:            "delete-row",
	ActionDuplicateRow:         "duplicate-row",
	ActionInsertRowAbove:       "insert-row-above",
	ActionInsertRowBelow:       "insert-row-below",
	ActionFillSelection:        "fill-selection",
	ActionSelectAll:            "select-all",
	ActionNavPageUp:            "page-up",
	ActionNavPageDown:          "page-down",
	ActionNavTop:               "top",
	ActionNavBottom:            "bottom",
	ActionHeaderClick:          "header-click",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "unknown"
}

// Action is a typed high-level request resolved by Grid.Apply. Dir is used by
// the move and commit-and-move kinds; Column by ActionHeaderClick.
type Action struct {
	Kind   ActionKind
	Dir    Direction
	Column ColumnIdx
}

// Apply resolves a into commands and pushes them. It reports whether the
// grid changed.
func (g *Grid[R]) Apply(a Action) bool {
	ui := g.state()
	g.freshCache()
	ncol, nrow := len(ui.visCols), len(ui.cache.rows)
	if ncol == 0 {
		return false
	}

	switch a.Kind {
	case ActionStartEditing:
		if nrow == 0 {
			return false
		}
		r, c := ui.interactive.RowCol(ncol)
		return g.startEditing(r, c)

	case ActionCancelEdition:
		return g.Push(CancelEdit{})

	case ActionCommitEdition:
		return g.Push(CommitEdit{})

	case ActionCommitEditionAndMove:
		if nrow == 0 {
			return false
		}
		g.Push(CommitEdit{})
		next := ui.movedPosition(ui.interactive, a.Dir)
		r, c := next.RowCol(ncol)
		if !g.startEditing(r, c) {
			g.selectPoint(next)
		}
		ui.requestScroll(next)
		return true

	case ActionMoveSelection:
		if nrow == 0 {
			return false
		}
		next := ui.movedPosition(ui.interactive, a.Dir)
		g.selectPoint(next)
		ui.requestScroll(next)
		return true

	case ActionExtendSelection:
		return g.extendSelection(a.Dir)

	case ActionUndo:
		return g.Undo()

	case ActionRedo:
		return g.Redo()

	case ActionCopySelection:
		return g.copySelection()

	case ActionCutSelection:
		if !g.copySelection() {
			return false
		}
		return g.writeSelection(CellWriteClear)

	case ActionPasteInPlace:
		return g.pasteInPlace()

	case ActionPasteInsert:
		return g.pasteInsert()

	case ActionDeleteSelection:
		return g.writeSelection(CellWriteClear)

	case ActionFillSelection:
		return g.writeSelection(CellWriteFill)

	case ActionDeleteRow:
		return g.deleteRows()

	case ActionDuplicateRow:
		if nrow == 0 || !g.rowInsertionsAllowed() {
			return false
		}
		r, _ := ui.interactive.RowCol(ncol)
		dup := g.viewer.CloneRow(&g.rows[ui.cache.rows[r]])
		return g.Push(InsertRows[R]{At: g.insertionPoint(1), Rows: []R{dup}})

	case ActionInsertRowAbove, ActionInsertRowBelow:
		if !g.rowInsertionsAllowed() {
			return false
		}
		offset := 0
		if a.Kind == ActionInsertRowBelow {
			offset = 1
		}
		row := g.viewer.NewEmptyRow(EmptyRowInsertion)
		return g.Push(InsertRows[R]{At: g.insertionPoint(offset), Rows: []R{row}})

	case ActionSelectAll:
		if nrow == 0 || ncol == 0 {
			return false
		}
		all := rect(ncol, 0, 0, VisRow(nrow-1), VisCol(ncol-1))
		return g.Push(SetSelection{Rects: []Selection{all}, Interactive: ui.interactive})

	case ActionNavPageUp, ActionNavPageDown, ActionNavTop, ActionNavBottom:
		if nrow == 0 {
			return false
		}
		page := max(ui.pageRows, 1)
		var next LinearIdx
		switch a.Kind {
		case ActionNavPageUp:
			next = pagedPosition(ui.interactive, -page, nrow, ncol)
		case ActionNavPageDown:
			next = pagedPosition(ui.interactive, page, nrow, ncol)
		case ActionNavTop:
			next = pagedPosition(ui.interactive, -nrow, nrow, ncol)
		default:
			next = pagedPosition(ui.interactive, nrow, nrow, ncol)
		}
		g.selectPoint(next)
		ui.requestScroll(next)
		return true

	case ActionHeaderClick:
		return g.cycleSort(a.Column)
	}
	return false
}

func (g *Grid[R]) selectPoint(idx LinearIdx) {
	g.Push(SetSelection{Rects: []Selection{Point(idx)}, Interactive: idx})
}

// startEditing enters edit mode on a visible cell when the viewer allows it.
func (g *Grid[R]) startEditing(r VisRow, c VisCol) bool {
	ui := g.ui
	ui.checkVisible(r, c)
	row := ui.cache.rows[r]
	if !g.cellEditable(row, ui.visCols[c]) {
		return false
	}
	return g.Push(EditStart[R]{Row: row, Column: c, Scratch: g.viewer.CloneRow(&g.rows[row])})
}

// extendSelection grows the last rectangle from the interactive cell towards
// dir. Horizontal extension does not wrap.
func (g *Grid[R]) extendSelection(dir Direction) bool {
	ui := g.ui
	ncol, nrow := len(ui.visCols), len(ui.cache.rows)
	if nrow == 0 {
		return false
	}

	ir, ic := ui.interactive.RowCol(ncol)
	hr, hc := ir, ic
	rects := slices.Clone(ui.selections())
	if n := len(rects); n > 0 && rects[n-1].Contains(ncol, ir, ic) {
		top, left, bottom, right := rects[n-1].Bounds(ncol)
		hr, hc = top+bottom-ir, left+right-ic
		rects = rects[:n-1]
	}

	switch dir {
	case Up:
		hr = max(hr-1, 0)
	case Down:
		hr = min(hr+1, VisRow(nrow-1))
	case Left:
		hc = max(hc-1, 0)
	case Right:
		hc = min(hc+1, VisCol(ncol-1))
	}

	head := hr.Linear(ncol, hc)
	rects = append(rects, SelectionFromPoints(ncol, ui.interactive, head))
	g.Push(SetSelection{Rects: rects, Interactive: ui.interactive})
	ui.requestScroll(head)
	return true
}

// writeSelection writes into every selected cell: the viewer's deletion
// template for CellWriteClear, or the interactive row's values for
// CellWriteFill.
func (g *Grid[R]) writeSelection(ctx CellWriteContext) bool {
	ui := g.ui
	v := g.viewer
	cells := ui.selectedCells()
	if len(cells) == 0 {
		return false
	}

	var src R
	var srcRow RowID = -1
	if ctx == CellWriteFill {
		r, _ := ui.interactive.RowCol(len(ui.visCols))
		srcRow = ui.cache.rows[r]
		src = v.CloneRow(&g.rows[srcRow])
	} else {
		src = v.NewEmptyRow(EmptyRowDeletion)
	}

	batch := SetCells[R]{Slab: []R{src}}
	for _, p := range cells {
		row, col := ui.cache.rows[p.r], ui.visCols[p.c]
		if row == srcRow || !g.cellEditable(row, col) {
			continue
		}
		if !g.confirmWrite(row, &batch.Slab[0], col, ctx) {
			continue
		}
		batch.Writes = append(batch.Writes, CellWrite{Row: row, Column: col, Slab: 0})
	}
	return g.Push(batch)
}

// deleteRows removes every row touched by the selection, or the interactive
// row when nothing is selected.
func (g *Grid[R]) deleteRows() bool {
	ui := g.ui
	ncol := len(ui.visCols)
	if len(ui.cache.rows) == 0 {
		return false
	}
	if p, ok := g.viewer.(EditPolicy[R]); ok && !p.AllowRowDeletions() {
		return false
	}
	gate, gated := g.viewer.(WriteGate[R])

	var ids []RowID
	visit := func(r VisRow) {
		id := ui.cache.rows[r]
		if gated && !gate.ConfirmRowDeletion(&g.rows[id]) {
			g.opt.Logger.Debug("row deletion vetoed", "grid", g.id, "row", id)
			return
		}
		ids = append(ids, id)
	}

	rects := ui.selections()
	if len(rects) == 0 {
		r, _ := ui.interactive.RowCol(ncol)
		visit(r)
	}
	seen := make(map[VisRow]bool)
	for _, s := range rects {
		top, _, bottom, _ := s.Bounds(ncol)
		for r := top; r <= bottom; r++ {
			if !seen[r] {
				seen[r] = true
				visit(r)
			}
		}
	}
	return g.Push(RemoveRows{Rows: ids})
}

// cycleSort advances a column through ascending, descending and unsorted.
// A column that is not yet sorted is appended as the lowest priority key.
func (g *Grid[R]) cycleSort(col ColumnIdx) bool {
	ui := g.ui
	if int(col) < 0 || int(col) >= ui.identity.Columns || !g.viewer.IsSortableColumn(int(col)) {
		return false
	}

	keys := slices.Clone(ui.sort)
	i := slices.IndexFunc(keys, func(k SortKey) bool { return k.Column == col })
	switch {
	case i < 0:
		keys = append(keys, SortKey{Column: col, Ascending: true})
	case keys[i].Ascending:
		keys[i].Ascending = false
	default:
		keys = slices.Delete(keys, i, i+1)
	}
	return g.Push(SetColumnSort{Keys: keys})
}

func (g *Grid[R]) cellEditable(row RowID, col ColumnIdx) bool {
	p, ok := g.viewer.(EditPolicy[R])
	return !ok || p.IsEditableCell(int(col), row, &g.rows[row])
}

func (g *Grid[R]) rowInsertionsAllowed() bool {
	p, ok := g.viewer.(EditPolicy[R])
	return !ok || p.AllowRowInsertions()
}

func (g *Grid[R]) confirmWrite(row RowID, next *R, col ColumnIdx, ctx CellWriteContext) bool {
	gate, ok := g.viewer.(WriteGate[R])
	if !ok || gate.ConfirmCellWrite(&g.rows[row], next, int(col), ctx) {
		return true
	}
	g.opt.Logger.Debug("cell write vetoed", "grid", g.id, "row", row, "column", col)
	return false
}
