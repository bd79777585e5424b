package grid

import (
	"fmt"
	"slices"
)

// Push applies cmd and records it in history.
//
// While editing, any command other than CommitEdit or CancelEdit commits the
// edit first. SetSelection, EditStart and CancelEdit change the cursor only
// and are never recorded. Commands that would change nothing are dropped.
// Push reports whether anything happened.
func (g *Grid[R]) Push(cmd Command) bool {
	ui := g.state()

	switch cmd.(type) {
	case CommitEdit, CancelEdit:
	default:
		if _, ok := ui.edition(); ok {
			g.Push(CommitEdit{})
		}
	}

	switch c := cmd.(type) {
	case SetSelection:
		g.freshCache()
		ui.setSelection(c)
		g.version++
		return true

	case EditStart[R]:
		g.freshCache()
		ui.startEdit(c)
		g.version++
		return true

	case CancelEdit:
		if _, ok := ui.takeEdit(); !ok {
			return false
		}
		g.version++
		return true

	case CommitEdit:
		e, ok := ui.takeEdit()
		if !ok {
			return false
		}
		g.version++
		cmd = SetRowValue[R]{Row: e.row, Value: e.scratch}
	}

	p, ok := plan(g.planState(), cmd)
	if !ok {
		g.opt.Logger.Debug("dropping command with no effect", "grid", g.id, "command", fmt.Sprintf("%T", cmd))
		return false
	}

	g.freshCache()
	e := historyEntry{apply: p.apply, restore: p.restore, marks: &selectionMarks{before: ui.markSelection()}}
	if evicted := ui.hist.record(e, g.opt.HistoryLimit); evicted > 0 {
		g.opt.Logger.Debug("history limit reached", "grid", g.id, "evicted", evicted)
	}
	g.apply(p.apply)
	return true
}

// Undo restores the state before the newest applied entry, selection
// included. An edit in progress is cancelled first.
func (g *Grid[R]) Undo() bool {
	ui := g.state()
	if _, ok := ui.takeEdit(); ok {
		g.version++
	}
	e, ok := ui.hist.undo()
	if !ok {
		return false
	}
	g.freshCache()
	e.marks.after = ui.markSelection()
	for _, cmd := range e.restore {
		g.apply(cmd)
	}
	g.restoreSelection(e.marks.before)
	return true
}

// Redo re-applies the newest undone entry and puts back the selection it was
// undone with. An edit in progress is cancelled first.
func (g *Grid[R]) Redo() bool {
	ui := g.state()
	if _, ok := ui.takeEdit(); ok {
		g.version++
	}
	e, ok := ui.hist.redo()
	if !ok {
		return false
	}
	g.freshCache()
	e.marks.before = ui.markSelection()
	g.apply(e.apply)
	g.restoreSelection(e.marks.after)
	return true
}

func (u *uiState[R]) setSelection(c SetSelection) {
	ncol, nrow := len(u.visCols), len(u.cache.rows)
	rects := make([]Selection, 0, len(c.Rects))
	for _, s := range c.Rects {
		s = SelectionFromPoints(ncol, s.Min, s.Max)
		if next, ok := s.Reproject(ncol, ncol, nrow); ok {
			rects = append(rects, next)
		}
	}
	u.cursor = selecting{rects: rects}
	u.interactive = c.Interactive
	u.clampInteractive(ncol, ncol)
}

// apply performs a planned command. Structural commands mark the view cache
// dirty; value commands restart the deferred re-sort countdown.
func (g *Grid[R]) apply(cmd Command) {
	ui := g.ui
	v := g.viewer
	notifier, notify := v.(Notifier[R])
	g.version++

	switch c := cmd.(type) {
	case SetVisibleColumns:
		from := len(ui.visCols)
		ui.visCols = slices.Clone(c.Columns)
		ui.reprojectSelection(from, len(ui.visCols))
		ui.cache.dirty = true

	case SetColumnSort:
		ui.sort = slices.Clone(c.Keys)
		ui.cache.dirty = true

	case SetRowValue[R]:
		before := g.rows[c.Row]
		g.rows[c.Row] = v.CloneRow(&c.Value)
		g.valueEdited()
		if notify {
			notifier.OnRowUpdated(c.Row, &before, &g.rows[c.Row])
		}

	case SetCells[R]:
		var (
			order   []RowID
			befores = make(map[RowID]R)
		)
		for _, w := range c.Writes {
			if _, seen := befores[w.Row]; !seen {
				order = append(order, w.Row)
				befores[w.Row] = v.CloneRow(&g.rows[w.Row])
			}
		}
		for _, w := range c.Writes {
			v.SetCellValue(&c.Slab[w.Slab], &g.rows[w.Row], int(w.Column))
			ui.cache.desired = append(ui.cache.desired, desiredCell{row: w.Row, col: w.Column})
		}
		g.valueEdited()
		if notify {
			for _, id := range order {
				before := befores[id]
				notifier.OnRowUpdated(id, &before, &g.rows[id])
			}
		}

	case InsertRows[R]:
		at := int(c.At)
		fresh := make([]R, len(c.Rows))
		for i := range c.Rows {
			fresh[i] = v.CloneRow(&c.Rows[i])
		}
		g.rows = slices.Insert(g.rows, at, fresh...)
		ui.cache.dirty = true
		for i := range fresh {
			for _, col := range ui.visCols {
				ui.cache.desired = append(ui.cache.desired, desiredCell{row: RowID(at + i), col: col})
			}
		}
		g.valueEdited()
		if notify {
			for i := range fresh {
				notifier.OnRowInserted(RowID(at+i), &g.rows[at+i])
			}
		}

	case RemoveRows:
		for i := len(c.Rows) - 1; i >= 0; i-- {
			id := int(c.Rows[i])
			removed := g.rows[id]
			g.rows = slices.Delete(g.rows, id, id+1)
			if notify {
				notifier.OnRowRemoved(RowID(id), &removed)
			}
		}
		ui.cache.dirty = true
		ui.cache.desired = nil
		g.valueEdited()

	default:
		panic(fmt.Sprintf("grid: cannot apply %T", cmd))
	}
}

func (u *uiState[R]) markSelection() selectionMark {
	return selectionMark{
		rects:       slices.Clone(u.selections()),
		interactive: u.interactive,
		ncol:        len(u.visCols),
	}
}

// restoreSelection brings the cache up to date and then puts back m,
// replacing any selection the restored commands queued.
func (g *Grid[R]) restoreSelection(m selectionMark) {
	ui := g.ui
	ui.cache.desired = nil
	g.freshCache()

	ncol, nrow := len(ui.visCols), len(ui.cache.rows)
	rects := make([]Selection, 0, len(m.rects))
	for _, s := range m.rects {
		if next, ok := s.Reproject(m.ncol, ncol, nrow); ok {
			rects = append(rects, next)
		}
	}
	ui.cursor = selecting{rects: rects}
	ui.interactive = m.interactive
	if nrow == 0 {
		ui.interactive = 0
		return
	}
	ui.clampInteractive(m.ncol, ncol)
}

func (g *Grid[R]) valueEdited() {
	g.ui.framesSinceEdit = 0
	g.userModified = true
}
