package table

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tabula/grid"
)

type dragState struct {
	active bool
	rows   bool
	mods   grid.Modifiers

	// startedOnSelection is set when the press landed on the cell that was
	// already the only selection.
	startedOnSelection bool
}

func (m Model[R]) updateMouse(msg tea.MouseMsg) (Model[R], tea.Cmd) {
	var cmd tea.Cmd
	if isWheel(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if !m.focused {
		return m, nil
	}

	g := m.grid
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		h := m.hitTest(msg.X, msg.Y)
		mods := grid.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl}

		switch h.kind {
		case hitHeader:
			cols := g.VisibleColumns()
			m.apply(grid.Action{Kind: grid.ActionHeaderClick, Column: cols[h.col]})

		case hitGutter:
			m.drag = dragState{active: true, rows: true, mods: mods}
			g.GestureUpdateRow(h.row)

		case hitCell:
			if r, c, ok := g.EditingCell(); ok && r == h.row && c == h.col {
				return m, nil
			}
			ir, ic := g.InteractiveCell()
			onSelection := g.ActionContext().Cursor == grid.CursorSelectOne && ir == h.row && ic == h.col
			m.drag = dragState{active: true, mods: mods, startedOnSelection: onSelection}
			g.GestureBegin(h.row, h.col)
		}

	case tea.MouseActionMotion:
		if !m.drag.active {
			return m, nil
		}
		r, c, ok := m.clampedCell(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		if m.drag.rows {
			g.GestureUpdateRow(r)
		} else {
			g.GestureUpdate(r, c)
		}

	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		d := m.drag
		m.drag = dragState{}
		g.TakeGestureSelection(d.mods)

		sel := g.Selections()
		single := len(sel) == 1 && sel[0].IsPoint()
		if !d.rows && single && d.mods == (grid.Modifiers{}) && (m.cfg.SingleClickEdit || d.startedOnSelection) {
			m.apply(grid.Action{Kind: grid.ActionStartEditing})
		}
	}
	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}
