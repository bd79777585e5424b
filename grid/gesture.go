package grid

// Modifiers are the keyboard modifiers held when a pointer gesture ends.
// Ctrl toggles a rectangle; Shift extends the selection.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

func (m Modifiers) none() bool { return !m.Shift && !m.Ctrl }

// gestureState is an in-progress pointer drag, kept apart from the committed
// selection until the pointer is released.
type gestureState struct {
	active   bool
	wholeRow bool
	pivot    LinearIdx
	current  LinearIdx
}

func (u *uiState[R]) checkVisible(row VisRow, col VisCol) {
	if int(row) < 0 || int(row) >= len(u.cache.rows) || int(col) < 0 || int(col) >= len(u.visCols) {
		panic("grid: visible cell out of range")
	}
}

// GestureBegin starts a drag at a cell. An active gesture is restarted.
func (g *Grid[R]) GestureBegin(row VisRow, col VisCol) {
	ui := g.state()
	g.freshCache()
	ui.checkVisible(row, col)
	idx := row.Linear(len(ui.visCols), col)
	ui.gesture = gestureState{active: true, pivot: idx, current: idx}
	g.version++
}

// GestureUpdate moves the free corner of the drag, starting one if needed.
func (g *Grid[R]) GestureUpdate(row VisRow, col VisCol) {
	ui := g.state()
	if !ui.gesture.active || ui.gesture.wholeRow {
		g.GestureBegin(row, col)
		return
	}
	ui.checkVisible(row, col)
	idx := row.Linear(len(ui.visCols), col)
	if idx == ui.gesture.current {
		return
	}
	ui.gesture.current = idx
	g.version++
}

// GestureUpdateRow drags whole rows, as from a row-number gutter.
func (g *Grid[R]) GestureUpdateRow(row VisRow) {
	ui := g.state()
	g.freshCache()
	ncol := len(ui.visCols)
	ui.checkVisible(row, 0)

	pivotRow := row
	if ui.gesture.active && ui.gesture.wholeRow {
		pivotRow, _ = ui.gesture.pivot.RowCol(ncol)
	}
	ui.gesture = gestureState{
		active:   true,
		wholeRow: true,
		pivot:    pivotRow.Linear(ncol, 0),
		current:  row.Linear(ncol, VisCol(ncol-1)),
	}
	g.version++
}

func (g *Grid[R]) HasGesture() bool { return g.state().gesture.active }

// CancelGesture drops an in-progress drag without touching the selection.
func (g *Grid[R]) CancelGesture() {
	ui := g.state()
	if ui.gesture.active {
		ui.gesture = gestureState{}
		g.version++
	}
}

func (u *uiState[R]) gestureRect() (Selection, bool) {
	if !u.gesture.active {
		return Selection{}, false
	}
	return SelectionFromPoints(len(u.visCols), u.gesture.pivot, u.gesture.current), true
}

// IsGestureSelected reports whether a cell lies inside the in-progress drag.
func (g *Grid[R]) IsGestureSelected(row VisRow, col VisCol) bool {
	ui := g.state()
	rect, ok := ui.gestureRect()
	return ok && rect.Contains(len(ui.visCols), row, col)
}

// TakeGestureSelection ends the drag and merges its rectangle into the
// committed selection. It returns false when no gesture was in progress.
func (g *Grid[R]) TakeGestureSelection(mods Modifiers) bool {
	ui := g.state()
	rect, ok := ui.gestureRect()
	if !ok {
		return false
	}
	pivot := ui.gesture.pivot
	ui.gesture = gestureState{}

	ncol := len(ui.visCols)
	rects := mergeGesture(ncol, ui.selections(), rect, mods)

	interactive := ui.interactive
	if !mods.Shift {
		interactive = pivot
	}
	g.Push(SetSelection{Rects: rects, Interactive: interactive})
	return true
}

// mergeGesture combines a finished gesture rectangle with the committed
// selection according to mods. It never modifies current.
func mergeGesture(ncol int, current []Selection, rect Selection, mods Modifiers) []Selection {
	if mods.none() || len(current) == 0 {
		return []Selection{rect}
	}

	out := append([]Selection(nil), current...)
	if mods.Ctrl {
		for i, s := range out {
			if s.ContainsRect(ncol, rect) {
				return append(out[:i], out[i+1:]...)
			}
		}
		return append(out, rect)
	}

	last := &out[len(out)-1]
	if last.IsPoint() && rect.IsPoint() {
		*last = last.Union(ncol, rect)
		return out
	}
	return append(out, rect)
}
