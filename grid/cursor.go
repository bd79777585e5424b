package grid

// cursorState is exactly one of selecting or editing[R].
type cursorState interface {
	isCursorState()
}

type selecting struct {
	rects []Selection
}

type editing[R any] struct {
	row         RowID
	focus       VisCol
	scratch     R
	justFocused bool
}

func (selecting) isCursorState()   {}
func (*editing[R]) isCursorState() {}

// CursorMode is the cursor state as seen by hotkey resolution.
type CursorMode uint8

const (
	CursorIdle CursorMode = iota
	CursorSelectOne
	CursorSelectMany
	CursorEditing
)

func (m CursorMode) String() string {
	switch m {
	case CursorIdle:
		return "idle"
	case CursorSelectOne:
		return "select-one"
	case CursorSelectMany:
		return "select-many"
	case CursorEditing:
		return "editing"
	default:
		return "unknown"
	}
}

type ActionContext struct {
	Cursor CursorMode
}

func (g *Grid[R]) ActionContext() ActionContext {
	ui := g.state()
	switch c := ui.cursor.(type) {
	case *editing[R]:
		return ActionContext{Cursor: CursorEditing}
	case selecting:
		switch {
		case len(c.rects) == 0:
			return ActionContext{Cursor: CursorIdle}
		case len(c.rects) == 1 && c.rects[0].IsPoint():
			return ActionContext{Cursor: CursorSelectOne}
		default:
			return ActionContext{Cursor: CursorSelectMany}
		}
	}
	return ActionContext{}
}

func (g *Grid[R]) IsEditing() bool {
	_, ok := g.state().cursor.(*editing[R])
	return ok
}

func (u *uiState[R]) edition() (*editing[R], bool) {
	e, ok := u.cursor.(*editing[R])
	return e, ok
}

func (u *uiState[R]) selections() []Selection {
	if s, ok := u.cursor.(selecting); ok {
		return s.rects
	}
	return nil
}

// EditingCell returns the visible position of the cell being edited.
func (g *Grid[R]) EditingCell() (VisRow, VisCol, bool) {
	ui := g.state()
	e, ok := ui.edition()
	if !ok {
		return 0, 0, false
	}
	r, visible := ui.cache.visibleRow(e.row)
	if !visible {
		return 0, 0, false
	}
	return r, e.focus, true
}

// EditRow returns the scratch copy of the row being edited. Cell editors
// write into it; the live row changes only on commit. It is nil when not
// editing.
func (g *Grid[R]) EditRow() *R {
	e, ok := g.state().edition()
	if !ok {
		return nil
	}
	return &e.scratch
}

// EditingColumn returns the logical column being edited.
func (g *Grid[R]) EditingColumn() (ColumnIdx, bool) {
	ui := g.state()
	e, ok := ui.edition()
	if !ok || int(e.focus) >= len(ui.visCols) {
		return 0, false
	}
	return ui.visCols[e.focus], true
}

// TakeJustFocused reports once per edit session that the editor widget
// should grab focus.
func (g *Grid[R]) TakeJustFocused() bool {
	e, ok := g.state().edition()
	if !ok || !e.justFocused {
		return false
	}
	e.justFocused = false
	return true
}

// Selections returns the committed selection rectangles. It is empty while
// editing.
func (g *Grid[R]) Selections() []Selection {
	return g.state().selections()
}

func (g *Grid[R]) IsSelected(row VisRow, col VisCol) bool {
	ui := g.state()
	ncol := len(ui.visCols)
	for _, s := range ui.selections() {
		if s.Contains(ncol, row, col) {
			return true
		}
	}
	return false
}

func (g *Grid[R]) InteractiveCell() (VisRow, VisCol) {
	ui := g.state()
	return ui.interactive.RowCol(len(ui.visCols))
}

// startEdit moves the cursor into edit mode without touching history.
func (u *uiState[R]) startEdit(c EditStart[R]) {
	r, ok := u.cache.visibleRow(c.Row)
	if !ok {
		panic("grid: edit start on a row that is not visible")
	}
	col := VisCol(clampInt(int(c.Column), 0, len(u.visCols)-1))
	u.cursor = &editing[R]{
		row:         c.Row,
		focus:       col,
		scratch:     c.Scratch,
		justFocused: true,
	}
	u.interactive = r.Linear(len(u.visCols), col)
}

// takeEdit leaves edit mode, selecting the cell that was edited.
func (u *uiState[R]) takeEdit() (*editing[R], bool) {
	e, ok := u.edition()
	if !ok {
		return nil, false
	}
	u.cursor = selecting{rects: []Selection{Point(u.interactive)}}
	return e, true
}
