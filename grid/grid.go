package grid

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Grid owns an ordered row store and the UI state layered over it: the view
// cache, the cursor, the undo history and the internal clipboard.
//
// The UI state is created by the first Sync and discarded whenever the
// viewer identity changes or the rows are mutated directly through Replace,
// Extend, Retain or Take. Mutations made through commands keep it.
//
// A Grid is not safe for concurrent use. Calling back into the grid from a
// viewer method is a logic error.
type Grid[R any] struct {
	id      uuid.UUID
	rows    []R
	version uint64

	// userModified is set by every command that changes row values.
	userModified bool

	opt    Options
	viewer RowViewer[R]
	ui     *uiState[R]
}

type uiState[R any] struct {
	identity   Identity
	filterHash uint64
	hasFilter  bool

	visCols []ColumnIdx
	sort    []SortKey

	cache       viewCache
	cursor      cursorState
	interactive LinearIdx
	gesture     gestureState

	hist            history
	framesSinceEdit int

	scrollTo      VisRow
	scrollPending bool
	pageRows      int

	clip clipboardState[R]

	highlighted []RowID
}

func newUIState[R any](id Identity) *uiState[R] {
	cols := make([]ColumnIdx, id.Columns)
	for i := range cols {
		cols[i] = ColumnIdx(i)
	}
	return &uiState[R]{
		identity: id,
		visCols:  cols,
		cursor:   selecting{},
		cache:    viewCache{dirty: true},
	}
}

func New[R any](rows []R, opt Options) *Grid[R] {
	return &Grid[R]{
		id:   uuid.New(),
		rows: rows,
		opt:  opt.withDefaults(),
	}
}

// ID identifies this grid instance for the lifetime of the process.
func (g *Grid[R]) ID() uuid.UUID { return g.id }

// Version increases whenever rows, layout, selection or cursor change.
func (g *Grid[R]) Version() uint64 { return g.version }

func (g *Grid[R]) Len() int { return len(g.rows) }

// Row returns the row at id. The pointer is valid until the next mutation.
func (g *Grid[R]) Row(id RowID) *R {
	if int(id) < 0 || int(id) >= len(g.rows) {
		panic("grid: row index out of range")
	}
	return &g.rows[id]
}

// All yields rows in store order.
func (g *Grid[R]) All() iter.Seq2[RowID, *R] {
	return func(yield func(RowID, *R) bool) {
		for i := range g.rows {
			if !yield(RowID(i), &g.rows[i]) {
				return
			}
		}
	}
}

// Replace swaps the row store and returns the previous rows.
func (g *Grid[R]) Replace(rows []R) []R {
	prev := g.rows
	g.rows = rows
	g.reset()
	return prev
}

// Extend appends rows.
func (g *Grid[R]) Extend(rows ...R) {
	g.rows = append(g.rows, rows...)
	g.reset()
}

// Retain keeps only the rows for which keep returns true.
func (g *Grid[R]) Retain(keep func(*R) bool) {
	n := len(g.rows)
	g.rows = slices.DeleteFunc(g.rows, func(r R) bool { return !keep(&r) })
	if len(g.rows) != n {
		g.reset()
	}
}

// Take empties the grid and returns its rows.
func (g *Grid[R]) Take() []R {
	rows := g.rows
	g.rows = nil
	g.reset()
	return rows
}

func (g *Grid[R]) reset() {
	g.ui = nil
	g.version++
}

// HasUserModification reports whether any command changed row values since
// the flag was last cleared.
func (g *Grid[R]) HasUserModification() bool { return g.userModified }

func (g *Grid[R]) ClearUserModification() { g.userModified = false }

// Sync binds the viewer for this frame, checks its identity and revalidates
// the view cache. It must be called before any other UI operation and again
// whenever the host renders a new frame.
func (g *Grid[R]) Sync(v RowViewer[R]) {
	if v == nil {
		panic("grid: nil viewer")
	}
	g.viewer = v
	g.validateIdentity()
	g.Refresh()
}

// Refresh revalidates the view cache without starting a new frame. Hosts
// call it after applying input so the next render sees the new state.
func (g *Grid[R]) Refresh() {
	g.state()
	g.validateCache()
	g.notifyHighlight()
}

// PendingResort reports whether a deferred re-sort or re-filter is still
// counting down. Hosts that only render on input use it to schedule extra
// frames.
func (g *Grid[R]) PendingResort() bool {
	ui := g.state()
	if _, editing := ui.edition(); editing {
		return false
	}
	return ui.framesSinceEdit < g.opt.ResortDelayFrames && (len(ui.sort) > 0 || ui.hasFilter)
}

// Logger returns the logger the grid reports dropped work to.
func (g *Grid[R]) Logger() *slog.Logger { return g.opt.Logger }

func (g *Grid[R]) state() *uiState[R] {
	if g.ui == nil || g.viewer == nil {
		panic("grid: used before Sync")
	}
	return g.ui
}

// freshCache revalidates the view cache when commands since the last Refresh
// left it stale, so visible positions read mid-frame match the store.
func (g *Grid[R]) freshCache() {
	if c := &g.ui.cache; c.dirty || len(c.desired) > 0 {
		g.validateCache()
	}
}

func (g *Grid[R]) planState() planState[R] {
	ui := g.ui
	v := g.viewer
	return planState[R]{
		rows:       g.rows,
		visCols:    ui.visCols,
		sort:       ui.sort,
		numColumns: ui.identity.Columns,
		sortable:   v.IsSortableColumn,
		clone:      v.CloneRow,
	}
}

// VisibleRows returns the logical rows in display order. The slice must not
// be modified.
func (g *Grid[R]) VisibleRows() []RowID { return g.state().cache.rows }

// RowHeights returns the per-visible-row height cache. Renderers may write
// measured heights back into it.
func (g *Grid[R]) RowHeights() []int { return g.state().cache.heights }

func (g *Grid[R]) SetRowHeight(row VisRow, h int) {
	c := &g.state().cache
	if int(row) < 0 || int(row) >= len(c.heights) {
		panic("grid: visible row out of range")
	}
	c.heights[row] = max(h, 1)
}

// RowAt maps a visible row to its logical row.
func (g *Grid[R]) RowAt(row VisRow) RowID {
	c := &g.state().cache
	if int(row) < 0 || int(row) >= len(c.rows) {
		panic("grid: visible row out of range")
	}
	return c.rows[row]
}

// VisibleRowOf maps a logical row to its visible position.
func (g *Grid[R]) VisibleRowOf(id RowID) (VisRow, bool) {
	return g.state().cache.visibleRow(id)
}

// VisibleColumns returns the logical columns in display order. The slice
// must not be modified.
func (g *Grid[R]) VisibleColumns() []ColumnIdx { return g.state().visCols }

// HiddenColumns returns the logical columns not currently shown.
func (g *Grid[R]) HiddenColumns() []ColumnIdx {
	ui := g.state()
	var out []ColumnIdx
	for c := range ui.identity.Columns {
		if !slices.Contains(ui.visCols, ColumnIdx(c)) {
			out = append(out, ColumnIdx(c))
		}
	}
	return out
}

func (g *Grid[R]) Sort() []SortKey { return g.state().sort }

// SetPageRows tells the grid how many rows one page of the viewport holds.
func (g *Grid[R]) SetPageRows(n int) { g.state().pageRows = max(n, 1) }

// TakeScrollRequest returns the row navigation asked to bring into view.
func (g *Grid[R]) TakeScrollRequest() (VisRow, bool) {
	ui := g.state()
	if !ui.scrollPending {
		return 0, false
	}
	ui.scrollPending = false
	return ui.scrollTo, true
}

func (u *uiState[R]) requestScroll(idx LinearIdx) {
	u.scrollTo, _ = idx.RowCol(len(u.visCols))
	u.scrollPending = true
}

func (g *Grid[R]) CanUndo() bool { return g.state().hist.canUndo() }

func (g *Grid[R]) CanRedo() bool { return g.state().hist.canRedo() }

// HistoryLen returns the number of recorded entries, undone ones included.
func (g *Grid[R]) HistoryLen() int { return len(g.state().hist.entries) }

func (g *Grid[R]) ClearHistory() { g.state().hist.clear() }

// notifyHighlight reports rows entering or leaving the selection.
func (g *Grid[R]) notifyHighlight() {
	n, ok := g.viewer.(Notifier[R])
	ui := g.ui
	if !ok {
		ui.highlighted = nil
		return
	}

	var now []RowID
	ncol := len(ui.visCols)
	if e, editing := ui.edition(); editing {
		now = append(now, e.row)
	}
	for _, s := range ui.selections() {
		top, _, bottom, _ := s.Bounds(ncol)
		for r := top; r <= bottom && int(r) < len(ui.cache.rows); r++ {
			now = append(now, ui.cache.rows[r])
		}
	}
	slices.Sort(now)
	now = slices.Compact(now)
	if slices.Equal(now, ui.highlighted) {
		return
	}

	var added, removed []RowID
	for _, id := range now {
		if _, found := slices.BinarySearch(ui.highlighted, id); !found {
			added = append(added, id)
		}
	}
	for _, id := range ui.highlighted {
		if _, found := slices.BinarySearch(now, id); !found {
			removed = append(removed, id)
		}
	}
	ui.highlighted = now
	n.OnHighlightChange(added, removed)
}
