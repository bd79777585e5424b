package grid

import (
	"slices"
	"testing"
)

func TestSync_FiltersAndSortsStably(t *testing.T) {
	v := filterViewer{testViewer: newTestViewer(2), hidePrefix: "x"}
	g := newTestGrid(t, v, "b,1", "a,2", "xa,3", "b,0", "a,1")

	if got, want := visibleText(g), "b,1|a,2|b,0|a,1"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}

	g.Push(SetColumnSort{Keys: []SortKey{{Column: 0, Ascending: true}}})
	g.Sync(v)
	// Equal keys keep filter order.
	if got, want := visibleText(g), "a,2|a,1|b,1|b,0"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}

	g.Push(SetColumnSort{Keys: []SortKey{{Column: 0, Ascending: true}, {Column: 1, Ascending: false}}})
	g.Sync(v)
	if got, want := visibleText(g), "a,2|a,1|b,1|b,0"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}

	g.Push(SetColumnSort{Keys: []SortKey{{Column: 1, Ascending: true}, {Column: 0, Ascending: false}}})
	g.Sync(v)
	if got, want := visibleText(g), "b,0|b,1|a,1|a,2"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}

	for vis, id := range g.VisibleRows() {
		got, ok := g.VisibleRowOf(id)
		if !ok || got != VisRow(vis) {
			t.Fatalf("reverse lookup of %d=%d,%v, want %d", id, got, ok, vis)
		}
	}
	if _, ok := g.VisibleRowOf(2); ok {
		t.Fatalf("expected filtered row 2 to have no visible position")
	}
}

func TestSync_FilterHashChangeRefilters(t *testing.T) {
	base := newTestViewer(1)
	g := newTestGrid(t, filterViewer{testViewer: base}, "a", "b", "ab")
	if got := len(g.VisibleRows()); got != 3 {
		t.Fatalf("visible=%d, want 3", got)
	}

	g.Sync(filterViewer{testViewer: base, hidePrefix: "a"})
	if got, want := visibleText(g), "b"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}
}

func TestSync_IdentityResets(t *testing.T) {
	v := newTestViewer(2)
	g := newTestGrid(t, v, "a,b", "c,d")
	g.Push(HideColumn{Column: 0})
	selectCell(g, 1, 0)
	if !g.CanUndo() {
		t.Fatalf("expected history before reset")
	}

	// A version bump only revalidates.
	v.version++
	g.Sync(v)
	if !g.CanUndo() || len(g.VisibleColumns()) != 1 {
		t.Fatalf("version bump reset the ui state")
	}

	v.kind = "other"
	g.Sync(v)
	if g.CanUndo() {
		t.Fatalf("expected history to be cleared on identity change")
	}
	if got := g.VisibleColumns(); !slices.Equal(got, []ColumnIdx{0, 1}) {
		t.Fatalf("columns=%v, want all columns", got)
	}
	if got := g.Selections(); len(got) != 0 {
		t.Fatalf("selections=%v, want none", got)
	}
}

func TestSync_ColumnCountChangeResets(t *testing.T) {
	v := newTestViewer(2)
	g := newTestGrid(t, v, "a,b,c")
	g.Push(HideColumn{Column: 1})

	v.cols = 3
	g.Sync(v)
	if got := g.VisibleColumns(); !slices.Equal(got, []ColumnIdx{0, 1, 2}) {
		t.Fatalf("columns=%v, want [0 1 2]", got)
	}
}

func TestSync_DefersResortAfterValueEdit(t *testing.T) {
	v := newTestViewer(1)
	g := newTestGrid(t, v, "b", "c", "d")
	g.Push(SetColumnSort{Keys: []SortKey{{Column: 0, Ascending: true}}})
	g.Sync(v)

	g.Push(SetRowValue[row]{Row: 0, Value: row{"z"}})
	g.Sync(v)
	if got, want := visibleText(g), "z|c|d"; got != want {
		t.Fatalf("visible after 1 frame=%q, want %q", got, want)
	}
	g.Sync(v)
	if got, want := visibleText(g), "c|d|z"; got != want {
		t.Fatalf("visible after 2 frames=%q, want %q", got, want)
	}
}

func TestSync_NoResortWhileEditing(t *testing.T) {
	v := newTestViewer(1)
	g := newTestGrid(t, v, "b", "c")
	g.Push(SetColumnSort{Keys: []SortKey{{Column: 0, Ascending: true}}})
	g.Sync(v)
	g.Push(SetRowValue[row]{Row: 0, Value: row{"z"}})

	selectCell(g, 1, 0)
	g.Apply(Action{Kind: ActionStartEditing})
	for range 5 {
		g.Sync(v)
	}
	if got, want := visibleText(g), "z|c"; got != want {
		t.Fatalf("visible while editing=%q, want %q", got, want)
	}

	g.Apply(Action{Kind: ActionCancelEdition})
	g.Sync(v)
	g.Sync(v)
	if got, want := visibleText(g), "c|z"; got != want {
		t.Fatalf("visible after edit=%q, want %q", got, want)
	}
}

func TestSync_DropsUnsortableSortKeys(t *testing.T) {
	v := newTestViewer(2)
	g := newTestGrid(t, v, "b,1", "a,2")
	g.Push(SetColumnSort{Keys: []SortKey{{Column: 0, Ascending: true}}})
	g.Sync(v)
	if got, want := visibleText(g), "a,2|b,1"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}

	v.unsorted = map[int]bool{0: true}
	g.Sync(v)
	if got := g.Sort(); len(got) != 0 {
		t.Fatalf("sort=%v, want empty", got)
	}
	if got, want := visibleText(g), "b,1|a,2"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}
}

func TestSync_EmptyProjection(t *testing.T) {
	base := newTestViewer(2)
	g := newTestGrid(t, filterViewer{testViewer: base}, "a,1", "ab,2")
	selectCell(g, 1, 1)

	g.Sync(filterViewer{testViewer: base, hidePrefix: "a"})
	if got := len(g.VisibleRows()); got != 0 {
		t.Fatalf("visible=%d, want 0", got)
	}
	if got := g.Selections(); len(got) != 0 {
		t.Fatalf("selections=%v, want none", got)
	}
	if r, c := g.InteractiveCell(); r != 0 || c != 0 {
		t.Fatalf("interactive=(%d,%d), want (0,0)", r, c)
	}
	if g.Apply(Action{Kind: ActionStartEditing}) {
		t.Fatalf("expected editing to be refused without visible rows")
	}
}

func TestSync_ShrinkingProjectionClampsSelection(t *testing.T) {
	base := newTestViewer(2)
	g := newTestGrid(t, filterViewer{testViewer: base}, "a,1", "b,2", "xc,3", "xd,4")
	g.Push(SetSelection{
		Rects:       []Selection{rect(2, 1, 0, 3, 1), rect(2, 3, 1, 3, 1)},
		Interactive: VisRow(3).Linear(2, 1),
	})

	g.Sync(filterViewer{testViewer: base, hidePrefix: "x"})
	got := g.Selections()
	if want := rect(2, 1, 0, 1, 1); len(got) != 1 || got[0] != want {
		t.Fatalf("selections=%v, want [%v]", got, want)
	}
	if r, c := g.InteractiveCell(); r != 1 || c != 1 {
		t.Fatalf("interactive=(%d,%d), want (1,1)", r, c)
	}
}

func TestSync_RowHeightsFollowRowCount(t *testing.T) {
	v := newTestViewer(1)
	g := New([]row{{"a"}, {"b"}}, Options{DefaultRowHeight: 2})
	g.Sync(v)
	if got := g.RowHeights(); !slices.Equal(got, []int{2, 2}) {
		t.Fatalf("heights=%v, want [2 2]", got)
	}

	g.SetRowHeight(1, 5)
	g.Push(InsertRows[row]{At: 2, Rows: []row{{"c"}}})
	g.Sync(v)
	if got := g.RowHeights(); !slices.Equal(got, []int{2, 5, 2}) {
		t.Fatalf("heights=%v, want [2 5 2]", got)
	}
}

func TestGrid_UsedBeforeSyncPanics(t *testing.T) {
	g := New([]row{{"a"}}, Options{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	g.IsSelected(0, 0)
}

func TestGrid_DirectMutationResetsState(t *testing.T) {
	v := newTestViewer(1)
	g := newTestGrid(t, v, "a", "b")
	g.Push(SetRowValue[row]{Row: 0, Value: row{"x"}})

	g.Extend(row{"c"})
	g.Sync(v)
	if g.CanUndo() {
		t.Fatalf("expected Extend to discard history")
	}
	if got, want := visibleText(g), "x|b|c"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}

	prev := g.Replace([]row{{"q"}})
	g.Sync(v)
	if len(prev) != 3 || visibleText(g) != "q" {
		t.Fatalf("replace returned %v, visible %q", prev, visibleText(g))
	}

	rows := g.Take()
	g.Sync(v)
	if len(rows) != 1 || g.Len() != 0 {
		t.Fatalf("take returned %v, len %d", rows, g.Len())
	}
}

func TestRefresh_DoesNotAdvanceResortCountdown(t *testing.T) {
	v := newTestViewer(1)
	g := newTestGrid(t, v, "b", "c")
	g.Push(SetColumnSort{Keys: []SortKey{{Column: 0, Ascending: true}}})
	g.Sync(v)
	if g.PendingResort() {
		t.Fatalf("expected no pending re-sort before an edit")
	}

	g.Push(SetRowValue[row]{Row: 0, Value: row{"z"}})
	for range 5 {
		g.Refresh()
	}
	if !g.PendingResort() {
		t.Fatalf("expected pending re-sort after an edit")
	}
	if got, want := visibleText(g), "z|c"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}

	g.Sync(v)
	g.Sync(v)
	if g.PendingResort() {
		t.Fatalf("expected countdown to finish")
	}
	if got, want := visibleText(g), "c|z"; got != want {
		t.Fatalf("visible=%q, want %q", got, want)
	}
}

func TestSync_EditedRowFilteredOutCancelsEdit(t *testing.T) {
	base := newTestViewer(1)
	g := newTestGrid(t, filterViewer{testViewer: base}, "a", "b", "ab")

	g.Push(EditStart[row]{Row: 2, Column: 0, Scratch: row{"typed"}})
	if !g.IsEditing() {
		t.Fatalf("expected editing")
	}

	g.Sync(filterViewer{testViewer: base, hidePrefix: "a"})
	if g.IsEditing() {
		t.Fatalf("edit survived its row being filtered out")
	}
	if got, want := storeText(g), "a|b|ab"; got != want {
		t.Fatalf("store=%q, want %q", got, want)
	}
}

func TestGrid_ClearHistory(t *testing.T) {
	v := newTestViewer(2)
	g := newTestGrid(t, v, "a,1", "b,2")
	g.Push(SetRowValue[row]{Row: 0, Value: row{"x", "1"}})
	g.Push(HideColumn{Column: 1})
	g.Undo()
	if !g.CanUndo() || !g.CanRedo() || g.HistoryLen() != 2 {
		t.Fatalf("history: undo=%v redo=%v len=%d", g.CanUndo(), g.CanRedo(), g.HistoryLen())
	}

	g.ClearHistory()
	if g.CanUndo() || g.CanRedo() || g.HistoryLen() != 0 {
		t.Fatalf("history not cleared: undo=%v redo=%v len=%d", g.CanUndo(), g.CanRedo(), g.HistoryLen())
	}
	if got, want := storeText(g), "x,1|b,2"; got != want {
		t.Fatalf("store=%q, want %q", got, want)
	}
}
