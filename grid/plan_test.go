package grid

import (
	"slices"
	"testing"
)

func testPlanState(rows []row, visCols []ColumnIdx, numColumns int) planState[row] {
	v := newTestViewer(numColumns)
	return planState[row]{
		rows:       rows,
		visCols:    visCols,
		numColumns: numColumns,
		sortable:   v.IsSortableColumn,
		clone:      v.CloneRow,
	}
}

func TestPlan_HideColumn(t *testing.T) {
	s := testPlanState(nil, []ColumnIdx{0, 1, 2}, 3)

	p, ok := plan(s, HideColumn{Column: 1})
	if !ok {
		t.Fatalf("expected hide to be planned")
	}
	if got := p.apply.(SetVisibleColumns).Columns; !slices.Equal(got, []ColumnIdx{0, 2}) {
		t.Fatalf("columns=%v, want [0 2]", got)
	}
	if got := p.restore[0].(SetVisibleColumns).Columns; !slices.Equal(got, []ColumnIdx{0, 1, 2}) {
		t.Fatalf("restore=%v, want [0 1 2]", got)
	}
	if !slices.Equal(s.visCols, []ColumnIdx{0, 1, 2}) {
		t.Fatalf("plan mutated visible columns: %v", s.visCols)
	}

	if _, ok := plan(testPlanState(nil, []ColumnIdx{2}, 3), HideColumn{Column: 2}); ok {
		t.Fatalf("expected hiding the last visible column to be rejected")
	}
	if _, ok := plan(s, HideColumn{Column: 5}); ok {
		t.Fatalf("expected hiding an invisible column to be rejected")
	}
}

func TestPlan_ShowColumn(t *testing.T) {
	s := testPlanState(nil, []ColumnIdx{0, 2}, 3)

	p, ok := plan(s, ShowColumn{Column: 1, At: 1})
	if !ok {
		t.Fatalf("expected show to be planned")
	}
	if got := p.apply.(SetVisibleColumns).Columns; !slices.Equal(got, []ColumnIdx{0, 1, 2}) {
		t.Fatalf("columns=%v, want [0 1 2]", got)
	}

	if _, ok := plan(s, ShowColumn{Column: 2, At: 0}); ok {
		t.Fatalf("expected showing a visible column to be rejected")
	}
}

func TestPlan_ReorderColumn(t *testing.T) {
	s := testPlanState(nil, []ColumnIdx{0, 1, 2, 3}, 4)

	cases := []struct {
		from, to VisCol
		want     []ColumnIdx
	}{
		{0, 2, []ColumnIdx{1, 0, 2, 3}},
		{0, 4, []ColumnIdx{1, 2, 3, 0}},
		{3, 0, []ColumnIdx{3, 0, 1, 2}},
		{2, 1, []ColumnIdx{0, 2, 1, 3}},
	}
	for _, tc := range cases {
		p, ok := plan(s, ReorderColumn{From: tc.from, To: tc.to})
		if !ok {
			t.Fatalf("reorder %d->%d rejected", tc.from, tc.to)
		}
		if got := p.apply.(SetVisibleColumns).Columns; !slices.Equal(got, tc.want) {
			t.Fatalf("reorder %d->%d=%v, want %v", tc.from, tc.to, got, tc.want)
		}
	}

	for _, c := range []ReorderColumn{{From: 1, To: 1}, {From: 0, To: 5}, {From: 4, To: 0}} {
		if _, ok := plan(s, c); ok {
			t.Fatalf("expected %+v to be rejected", c)
		}
	}
}

func TestPlan_SetVisibleColumns_RejectsInvalid(t *testing.T) {
	s := testPlanState(nil, []ColumnIdx{0, 1}, 3)
	for _, cols := range [][]ColumnIdx{nil, {0, 1}, {0, 0}, {3}} {
		if _, ok := plan(s, SetVisibleColumns{Columns: cols}); ok {
			t.Fatalf("expected %v to be rejected", cols)
		}
	}
}

func TestPlan_SetColumnSort_Normalizes(t *testing.T) {
	s := testPlanState(nil, []ColumnIdx{0, 1, 2}, 3)
	s.sortable = func(col int) bool { return col != 2 }

	p, ok := plan(s, SetColumnSort{Keys: []SortKey{{1, true}, {2, true}, {1, false}, {7, true}}})
	if !ok {
		t.Fatalf("expected sort to be planned")
	}
	if got, want := p.apply.(SetColumnSort).Keys, []SortKey{{1, true}}; !slices.Equal(got, want) {
		t.Fatalf("keys=%v, want %v", got, want)
	}
	if got := p.restore[0].(SetColumnSort).Keys; len(got) != 0 {
		t.Fatalf("restore=%v, want empty", got)
	}

	s.sort = []SortKey{{1, true}}
	if _, ok := plan(s, SetColumnSort{Keys: []SortKey{{1, true}, {2, false}}}); ok {
		t.Fatalf("expected identical sort after normalization to be rejected")
	}
}

func TestPlan_SetCells_SnapshotsEachRowOnce(t *testing.T) {
	rows := []row{{"a", "b"}, {"c", "d"}}
	s := testPlanState(rows, []ColumnIdx{0, 1}, 2)

	p, ok := plan(s, SetCells[row]{
		Slab: []row{{"x", "y"}},
		Writes: []CellWrite{
			{Row: 1, Column: 0, Slab: 0},
			{Row: 1, Column: 1, Slab: 0},
			{Row: 9, Column: 0, Slab: 0},
			{Row: 0, Column: 0, Slab: 3},
		},
	})
	if !ok {
		t.Fatalf("expected cells to be planned")
	}
	if got := len(p.apply.(SetCells[row]).Writes); got != 2 {
		t.Fatalf("writes=%d, want 2 after dropping invalid ones", got)
	}
	if len(p.restore) != 1 {
		t.Fatalf("restore=%d commands, want 1", len(p.restore))
	}
	snap := p.restore[0].(SetRowValue[row])
	if snap.Row != 1 || !slices.Equal(snap.Value, row{"c", "d"}) {
		t.Fatalf("restore=%+v, want row 1 snapshot", snap)
	}

	rows[1][0] = "changed"
	if snap.Value[0] != "c" {
		t.Fatalf("snapshot aliases the live row")
	}

	if _, ok := plan(s, SetCells[row]{}); ok {
		t.Fatalf("expected empty batch to be rejected")
	}
}

func TestPlan_InsertRows(t *testing.T) {
	s := testPlanState([]row{{"a"}, {"b"}}, []ColumnIdx{0}, 1)

	p, ok := plan(s, InsertRows[row]{At: 9, Rows: []row{{"x"}, {"y"}}})
	if !ok {
		t.Fatalf("expected insert to be planned")
	}
	if got := p.apply.(InsertRows[row]).At; got != 2 {
		t.Fatalf("at=%d, want clamped 2", got)
	}
	if got := p.restore[0].(RemoveRows).Rows; !slices.Equal(got, []RowID{2, 3}) {
		t.Fatalf("restore=%v, want [2 3]", got)
	}

	if _, ok := plan(s, InsertRows[row]{At: 0}); ok {
		t.Fatalf("expected empty insert to be rejected")
	}
}

func TestPlan_RemoveRows(t *testing.T) {
	rows := []row{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}
	s := testPlanState(rows, []ColumnIdx{0}, 1)

	p, ok := plan(s, RemoveRows{Rows: []RowID{4, 1, 1, 0, 7, 3}})
	if !ok {
		t.Fatalf("expected removal to be planned")
	}
	if got := p.apply.(RemoveRows).Rows; !slices.Equal(got, []RowID{0, 1, 3, 4}) {
		t.Fatalf("rows=%v, want [0 1 3 4]", got)
	}

	if len(p.restore) != 2 {
		t.Fatalf("restore=%d commands, want 2 runs", len(p.restore))
	}
	first := p.restore[0].(InsertRows[row])
	second := p.restore[1].(InsertRows[row])
	if first.At != 0 || len(first.Rows) != 2 || first.Rows[1][0] != "b" {
		t.Fatalf("first run=%+v", first)
	}
	if second.At != 3 || len(second.Rows) != 2 || second.Rows[0][0] != "d" {
		t.Fatalf("second run=%+v", second)
	}

	if _, ok := plan(s, RemoveRows{Rows: []RowID{-1, 5}}); ok {
		t.Fatalf("expected removal of nothing to be rejected")
	}
}

func TestPlan_WrongRowTypePanics(t *testing.T) {
	s := testPlanState(nil, []ColumnIdx{0}, 1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	plan(s, SetRowValue[int]{Row: 0, Value: 1})
}
