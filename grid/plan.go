package grid

import (
	"fmt"
	"slices"
)

// planState is the read-only pre-mutation state a command is planned against.
type planState[R any] struct {
	rows       []R
	visCols    []ColumnIdx
	sort       []SortKey
	numColumns int
	sortable   func(col int) bool
	clone      func(*R) R
}

// planned is a normalized command together with the commands that undo it.
type planned struct {
	apply   Command
	restore []Command
}

// plan normalizes cmd against s and derives its inverse. ok is false when the
// command would have no effect or is invalid for s; such commands are dropped.
// plan never mutates s.
func plan[R any](s planState[R], cmd Command) (p planned, ok bool) {
	switch c := cmd.(type) {
	case HideColumn:
		i := slices.Index(s.visCols, c.Column)
		if i < 0 || len(s.visCols) == 1 {
			return planned{}, false
		}
		return planColumns(s, slices.Delete(slices.Clone(s.visCols), i, i+1))

	case ShowColumn:
		if int(c.Column) < 0 || int(c.Column) >= s.numColumns || slices.Contains(s.visCols, c.Column) {
			return planned{}, false
		}
		at := clampInt(int(c.At), 0, len(s.visCols))
		return planColumns(s, slices.Insert(slices.Clone(s.visCols), at, c.Column))

	case ReorderColumn:
		n := len(s.visCols)
		from, to := int(c.From), int(c.To)
		if from == to || from < 0 || from >= n || to < 0 || to > n {
			return planned{}, false
		}
		cols := slices.Clone(s.visCols)
		moved := cols[from]
		if from < to {
			cols = slices.Insert(cols, to, moved)
			cols = slices.Delete(cols, from, from+1)
		} else {
			cols = slices.Delete(cols, from, from+1)
			cols = slices.Insert(cols, to, moved)
		}
		return planColumns(s, cols)

	case SetVisibleColumns:
		return planColumns(s, slices.Clone(c.Columns))

	case SetColumnSort:
		keys := normalizeSort(c.Keys, s.numColumns, s.sortable)
		if slices.Equal(keys, s.sort) {
			return planned{}, false
		}
		return planned{
			apply:   SetColumnSort{Keys: keys},
			restore: []Command{SetColumnSort{Keys: slices.Clone(s.sort)}},
		}, true

	case SetRowValue[R]:
		if int(c.Row) < 0 || int(c.Row) >= len(s.rows) {
			return planned{}, false
		}
		return planned{
			apply:   c,
			restore: []Command{SetRowValue[R]{Row: c.Row, Value: s.clone(&s.rows[c.Row])}},
		}, true

	case SetCells[R]:
		writes := make([]CellWrite, 0, len(c.Writes))
		var restore []Command
		seen := make(map[RowID]bool)
		for _, w := range c.Writes {
			if int(w.Row) < 0 || int(w.Row) >= len(s.rows) ||
				w.Slab < 0 || w.Slab >= len(c.Slab) ||
				int(w.Column) < 0 || int(w.Column) >= s.numColumns {
				continue
			}
			writes = append(writes, w)
			if !seen[w.Row] {
				seen[w.Row] = true
				restore = append(restore, SetRowValue[R]{Row: w.Row, Value: s.clone(&s.rows[w.Row])})
			}
		}
		if len(writes) == 0 {
			return planned{}, false
		}
		return planned{
			apply:   SetCells[R]{Slab: c.Slab, Writes: writes},
			restore: restore,
		}, true

	case InsertRows[R]:
		if len(c.Rows) == 0 {
			return planned{}, false
		}
		at := RowID(clampInt(int(c.At), 0, len(s.rows)))
		ids := make([]RowID, len(c.Rows))
		for i := range ids {
			ids[i] = at + RowID(i)
		}
		return planned{
			apply:   InsertRows[R]{At: at, Rows: c.Rows},
			restore: []Command{RemoveRows{Rows: ids}},
		}, true

	case RemoveRows:
		ids := make([]RowID, 0, len(c.Rows))
		for _, id := range c.Rows {
			if int(id) >= 0 && int(id) < len(s.rows) {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)
		ids = slices.Compact(ids)
		if len(ids) == 0 {
			return planned{}, false
		}
		return planned{
			apply:   RemoveRows{Rows: ids},
			restore: reinsertions(s, ids),
		}, true
	}

	panic(fmt.Sprintf("grid: command %T does not match the grid row type", cmd))
}

func planColumns[R any](s planState[R], cols []ColumnIdx) (planned, bool) {
	if !validColumns(cols, s.numColumns) || slices.Equal(cols, s.visCols) {
		return planned{}, false
	}
	return planned{
		apply:   SetVisibleColumns{Columns: cols},
		restore: []Command{SetVisibleColumns{Columns: slices.Clone(s.visCols)}},
	}, true
}

func validColumns(cols []ColumnIdx, numColumns int) bool {
	if len(cols) == 0 {
		return false
	}
	seen := make([]bool, numColumns)
	for _, c := range cols {
		if int(c) < 0 || int(c) >= numColumns || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

// normalizeSort drops keys for unknown or unsortable columns and keeps only
// the first key per column.
func normalizeSort(keys []SortKey, numColumns int, sortable func(int) bool) []SortKey {
	out := make([]SortKey, 0, len(keys))
	for _, k := range keys {
		col := int(k.Column)
		if col < 0 || col >= numColumns || (sortable != nil && !sortable(col)) {
			continue
		}
		if slices.ContainsFunc(out, func(o SortKey) bool { return o.Column == k.Column }) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// reinsertions snapshots removed rows as ascending InsertRows commands, one
// per contiguous run. Applied in order after the removal they restore the
// previous layout.
func reinsertions[R any](s planState[R], sorted []RowID) []Command {
	var out []Command
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[j-1]+1 {
			j++
		}
		run := make([]R, 0, j-i)
		for _, id := range sorted[i:j] {
			run = append(run, s.clone(&s.rows[id]))
		}
		out = append(out, InsertRows[R]{At: sorted[i], Rows: run})
		i = j
	}
	return out
}
