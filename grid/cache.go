package grid

import (
	"cmp"
	"slices"
)

// viewCache is the filtered, sorted projection of the row store.
type viewCache struct {
	dirty bool

	rows    []RowID
	heights []int
	visOf   []VisRow // by RowID; -1 when filtered out

	desired []desiredCell
}

// desiredCell is a selection target queued by a command. It is expressed in
// logical coordinates because visible positions are only known after the
// next revalidation.
type desiredCell struct {
	row RowID
	col ColumnIdx
}

func (c *viewCache) visibleRow(id RowID) (VisRow, bool) {
	if int(id) < 0 || int(id) >= len(c.visOf) {
		return 0, false
	}
	r := c.visOf[id]
	return r, r >= 0
}

// validateIdentity resets the ui state when the viewer identity changed and
// otherwise marks the cache dirty on the soft triggers.
func (g *Grid[R]) validateIdentity() {
	v := g.viewer
	id := identityOf(v)
	ui := g.ui

	if ui == nil || ui.identity.Kind != id.Kind || ui.identity.Columns != id.Columns {
		if ui != nil {
			g.opt.Logger.Debug("grid identity changed, resetting ui state",
				"grid", g.id, "kind", id.Kind, "columns", id.Columns)
		}
		g.ui = newUIState[R](id)
		g.ui.filterHash, g.ui.hasFilter = filterHashOf(v)
		g.ui.framesSinceEdit = g.opt.ResortDelayFrames + 1
		g.version++
		return
	}

	if ui.identity.Version != id.Version {
		ui.identity.Version = id.Version
		ui.cache.dirty = true
	}

	if hash, has := filterHashOf(v); hash != ui.filterHash || has != ui.hasFilter {
		ui.filterHash, ui.hasFilter = hash, has
		ui.cache.dirty = true
	}

	if _, isEditing := ui.edition(); !isEditing && ui.framesSinceEdit <= g.opt.ResortDelayFrames {
		ui.framesSinceEdit++
		if ui.framesSinceEdit == g.opt.ResortDelayFrames && (len(ui.sort) > 0 || ui.hasFilter) {
			ui.cache.dirty = true
		}
	}

	if kept := normalizeSort(ui.sort, id.Columns, v.IsSortableColumn); len(kept) != len(ui.sort) {
		ui.sort = kept
		ui.cache.dirty = true
	}
}

func filterHashOf[R any](v RowViewer[R]) (uint64, bool) {
	if f, ok := v.(RowFilter[R]); ok {
		return f.FilterHash(), true
	}
	return 0, false
}

// validateCache rebuilds the projection when dirty, then realizes a queued
// selection or re-projects the current one.
func (g *Grid[R]) validateCache() {
	ui := g.ui
	c := &ui.cache
	ncol := len(ui.visCols)

	if c.dirty {
		c.dirty = false
		g.rebuildRows()
		g.version++

		if e, ok := ui.edition(); ok {
			if r, visible := c.visibleRow(e.row); visible {
				ui.interactive = r.Linear(ncol, e.focus)
			} else {
				g.opt.Logger.Debug("edited row vanished, cancelling edit", "grid", g.id, "row", e.row)
				ui.cursor = selecting{}
			}
		}

		if len(c.desired) == 0 {
			ui.reprojectSelection(ncol, ncol)
		}
	}

	if len(c.desired) > 0 {
		ui.realizeDesired()
		g.version++
	}

	if len(c.rows) == 0 {
		if len(ui.selections()) > 0 {
			ui.cursor = selecting{}
		}
		ui.interactive = 0
		return
	}
	ui.clampInteractive(ncol, ncol)
}

// rebuildRows recomputes the visible rows, reverse lookup and heights.
func (g *Grid[R]) rebuildRows() {
	ui := g.ui
	c := &ui.cache
	v := g.viewer

	filter, hasFilter := v.(RowFilter[R])

	c.rows = c.rows[:0]
	for i := range g.rows {
		if hasFilter && !filter.FilterRow(&g.rows[i]) {
			continue
		}
		c.rows = append(c.rows, RowID(i))
	}

	for i := len(ui.sort) - 1; i >= 0; i-- {
		key := ui.sort[i]
		slices.SortStableFunc(c.rows, func(a, b RowID) int {
			o := v.CompareCell(&g.rows[a], &g.rows[b], int(key.Column))
			if !key.Ascending {
				o = -o
			}
			return o
		})
	}

	if cap(c.visOf) >= len(g.rows) {
		c.visOf = c.visOf[:len(g.rows)]
	} else {
		c.visOf = make([]VisRow, len(g.rows))
	}
	for i := range c.visOf {
		c.visOf[i] = -1
	}
	for r, id := range c.rows {
		c.visOf[id] = VisRow(r)
	}

	if n := len(c.rows); n <= len(c.heights) {
		c.heights = c.heights[:n]
	} else {
		for len(c.heights) < n {
			c.heights = append(c.heights, g.opt.DefaultRowHeight)
		}
	}
}

// reprojectSelection re-encodes the selection and interactive cell from a
// layout of fromCols columns into the current row count and toCols columns.
func (u *uiState[R]) reprojectSelection(fromCols, toCols int) {
	nrow := len(u.cache.rows)
	if s, ok := u.cursor.(selecting); ok && len(s.rects) > 0 {
		kept := make([]Selection, 0, len(s.rects))
		for _, rect := range s.rects {
			if next, ok := rect.Reproject(fromCols, toCols, nrow); ok {
				kept = append(kept, next)
			}
		}
		u.cursor = selecting{rects: kept}
	}
	u.clampInteractive(fromCols, toCols)
}

func (u *uiState[R]) clampInteractive(fromCols, toCols int) {
	if toCols <= 0 {
		u.interactive = 0
		return
	}
	r, c := u.interactive.RowCol(fromCols)
	r = VisRow(clampInt(int(r), 0, len(u.cache.rows)-1))
	c = VisCol(clampInt(int(c), 0, toCols-1))
	u.interactive = r.Linear(toCols, c)
}

// realizeDesired converts queued logical targets into rectangles. Each
// visible row contributes one rectangle per contiguous run of targeted
// columns; runs spanning the same columns on consecutive rows are merged.
// The interactive cell moves to the first target that is visible.
func (u *uiState[R]) realizeDesired() {
	desired := u.cache.desired
	u.cache.desired = nil
	if _, ok := u.edition(); ok {
		return
	}
	ncol := len(u.visCols)

	type cell struct {
		r VisRow
		c VisCol
	}
	cells := make([]cell, 0, len(desired))
	for _, d := range desired {
		r, ok := u.cache.visibleRow(d.row)
		if !ok {
			continue
		}
		c := slices.Index(u.visCols, d.col)
		if c < 0 {
			continue
		}
		cells = append(cells, cell{r: r, c: VisCol(c)})
	}
	if len(cells) == 0 {
		return
	}

	u.interactive = cells[0].r.Linear(ncol, cells[0].c)

	slices.SortFunc(cells, func(a, b cell) int {
		return cmp.Or(cmp.Compare(a.r, b.r), cmp.Compare(a.c, b.c))
	})
	cells = slices.Compact(cells)

	var rects []Selection
	for i := 0; i < len(cells); {
		j := i + 1
		for j < len(cells) && cells[j].r == cells[i].r && cells[j].c == cells[j-1].c+1 {
			j++
		}
		run := rect(ncol, cells[i].r, cells[i].c, cells[i].r, cells[j-1].c)
		if merged := mergeRun(ncol, rects, run); !merged {
			rects = append(rects, run)
		}
		i = j
	}
	u.cursor = selecting{rects: rects}
}

// mergeRun extends an existing rectangle downwards by run when run covers
// the same columns on the row just below it.
func mergeRun(ncol int, rects []Selection, run Selection) bool {
	rt, rl, _, rr := run.Bounds(ncol)
	for i := range rects {
		_, l, b, r := rects[i].Bounds(ncol)
		if l == rl && r == rr && b+1 == rt {
			rects[i].Max = run.Max
			return true
		}
	}
	return false
}
