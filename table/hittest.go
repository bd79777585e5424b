package table

import (
	"slices"

	"github.com/iw2rmb/tabula/grid"
)

type hitKind uint8

const (
	hitNone hitKind = iota
	hitHeader
	hitGutter
	hitCell
)

type hit struct {
	kind hitKind
	row  grid.VisRow
	col  grid.VisCol
}

// hitTest maps component-local mouse coordinates to a header, gutter or
// body cell. Line 0 is the header; the body starts on line 1.
func (m *Model[R]) hitTest(x, y int) hit {
	if x < 0 || y < 0 || (m.width > 0 && x >= m.width) || (m.height > 0 && y >= m.height) {
		return hit{}
	}

	col, colOK := m.columnAt(x)
	if y == 0 {
		if !colOK {
			return hit{}
		}
		return hit{kind: hitHeader, col: col}
	}

	row, ok := m.rowAtLine(y - 1 + m.viewport.YOffset)
	if !ok {
		return hit{}
	}
	if x < m.gutterWidth() {
		return hit{kind: hitGutter, row: row}
	}
	if !colOK {
		return hit{}
	}
	return hit{kind: hitCell, row: row, col: col}
}

// clampedCell maps coordinates to the nearest body cell, for drags that
// leave the table.
func (m *Model[R]) clampedCell(x, y int) (grid.VisRow, grid.VisCol, bool) {
	nlines := len(m.lineStarts) - 1
	if nlines <= 0 {
		return 0, 0, false
	}
	line := clampInt(y-1, 0, max(m.viewport.Height-1, 0)) + m.viewport.YOffset
	row, _ := m.rowAtLine(clampInt(line, 0, nlines-1))

	n := m.visibleColumnCount()
	rel := max(x-m.gutterWidth(), 0)
	k := clampInt(rel/(m.cfg.ColumnWidth+1), 0, max(n-1, 0))
	return row, grid.VisCol(m.colOffset + k), true
}

func (m *Model[R]) rowAtLine(line int) (grid.VisRow, bool) {
	if len(m.lineStarts) < 2 || line < 0 || line >= m.lineStarts[len(m.lineStarts)-1] {
		return 0, false
	}
	i, found := slices.BinarySearch(m.lineStarts, line)
	if !found {
		i--
	}
	return grid.VisRow(i), true
}

func (m *Model[R]) columnAt(x int) (grid.VisCol, bool) {
	rel := x - m.gutterWidth()
	if rel < 0 {
		return 0, false
	}
	k := rel / (m.cfg.ColumnWidth + 1)
	if k >= m.visibleColumnCount() {
		return 0, false
	}
	return grid.VisCol(m.colOffset + k), true
}
