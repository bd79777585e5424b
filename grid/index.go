package grid

import "iter"

// RowID is the position of a row in the row store at a point in time.
// It shifts whenever rows are inserted or removed.
type RowID int

// ColumnIdx is a logical column of the viewer, independent of column order
// and visibility.
type ColumnIdx int

// VisRow is a row position within the filtered, sorted projection.
type VisRow int

// VisCol is a column position within the visible column order.
type VisCol int

// LinearIdx flattens (VisRow, VisCol) row-major: row*ncol + col.
type LinearIdx int

// Selection is an axis-aligned rectangle over the visible projection,
// stored as its top-left and bottom-right linear indices.
type Selection struct {
	Min LinearIdx
	Max LinearIdx
}

// SortKey orders rows by one column. Earlier keys take priority.
type SortKey struct {
	Column    ColumnIdx
	Ascending bool
}

func (i LinearIdx) RowCol(ncol int) (VisRow, VisCol) {
	if ncol <= 0 {
		return 0, 0
	}
	return VisRow(int(i) / ncol), VisCol(int(i) % ncol)
}

func (r VisRow) Linear(ncol int, c VisCol) LinearIdx {
	return LinearIdx(int(r)*ncol + int(c))
}

// Point returns a single-cell selection.
func Point(i LinearIdx) Selection { return Selection{Min: i, Max: i} }

// SelectionFromPoints returns the rectangle spanned by two corners given in
// any order.
func SelectionFromPoints(ncol int, a, b LinearIdx) Selection {
	ar, ac := a.RowCol(ncol)
	br, bc := b.RowCol(ncol)
	return rect(ncol, min(ar, br), min(ac, bc), max(ar, br), max(ac, bc))
}

func rect(ncol int, top VisRow, left VisCol, bottom VisRow, right VisCol) Selection {
	return Selection{
		Min: top.Linear(ncol, left),
		Max: bottom.Linear(ncol, right),
	}
}

// Bounds returns the inclusive row and column extents of s.
func (s Selection) Bounds(ncol int) (top VisRow, left VisCol, bottom VisRow, right VisCol) {
	top, left = s.Min.RowCol(ncol)
	bottom, right = s.Max.RowCol(ncol)
	return top, left, bottom, right
}

func (s Selection) Contains(ncol int, row VisRow, col VisCol) bool {
	top, left, bottom, right := s.Bounds(ncol)
	return row >= top && row <= bottom && col >= left && col <= right
}

// ContainsRect reports whether other lies entirely within s.
func (s Selection) ContainsRect(ncol int, other Selection) bool {
	top, left, bottom, right := other.Bounds(ncol)
	return s.Contains(ncol, top, left) && s.Contains(ncol, bottom, right)
}

func (s Selection) IsPoint() bool { return s.Min == s.Max }

// Union returns the smallest rectangle covering s and other.
func (s Selection) Union(ncol int, other Selection) Selection {
	at, al, ab, ar := s.Bounds(ncol)
	bt, bl, bb, br := other.Bounds(ncol)
	return rect(ncol, min(at, bt), min(al, bl), max(ab, bb), max(ar, br))
}

// Reproject re-encodes s from a layout with fromCols columns into one with
// toCols columns and rows visible rows. Partially out-of-range rectangles
// are clamped; ok is false when nothing of s remains visible.
func (s Selection) Reproject(fromCols, toCols, rows int) (Selection, bool) {
	if toCols <= 0 || rows <= 0 {
		return Selection{}, false
	}
	top, left, bottom, right := s.Bounds(fromCols)
	if int(top) >= rows || int(left) >= toCols {
		return Selection{}, false
	}
	bottom = min(bottom, VisRow(rows-1))
	right = min(right, VisCol(toCols-1))
	return rect(toCols, top, left, bottom, right), true
}

// Cells yields every (row, col) covered by s in row-major order.
func (s Selection) Cells(ncol int) iter.Seq2[VisRow, VisCol] {
	return func(yield func(VisRow, VisCol) bool) {
		top, left, bottom, right := s.Bounds(ncol)
		for r := top; r <= bottom; r++ {
			for c := left; c <= right; c++ {
				if !yield(r, c) {
					return
				}
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
