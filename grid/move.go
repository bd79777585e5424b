package grid

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// MovedPosition returns the cell next to idx in direction dir on a grid of
// nrow by ncol cells. Vertical moves clamp at the edges. Horizontal moves
// wrap to the neighbouring row at the row ends and hold at the first and
// last cell.
func MovedPosition(idx LinearIdx, dir Direction, nrow, ncol int) LinearIdx {
	if nrow <= 0 || ncol <= 0 {
		return 0
	}
	r, c := idx.RowCol(ncol)
	rmax, cmax := VisRow(nrow-1), VisCol(ncol-1)
	r, c = min(r, rmax), min(c, cmax)

	switch dir {
	case Up:
		if r > 0 {
			r--
		}
	case Down:
		if r < rmax {
			r++
		}
	case Left:
		switch {
		case c > 0:
			c--
		case r > 0:
			r, c = r-1, cmax
		}
	case Right:
		switch {
		case c < cmax:
			c++
		case r < rmax:
			r, c = r+1, 0
		}
	}
	return r.Linear(ncol, c)
}

// pagedPosition moves idx by n rows, clamping at the edges.
func pagedPosition(idx LinearIdx, n, nrow, ncol int) LinearIdx {
	if nrow <= 0 || ncol <= 0 {
		return 0
	}
	r, c := idx.RowCol(ncol)
	r = VisRow(clampInt(int(r)+n, 0, nrow-1))
	return r.Linear(ncol, c)
}

func (u *uiState[R]) movedPosition(idx LinearIdx, dir Direction) LinearIdx {
	return MovedPosition(idx, dir, len(u.cache.rows), len(u.visCols))
}
