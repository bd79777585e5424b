package table

import (
	"github.com/google/uuid"

	"github.com/iw2rmb/tabula/grid"
)

type ChangeEvent struct {
	GridID  uuid.UUID
	Version uint64

	Rows    int
	Visible int

	Cursor      grid.CursorMode
	Interactive struct {
		Row grid.VisRow
		Col grid.VisCol
	}

	// Modified mirrors grid.HasUserModification.
	Modified bool
}

func buildChangeEvent[R any](g *grid.Grid[R]) ChangeEvent {
	ev := ChangeEvent{
		GridID:   g.ID(),
		Version:  g.Version(),
		Rows:     g.Len(),
		Visible:  len(g.VisibleRows()),
		Cursor:   g.ActionContext().Cursor,
		Modified: g.HasUserModification(),
	}
	ev.Interactive.Row, ev.Interactive.Col = g.InteractiveCell()
	return ev
}
