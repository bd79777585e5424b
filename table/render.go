package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/tabula/grid"
	"github.com/iw2rmb/tabula/internal/grapheme"
)

const ellipsis = "…"

func (m *Model[R]) gutterWidth() int {
	if !m.cfg.ShowRowNumbers {
		return 0
	}
	return gutterDigits(m.grid.Len()) + 1
}

func gutterDigits(n int) int {
	return len(strconv.Itoa(max(n, 1)))
}

// visibleColumnCount returns how many columns fit from colOffset on.
func (m *Model[R]) visibleColumnCount() int {
	remaining := len(m.grid.VisibleColumns()) - m.colOffset
	if remaining <= 0 {
		return 0
	}
	if m.width <= 0 {
		return remaining
	}
	fit := (m.width - m.gutterWidth() + 1) / (m.cfg.ColumnWidth + 1)
	return clampInt(fit, 1, remaining)
}

func (m *Model[R]) shownColumns() []grid.ColumnIdx {
	cols := m.grid.VisibleColumns()
	m.colOffset = clampInt(m.colOffset, 0, max(len(cols)-1, 0))
	n := m.visibleColumnCount()
	return cols[m.colOffset : m.colOffset+n]
}

func (m *Model[R]) rebuildContent() {
	m.viewport.SetContent(m.renderBody())
}

func (m *Model[R]) renderHeader() string {
	st := m.cfg.Style
	var sb strings.Builder
	if gw := m.gutterWidth(); gw > 0 {
		sb.WriteString(st.Gutter.Render(strings.Repeat(" ", gw)))
	}

	sort := m.grid.Sort()
	for i, col := range m.shownColumns() {
		if i > 0 {
			sb.WriteString(st.Separator)
		}
		name := m.viewer.ColumnName(int(col))
		style := st.Header
		for prio, k := range sort {
			if k.Column != col {
				continue
			}
			marker := "▲"
			if !k.Ascending {
				marker = "▼"
			}
			if len(sort) > 1 {
				marker += strconv.Itoa(prio + 1)
			}
			// The marker stays visible when the name is cut.
			name = grapheme.Truncate(grapheme.Sanitize(name), m.cfg.ColumnWidth-grapheme.StringWidth(marker)-1, ellipsis) + " " + marker
			style = st.HeaderSorted
			break
		}
		sb.WriteString(style.Render(grapheme.Fit(name, m.cfg.ColumnWidth, ellipsis)))
	}
	return sb.String()
}

// renderBody measures every visible row, records the heights in the grid
// and renders the lines the viewport scrolls over.
func (m *Model[R]) renderBody() string {
	g := m.grid
	st := m.cfg.Style
	rows := g.VisibleRows()
	cols := m.shownColumns()
	w := m.cfg.ColumnWidth
	gw := m.gutterWidth()

	ir, ic := g.InteractiveCell()
	er, ec, editing := g.EditingCell()
	showInteractive := m.focused && !editing && g.ActionContext().Cursor != grid.CursorIdle

	m.lineStarts = m.lineStarts[:0]
	out := make([]string, 0, len(rows))
	cells := make([][]string, len(cols))

	for vr, id := range rows {
		row := g.Row(id)
		h := 1
		for i, col := range cols {
			cells[i] = grapheme.Lines(m.viewer.CellText(row, int(col)), m.cfg.MaxRowHeight, ellipsis)
			h = max(h, len(cells[i]))
		}
		g.SetRowHeight(grid.VisRow(vr), h)
		m.lineStarts = append(m.lineStarts, len(out))

		for line := range h {
			var sb strings.Builder
			if gw > 0 {
				label := strings.Repeat(" ", gw)
				if line == 0 {
					label = fmt.Sprintf("%*d ", gw-1, int(id)+1)
				}
				gs := st.Gutter
				if grid.VisRow(vr) == ir {
					gs = st.GutterActive
				}
				sb.WriteString(gs.Render(label))
			}

			for i := range cols {
				if i > 0 {
					sb.WriteString(st.Separator)
				}
				vc := grid.VisCol(m.colOffset + i)
				r := grid.VisRow(vr)

				if editing && r == er && vc == ec {
					sb.WriteString(st.Editing.Render(m.editorCell(line, w)))
					continue
				}

				text := ""
				if line < len(cells[i]) {
					text = cells[i][line]
				}
				style := st.Cell
				switch {
				case showInteractive && r == ir && vc == ic:
					style = st.Interactive
				case g.IsSelected(r, vc) || g.IsGestureSelected(r, vc):
					style = st.Selected
				}
				sb.WriteString(style.Render(grapheme.Fit(text, w, ellipsis)))
			}
			out = append(out, sb.String())
		}
	}
	m.lineStarts = append(m.lineStarts, len(out))
	return strings.Join(out, "\n")
}

// editorCell renders one line of the cell under edit. The editor widget
// occupies the first line.
func (m *Model[R]) editorCell(line, width int) string {
	if line > 0 {
		return strings.Repeat(" ", width)
	}
	m.editor.Width = max(width-1, 1)
	v := m.editor.View()
	if pad := width - lipgloss.Width(v); pad > 0 {
		v += strings.Repeat(" ", pad)
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
