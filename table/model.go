package table

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tabula/grid"
)

// frameInterval paces the extra frames scheduled while a deferred re-sort
// is counting down.
const frameInterval = 50 * time.Millisecond

type frameMsg struct{}

// Model is a Bubble Tea component that renders and interacts with a grid.
//
// Every Update starts a grid frame (Sync) and refreshes the projection after
// handling input, so View always renders a valid cache.
type Model[R any] struct {
	cfg    Config
	grid   *grid.Grid[R]
	viewer Viewer[R]

	focused bool
	width   int
	height  int

	viewport  viewport.Model
	editor    textinput.Model
	colOffset int

	// lineStarts[i] is the first body line of visible row i; the extra last
	// entry is the body height.
	lineStarts []int

	drag dragState

	lastVersion uint64
}

func New[R any](rows []R, v Viewer[R], cfg Config) Model[R] {
	cfg = cfg.withDefaults()
	ed := textinput.New()
	ed.Prompt = ""

	m := Model[R]{
		cfg:      cfg,
		grid:     grid.New(rows, cfg.Options),
		viewer:   v,
		focused:  true,
		viewport: viewport.New(0, 0),
		editor:   ed,
	}
	m.grid.Sync(v)
	m.lastVersion = m.grid.Version()
	m.rebuildContent()
	return m
}

// Grid returns the underlying grid. Direct mutations through it are picked
// up on the next Update.
func (m Model[R]) Grid() *grid.Grid[R] { return m.grid }

func (m Model[R]) Viewer() Viewer[R] { return m.viewer }

// SetViewer replaces the viewer, for example after the host changed its
// filter or column set, and revalidates the grid against it.
func (m Model[R]) SetViewer(v Viewer[R]) Model[R] {
	m.viewer = v
	m.grid.Sync(v)
	m.rebuildContent()
	m.notifyChange()
	return m
}

func (m Model[R]) Init() tea.Cmd { return nil }

func (m Model[R]) SetSize(width, height int) Model[R] {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-1, 0)
	m.grid.SetPageRows(m.viewport.Height)

	m.rebuildContent()
	m.followInteractive()
	return m
}

func (m Model[R]) Focus() Model[R] {
	if !m.focused {
		m.focused = true
		if m.grid.IsEditing() {
			m.editor.Focus()
		}
		m.rebuildContent()
	}
	return m
}

func (m Model[R]) Blur() Model[R] {
	if m.focused {
		m.focused = false
		m.editor.Blur()
		m.drag = dragState{}
		m.rebuildContent()
	}
	return m
}

func (m Model[R]) Focused() bool { return m.focused }

func (m Model[R]) Update(msg tea.Msg) (Model[R], tea.Cmd) {
	m.grid.Sync(m.viewer)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	case frameMsg:
	default:
		if m.grid.IsEditing() {
			m.editor, cmd = m.editor.Update(msg)
		}
	}

	m.grid.Refresh()
	m.syncEditor()
	m.rebuildContent()
	if _, ok := m.grid.TakeScrollRequest(); ok {
		m.followInteractive()
	}
	m.notifyChange()

	if m.grid.PendingResort() {
		cmd = tea.Batch(cmd, tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} }))
	}
	return m, cmd
}

func (m Model[R]) View() string {
	return m.renderHeader() + "\n" + m.viewport.View()
}

func (m *Model[R]) notifyChange() {
	ver := m.grid.Version()
	if ver == m.lastVersion {
		return
	}
	m.lastVersion = ver
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.grid))
	}
}

// syncEditor loads the cell text into the editor widget when an edit has
// just started and blurs it when editing ended.
func (m *Model[R]) syncEditor() {
	if !m.grid.IsEditing() {
		if m.editor.Focused() {
			m.editor.Blur()
		}
		return
	}
	if !m.grid.TakeJustFocused() {
		return
	}
	ce, ok := m.viewer.(CellEditor[R])
	col, colOK := m.grid.EditingColumn()
	if !ok || !colOK {
		m.grid.Push(grid.CancelEdit{})
		return
	}
	m.editor.SetValue(ce.EditText(m.grid.EditRow(), int(col)))
	m.editor.CursorEnd()
	if m.focused {
		m.editor.Focus()
	}
}

// followInteractive scrolls so that the interactive cell is on screen.
func (m *Model[R]) followInteractive() {
	if len(m.grid.VisibleRows()) == 0 {
		return
	}
	r, c := m.grid.InteractiveCell()

	if h := m.viewport.Height; h > 0 && int(r)+1 < len(m.lineStarts) {
		top, bottom := m.lineStarts[r], m.lineStarts[r+1]
		y := m.viewport.YOffset
		switch {
		case top < y:
			m.viewport.SetYOffset(top)
		case bottom > y+h:
			m.viewport.SetYOffset(bottom - h)
		}
	}

	n := m.visibleColumnCount()
	switch {
	case int(c) < m.colOffset:
		m.colOffset = int(c)
		m.rebuildContent()
	case int(c) >= m.colOffset+n:
		m.colOffset = int(c) - n + 1
		m.rebuildContent()
	}
}
