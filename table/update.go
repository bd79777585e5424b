package table

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tabula/grid"
)

func (m Model[R]) hotkeys() []Hotkey {
	ctx := m.grid.ActionContext()
	if p, ok := m.viewer.(HotkeyProvider); ok {
		return p.Hotkeys(ctx)
	}
	return DefaultHotkeys(ctx)
}

func (m Model[R]) updateKey(msg tea.KeyMsg) (Model[R], tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	editing := m.grid.IsEditing()

	// Bracketed paste goes to the editor, or is pasted into the selection
	// like clipboard text.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if editing {
			return m.forwardToEditor(msg)
		}
		m.grid.OfferClipboardText(string(msg.Runes))
		m.grid.Apply(grid.Action{Kind: grid.ActionPasteInPlace})
		return m, nil
	}

	if a, ok := resolveHotkey(m.hotkeys(), msg); ok {
		m.apply(a)
		return m, nil
	}

	if editing {
		return m.forwardToEditor(msg)
	}

	// Typing on a selected cell starts an edit that replaces its text.
	if msg.Type == tea.KeyRunes && !msg.Alt && m.grid.ActionContext().Cursor != grid.CursorIdle {
		if !m.apply(grid.Action{Kind: grid.ActionStartEditing}) {
			return m, nil
		}
		m.grid.Refresh()
		m.syncEditor()
		m.editor.SetValue("")
		return m.forwardToEditor(msg)
	}
	return m, nil
}

// apply runs a through the grid with the system clipboard wrapped around
// copy and paste actions.
func (m *Model[R]) apply(a grid.Action) bool {
	g := m.grid
	switch a.Kind {
	case grid.ActionStartEditing:
		if _, ok := m.viewer.(CellEditor[R]); !ok {
			return false
		}
	case grid.ActionPasteInPlace, grid.ActionPasteInsert:
		if m.cfg.Clipboard != nil {
			text, err := m.cfg.Clipboard.ReadText()
			if err != nil {
				g.Logger().Debug("clipboard read failed", "grid", g.ID(), "err", err)
			} else {
				g.OfferClipboardText(text)
			}
		}
	}

	changed := g.Apply(a)

	if text, ok := g.TakeSystemClipboard(); ok && m.cfg.Clipboard != nil {
		if err := m.cfg.Clipboard.WriteText(text); err != nil {
			g.Logger().Debug("clipboard write failed", "grid", g.ID(), "err", err)
		}
	}
	return changed
}

// forwardToEditor hands msg to the editor widget and writes the result into
// the scratch row.
func (m Model[R]) forwardToEditor(msg tea.Msg) (Model[R], tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	ce, ok := m.viewer.(CellEditor[R])
	col, colOK := m.grid.EditingColumn()
	if ok && colOK {
		ce.SetEditText(m.grid.EditRow(), int(col), m.editor.Value())
	}
	return m, cmd
}
