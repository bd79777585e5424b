package table

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tabula/grid"
)

func TestDefaultHotkeys_ByCursorMode(t *testing.T) {
	tests := []struct {
		name   string
		cursor grid.CursorMode
		msg    tea.KeyMsg
		want   grid.ActionKind
		found  bool
	}{
		{"idle arrow moves", grid.CursorIdle, tea.KeyMsg{Type: tea.KeyDown}, grid.ActionMoveSelection, true},
		{"idle copy unbound", grid.CursorIdle, tea.KeyMsg{Type: tea.KeyCtrlC}, 0, false},
		{"idle enter unbound", grid.CursorIdle, tea.KeyMsg{Type: tea.KeyEnter}, 0, false},
		{"select copy", grid.CursorSelectOne, tea.KeyMsg{Type: tea.KeyCtrlC}, grid.ActionCopySelection, true},
		{"select enter edits", grid.CursorSelectOne, tea.KeyMsg{Type: tea.KeyEnter}, grid.ActionStartEditing, true},
		{"select f2 edits", grid.CursorSelectMany, tea.KeyMsg{Type: tea.KeyF2}, grid.ActionStartEditing, true},
		{"select shift extends", grid.CursorSelectMany, tea.KeyMsg{Type: tea.KeyShiftUp}, grid.ActionExtendSelection, true},
		{"select alt+O inserts above", grid.CursorSelectOne, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("O"), Alt: true}, grid.ActionInsertRowAbove, true},
		{"editing esc cancels", grid.CursorEditing, tea.KeyMsg{Type: tea.KeyEsc}, grid.ActionCancelEdition, true},
		{"editing enter commits", grid.CursorEditing, tea.KeyMsg{Type: tea.KeyEnter}, grid.ActionCommitEditionAndMove, true},
		{"editing arrows go to the editor", grid.CursorEditing, tea.KeyMsg{Type: tea.KeyLeft}, 0, false},
		{"editing undo goes to the editor", grid.CursorEditing, tea.KeyMsg{Type: tea.KeyCtrlZ}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := resolveHotkey(DefaultHotkeys(grid.ActionContext{Cursor: tt.cursor}), tt.msg)
			if ok != tt.found {
				t.Fatalf("found=%v, want %v", ok, tt.found)
			}
			if ok && a.Kind != tt.want {
				t.Fatalf("action=%v, want %v", a.Kind, tt.want)
			}
		})
	}
}

func TestDefaultHotkeys_Directions(t *testing.T) {
	keys := DefaultHotkeys(grid.ActionContext{Cursor: grid.CursorEditing})
	a, _ := resolveHotkey(keys, tea.KeyMsg{Type: tea.KeyShiftTab})
	if a.Dir != grid.Left {
		t.Fatalf("shift+tab dir=%v, want left", a.Dir)
	}
	a, _ = resolveHotkey(keys, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if a.Dir != grid.Up {
		t.Fatalf("alt+enter dir=%v, want up", a.Dir)
	}
}

func TestDefaultHotkeys_DisabledBindingIsSkipped(t *testing.T) {
	keys := DefaultHotkeys(grid.ActionContext{Cursor: grid.CursorSelectOne})
	for i := range keys {
		if keys[i].Action.Kind == grid.ActionDeleteSelection {
			keys[i].Binding.SetEnabled(false)
		}
	}
	if _, ok := resolveHotkey(keys, tea.KeyMsg{Type: tea.KeyDelete}); ok {
		t.Fatalf("disabled binding matched")
	}
}

// hotkeyViewer binds "x" to select all and nothing else.
type hotkeyViewer struct {
	editViewer
}

func (hotkeyViewer) Hotkeys(grid.ActionContext) []Hotkey {
	return []Hotkey{{
		Binding: key.NewBinding(key.WithKeys("x")),
		Action:  grid.Action{Kind: grid.ActionSelectAll},
	}}
}

func TestModel_HotkeyProviderReplacesDefaults(t *testing.T) {
	v := hotkeyViewer{editViewer{textViewer{names: []string{"name", "qty"}}}}
	m := New(rowsOf("a,1", "b,2"), Viewer[textRow](v), Config{})

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if got := len(m.Grid().Selections()); got != 0 {
		t.Fatalf("default binding still active: %d selections", got)
	}
	m = press(m, runes("x"))
	if !m.Grid().IsSelected(1, 1) || m.Grid().IsEditing() {
		t.Fatalf("expected x to select all without editing")
	}
}
