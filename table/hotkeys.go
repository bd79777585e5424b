package table

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tabula/grid"
)

// Hotkey binds keys to a grid action.
type Hotkey struct {
	Binding key.Binding
	Action  grid.Action
}

// HotkeyProvider lets a viewer replace the hotkey table. Hotkeys is called
// on every key press with the current cursor mode; the first enabled
// binding that matches wins.
type HotkeyProvider interface {
	Hotkeys(ctx grid.ActionContext) []Hotkey
}

func hk(kind grid.ActionKind, keys []string, help, desc string) Hotkey {
	return Hotkey{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc)),
		Action:  grid.Action{Kind: kind},
	}
}

func hkDir(kind grid.ActionKind, dir grid.Direction, keys []string, help, desc string) Hotkey {
	h := hk(kind, keys, help, desc)
	h.Action.Dir = dir
	return h
}

// DefaultHotkeys returns the built-in bindings for ctx.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
func DefaultHotkeys(ctx grid.ActionContext) []Hotkey {
	if ctx.Cursor == grid.CursorEditing {
		return []Hotkey{
			hk(grid.ActionCancelEdition, []string{"esc"}, "esc", "cancel edit"),
			hkDir(grid.ActionCommitEditionAndMove, grid.Down, []string{"enter"}, "enter", "commit and move down"),
			hkDir(grid.ActionCommitEditionAndMove, grid.Right, []string{"tab"}, "tab", "commit and move right"),
			hkDir(grid.ActionCommitEditionAndMove, grid.Left, []string{"shift+tab"}, "shift+tab", "commit and move left"),
			hkDir(grid.ActionCommitEditionAndMove, grid.Up, []string{"alt+enter"}, "alt+enter", "commit and move up"),
		}
	}

	keys := []Hotkey{
		hkDir(grid.ActionMoveSelection, grid.Up, []string{"up"}, "↑", "up"),
		hkDir(grid.ActionMoveSelection, grid.Down, []string{"down"}, "↓", "down"),
		hkDir(grid.ActionMoveSelection, grid.Left, []string{"left"}, "←", "left"),
		hkDir(grid.ActionMoveSelection, grid.Right, []string{"right"}, "→", "right"),
		hkDir(grid.ActionMoveSelection, grid.Right, []string{"tab"}, "tab", "next cell"),
		hkDir(grid.ActionMoveSelection, grid.Left, []string{"shift+tab"}, "shift+tab", "previous cell"),

		hkDir(grid.ActionExtendSelection, grid.Up, []string{"shift+up"}, "shift+↑", "extend up"),
		hkDir(grid.ActionExtendSelection, grid.Down, []string{"shift+down"}, "shift+↓", "extend down"),
		hkDir(grid.ActionExtendSelection, grid.Left, []string{"shift+left"}, "shift+←", "extend left"),
		hkDir(grid.ActionExtendSelection, grid.Right, []string{"shift+right"}, "shift+→", "extend right"),

		hk(grid.ActionNavPageUp, []string{"pgup"}, "pgup", "page up"),
		hk(grid.ActionNavPageDown, []string{"pgdown"}, "pgdown", "page down"),
		hk(grid.ActionNavTop, []string{"home", "ctrl+home"}, "home", "first row"),
		hk(grid.ActionNavBottom, []string{"end", "ctrl+end"}, "end", "last row"),
		hk(grid.ActionSelectAll, []string{"ctrl+a"}, "ctrl+a", "select all"),

		hk(grid.ActionUndo, []string{"ctrl+z"}, "ctrl+z", "undo"),
		hk(grid.ActionRedo, []string{"ctrl+y"}, "ctrl+y", "redo"),
	}
	if ctx.Cursor == grid.CursorIdle {
		return keys
	}

	return append(keys,
		hk(grid.ActionStartEditing, []string{"enter", "f2"}, "enter", "edit cell"),

		hk(grid.ActionCopySelection, []string{"ctrl+c"}, "ctrl+c", "copy"),
		hk(grid.ActionCutSelection, []string{"ctrl+x"}, "ctrl+x", "cut"),
		hk(grid.ActionPasteInPlace, []string{"ctrl+v"}, "ctrl+v", "paste"),
		hk(grid.ActionPasteInsert, []string{"alt+v"}, "alt+v", "paste as new rows"),

		hk(grid.ActionDeleteSelection, []string{"delete", "backspace"}, "del", "clear cells"),
		hk(grid.ActionFillSelection, []string{"ctrl+d"}, "ctrl+d", "fill from cursor row"),
		hk(grid.ActionDeleteRow, []string{"ctrl+k"}, "ctrl+k", "delete rows"),
		hk(grid.ActionDuplicateRow, []string{"alt+d"}, "alt+d", "duplicate row"),
		hk(grid.ActionInsertRowBelow, []string{"alt+o"}, "alt+o", "insert row below"),
		hk(grid.ActionInsertRowAbove, []string{"alt+O"}, "alt+O", "insert row above"),
	)
}

// resolveHotkey returns the action bound to msg in ctx.
func resolveHotkey(keys []Hotkey, msg tea.KeyMsg) (grid.Action, bool) {
	for _, h := range keys {
		if key.Matches(msg, h.Binding) {
			return h.Action, true
		}
	}
	return grid.Action{}, false
}
