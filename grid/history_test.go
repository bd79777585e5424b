package grid

import "testing"

func entry(n int) historyEntry {
	return historyEntry{apply: RemoveRows{Rows: []RowID{RowID(n)}}}
}

func entryID(e historyEntry) RowID { return e.apply.(RemoveRows).Rows[0] }

func TestHistory_UndoRedoBoundaries(t *testing.T) {
	var h history
	if h.canUndo() || h.canRedo() {
		t.Fatalf("expected empty history")
	}
	if _, ok := h.undo(); ok {
		t.Fatalf("expected undo=false on empty history")
	}

	h.record(entry(1), 10)
	h.record(entry(2), 10)

	e, ok := h.undo()
	if !ok || entryID(e) != 2 {
		t.Fatalf("undo=%v,%v, want entry 2", e, ok)
	}
	e, ok = h.undo()
	if !ok || entryID(e) != 1 {
		t.Fatalf("undo=%v,%v, want entry 1", e, ok)
	}
	if _, ok := h.undo(); ok {
		t.Fatalf("expected undo=false at the back")
	}

	e, ok = h.redo()
	if !ok || entryID(e) != 1 {
		t.Fatalf("redo=%v,%v, want entry 1", e, ok)
	}
	e, ok = h.redo()
	if !ok || entryID(e) != 2 {
		t.Fatalf("redo=%v,%v, want entry 2", e, ok)
	}
	if _, ok := h.redo(); ok {
		t.Fatalf("expected redo=false at the front")
	}
}

func TestHistory_RecordDropsRedoTail(t *testing.T) {
	var h history
	h.record(entry(1), 10)
	h.record(entry(2), 10)
	h.undo()

	h.record(entry(3), 10)
	if h.canRedo() {
		t.Fatalf("expected redo tail to be dropped")
	}
	if got := len(h.entries); got != 2 {
		t.Fatalf("entries=%d, want 2", got)
	}
	e, _ := h.undo()
	if entryID(e) != 3 {
		t.Fatalf("undo=%d, want 3", entryID(e))
	}
}

func TestHistory_RecordEvictsOldest(t *testing.T) {
	var h history
	for i := 1; i <= 5; i++ {
		h.record(entry(i), 3)
	}
	if got := len(h.entries); got != 3 {
		t.Fatalf("entries=%d, want 3", got)
	}
	if got := entryID(h.entries[0]); got != 3 {
		t.Fatalf("oldest=%d, want 3", got)
	}
}

func TestHistory_NonPositiveLimitDisablesHistory(t *testing.T) {
	var h history
	h.record(entry(1), -1)
	if h.canUndo() {
		t.Fatalf("expected no history with a negative limit")
	}
}
