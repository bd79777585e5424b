package grid

type historyEntry struct {
	apply   Command
	restore []Command
	marks   *selectionMarks
}

// selectionMarks hold the cursor on either side of an entry. before is taken
// when the entry is recorded or redone, after when it is undone.
type selectionMarks struct {
	before, after selectionMark
}

type selectionMark struct {
	rects       []Selection
	interactive LinearIdx
	ncol        int
}

// history is an append-only log with the newest entry last. cursor counts how
// many of the newest entries are currently undone.
type history struct {
	entries []historyEntry
	cursor  int
}

// record drops the redo tail, evicts the oldest entries beyond limit and
// appends e. It returns the number of evicted entries.
func (h *history) record(e historyEntry, limit int) int {
	if limit <= 0 {
		h.clear()
		return 0
	}

	h.entries = h.entries[:len(h.entries)-h.cursor]
	h.cursor = 0

	h.entries = append(h.entries, e)
	evicted := 0
	if len(h.entries) > limit {
		evicted = len(h.entries) - limit
		clear(h.entries[:evicted])
		h.entries = h.entries[evicted:]
	}
	return evicted
}

// undo returns the entry to restore and moves the cursor past it.
func (h *history) undo() (historyEntry, bool) {
	if h.cursor == len(h.entries) {
		return historyEntry{}, false
	}
	e := h.entries[len(h.entries)-1-h.cursor]
	h.cursor++
	return e, true
}

// redo moves the cursor back and returns the entry to re-apply.
func (h *history) redo() (historyEntry, bool) {
	if h.cursor == 0 {
		return historyEntry{}, false
	}
	h.cursor--
	return h.entries[len(h.entries)-1-h.cursor], true
}

func (h *history) canUndo() bool { return h.cursor < len(h.entries) }

func (h *history) canRedo() bool { return h.cursor > 0 }

func (h *history) clear() {
	h.entries = nil
	h.cursor = 0
}
