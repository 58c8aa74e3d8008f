package builder

import "errors"

// ─────────────────────────────────────────────────────────────
// History — local undo/redo over document snapshots
// ─────────────────────────────────────────────────────────────
//
// Every mutation produces a new immutable *Document, so a command's
// inverse is simply the document it started from. History records both
// sides of each command; undo/redo swap between them without any network
// round-trip. Remote AI edits enter the history as ordinary commands.

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// historyLimit caps retained entries; the oldest fall off first.
const historyLimit = 40

type historyEntry struct {
	label  string
	before *Document
	after  *Document
}

// History is a bounded undo/redo stack for one editing session.
// It is not safe for concurrent use; the app layer is single-writer.
type History struct {
	past   []historyEntry
	future []historyEntry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Record pushes a completed command. Recording clears the redo stack.
// Commands that changed nothing (before == after) are dropped.
func (h *History) Record(label string, before, after *Document) {
	if before == after {
		return
	}
	h.past = append(h.past, historyEntry{label: label, before: before, after: after})
	if len(h.past) > historyLimit {
		h.past = h.past[len(h.past)-historyLimit:]
	}
	h.future = nil
}

// Undo returns the document as it was before the most recent command.
func (h *History) Undo() (*Document, string, error) {
	if len(h.past) == 0 {
		return nil, "", ErrNothingToUndo
	}
	e := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, e)
	return e.before, e.label, nil
}

// Redo re-applies the most recently undone command.
func (h *History) Redo() (*Document, string, error) {
	if len(h.future) == 0 {
		return nil, "", ErrNothingToRedo
	}
	e := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, e)
	return e.after, e.label, nil
}

// CanUndo reports whether an undo step exists.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Clear drops all history, e.g. when a different document is loaded.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}
