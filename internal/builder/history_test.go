package builder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := NewHistory()
	doc := NewDocument()
	doc, p := doc.AddPage("Home")

	doc2, err := doc.InsertSection(p.ID, NewSection(domain.SectionButton), -1)
	if err != nil {
		t.Fatal(err)
	}
	h.Record("add button", doc, doc2)

	got, label, err := h.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if got != doc || label != "add button" {
		t.Fatalf("undo returned wrong snapshot (label %q)", label)
	}

	got, _, err = h.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if got != doc2 {
		t.Fatal("redo returned wrong snapshot")
	}
}

func TestHistory_UndoOnEmptyErrors(t *testing.T) {
	h := NewHistory()
	if _, _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	if _, _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistory_NewCommandClearsRedo(t *testing.T) {
	h := NewHistory()
	a := NewDocument()
	b, _ := a.AddPage("one")
	c, _ := b.AddPage("two")

	h.Record("one", a, b)
	h.Record("two", b, c)
	if _, _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("expected a redo step")
	}

	d, _ := b.AddPage("three")
	h.Record("three", b, d)
	if h.CanRedo() {
		t.Fatal("recording a new command must clear the redo stack")
	}
}

func TestHistory_NoOpCommandsDropped(t *testing.T) {
	h := NewHistory()
	doc := NewDocument()
	h.Record("noop", doc, doc)
	if h.CanUndo() {
		t.Fatal("no-op command should not enter history")
	}
}

func TestHistory_CapacityPrunesOldest(t *testing.T) {
	h := NewHistory()
	doc := NewDocument()
	for i := 0; i <= historyLimit+5; i++ {
		next, _ := doc.AddPage(fmt.Sprintf("p%d", i))
		h.Record("add", doc, next)
		doc = next
	}

	undone := 0
	for h.CanUndo() {
		if _, _, err := h.Undo(); err != nil {
			t.Fatal(err)
		}
		undone++
	}
	if undone != historyLimit {
		t.Fatalf("expected %d retained entries, got %d", historyLimit, undone)
	}
}
