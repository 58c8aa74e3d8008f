package builder

import (
	"testing"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// docWithSections builds a one-page active document with n text sections.
func docWithSections(t *testing.T, n int) (*Document, *Page) {
	t.Helper()
	doc := NewDocument()
	doc, p := doc.AddPage("Home")
	for i := 0; i < n; i++ {
		var err error
		doc, err = doc.InsertSection(p.ID, NewSection(domain.SectionText), -1)
		if err != nil {
			t.Fatal(err)
		}
	}
	page, _ := doc.GetPage(p.ID)
	return doc, page
}

func TestUpdateProps_ShallowMerge(t *testing.T) {
	doc, page := docWithSections(t, 2)

	doc2, err := doc.UpdateProps("layout[1].props", map[string]any{"text": "updated", "color": "red"})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := doc2.GetPage(page.ID)
	props := got.Layout[1].Props
	if props["text"] != "updated" || props["color"] != "red" {
		t.Fatalf("merge missing keys: %v", props)
	}
	// Unspecified defaults survive the merge.
	if props["align"] != "left" {
		t.Fatalf("unspecified key clobbered: %v", props)
	}
}

func TestUpdateProps_OtherNodesUnchanged(t *testing.T) {
	doc, page := docWithSections(t, 3)

	doc2, err := doc.UpdateProps("layout[1]", map[string]any{"text": "x"})
	if err != nil {
		t.Fatal(err)
	}

	before, _ := doc.GetPage(page.ID)
	after, _ := doc2.GetPage(page.ID)

	// Sibling nodes keep their props untouched.
	for _, i := range []int{0, 2} {
		bp := before.Layout[i].Props
		ap := after.Layout[i].Props
		if len(bp) != len(ap) {
			t.Fatalf("sibling %d changed", i)
		}
		for k := range bp {
			if bp[k] != ap[k] {
				t.Fatalf("sibling %d prop %q changed", i, k)
			}
		}
	}
	// The original document is untouched.
	if before.Layout[1].Props["text"] == "x" {
		t.Fatal("original tree was mutated")
	}
}

func TestUpdateProps_NestedChild(t *testing.T) {
	doc := NewDocument()
	doc, p := doc.AddPage("Home")
	child := NewSection(domain.SectionButton)
	cols := NewSection(domain.SectionColumns)
	cols.Children = []domain.Section{child}
	doc, _ = doc.InsertSection(p.ID, cols, -1)

	doc2, err := doc.UpdateProps("layout[0].children[0].props", map[string]any{"buttonText": "Buy now"})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := doc2.GetPage(p.ID)
	if got.Layout[0].Children[0].Props["buttonText"] != "Buy now" {
		t.Fatalf("nested update failed: %v", got.Layout[0].Children[0].Props)
	}
	// Original child untouched.
	orig, _ := doc.GetPage(p.ID)
	if orig.Layout[0].Children[0].Props["buttonText"] != "Click me" {
		t.Fatal("original nested node was mutated")
	}
}

func TestUpdateProps_GlobalSlot(t *testing.T) {
	doc := NewDocument()
	doc, _ = doc.AddPage("Home")
	doc, _ = doc.SetGlobal(domain.SectionNavbar, nil)

	doc2, err := doc.UpdateProps("globalNavbar", map[string]any{"brand": "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if doc2.GlobalNavbar().Props["brand"] != "Acme" {
		t.Fatalf("global merge failed: %v", doc2.GlobalNavbar().Props)
	}
	if doc.GlobalNavbar().Props["brand"] == "Acme" {
		t.Fatal("original global element was mutated")
	}
}

func TestUpdateProps_EmptyGlobalSlotErrors(t *testing.T) {
	doc := NewDocument()
	doc, _ = doc.AddPage("Home")
	if _, err := doc.UpdateProps("globalFooter", map[string]any{"text": "x"}); err == nil {
		t.Fatal("expected error updating an empty global slot")
	}
}

func TestUpdateProps_BadPathFailsClosed(t *testing.T) {
	doc, page := docWithSections(t, 1)
	doc2, err := doc.UpdateProps("layout[0].children[4].props", map[string]any{"text": "x"})
	if err == nil {
		t.Fatal("expected path resolution error")
	}
	if doc2 != doc {
		t.Fatal("failed update must return the document unchanged")
	}
	got, _ := doc.GetPage(page.ID)
	if got.Layout[0].Props["text"] != "Write something compelling." {
		t.Fatal("partial mutation leaked")
	}
}

func TestRemove_IndexSplicesAndCompacts(t *testing.T) {
	doc, page := docWithSections(t, 3)
	before, _ := doc.GetPage(page.ID)
	ids := []string{before.Layout[0].ID, before.Layout[1].ID, before.Layout[2].ID}

	doc2 := doc.Remove("layout[1]")
	after, _ := doc2.GetPage(page.ID)
	if len(after.Layout) != 2 {
		t.Fatalf("expected length 2 after remove, got %d", len(after.Layout))
	}
	if after.Layout[0].ID != ids[0] || after.Layout[1].ID != ids[2] {
		t.Fatalf("relative order not preserved: %v", after.Layout)
	}
}

func TestRemove_NestedChildIndex(t *testing.T) {
	doc := NewDocument()
	doc, p := doc.AddPage("Home")
	c1 := NewSection(domain.SectionText)
	c2 := NewSection(domain.SectionButton)
	cols := NewSection(domain.SectionColumns)
	cols.Children = []domain.Section{c1, c2}
	doc, _ = doc.InsertSection(p.ID, cols, -1)

	doc2 := doc.Remove("layout[0].children[0]")
	got, _ := doc2.GetPage(p.ID)
	if len(got.Layout[0].Children) != 1 || got.Layout[0].Children[0].ID != c2.ID {
		t.Fatalf("unexpected children after remove: %v", got.Layout[0].Children)
	}
	// Original untouched.
	orig, _ := doc.GetPage(p.ID)
	if len(orig.Layout[0].Children) != 2 {
		t.Fatal("original children were mutated")
	}
}

func TestRemove_PropKey(t *testing.T) {
	doc, page := docWithSections(t, 1)
	doc2 := doc.Remove("layout[0].props.align")
	got, _ := doc2.GetPage(page.ID)
	if _, exists := got.Layout[0].Props["align"]; exists {
		t.Fatal("prop key not deleted")
	}
	if _, exists := got.Layout[0].Props["text"]; !exists {
		t.Fatal("other prop keys must survive")
	}
}

func TestRemove_UnresolvablePathIsNoOp(t *testing.T) {
	doc, _ := docWithSections(t, 1)
	for _, path := range []string{"layout[9]", "layout[0].children[2]", "layout[0].props.missing", "globalNavbar"} {
		if got := doc.Remove(path); got != doc {
			t.Fatalf("remove %q should be a no-op, got a new document", path)
		}
	}
}

func TestRemove_GlobalSlot(t *testing.T) {
	doc := NewDocument()
	doc, _ = doc.AddPage("Home")
	doc, _ = doc.SetGlobal(domain.SectionFooter, nil)

	doc2 := doc.Remove("globalFooter")
	if doc2.GlobalFooter() != nil {
		t.Fatal("footer slot not cleared")
	}
	if doc.GlobalFooter() == nil {
		t.Fatal("original document was mutated")
	}
}
