package builder

import (
	"errors"
	"testing"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

func TestParsePath_GlobalSentinels(t *testing.T) {
	loc, err := ParsePath("globalNavbar")
	if err != nil {
		t.Fatal(err)
	}
	slot, ok := loc.(GlobalSlot)
	if !ok || slot.Kind != domain.SectionNavbar {
		t.Fatalf("unexpected locator %#v", loc)
	}

	loc, err = ParsePath("globalFooter")
	if err != nil {
		t.Fatal(err)
	}
	slot, ok = loc.(GlobalSlot)
	if !ok || slot.Kind != domain.SectionFooter {
		t.Fatalf("unexpected locator %#v", loc)
	}
}

func TestParsePath_NodePaths(t *testing.T) {
	tests := []struct {
		path string
		want []Segment
	}{
		{"layout[2].props", []Segment{{"layout", 2}, {"props", -1}}},
		{"layout[0]", []Segment{{"layout", 0}}},
		{"layout[1].children[3].props.title", []Segment{{"layout", 1}, {"children", 3}, {"props", -1}, {"title", -1}}},
	}
	for _, tt := range tests {
		loc, err := ParsePath(tt.path)
		if err != nil {
			t.Fatalf("%s: %v", tt.path, err)
		}
		np, ok := loc.(NodePath)
		if !ok {
			t.Fatalf("%s: expected NodePath, got %#v", tt.path, loc)
		}
		if len(np.Segments) != len(tt.want) {
			t.Fatalf("%s: got %d segments, want %d", tt.path, len(np.Segments), len(tt.want))
		}
		for i, seg := range np.Segments {
			if seg != tt.want[i] {
				t.Fatalf("%s: segment %d = %+v, want %+v", tt.path, i, seg, tt.want[i])
			}
		}
	}
}

func TestParsePath_Malformed(t *testing.T) {
	for _, path := range []string{"", "layout[", "layout[x]", "layout[-1]", "[0]", "layout[0]."} {
		if _, err := ParsePath(path); err == nil {
			t.Fatalf("expected parse error for %q", path)
		}
	}
}

func TestResolveNode_OutOfBounds(t *testing.T) {
	doc := NewDocument()
	doc, p := doc.AddPage("Home")
	doc, _ = doc.InsertSection(p.ID, NewSection(domain.SectionText), -1)
	doc = doc.SetActivePage(p.ID)

	_, err := doc.UpdateProps("layout[5].props", map[string]any{"text": "x"})
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PathError, got %v", err)
	}
}
