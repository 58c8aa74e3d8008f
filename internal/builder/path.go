package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Locator — typed addressing of tree nodes and global slots
// ─────────────────────────────────────────────────────────────
//
// The property sidebar and AI-driven updates address nodes with string
// paths ("layout[2].props.title", "layout[0].children[1]"), plus the
// sentinels "globalNavbar" and "globalFooter". Strings are the wire
// format only: ParsePath turns them into a Locator once, and everything
// downstream pattern-matches on the variant instead of re-parsing.

// Locator is the tagged union of addressable targets.
type Locator interface{ locator() }

// GlobalSlot addresses one of the document's chrome singletons.
type GlobalSlot struct {
	Kind domain.SectionType // SectionNavbar or SectionFooter
}

// NodePath addresses a position inside the active page's layout tree.
type NodePath struct {
	Segments []Segment
}

func (GlobalSlot) locator() {}
func (NodePath) locator()   {}

// Segment is one step of a NodePath: a field name with an optional
// array index (Index < 0 means no index).
type Segment struct {
	Field string
	Index int
}

// PathError reports a path that failed to parse or resolve. These indicate
// a programming defect in the caller, so they are logged, never shown to
// the end user.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %s", e.Path, e.Reason)
}

// ParsePath parses the dot-separated path grammar into a Locator.
// Grammar: field names separated by dots, where any segment may carry an
// index suffix, e.g. "layout[2].children[0].props".
func ParsePath(path string) (Locator, error) {
	switch path {
	case "globalNavbar":
		return GlobalSlot{Kind: domain.SectionNavbar}, nil
	case "globalFooter":
		return GlobalSlot{Kind: domain.SectionFooter}, nil
	}
	if path == "" {
		return nil, &PathError{Path: path, Reason: "empty path"}
	}

	parts := strings.Split(path, ".")
	segs := make([]Segment, 0, len(parts))
	for _, part := range parts {
		seg := Segment{Field: part, Index: -1}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, &PathError{Path: path, Reason: fmt.Sprintf("malformed index in segment %q", part)}
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, &PathError{Path: path, Reason: fmt.Sprintf("bad index in segment %q", part)}
			}
			seg.Field = part[:open]
			seg.Index = idx
		}
		if seg.Field == "" {
			return nil, &PathError{Path: path, Reason: fmt.Sprintf("empty field in segment %q", part)}
		}
		segs = append(segs, seg)
	}
	return NodePath{Segments: segs}, nil
}

// resolveNode walks a NodePath against a page and returns the section it
// addresses. A trailing "props" segment is accepted and resolves to the
// node that owns the props, so "layout[2]" and "layout[2].props" address
// the same section.
func resolveNode(page *Page, path string, np NodePath) (*domain.Section, error) {
	segs := np.Segments
	if n := len(segs); n > 0 && segs[n-1].Field == "props" && segs[n-1].Index < 0 {
		segs = segs[:n-1]
	}
	if len(segs) == 0 {
		return nil, &PathError{Path: path, Reason: "path addresses no node"}
	}

	first := segs[0]
	if first.Field != "layout" || first.Index < 0 {
		return nil, &PathError{Path: path, Reason: fmt.Sprintf("expected layout[i], got %q", first.Field)}
	}
	if first.Index >= len(page.Layout) {
		return nil, &PathError{Path: path, Reason: fmt.Sprintf("layout index %d out of bounds (%d)", first.Index, len(page.Layout))}
	}

	node := &page.Layout[first.Index]
	for _, seg := range segs[1:] {
		if seg.Field != "children" || seg.Index < 0 {
			return nil, &PathError{Path: path, Reason: fmt.Sprintf("expected children[i], got %q", seg.Field)}
		}
		if seg.Index >= len(node.Children) {
			return nil, &PathError{Path: path, Reason: fmt.Sprintf("children index %d out of bounds (%d)", seg.Index, len(node.Children))}
		}
		node = &node.Children[seg.Index]
	}
	return node, nil
}
