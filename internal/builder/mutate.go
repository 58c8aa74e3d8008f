package builder

import (
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Path-addressed mutation layer
// ─────────────────────────────────────────────────────────────
//
// Node paths resolve against the active page; the sentinels
// "globalNavbar"/"globalFooter" address the document chrome instead.
// Both operations are copy-on-write: the receiver is never modified, and
// the returned document shares every untouched node with it.

// UpdateProps shallow-merges partial into the props of the node the path
// addresses: new keys overwrite, unspecified keys are untouched. A path
// that fails to resolve returns a *PathError and the document unchanged —
// no partial mutation ever lands.
func (d *Document) UpdateProps(path string, partial map[string]any) (*Document, error) {
	loc, err := ParsePath(path)
	if err != nil {
		return d, err
	}

	switch l := loc.(type) {
	case GlobalSlot:
		src := d.globalNavbar
		if l.Kind == domain.SectionFooter {
			src = d.globalFooter
		}
		if src == nil {
			return d, &PathError{Path: path, Reason: "global slot is empty"}
		}
		el := *src
		el.Props = mergeProps(src.Props, partial)
		cp := d.shallowCopy()
		if l.Kind == domain.SectionNavbar {
			cp.globalNavbar = &el
		} else {
			cp.globalFooter = &el
		}
		return cp, nil

	case NodePath:
		page, ok := d.pages[d.activePageID]
		if !ok {
			return d, &PathError{Path: path, Reason: "no active page"}
		}
		// Validate against the original before any copying, so a bad path
		// cannot leave a half-cloned tree behind.
		if _, err := resolveNode(page, path, l); err != nil {
			return d, err
		}
		np := clonePageAlong(page, l)
		node, _ := resolveNode(np, path, l)
		node.Props = mergeProps(node.Props, partial)
		cp := d.shallowCopy()
		cp.pages[page.ID] = np
		return cp, nil
	}
	return d, &PathError{Path: path, Reason: "unsupported locator"}
}

// Remove deletes what the path addresses: a terminal array index splices
// that element out (the sequence compacts, no holes), a terminal field
// deletes that prop key, and a global sentinel clears the slot. A path
// that does not resolve is a silent no-op — the same document reference
// comes back, which callers can use to tell nothing changed.
func (d *Document) Remove(path string) *Document {
	loc, err := ParsePath(path)
	if err != nil {
		return d
	}

	switch l := loc.(type) {
	case GlobalSlot:
		if l.Kind == domain.SectionNavbar && d.globalNavbar == nil {
			return d
		}
		if l.Kind == domain.SectionFooter && d.globalFooter == nil {
			return d
		}
		return d.RemoveGlobal(l.Kind)

	case NodePath:
		page, ok := d.pages[d.activePageID]
		if !ok {
			return d
		}
		segs := l.Segments
		last := segs[len(segs)-1]

		if last.Index >= 0 {
			return d.removeIndexed(page, path, segs)
		}
		return d.removeField(page, path, segs)
	}
	return d
}

// removeIndexed splices out the array element the terminal segment names.
func (d *Document) removeIndexed(page *Page, path string, segs []Segment) *Document {
	last := segs[len(segs)-1]

	if len(segs) == 1 {
		if last.Field != "layout" || last.Index >= len(page.Layout) {
			return d
		}
		np := *page
		np.Layout = spliceSections(page.Layout, last.Index)
		cp := d.shallowCopy()
		cp.pages[page.ID] = &np
		return cp
	}

	// Terminal children[i]: resolve and clone the parent chain, then splice.
	parent := NodePath{Segments: segs[:len(segs)-1]}
	if last.Field != "children" {
		return d
	}
	node, err := resolveNode(page, path, parent)
	if err != nil || last.Index >= len(node.Children) {
		return d
	}
	np := clonePageAlong(page, parent)
	pn, _ := resolveNode(np, path, parent)
	pn.Children = spliceSections(pn.Children, last.Index)
	cp := d.shallowCopy()
	cp.pages[page.ID] = np
	return cp
}

// removeField deletes a named prop key ("layout[2].props.title").
func (d *Document) removeField(page *Page, path string, segs []Segment) *Document {
	if len(segs) < 2 {
		return d
	}
	propsSeg := segs[len(segs)-2]
	if propsSeg.Field != "props" || propsSeg.Index >= 0 {
		return d
	}
	key := segs[len(segs)-1].Field
	nodePath := NodePath{Segments: segs[:len(segs)-2]}

	node, err := resolveNode(page, path, nodePath)
	if err != nil {
		return d
	}
	if _, exists := node.Props[key]; !exists {
		return d
	}
	np := clonePageAlong(page, nodePath)
	nn, _ := resolveNode(np, path, nodePath)
	props := make(map[string]any, len(nn.Props))
	for k, v := range nn.Props {
		if k != key {
			props[k] = v
		}
	}
	nn.Props = props
	cp := d.shallowCopy()
	cp.pages[page.ID] = np
	return cp
}

// ── helpers ────────────────────────────────────────────────

func mergeProps(old, partial map[string]any) map[string]any {
	merged := make(map[string]any, len(old)+len(partial))
	for k, v := range old {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

func spliceSections(s []domain.Section, i int) []domain.Section {
	out := make([]domain.Section, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

// clonePageAlong copies the page, its layout slice, and the Children
// slices along the locator's segment chain, so the node the locator
// addresses can be mutated without touching the original tree. Nodes off
// the chain stay shared.
func clonePageAlong(p *Page, np NodePath) *Page {
	segs := np.Segments
	if n := len(segs); n > 0 && segs[n-1].Field == "props" && segs[n-1].Index < 0 {
		segs = segs[:n-1]
	}

	cp := *p
	cp.Layout = append([]domain.Section(nil), p.Layout...)
	if len(segs) == 0 {
		return &cp
	}
	node := &cp.Layout[segs[0].Index]
	for _, seg := range segs[1:] {
		node.Children = append([]domain.Section(nil), node.Children...)
		node = &node.Children[seg.Index]
	}
	return &cp
}
