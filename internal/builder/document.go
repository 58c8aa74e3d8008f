package builder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Document — canonical in-memory state of one editing session
// ─────────────────────────────────────────────────────────────

// Page is one page of the document with its live layout tree.
type Page struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Layout []domain.Section `json:"layout"`
}

// Document holds all pages, the global navbar/footer singletons, and the
// per-page comments of an editing session. All write access goes through
// the mutation methods, which are copy-on-write: they return a new
// *Document sharing every untouched page with the receiver, so callers can
// use reference comparison for change detection and history snapshots.
type Document struct {
	pages        map[string]*Page
	pageOrder    []string
	activePageID string
	globalNavbar *domain.GlobalElement
	globalFooter *domain.GlobalElement
	comments     map[string][]domain.Comment
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		pages:    map[string]*Page{},
		comments: map[string][]domain.Comment{},
	}
}

// shallowCopy duplicates the document's own containers without copying the
// pages or comment slices they point at. Mutation methods then replace only
// the entries they touch.
func (d *Document) shallowCopy() *Document {
	cp := &Document{
		pages:        make(map[string]*Page, len(d.pages)),
		pageOrder:    append([]string(nil), d.pageOrder...),
		activePageID: d.activePageID,
		globalNavbar: d.globalNavbar,
		globalFooter: d.globalFooter,
		comments:     make(map[string][]domain.Comment, len(d.comments)),
	}
	for id, p := range d.pages {
		cp.pages[id] = p
	}
	for id, cs := range d.comments {
		cp.comments[id] = cs
	}
	return cp
}

// ── Read access ────────────────────────────────────────────

// GetPage returns the page with the given id. Callers must guard ok.
func (d *Document) GetPage(pageID string) (*Page, bool) {
	p, ok := d.pages[pageID]
	return p, ok
}

// Pages returns all pages in order.
func (d *Document) Pages() []*Page {
	out := make([]*Page, 0, len(d.pageOrder))
	for _, id := range d.pageOrder {
		out = append(out, d.pages[id])
	}
	return out
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.pageOrder) }

// ActivePageID returns the id of the page being edited, or "" when the
// document has no pages.
func (d *Document) ActivePageID() string { return d.activePageID }

// ActivePage returns the page currently being edited.
func (d *Document) ActivePage() (*Page, bool) {
	return d.GetPage(d.activePageID)
}

// GlobalNavbar returns the navbar singleton, or nil.
func (d *Document) GlobalNavbar() *domain.GlobalElement { return d.globalNavbar }

// GlobalFooter returns the footer singleton, or nil.
func (d *Document) GlobalFooter() *domain.GlobalElement { return d.globalFooter }

// Comments returns the comments pinned to a page.
func (d *Document) Comments(pageID string) []domain.Comment {
	return d.comments[pageID]
}

// FindSection locates a section by id anywhere in the document and returns
// its page id and top-level index (the index of its root section when the
// match is nested).
func (d *Document) FindSection(sectionID string) (pageID string, index int, ok bool) {
	for _, id := range d.pageOrder {
		p := d.pages[id]
		for i := range p.Layout {
			if sectionContains(&p.Layout[i], sectionID) {
				return id, i, true
			}
		}
	}
	return "", 0, false
}

func sectionContains(s *domain.Section, id string) bool {
	if s.ID == id {
		return true
	}
	for i := range s.Children {
		if sectionContains(&s.Children[i], id) {
			return true
		}
	}
	return false
}

// ── Page operations ────────────────────────────────────────

// AddPage creates a page with a freshly generated unique id and appends it.
// The new page is not selected unless the document had no pages at all.
func (d *Document) AddPage(name string) (*Document, *Page) {
	p := &Page{ID: uuid.New().String(), Name: name}
	cp := d.shallowCopy()
	cp.pages[p.ID] = p
	cp.pageOrder = append(cp.pageOrder, p.ID)
	if cp.activePageID == "" {
		cp.activePageID = p.ID
	}
	return cp, p
}

// SetActivePage selects the page for editing. Unknown ids are a silent
// no-op: the selection is a UI affordance and a stale id must not wedge
// the editor.
func (d *Document) SetActivePage(pageID string) *Document {
	if _, ok := d.pages[pageID]; !ok {
		return d
	}
	cp := d.shallowCopy()
	cp.activePageID = pageID
	return cp
}

// DeletePage removes a page and its comments. When the active page is
// deleted the first remaining page (in order) becomes active, or the
// selection empties if no pages remain.
func (d *Document) DeletePage(pageID string) *Document {
	if _, ok := d.pages[pageID]; !ok {
		return d
	}
	cp := d.shallowCopy()
	delete(cp.pages, pageID)
	delete(cp.comments, pageID)
	order := cp.pageOrder[:0]
	for _, id := range cp.pageOrder {
		if id != pageID {
			order = append(order, id)
		}
	}
	cp.pageOrder = order
	if cp.activePageID == pageID {
		if len(cp.pageOrder) > 0 {
			cp.activePageID = cp.pageOrder[0]
		} else {
			cp.activePageID = ""
		}
	}
	return cp
}

// RenamePage changes a page's name only; id and layout are untouched.
func (d *Document) RenamePage(pageID, newName string) (*Document, error) {
	p, ok := d.pages[pageID]
	if !ok {
		return d, fmt.Errorf("rename page: unknown page %q", pageID)
	}
	cp := d.shallowCopy()
	np := *p
	np.Name = newName
	cp.pages[pageID] = &np
	return cp, nil
}

// ── Section operations ─────────────────────────────────────

// InsertSection places a section into a page's layout at index, or appends
// when index is negative or past the end. The section type must be
// registered and the id must not collide with any existing node.
func (d *Document) InsertSection(pageID string, s domain.Section, index int) (*Document, error) {
	if _, ok := KindOf(s.Type); !ok {
		return d, fmt.Errorf("insert section: unregistered kind %q", s.Type)
	}
	p, ok := d.pages[pageID]
	if !ok {
		return d, fmt.Errorf("insert section: unknown page %q", pageID)
	}
	if _, _, exists := d.FindSection(s.ID); exists {
		return d, fmt.Errorf("insert section: duplicate id %q", s.ID)
	}
	if index < 0 || index > len(p.Layout) {
		index = len(p.Layout)
	}

	layout := make([]domain.Section, 0, len(p.Layout)+1)
	layout = append(layout, p.Layout[:index]...)
	layout = append(layout, s)
	layout = append(layout, p.Layout[index:]...)

	cp := d.shallowCopy()
	np := *p
	np.Layout = layout
	cp.pages[pageID] = &np
	return cp, nil
}

// MoveSection reorders a page's layout, moving the section at from so it
// lands at index to. Out-of-range indices leave the document unchanged.
func (d *Document) MoveSection(pageID string, from, to int) (*Document, error) {
	p, ok := d.pages[pageID]
	if !ok {
		return d, fmt.Errorf("move section: unknown page %q", pageID)
	}
	if from < 0 || from >= len(p.Layout) || to < 0 || to >= len(p.Layout) {
		return d, fmt.Errorf("move section: index out of range (%d -> %d of %d)", from, to, len(p.Layout))
	}
	if from == to {
		return d, nil
	}

	layout := append([]domain.Section(nil), p.Layout...)
	s := layout[from]
	layout = append(layout[:from], layout[from+1:]...)
	rest := append([]domain.Section(nil), layout[to:]...)
	layout = append(append(layout[:to], s), rest...)

	cp := d.shallowCopy()
	np := *p
	np.Layout = layout
	cp.pages[pageID] = &np
	return cp, nil
}

// ReplaceLayout swaps a page's entire layout. Used when an AI session pull
// makes the remote section list authoritative for the page.
func (d *Document) ReplaceLayout(pageID string, layout []domain.Section) (*Document, error) {
	p, ok := d.pages[pageID]
	if !ok {
		return d, fmt.Errorf("replace layout: unknown page %q", pageID)
	}
	cp := d.shallowCopy()
	np := *p
	np.Layout = append([]domain.Section(nil), layout...)
	cp.pages[pageID] = &np
	return cp, nil
}

// ── Global elements ────────────────────────────────────────

// SetGlobal installs the navbar or footer singleton. Setting a kind that
// already exists replaces it; it never duplicates.
func (d *Document) SetGlobal(kind domain.SectionType, props map[string]any) (*Document, error) {
	if kind != domain.SectionNavbar && kind != domain.SectionFooter {
		return d, fmt.Errorf("set global: %q is not a global kind", kind)
	}
	if props == nil {
		props, _ = DefaultProps(kind)
	}
	el := &domain.GlobalElement{ID: uuid.New().String(), Type: kind, Props: props}
	cp := d.shallowCopy()
	if kind == domain.SectionNavbar {
		if cp.globalNavbar != nil {
			el.ID = cp.globalNavbar.ID
		}
		cp.globalNavbar = el
	} else {
		if cp.globalFooter != nil {
			el.ID = cp.globalFooter.ID
		}
		cp.globalFooter = el
	}
	return cp, nil
}

// RemoveGlobal clears the navbar or footer singleton.
func (d *Document) RemoveGlobal(kind domain.SectionType) *Document {
	cp := d.shallowCopy()
	switch kind {
	case domain.SectionNavbar:
		cp.globalNavbar = nil
	case domain.SectionFooter:
		cp.globalFooter = nil
	}
	return cp
}

// ── Comments ───────────────────────────────────────────────

// AddComment pins a comment to a page within one device frame.
func (d *Document) AddComment(c domain.Comment) (*Document, error) {
	if _, ok := d.pages[c.PageID]; !ok {
		return d, fmt.Errorf("add comment: unknown page %q", c.PageID)
	}
	cp := d.shallowCopy()
	cp.comments[c.PageID] = append(append([]domain.Comment(nil), cp.comments[c.PageID]...), c)
	return cp, nil
}

// DeleteComment removes a comment by id. Unknown ids are a no-op.
func (d *Document) DeleteComment(pageID, commentID string) *Document {
	cs, ok := d.comments[pageID]
	if !ok {
		return d
	}
	out := make([]domain.Comment, 0, len(cs))
	for _, c := range cs {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	if len(out) == len(cs) {
		return d
	}
	cp := d.shallowCopy()
	cp.comments[pageID] = out
	return cp
}
