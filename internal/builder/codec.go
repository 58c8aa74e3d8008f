package builder

import (
	"encoding/json"
	"fmt"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Document serialization
// ─────────────────────────────────────────────────────────────
//
// The whole tree is serialized only on explicit save (campaign script,
// snapshots), never continuously. The JSON shape is the one the frontend
// and the campaign API consume.

type documentJSON struct {
	Pages        []Page                     `json:"pages"`
	ActivePageID string                     `json:"activePageId"`
	GlobalNavbar *domain.GlobalElement      `json:"globalNavbar,omitempty"`
	GlobalFooter *domain.GlobalElement      `json:"globalFooter,omitempty"`
	Comments     map[string][]domain.Comment `json:"comments,omitempty"`
}

// MarshalJSON serializes the document with pages in order.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		ActivePageID: d.activePageID,
		GlobalNavbar: d.globalNavbar,
		GlobalFooter: d.globalFooter,
		Comments:     d.comments,
	}
	for _, id := range d.pageOrder {
		out.Pages = append(out.Pages, *d.pages[id])
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a document from its serialized form, re-deriving
// the page index and repairing an activePageId that no longer resolves.
func (d *Document) UnmarshalJSON(data []byte) error {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	d.pages = make(map[string]*Page, len(in.Pages))
	d.pageOrder = make([]string, 0, len(in.Pages))
	for i := range in.Pages {
		p := in.Pages[i]
		if _, dup := d.pages[p.ID]; dup {
			return fmt.Errorf("decode document: duplicate page id %q", p.ID)
		}
		d.pages[p.ID] = &p
		d.pageOrder = append(d.pageOrder, p.ID)
	}

	d.activePageID = in.ActivePageID
	if _, ok := d.pages[d.activePageID]; !ok {
		d.activePageID = ""
		if len(d.pageOrder) > 0 {
			d.activePageID = d.pageOrder[0]
		}
	}

	d.globalNavbar = in.GlobalNavbar
	d.globalFooter = in.GlobalFooter
	d.comments = in.Comments
	if d.comments == nil {
		d.comments = map[string][]domain.Comment{}
	}
	return nil
}

// Assemble builds a document from already-loaded parts, e.g. storage rows.
// Page order follows the slice. An activePageID that does not resolve is
// repaired to the first page.
func Assemble(pages []Page, activePageID string, navbar, footer *domain.GlobalElement, comments map[string][]domain.Comment) (*Document, error) {
	d := NewDocument()
	for i := range pages {
		p := pages[i]
		if _, dup := d.pages[p.ID]; dup {
			return nil, fmt.Errorf("assemble document: duplicate page id %q", p.ID)
		}
		d.pages[p.ID] = &p
		d.pageOrder = append(d.pageOrder, p.ID)
	}
	d.activePageID = activePageID
	if _, ok := d.pages[d.activePageID]; !ok {
		d.activePageID = ""
		if len(d.pageOrder) > 0 {
			d.activePageID = d.pageOrder[0]
		}
	}
	d.globalNavbar = navbar
	d.globalFooter = footer
	if comments != nil {
		d.comments = comments
	}
	return d, nil
}

// DecodeDocument parses a serialized tree, e.g. a page's persisted layout
// or a campaign script.
func DecodeDocument(data []byte) (*Document, error) {
	d := NewDocument()
	if len(data) == 0 {
		return d, nil
	}
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return d, nil
}

// EncodeLayout serializes one page's section list, the unit the pages
// table persists.
func EncodeLayout(sections []domain.Section) (string, error) {
	if sections == nil {
		sections = []domain.Section{}
	}
	b, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}
	return string(b), nil
}

// DecodeLayout parses a page's persisted section list. Empty input yields
// an empty layout.
func DecodeLayout(layoutJSON string) ([]domain.Section, error) {
	if layoutJSON == "" {
		return nil, nil
	}
	var out []domain.Section
	if err := json.Unmarshal([]byte(layoutJSON), &out); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return out, nil
}
