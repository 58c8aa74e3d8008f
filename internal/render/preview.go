package render

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Preview renderer — document tree → read-only HTML
// ─────────────────────────────────────────────────────────────
//
// The renderer builds an html.Node tree (never string concatenation, so
// prop values are always escaped) and serializes it. Rendering reads the
// document and never mutates it.

// Frame is a device breakpoint the preview renders at.
type Frame string

const (
	FrameDesktop Frame = "desktop"
	FrameTablet  Frame = "tablet"
	FrameMobile  Frame = "mobile"
)

// FrameWidth returns the viewport width in CSS pixels for a frame.
// Unknown frames fall back to desktop.
func FrameWidth(f Frame) int {
	switch f {
	case FrameTablet:
		return 768
	case FrameMobile:
		return 390
	default:
		return 1280
	}
}

// Page renders one page with the document's global chrome: navbar first,
// the page's sections in layout order, footer last.
func Page(doc *builder.Document, pageID string, frame Frame) (string, error) {
	page, ok := doc.GetPage(pageID)
	if !ok {
		return "", fmt.Errorf("render page: unknown page %q", pageID)
	}

	root := elem(atom.Div, "div",
		attr("class", fmt.Sprintf("hp-page hp-frame-%s", frameName(frame))),
		attr("style", fmt.Sprintf("max-width:%dpx", FrameWidth(frame))),
		attr("data-page-id", page.ID),
	)

	if nav := doc.GlobalNavbar(); nav != nil {
		root.AppendChild(globalNode(nav))
	}
	for i := range page.Layout {
		root.AppendChild(sectionNode(&page.Layout[i]))
	}
	if foot := doc.GlobalFooter(); foot != nil {
		root.AppendChild(globalNode(foot))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

// ActivePage renders the page currently being edited.
func ActivePage(doc *builder.Document, frame Frame) (string, error) {
	if doc.ActivePageID() == "" {
		return "", fmt.Errorf("render page: document has no pages")
	}
	return Page(doc, doc.ActivePageID(), frame)
}

// Document renders every page of the document, keyed by page id. Used by
// the deploy flow, which uploads one file per page.
func Document(doc *builder.Document, frame Frame) (map[string]string, error) {
	out := make(map[string]string, doc.PageCount())
	for _, p := range doc.Pages() {
		rendered, err := Page(doc, p.ID, frame)
		if err != nil {
			return nil, err
		}
		out[p.ID] = rendered
	}
	return out, nil
}

// ── Node construction ──────────────────────────────────────

func sectionNode(s *domain.Section) *html.Node {
	wrapper := elem(atom.Section, "section",
		attr("class", fmt.Sprintf("hp-section hp-%s", s.Type)),
		attr("data-section-id", s.ID),
	)

	switch s.Type {
	case domain.SectionHeader:
		h := elem(atom.H1, "h1")
		h.AppendChild(text(propString(s.Props, "title")))
		wrapper.AppendChild(h)
		if sub := propString(s.Props, "subtitle"); sub != "" {
			p := elem(atom.P, "p")
			p.AppendChild(text(sub))
			wrapper.AppendChild(p)
		}
	case domain.SectionText:
		p := elem(atom.P, "p")
		p.AppendChild(text(propString(s.Props, "text")))
		wrapper.AppendChild(p)
	case domain.SectionButton:
		a := elem(atom.A, "a",
			attr("class", "hp-button"),
			attr("href", propString(s.Props, "href")),
		)
		a.AppendChild(text(propString(s.Props, "buttonText")))
		wrapper.AppendChild(a)
	case domain.SectionImage:
		wrapper.AppendChild(elem(atom.Img, "img",
			attr("src", propString(s.Props, "src")),
			attr("alt", propString(s.Props, "alt")),
		))
	case domain.SectionDivider:
		wrapper.AppendChild(elem(atom.Hr, "hr"))
	case domain.SectionSpacer:
		wrapper.AppendChild(elem(atom.Div, "div",
			attr("style", fmt.Sprintf("height:%vpx", s.Props["height"])),
		))
	case domain.SectionColumns:
		row := elem(atom.Div, "div", attr("class", "hp-columns"))
		for i := range s.Children {
			row.AppendChild(sectionNode(&s.Children[i]))
		}
		wrapper.AppendChild(row)
	default:
		// Registered kinds are exhaustive above; leave an empty wrapper
		// rather than failing the whole preview on one odd node.
	}
	return wrapper
}

func globalNode(el *domain.GlobalElement) *html.Node {
	switch el.Type {
	case domain.SectionNavbar:
		nav := elem(atom.Nav, "nav", attr("class", "hp-navbar"), attr("data-global-id", el.ID))
		nav.AppendChild(text(propString(el.Props, "brand")))
		return nav
	case domain.SectionFooter:
		foot := elem(atom.Footer, "footer", attr("class", "hp-footer"), attr("data-global-id", el.ID))
		foot.AppendChild(text(propString(el.Props, "text")))
		return foot
	}
	return elem(atom.Div, "div", attr("data-global-id", el.ID))
}

// ── helpers ────────────────────────────────────────────────

func elem(a atom.Atom, tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag, Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func propString(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func frameName(f Frame) string {
	switch f {
	case FrameTablet, FrameMobile:
		return string(f)
	default:
		return string(FrameDesktop)
	}
}
