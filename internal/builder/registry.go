package builder

import (
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Element kind registry — the closed set of placeable kinds
// ─────────────────────────────────────────────────────────────

// Capability classifies what a palette payload is, and what a drop zone
// will accept. Page drop zones take "section"; the document chrome slots
// take "global".
type Capability string

const (
	CapabilitySection Capability = "section"
	CapabilityGlobal  Capability = "global"
)

// ElementKind describes one entry of the element palette: its section type,
// the capability its payload carries, and the props a freshly dropped
// instance starts with.
type ElementKind struct {
	Type       domain.SectionType
	Label      string
	Capability Capability
	Defaults   map[string]any
}

var kinds = map[domain.SectionType]ElementKind{
	domain.SectionHeader: {
		Type:       domain.SectionHeader,
		Label:      "Header",
		Capability: CapabilitySection,
		Defaults: map[string]any{
			"title":    "Your headline here",
			"subtitle": "A short supporting line",
			"align":    "center",
		},
	},
	domain.SectionText: {
		Type:       domain.SectionText,
		Label:      "Text Block",
		Capability: CapabilitySection,
		Defaults: map[string]any{
			"text":  "Write something compelling.",
			"align": "left",
		},
	},
	domain.SectionButton: {
		Type:       domain.SectionButton,
		Label:      "Button",
		Capability: CapabilitySection,
		Defaults: map[string]any{
			"buttonText": "Click me",
			"href":       "#",
			"align":      "center",
		},
	},
	domain.SectionImage: {
		Type:       domain.SectionImage,
		Label:      "Image",
		Capability: CapabilitySection,
		Defaults: map[string]any{
			"src": "",
			"alt": "",
		},
	},
	domain.SectionDivider: {
		Type:       domain.SectionDivider,
		Label:      "Divider",
		Capability: CapabilitySection,
		Defaults: map[string]any{
			"thickness": float64(1),
		},
	},
	domain.SectionSpacer: {
		Type:       domain.SectionSpacer,
		Label:      "Spacer",
		Capability: CapabilitySection,
		Defaults: map[string]any{
			"height": float64(40),
		},
	},
	domain.SectionNavbar: {
		Type:       domain.SectionNavbar,
		Label:      "Navbar",
		Capability: CapabilityGlobal,
		Defaults: map[string]any{
			"brand": "Hyperpitch",
			"links": []any{},
		},
	},
	domain.SectionFooter: {
		Type:       domain.SectionFooter,
		Label:      "Footer",
		Capability: CapabilityGlobal,
		Defaults: map[string]any{
			"text": "© Hyperpitch",
		},
	},
	domain.SectionColumns: {
		Type:       domain.SectionColumns,
		Label:      "Columns",
		Capability: CapabilitySection,
		Defaults: map[string]any{
			"gap": float64(16),
		},
	},
}

// KindOf looks up a registered element kind.
func KindOf(t domain.SectionType) (ElementKind, bool) {
	k, ok := kinds[t]
	return k, ok
}

// Kinds returns the palette in a stable order.
func Kinds() []ElementKind {
	order := []domain.SectionType{
		domain.SectionHeader,
		domain.SectionText,
		domain.SectionButton,
		domain.SectionImage,
		domain.SectionDivider,
		domain.SectionSpacer,
		domain.SectionColumns,
		domain.SectionNavbar,
		domain.SectionFooter,
	}
	out := make([]ElementKind, 0, len(order))
	for _, t := range order {
		out = append(out, kinds[t])
	}
	return out
}

// DefaultProps returns a fresh copy of a kind's default props, so callers
// can mutate the result without touching the registry.
func DefaultProps(t domain.SectionType) (map[string]any, bool) {
	k, ok := kinds[t]
	if !ok {
		return nil, false
	}
	props := make(map[string]any, len(k.Defaults))
	for key, v := range k.Defaults {
		props[key] = v
	}
	return props, true
}
