package builder

import (
	"math"

	"github.com/google/uuid"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Drag-and-drop controller
// ─────────────────────────────────────────────────────────────
//
// State machine: idle → dragging → (dropped | cancelled) → idle.
// A drag arms on pointer-down and only becomes live once the pointer
// travels past the activation distance, so plain clicks never drag.

// DragState is the controller's current phase.
type DragState int

const (
	DragIdle DragState = iota
	// DragPending: pointer is down on a draggable but hasn't moved far
	// enough to distinguish the gesture from a click.
	DragPending
	DragActive
)

// DefaultActivationDistance is the pointer travel (in canvas units)
// required before a pending drag goes live.
const DefaultActivationDistance = 5.0

// Payload is what a drag carries: either a palette template for a new
// element, or a reference to an existing section being reordered.
type Payload struct {
	Kind domain.SectionType `json:"kind"`

	// Existing-section reorders only.
	Existing   bool   `json:"existing"`
	SectionID  string `json:"sectionId,omitempty"`
	FromPageID string `json:"fromPageId,omitempty"`
	FromIndex  int    `json:"fromIndex,omitempty"`
}

// DropZone is a registered target area that accepts drag payloads of the
// declared capability kinds.
type DropZone struct {
	ID      string
	PageID  string
	Accepts []Capability
}

func (z DropZone) accepts(c Capability) bool {
	for _, a := range z.Accepts {
		if a == c {
			return true
		}
	}
	return false
}

// DropResult describes a completed drop for the caller to apply.
type DropResult struct {
	Zone    DropZone
	Payload Payload
	// Index is where the payload should land in the target page's layout;
	// -1 means append to the end (the policy for palette drops).
	Index int
}

// DragController interprets pointer gestures against registered drop
// zones. It owns no document state: a successful drop is returned as a
// DropResult for the caller to turn into a tree mutation, so a cancelled
// drag can never touch any page's layout.
type DragController struct {
	zones      map[string]DropZone
	activation float64

	state    DragState
	payload  Payload
	originX  float64
	originY  float64
	hoverIdx int
}

// NewDragController creates a controller with the default activation
// distance.
func NewDragController() *DragController {
	return &DragController{
		zones:      map[string]DropZone{},
		activation: DefaultActivationDistance,
		hoverIdx:   -1,
	}
}

// SetActivationDistance overrides the click/drag threshold.
func (c *DragController) SetActivationDistance(d float64) {
	if d > 0 {
		c.activation = d
	}
}

// RegisterZone adds (or replaces) a drop zone.
func (c *DragController) RegisterZone(z DropZone) {
	c.zones[z.ID] = z
}

// UnregisterZone removes a drop zone. Dropping on an unregistered zone
// cancels the drag.
func (c *DragController) UnregisterZone(id string) {
	delete(c.zones, id)
}

// State returns the controller's current phase.
func (c *DragController) State() DragState { return c.state }

// Begin arms a drag on pointer-down at the given canvas position.
func (c *DragController) Begin(p Payload, x, y float64) {
	c.payload = p
	c.originX, c.originY = x, y
	c.hoverIdx = -1
	c.state = DragPending
}

// Move tracks pointer motion. A pending drag goes live once the pointer
// has travelled the activation distance. hoverIndex is the sortable slot
// under the pointer, -1 when none; when two slots overlap equally the
// caller reports the lower insertion index.
func (c *DragController) Move(x, y float64, hoverIndex int) {
	switch c.state {
	case DragPending:
		if math.Hypot(x-c.originX, y-c.originY) >= c.activation {
			c.state = DragActive
		}
	case DragActive:
		if hoverIndex >= 0 {
			c.hoverIdx = hoverIndex
		}
	}
}

// Drop ends the drag over the named zone. It returns the resolved drop, or
// ok=false when the gesture is cancelled instead: drag never went live,
// the zone is unregistered, or the zone does not accept the payload's
// capability. Either way the controller returns to idle.
func (c *DragController) Drop(zoneID string) (DropResult, bool) {
	defer c.reset()

	if c.state != DragActive {
		return DropResult{}, false
	}
	zone, ok := c.zones[zoneID]
	if !ok {
		return DropResult{}, false
	}
	kind, ok := KindOf(c.payload.Kind)
	if !ok || !zone.accepts(kind.Capability) {
		return DropResult{}, false
	}

	index := -1
	if c.payload.Existing {
		index = c.hoverIdx
	}
	return DropResult{Zone: zone, Payload: c.payload, Index: index}, true
}

// Cancel aborts the drag (escape, blur, or release outside every zone).
func (c *DragController) Cancel() {
	c.reset()
}

func (c *DragController) reset() {
	c.state = DragIdle
	c.payload = Payload{}
	c.hoverIdx = -1
}

// ── Applying drops ─────────────────────────────────────────

// ApplyDrop turns a resolved drop into a tree mutation: palette drops
// append one new node built from the kind's registered defaults under a
// freshly generated id; existing-section drops reorder within the page.
func ApplyDrop(doc *Document, r DropResult) (*Document, error) {
	if r.Payload.Existing {
		to := r.Index
		if to < 0 {
			page, ok := doc.GetPage(r.Zone.PageID)
			if !ok {
				return doc, &PathError{Path: r.Zone.PageID, Reason: "unknown drop page"}
			}
			to = len(page.Layout) - 1
		}
		return doc.MoveSection(r.Zone.PageID, r.Payload.FromIndex, to)
	}
	return doc.InsertSection(r.Zone.PageID, NewSection(r.Payload.Kind), -1)
}

// NewSection builds a section of the given kind with the registry's
// default props and a fresh unique id.
func NewSection(t domain.SectionType) domain.Section {
	props, _ := DefaultProps(t)
	return domain.Section{
		ID:    uuid.New().String(),
		Type:  t,
		Props: props,
	}
}
