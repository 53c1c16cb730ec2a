// Package drag implements the single-gesture pointer state machine that maps
// pointer-down/move/up sequences into per-handle geometry edits on a
// document element.
package drag

import (
	"math"

	"github.com/tsawler/matboard/model"
	"github.com/tsawler/matboard/snap"
)

// MinCircleRadiusCm is the smallest radius a circle or marker can be resized
// to by dragging.
const MinCircleRadiusCm = 0.5

// MinSectorRingCm is the minimum ring thickness enforced when dragging a
// sector's outer radius. Inner-radius edits apply no reciprocal clamp; the
// asymmetry is deliberate.
const MinSectorRingCm = 1.0

// Handle names an interactive control point on a selected element that a
// gesture targets.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleCornerNW
	HandleCornerNE
	HandleCornerSW
	HandleCornerSE
	HandleRadius
	HandleFrom
	HandleTo
	HandleRadiusInner
	HandleRadiusOuter
	HandleAngleStart
	HandleAngleEnd
	HandlePosition
)

// String returns the handle's canonical name.
func (h Handle) String() string {
	switch h {
	case HandleMove:
		return "move"
	case HandleCornerNW:
		return "corner-nw"
	case HandleCornerNE:
		return "corner-ne"
	case HandleCornerSW:
		return "corner-sw"
	case HandleCornerSE:
		return "corner-se"
	case HandleRadius:
		return "radius"
	case HandleFrom:
		return "from"
	case HandleTo:
		return "to"
	case HandleRadiusInner:
		return "radius-inner"
	case HandleRadiusOuter:
		return "radius-outer"
	case HandleAngleStart:
		return "angle-start"
	case HandleAngleEnd:
		return "angle-end"
	case HandlePosition:
		return "position"
	default:
		return "none"
	}
}

// HandlesFor returns the handle set a selected element of the given kind
// offers, in presentation order.
func HandlesFor(kind model.Kind) []Handle {
	switch kind {
	case model.KindRect:
		return []Handle{HandleMove, HandleCornerNW, HandleCornerNE, HandleCornerSW, HandleCornerSE}
	case model.KindCircle, model.KindMarker:
		return []Handle{HandleMove, HandleRadius}
	case model.KindLine:
		return []Handle{HandleMove, HandleFrom, HandleTo}
	case model.KindArc:
		return []Handle{HandleMove}
	case model.KindSector:
		return []Handle{HandleMove, HandleRadiusInner, HandleRadiusOuter, HandleAngleStart, HandleAngleEnd}
	case model.KindText:
		return []Handle{HandleMove, HandlePosition}
	default:
		return nil
	}
}

func validHandle(kind model.Kind, h Handle) bool {
	for _, candidate := range HandlesFor(kind) {
		if candidate == h {
			return true
		}
	}
	return false
}

// Controller is the per-gesture state machine. It is Idle until Begin
// succeeds, Active until End. Exactly one gesture may be active at a time;
// Begin while active is rejected so the surrounding input layer stays
// idle-gated.
type Controller struct {
	doc  *model.Document
	snap *snap.Engine

	active    bool
	elementID string
	handle    Handle
	last      model.Point
	gridOn    bool
}

// NewController creates a controller operating on the given document through
// the given snap engine.
func NewController(doc *model.Document, engine *snap.Engine) *Controller {
	return &Controller{doc: doc, snap: engine}
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	return c.active
}

// ElementID returns the id of the element being edited, or "" when idle.
func (c *Controller) ElementID() string {
	if !c.active {
		return ""
	}
	return c.elementID
}

// Begin starts a gesture on the element with the given id and handle, with
// the pointer at start (mat space). disableGrid suppresses grid snapping for
// the duration of this gesture only. Begin reports whether the gesture was
// accepted: it is rejected while another gesture is active, for a missing
// element, and for a handle the element's kind does not offer.
func (c *Controller) Begin(elementID string, h Handle, start model.Point, disableGrid bool) bool {
	if c.active {
		return false
	}
	el, ok := c.doc.Get(elementID)
	if !ok || !validHandle(el.Kind(), h) {
		return false
	}
	c.active = true
	c.elementID = elementID
	c.handle = h
	c.last = start
	c.gridOn = !disableGrid
	return true
}

// Move processes a pointer move to p (mat space): it computes the delta from
// the last processed point, applies the handle-specific edit through the
// document, and re-bases the last point on the snapped result so that snap
// corrections carry into the next delta. It reports whether an edit was
// applied. If the element disappeared mid-gesture the gesture ends.
func (c *Controller) Move(p model.Point) bool {
	if !c.active {
		return false
	}
	el, ok := c.doc.Get(c.elementID)
	if !ok {
		c.End()
		return false
	}

	applied := false
	c.doc.Update(c.elementID, func(model.Element) {
		applied = c.apply(el, p)
	})
	return applied
}

// End terminates the gesture unconditionally. Pointer-up and
// pointer-leaving-the-surface are treated identically: edits already applied
// stay committed, nothing is reverted.
func (c *Controller) End() {
	c.active = false
	c.elementID = ""
	c.handle = HandleNone
}

// apply performs one incremental edit and updates c.last. It runs inside a
// document Update so every step marks the document dirty.
func (c *Controller) apply(el model.Element, p model.Point) bool {
	switch c.handle {
	case HandleMove:
		c.applyMove(el, p)
	case HandleCornerNW, HandleCornerNE, HandleCornerSW, HandleCornerSE:
		c.applyCorner(el.(*model.Rect), p)
	case HandleRadius:
		c.applyRadius(el, p)
	case HandleFrom, HandleTo:
		c.applyEndpoint(el.(*model.Line), p)
	case HandleRadiusInner, HandleRadiusOuter:
		c.applySectorRadius(el.(*model.Sector), p)
	case HandleAngleStart, HandleAngleEnd:
		c.applySectorAngle(el.(*model.Sector), p)
	case HandlePosition:
		c.applyPosition(el.(*model.Text), p)
	default:
		return false
	}
	return true
}

// applyMove translates the element's primary geometry. Center-anchored kinds
// snap the new absolute center (grid first, then another element's center
// may override); rects and lines translate by the raw delta.
func (c *Controller) applyMove(el model.Element, p model.Point) {
	delta := p.Sub(c.last)

	switch el.Kind() {
	case model.KindRect, model.KindLine:
		el.Translate(delta.X, delta.Y)
		c.last = p
	default:
		anchor := el.Anchor()
		target := anchor.Add(delta.X, delta.Y)
		if c.gridOn {
			target = c.snap.GridPoint(target)
		}
		target = c.snap.Center(target, c.doc, el.ID())

		shift := target.Sub(anchor)
		el.Translate(shift.X, shift.Y)
		// Re-base on the snapped position, not the raw pointer, so the next
		// delta compounds from the correction just applied.
		c.last = c.last.Add(shift.X, shift.Y)
	}
}

func (c *Controller) applyCorner(r *model.Rect, p model.Point) {
	q := p
	if c.gridOn {
		q = c.snap.GridPoint(q)
	}
	// Corners are storage slots, not geometric extremes: x0/y0 may end up
	// greater than x1/y1 and are never re-normalized here.
	switch c.handle {
	case HandleCornerNW:
		r.X0, r.Y0 = q.X, q.Y
	case HandleCornerNE:
		r.X1, r.Y0 = q.X, q.Y
	case HandleCornerSW:
		r.X0, r.Y1 = q.X, q.Y
	case HandleCornerSE:
		r.X1, r.Y1 = q.X, q.Y
	}
	c.last = q
}

func (c *Controller) applyRadius(el model.Element, p model.Point) {
	r := math.Max(MinCircleRadiusCm, el.Anchor().Distance(p))
	switch v := el.(type) {
	case *model.Circle:
		v.Radius = r
	case *model.Marker:
		v.Radius = r
	}
	c.last = p
}

func (c *Controller) applyEndpoint(l *model.Line, p model.Point) {
	q := p
	if c.gridOn {
		q = c.snap.GridPoint(q)
	}
	if c.handle == HandleFrom {
		l.From = q
	} else {
		l.To = q
	}
	c.last = q
}

// applySectorRadius resizes one boundary radius through radius snap. Radius
// handles bypass grid snap entirely. The outer handle clamps against
// innerRadius + MinSectorRingCm; the inner handle is unclamped against the
// outer radius.
func (c *Controller) applySectorRadius(s *model.Sector, p model.Point) {
	r := c.snap.Radius(s.Center.Distance(p), s.Center, c.doc, s.ID())
	if c.handle == HandleRadiusInner {
		s.InnerRadius = r
	} else {
		s.OuterRadius = math.Max(r, s.InnerRadius+MinSectorRingCm)
	}
	c.last = p
}

func (c *Controller) applySectorAngle(s *model.Sector, p model.Point) {
	deg := model.NormalizeDegrees(math.Round(model.AngleDegrees(s.Center, p)))
	if c.handle == HandleAngleStart {
		s.StartAngle = deg
	} else {
		s.EndAngle = deg
	}
	c.last = p
}

func (c *Controller) applyPosition(t *model.Text, p model.Point) {
	q := p
	if c.gridOn {
		q = c.snap.GridPoint(q)
	}
	t.Position = q
	c.last = q
}
