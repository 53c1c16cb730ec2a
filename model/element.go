package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownKind is returned when an element of an unrecognized kind is
// requested. The document is left untouched.
var ErrUnknownKind = errors.New("unknown element kind")

// Kind identifies the concrete type of an element.
type Kind int

const (
	KindUnknown Kind = iota
	KindRect
	KindCircle
	KindMarker
	KindLine
	KindArc
	KindSector
	KindText
)

// String returns the canonical lower-case name of the kind. It is also the
// prefix used for generated element ids.
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindMarker:
		return "marker"
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindSector:
		return "sector"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseKind maps a canonical kind name back to its Kind. It returns
// ErrUnknownKind for unrecognized names.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "rect":
		return KindRect, nil
	case "circle":
		return KindCircle, nil
	case "marker":
		return KindMarker, nil
	case "line":
		return KindLine, nil
	case "arc":
		return KindArc, nil
	case "sector":
		return KindSector, nil
	case "text":
		return KindText, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// LineStyle selects the stroke pattern of a line segment.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// FontStyle selects the weight/slant of a text label.
type FontStyle string

const (
	FontNormal     FontStyle = "normal"
	FontBold       FontStyle = "bold"
	FontItalic     FontStyle = "italic"
	FontBoldItalic FontStyle = "bold-italic"
)

// TextAnchor selects how a text label is anchored at its position.
type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// Element is the interface implemented by every placeable annotation. The
// set of implementations is closed: Rect, Circle, Marker, Line, Arc, Sector
// and Text. Kind-specific behavior dispatches exhaustively over Kind().
type Element interface {
	// Kind identifies the concrete variant.
	Kind() Kind
	// ID returns the document-unique element id.
	ID() string
	// ZOrder returns the draw/priority order.
	ZOrder() int
	// BoundingBox returns the axis-aligned extent of the element's geometry.
	BoundingBox() BBox
	// Clone returns a deep copy of the element, including its id.
	Clone() Element
	// Translate moves the element's primary geometry by dx, dy.
	Translate(dx, dy float64)
	// Anchor returns the element's center or position, used as a snap target
	// and as the reference point for center-based moves.
	Anchor() Point
	// HitTest reports whether p falls on the element, with a tolerance (in
	// centimeters) applied to stroke-like geometry.
	HitTest(p Point, tolerance float64) bool

	base() *Base
}

// Base carries the identity and presentation fields shared by all element
// kinds. "none" disables a fill or stroke.
type Base struct {
	id   string
	z    int
	zSet bool

	Fill        string
	Stroke      string
	StrokeWidth float64
}

// ID returns the element id. Empty until the element is added to a document
// or an id is supplied explicitly.
func (b *Base) ID() string { return b.id }

// SetID overrides the element id. Documents assign a generated id on Add
// when none is set.
func (b *Base) SetID(id string) { b.id = id }

// ZOrder returns the draw/priority order.
func (b *Base) ZOrder() int { return b.z }

// SetZOrder sets an explicit z-order. Elements added without one get the
// document's next-highest value.
func (b *Base) SetZOrder(z int) {
	b.z = z
	b.zSet = true
}

func (b *Base) base() *Base { return b }

// BaseOf returns the shared identity and presentation fields of an element.
// It is the only way to reach them generically; the concrete types embed
// [Base] directly.
func BaseOf(el Element) *Base { return el.base() }

// Rect is a rectangular search area defined by two opposite corners. The
// corners are not kept normalized: X0 may exceed X1 and Y0 may exceed Y1, so
// consumers must derive min/max at use time.
type Rect struct {
	Base
	X0, Y0, X1, Y1 float64
}

func (r *Rect) Kind() Kind { return KindRect }

func (r *Rect) BoundingBox() BBox {
	return NewBBoxFromPoints(Point{X: r.X0, Y: r.Y0}, Point{X: r.X1, Y: r.Y1})
}

func (r *Rect) Clone() Element {
	c := *r
	return &c
}

func (r *Rect) Translate(dx, dy float64) {
	r.X0 += dx
	r.X1 += dx
	r.Y0 += dy
	r.Y1 += dy
}

func (r *Rect) Anchor() Point { return r.BoundingBox().Center() }

func (r *Rect) HitTest(p Point, tolerance float64) bool {
	return r.BoundingBox().Expand(tolerance).Contains(p)
}

// Circle is a circular search region, serialized externally as a "target".
type Circle struct {
	Base
	Center Point
	Radius float64
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) BoundingBox() BBox {
	return NewBBox(c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius)
}

func (c *Circle) Clone() Element {
	cp := *c
	return &cp
}

func (c *Circle) Translate(dx, dy float64) { c.Center = c.Center.Add(dx, dy) }

func (c *Circle) Anchor() Point { return c.Center }

func (c *Circle) HitTest(p Point, tolerance float64) bool {
	return p.Distance(c.Center) <= c.Radius+tolerance
}

// Marker is a ball marker: same geometry as Circle, but a distinct kind with
// its own external type name.
type Marker struct {
	Base
	Center Point
	Radius float64
}

func (m *Marker) Kind() Kind { return KindMarker }

func (m *Marker) BoundingBox() BBox {
	return NewBBox(m.Center.X-m.Radius, m.Center.Y-m.Radius, 2*m.Radius, 2*m.Radius)
}

func (m *Marker) Clone() Element {
	c := *m
	return &c
}

func (m *Marker) Translate(dx, dy float64) { m.Center = m.Center.Add(dx, dy) }

func (m *Marker) Anchor() Point { return m.Center }

func (m *Marker) HitTest(p Point, tolerance float64) bool {
	return p.Distance(m.Center) <= m.Radius+tolerance
}

// Line is a guide line segment. The angle of the line is always derived from
// its endpoints, never stored.
type Line struct {
	Base
	From, To  Point
	LineStyle LineStyle
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) BoundingBox() BBox { return NewBBoxFromPoints(l.From, l.To) }

func (l *Line) Clone() Element {
	c := *l
	return &c
}

func (l *Line) Translate(dx, dy float64) {
	l.From = l.From.Add(dx, dy)
	l.To = l.To.Add(dx, dy)
}

func (l *Line) Anchor() Point {
	return Point{X: (l.From.X + l.To.X) / 2, Y: (l.From.Y + l.To.Y) / 2}
}

func (l *Line) HitTest(p Point, tolerance float64) bool {
	return distanceToSegment(p, l.From, l.To) <= tolerance+l.StrokeWidth/2
}

// Arc is an open circular arc between two angles (degrees).
type Arc struct {
	Base
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (a *Arc) Kind() Kind { return KindArc }

func (a *Arc) BoundingBox() BBox {
	return NewBBox(a.Center.X-a.Radius, a.Center.Y-a.Radius, 2*a.Radius, 2*a.Radius)
}

func (a *Arc) Clone() Element {
	c := *a
	return &c
}

func (a *Arc) Translate(dx, dy float64) { a.Center = a.Center.Add(dx, dy) }

func (a *Arc) Anchor() Point { return a.Center }

func (a *Arc) HitTest(p Point, tolerance float64) bool {
	d := p.Distance(a.Center)
	if math.Abs(d-a.Radius) > tolerance+a.StrokeWidth/2 {
		return false
	}
	return angleWithin(AngleDegrees(a.Center, p), a.StartAngle, a.EndAngle)
}

// Sector is an annulus sector: the ring segment between two radii and two
// angles (degrees).
type Sector struct {
	Base
	Center      Point
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
}

func (s *Sector) Kind() Kind { return KindSector }

func (s *Sector) BoundingBox() BBox {
	return NewBBox(s.Center.X-s.OuterRadius, s.Center.Y-s.OuterRadius,
		2*s.OuterRadius, 2*s.OuterRadius)
}

func (s *Sector) Clone() Element {
	c := *s
	return &c
}

func (s *Sector) Translate(dx, dy float64) { s.Center = s.Center.Add(dx, dy) }

func (s *Sector) Anchor() Point { return s.Center }

func (s *Sector) HitTest(p Point, tolerance float64) bool {
	d := p.Distance(s.Center)
	if d < s.InnerRadius-tolerance || d > s.OuterRadius+tolerance {
		return false
	}
	return angleWithin(AngleDegrees(s.Center, p), s.StartAngle, s.EndAngle)
}

// Text is a text label anchored at a position, rotated about that position.
type Text struct {
	Base
	Position   Point
	Text       string
	FontFamily string
	FontSize   float64 // centimeters
	FontStyle  FontStyle
	TextAnchor TextAnchor
	Rotation   float64 // degrees
}

func (t *Text) Kind() Kind { return KindText }

func (t *Text) BoundingBox() BBox {
	// Approximate extent: half a font-size glyph width per rune, one
	// font-size tall. Rotation is ignored for picking purposes.
	w := float64(len([]rune(t.Text))) * t.FontSize * 0.6
	h := t.FontSize
	var x float64
	switch t.TextAnchor {
	case AnchorMiddle:
		x = t.Position.X - w/2
	case AnchorEnd:
		x = t.Position.X - w
	default:
		x = t.Position.X
	}
	return NewBBox(x, t.Position.Y-h, w, h)
}

func (t *Text) Clone() Element {
	c := *t
	return &c
}

func (t *Text) Translate(dx, dy float64) { t.Position = t.Position.Add(dx, dy) }

func (t *Text) Anchor() Point { return t.Position }

func (t *Text) HitTest(p Point, tolerance float64) bool {
	return t.BoundingBox().Expand(tolerance).Contains(p)
}

// Interactive-creation defaults. Arc creation angles deliberately differ
// from the import defaults applied by the layoutfile package.
const (
	defaultArcStartAngle = 200
	defaultArcEndAngle   = 340
)

// New returns a defaulted, unattached element of the given kind. It returns
// ErrUnknownKind for an unrecognized kind and never mutates any document.
func New(kind Kind) (Element, error) {
	switch kind {
	case KindRect:
		return &Rect{
			Base: Base{Fill: "#1b7a2e33", Stroke: "#1b7a2e", StrokeWidth: 0.3},
			X0:   10, Y0: 20, X1: 40, Y1: 80,
		}, nil
	case KindCircle:
		return &Circle{
			Base:   Base{Fill: "none", Stroke: "#c0392b", StrokeWidth: 0.3},
			Center: Point{X: 25, Y: 50},
			Radius: 10,
		}, nil
	case KindMarker:
		return &Marker{
			Base:   Base{Fill: "#ffffff", Stroke: "#333333", StrokeWidth: 0.2},
			Center: Point{X: 25, Y: 50},
			Radius: 2,
		}, nil
	case KindLine:
		return &Line{
			Base:      Base{Fill: "none", Stroke: "#2c3e50", StrokeWidth: 0.3},
			From:      Point{X: 10, Y: 50},
			To:        Point{X: 40, Y: 50},
			LineStyle: LineSolid,
		}, nil
	case KindArc:
		return &Arc{
			Base:       Base{Fill: "none", Stroke: "#8e44ad", StrokeWidth: 0.3},
			Center:     Point{X: 25, Y: 50},
			Radius:     60,
			StartAngle: defaultArcStartAngle,
			EndAngle:   defaultArcEndAngle,
		}, nil
	case KindSector:
		return &Sector{
			Base:        Base{Fill: "#2980b933", Stroke: "#2980b9", StrokeWidth: 0.3},
			Center:      Point{X: 25, Y: 50},
			InnerRadius: 40,
			OuterRadius: 70,
			StartAngle:  defaultArcStartAngle,
			EndAngle:    defaultArcEndAngle,
		}, nil
	case KindText:
		return &Text{
			Base:       Base{Fill: "#000000", Stroke: "none", StrokeWidth: 0},
			Position:   Point{X: 25, Y: 30},
			Text:       "Label",
			FontFamily: "sans-serif",
			FontSize:   4,
			FontStyle:  FontNormal,
			TextAnchor: AnchorMiddle,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}
