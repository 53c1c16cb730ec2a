package layoutfile

import (
	"encoding/json"

	"github.com/tsawler/matboard/model"
)

// Import defaults. The arc angles deliberately differ from the
// interactive-creation defaults in the model package.
const (
	defaultMatWidthCm     = 50
	defaultMatLengthCm    = 400
	defaultMarkerRadiusCm = 1
	defaultArcImportStart = 180
	defaultArcImportEnd   = 360
)

// Unmarshal parses an external JSON layout and builds a fresh document from
// it. The returned document is clean (not dirty) and has no selection. On
// any top-level parse failure a *ParseError is returned and no document is
// produced, so callers can keep their current document untouched.
func Unmarshal(data []byte) (*model.Document, error) {
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, &ParseError{Msg: "parsing layout JSON", Err: err}
	}
	return FromLayout(&layout)
}

// FromLayout builds a document from an already-parsed Layout. Legacy schema
// variants are rewritten by the adapter list first; missing fields are then
// defaulted permissively, using the same element defaulting path as
// interactive creation.
func FromLayout(layout *Layout) (*model.Document, error) {
	for _, adapt := range legacyAdapters {
		adapt(layout)
	}

	doc := model.NewDocument()
	doc.Mat = model.Mat{
		WidthCm:  defaultMatWidthCm,
		LengthCm: defaultMatLengthCm,
		Color:    doc.Mat.Color,
	}
	if layout.Mat.WidthCm != nil {
		doc.Mat.WidthCm = *layout.Mat.WidthCm
	}
	if layout.Mat.LengthCm != nil {
		doc.Mat.LengthCm = *layout.Mat.LengthCm
	}
	if layout.Mat.Color != "" {
		doc.Mat.Color = layout.Mat.Color
	}

	for _, a := range layout.Areas {
		el, _ := model.New(model.KindRect)
		r := el.(*model.Rect)
		if a.X0Cm != nil {
			r.X0 = *a.X0Cm
		}
		if a.Y0Cm != nil {
			r.Y0 = *a.Y0Cm
		}
		if a.X1Cm != nil {
			r.X1 = *a.X1Cm
		}
		if a.Y1Cm != nil {
			r.Y1 = *a.Y1Cm
		}
		applyBase(r, a.ID, a.ZOrder, a.Fill, a.Stroke, a.StrokeWidth)
		doc.Add(r)
	}

	for _, m := range layout.Markers {
		// External "target" maps back to the internal circle kind; any
		// other marker type is a ball marker.
		if m.Type == TypeTarget {
			el, _ := model.New(model.KindCircle)
			c := el.(*model.Circle)
			c.Center = pointOr(m.Center, c.Center)
			c.Radius = floatOr(m.RadiusCm, defaultMarkerRadiusCm)
			applyBase(c, m.ID, m.ZOrder, m.Fill, m.Stroke, m.StrokeWidth)
			doc.Add(c)
			continue
		}
		el, _ := model.New(model.KindMarker)
		mk := el.(*model.Marker)
		mk.Center = pointOr(m.Center, mk.Center)
		mk.Radius = floatOr(m.RadiusCm, defaultMarkerRadiusCm)
		applyBase(mk, m.ID, m.ZOrder, m.Fill, m.Stroke, m.StrokeWidth)
		doc.Add(mk)
	}

	for _, a := range layout.Arcs {
		el, _ := model.New(model.KindArc)
		arc := el.(*model.Arc)
		arc.Center = pointOr(a.Center, arc.Center)
		if a.RadiusCm != nil {
			arc.Radius = *a.RadiusCm
		}
		arc.StartAngle = floatOr(a.StartAngle, defaultArcImportStart)
		arc.EndAngle = floatOr(a.EndAngle, defaultArcImportEnd)
		applyBase(arc, a.ID, a.ZOrder, "", a.Stroke, a.StrokeWidth)
		doc.Add(arc)
	}

	for _, s := range layout.Sectors {
		el, _ := model.New(model.KindSector)
		sec := el.(*model.Sector)
		sec.Center = pointOr(s.Center, sec.Center)
		if s.InnerRadiusCm != nil {
			sec.InnerRadius = *s.InnerRadiusCm
		}
		if s.OuterRadiusCm != nil {
			sec.OuterRadius = *s.OuterRadiusCm
		}
		if s.StartAngle != nil {
			sec.StartAngle = *s.StartAngle
		}
		if s.EndAngle != nil {
			sec.EndAngle = *s.EndAngle
		}
		applyBase(sec, s.ID, s.ZOrder, s.Fill, s.Stroke, s.StrokeWidth)
		doc.Add(sec)
	}

	for _, ln := range layout.Lines {
		doc.Add(lineFromJSON(ln))
	}

	for _, tx := range layout.Texts {
		el, _ := model.New(model.KindText)
		t := el.(*model.Text)
		t.Position = pointOr(tx.Position, t.Position)
		if tx.Text != nil {
			t.Text = *tx.Text
		}
		if tx.Rotation != nil {
			t.Rotation = *tx.Rotation
		}
		if tx.FontFamily != "" {
			t.FontFamily = tx.FontFamily
		}
		if tx.FontSize != nil {
			t.FontSize = *tx.FontSize
		}
		if tx.FontStyle != "" {
			t.FontStyle = model.FontStyle(tx.FontStyle)
		}
		if tx.TextAnchor != "" {
			t.TextAnchor = model.TextAnchor(tx.TextAnchor)
		}
		applyBase(t, tx.ID, tx.ZOrder, tx.Fill, "", nil)
		doc.Add(t)
	}

	doc.ClearSelection()
	doc.MarkSaved()
	return doc, nil
}

// lineFromJSON is the single line-creation path all current and legacy line
// containers funnel through.
func lineFromJSON(ln LineJSON) *model.Line {
	el, _ := model.New(model.KindLine)
	l := el.(*model.Line)
	l.From = pointOr(ln.From, l.From)
	l.To = pointOr(ln.To, l.To)
	if ln.LineStyle != "" {
		l.LineStyle = model.LineStyle(ln.LineStyle)
	}
	applyBase(l, ln.ID, ln.ZOrder, "", ln.Stroke, ln.StrokeWidth)
	return l
}

// applyBase copies identity and presentation fields that are present,
// leaving the kind defaults in place otherwise.
func applyBase(el model.Element, id string, z *int, fill, stroke string, strokeWidth *float64) {
	b := model.BaseOf(el)
	if id != "" {
		b.SetID(id)
	}
	if z != nil {
		b.SetZOrder(*z)
	}
	if fill != "" {
		b.Fill = fill
	}
	if stroke != "" {
		b.Stroke = stroke
	}
	if strokeWidth != nil {
		b.StrokeWidth = *strokeWidth
	}
}

func pointOr(p *PointJSON, fallback model.Point) model.Point {
	if p == nil {
		return fallback
	}
	return model.Point{X: p.X, Y: p.Y}
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
