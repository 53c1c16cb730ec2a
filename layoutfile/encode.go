package layoutfile

import (
	"encoding/json"
	"time"

	"github.com/tsawler/matboard/model"
)

// ToLayout builds the external representation of a document. Kinds map to
// their external type names and arrays with no elements stay nil so they are
// omitted from the JSON output.
func ToLayout(doc *model.Document) *Layout {
	layout := &Layout{
		Metadata: Metadata{
			Version: SchemaVersion,
			Editor:  EditorName,
			SavedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Mat: MatInfo{
			WidthCm:  ptr(doc.Mat.WidthCm),
			LengthCm: ptr(doc.Mat.LengthCm),
			Color:    doc.Mat.Color,
			Origin:   "top_left",
			Units:    "cm",
		},
	}

	for _, el := range doc.Elements() {
		switch v := el.(type) {
		case *model.Rect:
			layout.Areas = append(layout.Areas, AreaJSON{
				ID:          v.ID(),
				Type:        TypeRect,
				X0Cm:        ptr(v.X0),
				Y0Cm:        ptr(v.Y0),
				X1Cm:        ptr(v.X1),
				Y1Cm:        ptr(v.Y1),
				Fill:        v.Fill,
				Stroke:      v.Stroke,
				StrokeWidth: ptr(v.StrokeWidth),
				ZOrder:      ptr(v.ZOrder()),
			})
		case *model.Circle:
			layout.Markers = append(layout.Markers, MarkerJSON{
				ID:          v.ID(),
				Type:        TypeTarget,
				Center:      &PointJSON{X: v.Center.X, Y: v.Center.Y},
				RadiusCm:    ptr(v.Radius),
				Fill:        v.Fill,
				Stroke:      v.Stroke,
				StrokeWidth: ptr(v.StrokeWidth),
				ZOrder:      ptr(v.ZOrder()),
			})
		case *model.Marker:
			layout.Markers = append(layout.Markers, MarkerJSON{
				ID:          v.ID(),
				Type:        TypeMarker,
				Center:      &PointJSON{X: v.Center.X, Y: v.Center.Y},
				RadiusCm:    ptr(v.Radius),
				Fill:        v.Fill,
				Stroke:      v.Stroke,
				StrokeWidth: ptr(v.StrokeWidth),
				ZOrder:      ptr(v.ZOrder()),
			})
		case *model.Line:
			layout.Lines = append(layout.Lines, LineJSON{
				ID:          v.ID(),
				Type:        TypeLine,
				From:        &PointJSON{X: v.From.X, Y: v.From.Y},
				To:          &PointJSON{X: v.To.X, Y: v.To.Y},
				LineStyle:   string(v.LineStyle),
				Stroke:      v.Stroke,
				StrokeWidth: ptr(v.StrokeWidth),
				ZOrder:      ptr(v.ZOrder()),
			})
		case *model.Arc:
			layout.Arcs = append(layout.Arcs, ArcJSON{
				ID:          v.ID(),
				Type:        TypeArc,
				Center:      &PointJSON{X: v.Center.X, Y: v.Center.Y},
				RadiusCm:    ptr(v.Radius),
				StartAngle:  ptr(v.StartAngle),
				EndAngle:    ptr(v.EndAngle),
				Stroke:      v.Stroke,
				StrokeWidth: ptr(v.StrokeWidth),
				ZOrder:      ptr(v.ZOrder()),
			})
		case *model.Sector:
			layout.Sectors = append(layout.Sectors, SectorJSON{
				ID:            v.ID(),
				Type:          TypeSector,
				Center:        &PointJSON{X: v.Center.X, Y: v.Center.Y},
				InnerRadiusCm: ptr(v.InnerRadius),
				OuterRadiusCm: ptr(v.OuterRadius),
				StartAngle:    ptr(v.StartAngle),
				EndAngle:      ptr(v.EndAngle),
				Fill:          v.Fill,
				Stroke:        v.Stroke,
				StrokeWidth:   ptr(v.StrokeWidth),
				ZOrder:        ptr(v.ZOrder()),
			})
		case *model.Text:
			layout.Texts = append(layout.Texts, TextJSON{
				ID:         v.ID(),
				Type:       TypeText,
				Position:   &PointJSON{X: v.Position.X, Y: v.Position.Y},
				Text:       ptr(v.Text),
				Rotation:   ptr(v.Rotation),
				FontFamily: v.FontFamily,
				FontSize:   ptr(v.FontSize),
				FontStyle:  string(v.FontStyle),
				Fill:       v.Fill,
				TextAnchor: string(v.TextAnchor),
				ZOrder:     ptr(v.ZOrder()),
			})
		}
	}

	return layout
}

// Marshal serializes a document to the external JSON layout format,
// indented for readability.
func Marshal(doc *model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(ToLayout(doc), "", "  ")
	if err != nil {
		return nil, &ParseError{Msg: "encoding layout", Err: err}
	}
	return data, nil
}
