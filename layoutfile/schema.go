// Package layoutfile maps documents to and from the external JSON layout
// schema consumed by the analysis system, including backward-compatible
// ingestion of legacy field names and container shapes.
package layoutfile

import "fmt"

// SchemaVersion is written into the metadata block of every saved layout.
const SchemaVersion = "1.2"

// EditorName identifies this implementation in saved metadata.
const EditorName = "matboard"

// External type tags, per element kind.
const (
	TypeRect   = "rect"
	TypeTarget = "target"
	TypeMarker = "ball_marker"
	TypeLine   = "line_segment"
	TypeArc    = "circular_arc"
	TypeSector = "annulus_sector"
	TypeText   = "text"
)

// ParseError reports external input that could not be understood at the
// top level. Partially-missing fields inside a recognized structure are
// defaulted permissively and never produce a ParseError.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("layoutfile: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("layoutfile: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Layout is the external JSON document shape. Array keys holding no
// elements are omitted entirely; on import an absent key means zero
// elements of that kind, never an error.
type Layout struct {
	Metadata Metadata `json:"metadata"`
	Mat      MatInfo  `json:"mat"`

	Markers []MarkerJSON `json:"markers,omitempty"`
	Areas   []AreaJSON   `json:"areas,omitempty"`
	Arcs    []ArcJSON    `json:"arcs,omitempty"`
	Sectors []SectorJSON `json:"sectors,omitempty"`
	Lines   []LineJSON   `json:"lines,omitempty"`
	Texts   []TextJSON   `json:"texts,omitempty"`

	// Legacy input-only containers, accepted on load and never produced
	// on save.
	AimingGuides     []LineJSON        `json:"aiming_guides,omitempty"`
	BehindHoleGuides *BehindHoleGuides `json:"behind_hole_guides,omitempty"`
}

// Metadata is the document-level information block.
type Metadata struct {
	Version string `json:"version"`
	Editor  string `json:"editor"`
	SavedAt string `json:"savedAt"`
}

// MatInfo describes the mat. Width and length default to 50 and 400
// centimeters when absent.
type MatInfo struct {
	WidthCm  *float64 `json:"width_cm,omitempty"`
	LengthCm *float64 `json:"length_cm,omitempty"`
	Color    string   `json:"color,omitempty"`
	Origin   string   `json:"origin,omitempty"` // always "top_left"
	Units    string   `json:"units,omitempty"`  // always "cm"
}

// PointJSON is a point in centimeters.
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MarkerJSON carries both targets (internal kind circle) and ball markers.
type MarkerJSON struct {
	ID          string     `json:"id,omitempty"`
	Type        string     `json:"type"`
	Center      *PointJSON `json:"center_cm,omitempty"`
	RadiusCm    *float64   `json:"radius_cm,omitempty"`
	Fill        string     `json:"fill,omitempty"`
	Stroke      string     `json:"stroke,omitempty"`
	StrokeWidth *float64   `json:"strokeWidth,omitempty"`
	ZOrder      *int       `json:"zOrder,omitempty"`
}

// AreaJSON is a rectangular search area. Corner values are stored exactly
// as edited; they are not normalized.
type AreaJSON struct {
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type"`
	X0Cm        *float64 `json:"x0_cm,omitempty"`
	Y0Cm        *float64 `json:"y0_cm,omitempty"`
	X1Cm        *float64 `json:"x1_cm,omitempty"`
	Y1Cm        *float64 `json:"y1_cm,omitempty"`
	Fill        string   `json:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	ZOrder      *int     `json:"zOrder,omitempty"`
}

// ArcJSON is an open circular arc.
type ArcJSON struct {
	ID          string     `json:"id,omitempty"`
	Type        string     `json:"type"`
	Center      *PointJSON `json:"center_cm,omitempty"`
	RadiusCm    *float64   `json:"radius_cm,omitempty"`
	StartAngle  *float64   `json:"startAngle,omitempty"`
	EndAngle    *float64   `json:"endAngle,omitempty"`
	Stroke      string     `json:"stroke,omitempty"`
	StrokeWidth *float64   `json:"strokeWidth,omitempty"`
	ZOrder      *int       `json:"zOrder,omitempty"`
}

// SectorJSON is an annulus sector.
type SectorJSON struct {
	ID            string     `json:"id,omitempty"`
	Type          string     `json:"type"`
	Center        *PointJSON `json:"center_cm,omitempty"`
	InnerRadiusCm *float64   `json:"innerRadius_cm,omitempty"`
	OuterRadiusCm *float64   `json:"outerRadius_cm,omitempty"`
	StartAngle    *float64   `json:"startAngle,omitempty"`
	EndAngle      *float64   `json:"endAngle,omitempty"`
	Fill          string     `json:"fill,omitempty"`
	Stroke        string     `json:"stroke,omitempty"`
	StrokeWidth   *float64   `json:"strokeWidth,omitempty"`
	ZOrder        *int       `json:"zOrder,omitempty"`
}

// LineJSON is a guide line segment. The same shape is accepted from the
// legacy aiming_guides and behind_hole_guides containers.
type LineJSON struct {
	ID          string     `json:"id,omitempty"`
	Type        string     `json:"type,omitempty"`
	From        *PointJSON `json:"from_cm,omitempty"`
	To          *PointJSON `json:"to_cm,omitempty"`
	LineStyle   string     `json:"lineStyle,omitempty"`
	Stroke      string     `json:"stroke,omitempty"`
	StrokeWidth *float64   `json:"strokeWidth,omitempty"`
	ZOrder      *int       `json:"zOrder,omitempty"`
}

// TextJSON is a text label. Direction is a legacy input-only field:
// "vertical" implies a 90 degree rotation when no explicit rotation is
// present.
type TextJSON struct {
	ID         string     `json:"id,omitempty"`
	Type       string     `json:"type,omitempty"`
	Position   *PointJSON `json:"position_cm,omitempty"`
	Text       *string    `json:"text,omitempty"`
	Rotation   *float64   `json:"rotation,omitempty"`
	FontFamily string     `json:"fontFamily,omitempty"`
	FontSize   *float64   `json:"fontSize,omitempty"`
	FontStyle  string     `json:"fontStyle,omitempty"`
	Fill       string     `json:"fill,omitempty"`
	TextAnchor string     `json:"textAnchor,omitempty"`
	Direction  string     `json:"direction,omitempty"`
	ZOrder     *int       `json:"zOrder,omitempty"`
}

// BehindHoleGuides is a legacy container whose v_lines and vertical_guides
// arrays are flattened into line elements on import.
type BehindHoleGuides struct {
	VLines         []LineJSON `json:"v_lines,omitempty"`
	VerticalGuides []LineJSON `json:"vertical_guides,omitempty"`
}

func ptr[T any](v T) *T { return &v }
