package layoutfile

// Legacy schema tolerance is implemented as an ordered list of adapter
// functions applied to the parsed Layout before element creation. Each
// adapter rewrites one older schema variant into the current shape, keeping
// the primary mapping in decode.go free of special cases.

var legacyAdapters = []func(*Layout){
	adaptAimingGuides,
	adaptBehindHoleGuides,
	adaptTextDirection,
}

// adaptAimingGuides folds the legacy top-level aiming_guides array into the
// lines array.
func adaptAimingGuides(l *Layout) {
	if len(l.AimingGuides) == 0 {
		return
	}
	l.Lines = append(l.Lines, l.AimingGuides...)
	l.AimingGuides = nil
}

// adaptBehindHoleGuides flattens the legacy behind_hole_guides container:
// its v_lines and vertical_guides arrays each become plain line entries.
func adaptBehindHoleGuides(l *Layout) {
	if l.BehindHoleGuides == nil {
		return
	}
	l.Lines = append(l.Lines, l.BehindHoleGuides.VLines...)
	l.Lines = append(l.Lines, l.BehindHoleGuides.VerticalGuides...)
	l.BehindHoleGuides = nil
}

// adaptTextDirection maps the legacy per-text direction field: "vertical"
// implies a 90 degree rotation when no explicit rotation is present.
func adaptTextDirection(l *Layout) {
	for i := range l.Texts {
		t := &l.Texts[i]
		if t.Direction == "vertical" && t.Rotation == nil {
			t.Rotation = ptr(90.0)
		}
		t.Direction = ""
	}
}
