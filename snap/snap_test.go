package snap

import (
	"testing"

	"github.com/tsawler/matboard/model"
)

func engine() *Engine {
	return NewEngine(DefaultOptions())
}

func TestGrid(t *testing.T) {
	e := engine()

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"already aligned", 7, 7},
		{"round down", 7.4, 7},
		{"round up", 7.6, 8},
		{"half rounds away from zero", 7.5, 8},
		{"negative", -3.2, -3},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Grid(tt.v); got != tt.want {
				t.Errorf("Grid(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestGridDisabled(t *testing.T) {
	e := NewEngine(Options{GridSize: 0})
	if got := e.Grid(7.37); got != 7.37 {
		t.Errorf("Grid with no grid size = %v, want passthrough", got)
	}
}

func TestCenterSnap(t *testing.T) {
	doc := model.NewDocument()
	a, _ := doc.Create(model.KindCircle)
	a.(*model.Circle).Center = model.Point{X: 10, Y: 10}
	b, _ := doc.Create(model.KindCircle)
	b.(*model.Circle).Center = model.Point{X: 11.5, Y: 11}

	e := engine()

	// Dragging b toward a within 2 cm on both axes snaps exactly onto a.
	got := e.Center(model.Point{X: 10.8, Y: 10.4}, doc, b.ID())
	if got != (model.Point{X: 10, Y: 10}) {
		t.Errorf("Center() = %+v, want exactly {10 10}", got)
	}

	// Outside the threshold on one axis: no snap.
	raw := model.Point{X: 10.5, Y: 13.1}
	if got := e.Center(raw, doc, b.ID()); got != raw {
		t.Errorf("Center() = %+v, want passthrough %+v", got, raw)
	}

	// The moved element itself is never a snap target: this proposal is only
	// within threshold of b's own center.
	raw = model.Point{X: 12.4, Y: 11.9}
	if got := e.Center(raw, doc, b.ID()); got != raw {
		t.Errorf("Center() snapped onto excluded element: %+v", got)
	}
}

func TestCenterSnapFirstMatchWins(t *testing.T) {
	doc := model.NewDocument()
	first, _ := doc.Create(model.KindMarker)
	first.(*model.Marker).Center = model.Point{X: 20, Y: 20}
	second, _ := doc.Create(model.KindMarker)
	second.(*model.Marker).Center = model.Point{X: 21, Y: 21}

	e := engine()

	// Both candidates are within threshold; insertion order decides, even
	// though the second is closer.
	got := e.Center(model.Point{X: 21.2, Y: 21.2}, doc, "mover")
	if got != (model.Point{X: 20, Y: 20}) {
		t.Errorf("Center() = %+v, want first-inserted {20 20}", got)
	}
}

func TestRadiusSnap(t *testing.T) {
	doc := model.NewDocument()
	s, _ := doc.Create(model.KindSector)
	sec := s.(*model.Sector)
	sec.Center = model.Point{X: 25, Y: 50}
	sec.InnerRadius = 40
	sec.OuterRadius = 70

	e := engine()

	tests := []struct {
		name   string
		r      float64
		center model.Point
		want   float64
	}{
		{"near outer", 69.4, model.Point{X: 25, Y: 50}, 70},
		{"near inner", 40.8, model.Point{X: 25, Y: 50}, 40},
		{"far from both", 55, model.Point{X: 25, Y: 50}, 55},
		{"concentric within epsilon", 69.7, model.Point{X: 25.05, Y: 49.95}, 70},
		{"different center", 69.7, model.Point{X: 30, Y: 50}, 69.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Radius(tt.r, tt.center, doc, "other"); got != tt.want {
				t.Errorf("Radius(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}

	// A sector never snaps against its own radii.
	if got := e.Radius(69.4, model.Point{X: 25, Y: 50}, doc, sec.ID()); got != 69.4 {
		t.Errorf("Radius() snapped against excluded sector: %v", got)
	}
}

func TestRadiusSnapIgnoresNonSectors(t *testing.T) {
	doc := model.NewDocument()
	c, _ := doc.Create(model.KindCircle)
	circ := c.(*model.Circle)
	circ.Center = model.Point{X: 25, Y: 50}
	circ.Radius = 70

	e := engine()
	if got := e.Radius(69.8, model.Point{X: 25, Y: 50}, doc, "other"); got != 69.8 {
		t.Errorf("Radius() snapped against a circle: %v", got)
	}
}
