// Package snap computes grid-aligned and object-aligned corrections for a
// proposed coordinate or radius during an edit. The engine is UI-agnostic
// and deterministic so corrections can be unit tested and reused across
// frontends.
package snap

import (
	"math"

	"github.com/tsawler/matboard/model"
)

// Options controls which corrections are applied and their thresholds. All
// values are mat-space centimeters, independent of zoom.
type Options struct {
	// GridSize is the grid cell size coordinates are rounded to.
	GridSize float64
	// CenterThreshold is the maximum per-axis distance at which a proposed
	// center snaps onto another element's center or position.
	CenterThreshold float64
	// RadiusThreshold is the maximum difference at which a proposed sector
	// radius snaps onto a boundary radius of a concentric sector.
	RadiusThreshold float64
	// CenterEpsilon is the per-axis tolerance within which two sectors are
	// considered concentric for radius snapping.
	CenterEpsilon float64
}

// DefaultOptions returns the standard thresholds: 1 cm grid, 2 cm center
// snap, 1 cm radius snap, 0.1 cm concentricity tolerance.
func DefaultOptions() Options {
	return Options{
		GridSize:        1,
		CenterThreshold: 2,
		RadiusThreshold: 1,
		CenterEpsilon:   0.1,
	}
}

// Engine applies snapping corrections against a document's element set.
type Engine struct {
	Options
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{Options: opts}
}

// Grid rounds a coordinate to the nearest grid multiple.
func (e *Engine) Grid(v float64) float64 {
	if e.GridSize <= 0 {
		return v
	}
	return math.Round(v/e.GridSize) * e.GridSize
}

// GridPoint rounds both coordinates of a point to the grid.
func (e *Engine) GridPoint(p model.Point) model.Point {
	return model.Point{X: e.Grid(p.X), Y: e.Grid(p.Y)}
}

// Center snaps a proposed center/position onto the center-or-position of
// another element when both axes are within CenterThreshold. The first match
// in element insertion order wins; no closest-of-several tie-break is
// performed. The element being moved is excluded by id.
func (e *Engine) Center(p model.Point, doc *model.Document, excludeID string) model.Point {
	for _, el := range doc.Elements() {
		if el.ID() == excludeID {
			continue
		}
		a := el.Anchor()
		if math.Abs(p.X-a.X) <= e.CenterThreshold && math.Abs(p.Y-a.Y) <= e.CenterThreshold {
			return a
		}
	}
	return p
}

// Radius snaps a proposed sector radius onto an inner or outer radius of
// another sector sharing the same center (within CenterEpsilon on both
// axes), when the difference is within RadiusThreshold. This is what lets
// stacked sectors share a boundary radius exactly. The first matching radius
// in insertion order wins.
func (e *Engine) Radius(r float64, center model.Point, doc *model.Document, excludeID string) float64 {
	for _, el := range doc.Elements() {
		if el.ID() == excludeID {
			continue
		}
		sec, ok := el.(*model.Sector)
		if !ok {
			continue
		}
		if math.Abs(sec.Center.X-center.X) > e.CenterEpsilon ||
			math.Abs(sec.Center.Y-center.Y) > e.CenterEpsilon {
			continue
		}
		if math.Abs(r-sec.InnerRadius) <= e.RadiusThreshold {
			return sec.InnerRadius
		}
		if math.Abs(r-sec.OuterRadius) <= e.RadiusThreshold {
			return sec.OuterRadius
		}
	}
	return r
}
