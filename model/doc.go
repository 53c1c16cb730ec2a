// Package model provides the in-memory representation of a mat layout: the
// mat definition, the typed element variants placed on it, and the document
// that owns them.
//
// # Document Structure
//
// The [Document] type is the sole owner of the element collection. All
// mutation passes through it, keeping id uniqueness, z-order assignment,
// selection and the dirty flag consistent:
//
//	doc := model.NewDocument()
//	el, err := doc.Create(model.KindSector)
//
// A Document is a single-owner value for one editing session; it is not safe
// for concurrent use.
//
// # Elements
//
// Every annotation implements the [Element] interface. The set of
// implementations is closed:
//
//   - [Rect] - rectangular search areas (corners not normalized)
//   - [Circle] - circular targets
//   - [Marker] - ball markers
//   - [Line] - guide line segments (solid, dashed or dotted)
//   - [Arc] - open circular arcs
//   - [Sector] - annulus sectors between two radii and two angles
//   - [Text] - rotatable text labels
//
// All coordinates are mat-space centimeters and all angles are degrees.
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [Point] - 2D point with distance and translation helpers
//   - [BBox] - bounding box with union, expansion and containment
//   - [NormalizeDegrees], [AngleDegrees], [PointAtAngle] - angle helpers
package model
