package matboard

import (
	"fmt"
	"os"

	"github.com/tsawler/matboard/drag"
	"github.com/tsawler/matboard/layoutfile"
	"github.com/tsawler/matboard/model"
	"github.com/tsawler/matboard/render"
	"github.com/tsawler/matboard/snap"
	"github.com/tsawler/matboard/view"
)

// hitTolerancePx is the pick radius for hit testing, in screen pixels. It is
// converted to mat space through the current view scale so picking feels the
// same at any zoom level.
const hitTolerancePx = 6.0

// Editor is an editing session: one document, its view transform, the snap
// engine and a drag gesture controller. It is not safe for concurrent use.
type Editor struct {
	doc       *model.Document
	transform *view.Transform
	snap      *snap.Engine
	drag      *drag.Controller
	opts      editorOptions
}

// Document exposes the underlying document for direct inspection and
// mutation.
func (e *Editor) Document() *model.Document {
	return e.doc
}

// Transform exposes the view transform.
func (e *Editor) Transform() *view.Transform {
	return e.transform
}

// rebuildDrag recreates the drag controller after the document or the snap
// engine is replaced. Any in-flight gesture is abandoned.
func (e *Editor) rebuildDrag() {
	e.drag = drag.NewController(e.doc, e.snap)
}

// ============================================================
// Element operations
// ============================================================

// Create adds a new element of the given kind with per-kind defaults,
// selects it, and returns its id.
func (e *Editor) Create(kind model.Kind) (string, error) {
	el, err := e.doc.Create(kind)
	if err != nil {
		return "", err
	}
	e.doc.Select(el.ID())
	return el.ID(), nil
}

// Delete removes an element by id. It reports whether anything was removed.
func (e *Editor) Delete(id string) bool {
	return e.doc.Delete(id)
}

// Duplicate clones an element with a fresh id, offset down and right, selects
// the copy and returns its id.
func (e *Editor) Duplicate(id string) (string, bool) {
	el, ok := e.doc.Duplicate(id)
	if !ok {
		return "", false
	}
	e.doc.Select(el.ID())
	return el.ID(), true
}

// Select marks an element as the current selection.
func (e *Editor) Select(id string) bool {
	return e.doc.Select(id)
}

// ClearSelection deselects any selected element.
func (e *Editor) ClearSelection() {
	e.doc.ClearSelection()
}

// MoveToFront raises an element above every other element.
func (e *Editor) MoveToFront(id string) {
	e.doc.MoveToFront(id)
}

// MoveToBack lowers an element below every other element.
func (e *Editor) MoveToBack(id string) {
	e.doc.MoveToBack(id)
}

// AddSectorAbove creates a new sector stacked outward from the given sector:
// its inner radius is the source's outer radius and its band is the same
// width. Angles and styling copy from the source. The new sector is selected
// and its id returned.
func (e *Editor) AddSectorAbove(id string) (string, bool) {
	return e.stackSector(id, true)
}

// AddSectorBelow creates a new sector stacked inward from the given sector:
// its outer radius is the source's inner radius, its inner radius shrinks by
// the source's band width but never below zero.
func (e *Editor) AddSectorBelow(id string) (string, bool) {
	return e.stackSector(id, false)
}

func (e *Editor) stackSector(id string, above bool) (string, bool) {
	el, ok := e.doc.Get(id)
	if !ok {
		return "", false
	}
	src, ok := el.(*model.Sector)
	if !ok {
		return "", false
	}

	ring := src.OuterRadius - src.InnerRadius
	next := &model.Sector{
		Center:     src.Center,
		StartAngle: src.StartAngle,
		EndAngle:   src.EndAngle,
	}
	if above {
		next.InnerRadius = src.OuterRadius
		next.OuterRadius = src.OuterRadius + ring
	} else {
		next.OuterRadius = src.InnerRadius
		next.InnerRadius = src.InnerRadius - ring
		if next.InnerRadius < 0 {
			next.InnerRadius = 0
		}
	}

	sb := model.BaseOf(src)
	nb := model.BaseOf(next)
	nb.Fill = sb.Fill
	nb.Stroke = sb.Stroke
	nb.StrokeWidth = sb.StrokeWidth

	e.doc.Add(next)
	e.doc.Select(next.ID())
	return next.ID(), true
}

// ============================================================
// Pointer input
// ============================================================

// ElementAtScreen returns the id of the topmost element under a screen pixel
// coordinate, if any.
func (e *Editor) ElementAtScreen(screenX, screenY float64) (string, bool) {
	p := e.transform.ScreenToModel(screenX, screenY)
	el, ok := e.doc.ElementAt(p, e.hitTolerance())
	if !ok {
		return "", false
	}
	return el.ID(), true
}

// hitTolerance converts the pixel pick radius into mat space at the current
// zoom.
func (e *Editor) hitTolerance() float64 {
	return hitTolerancePx * e.transform.Window.Width / e.transform.ScreenW
}

// BeginDrag starts a gesture on an element handle at a screen position.
// disableGrid suppresses grid snapping for this gesture only. It reports
// whether a gesture actually started.
func (e *Editor) BeginDrag(id string, h drag.Handle, screenX, screenY float64, disableGrid bool) bool {
	return e.drag.Begin(id, h, e.transform.ScreenToModel(screenX, screenY), disableGrid)
}

// DragTo advances the active gesture to a new screen position. It reports
// whether the gesture is still active.
func (e *Editor) DragTo(screenX, screenY float64) bool {
	return e.drag.Move(e.transform.ScreenToModel(screenX, screenY))
}

// EndDrag commits the active gesture. Changes applied during the gesture are
// kept; there is no revert.
func (e *Editor) EndDrag() {
	e.drag.End()
}

// Dragging reports whether a gesture is in progress.
func (e *Editor) Dragging() bool {
	return e.drag.Active()
}

// Handles returns the drag handles available for an element, or nil if the
// id is unknown.
func (e *Editor) Handles(id string) []drag.Handle {
	el, ok := e.doc.Get(id)
	if !ok {
		return nil
	}
	return drag.HandlesFor(el.Kind())
}

// ============================================================
// View operations
// ============================================================

// Zoom scales the view around a screen anchor. A factor above 1 zooms in.
func (e *Editor) Zoom(factor, screenX, screenY float64) {
	e.transform.Zoom(factor, screenX, screenY)
}

// Pan translates the view by a screen-space delta.
func (e *Editor) Pan(dxScreen, dyScreen float64) {
	e.transform.Pan(dxScreen, dyScreen)
}

// Resize adapts the view to a new surface size, preserving center and scale.
func (e *Editor) Resize(screenW, screenH float64) {
	if screenW > 0 && screenH > 0 {
		e.opts.screenW = screenW
		e.opts.screenH = screenH
		e.transform.Resize(screenW, screenH)
	}
}

// ResetView refits the view to the mat.
func (e *Editor) ResetView() {
	e.transform.FitToBounds(e.doc.Mat)
}

// ============================================================
// Persistence
// ============================================================

// SaveJSON serializes the document to the external layout format and marks
// the document saved.
func (e *Editor) SaveJSON() ([]byte, error) {
	data, err := layoutfile.Marshal(e.doc)
	if err != nil {
		return nil, err
	}
	e.doc.MarkSaved()
	return data, nil
}

// SaveFile writes the layout to a file and marks the document saved.
func (e *Editor) SaveFile(filename string) error {
	data, err := layoutfile.Marshal(e.doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	e.doc.MarkSaved()
	return nil
}

// LoadJSON replaces the session document with one parsed from external JSON.
// The replacement is all-or-nothing: on error the current document is
// untouched. The loaded document starts clean and unselected, and the view
// refits to the loaded mat.
func (e *Editor) LoadJSON(data []byte) error {
	doc, err := layoutfile.Unmarshal(data)
	if err != nil {
		return err
	}
	e.doc = doc
	e.rebuildDrag()
	e.transform.FitToBounds(doc.Mat)
	return nil
}

// Dirty reports whether the document has unsaved changes.
func (e *Editor) Dirty() bool {
	return e.doc.Dirty()
}

// ============================================================
// Rendering
// ============================================================

// SVG renders the document as an SVG drawing with the given margin in
// centimeters.
func (e *Editor) SVG(marginCm float64) []byte {
	return render.SVG(e.doc, marginCm)
}
