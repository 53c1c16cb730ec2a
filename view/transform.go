// Package view maintains the mapping between mat space (centimeters) and
// screen space (pixels): the visible window onto the mat, zoom and pan.
package view

import "github.com/tsawler/matboard/model"

// FitPaddingCm is the margin added around the mat when fitting the view.
const FitPaddingCm = 30.0

// Window is the rectangular mat-space region currently mapped onto the
// visible drawing surface. All fields are in centimeters.
type Window struct {
	X, Y          float64 // top-left origin
	Width, Height float64
}

// Transform owns the view window and the pixel size of the container it is
// projected onto. The zero value is unusable; construct with New and call
// FitToBounds before converting coordinates.
type Transform struct {
	Window  Window
	ScreenW float64 // container width in pixels
	ScreenH float64 // container height in pixels

	displayScale float64
}

// New creates a transform for a container of the given pixel size, fitted to
// the given mat.
func New(mat model.Mat, screenW, screenH float64) *Transform {
	t := &Transform{ScreenW: screenW, ScreenH: screenH}
	t.FitToBounds(mat)
	return t
}

// FitToBounds computes the window that fully contains the mat plus
// FitPaddingCm on all sides, at the largest scale that fits the container's
// aspect ratio, with the padded bounds centered. This is the initial view
// and the reset-zoom target. The cumulative display scale resets to 1.
func (t *Transform) FitToBounds(mat model.Mat) {
	paddedW := mat.WidthCm + 2*FitPaddingCm
	paddedH := mat.LengthCm + 2*FitPaddingCm

	aspect := t.ScreenW / t.ScreenH

	var w, h float64
	if paddedW/paddedH > aspect {
		// Padded bounds are wider than the container: width limits.
		w = paddedW
		h = paddedW / aspect
	} else {
		h = paddedH
		w = paddedH * aspect
	}

	t.Window = Window{
		X:      -FitPaddingCm - (w-paddedW)/2,
		Y:      -FitPaddingCm - (h-paddedH)/2,
		Width:  w,
		Height: h,
	}
	t.displayScale = 1
}

// Zoom scales the view by factor around a screen anchor point. The mat point
// under the anchor stays fixed under the pointer. A factor above 1 zooms in.
func (t *Transform) Zoom(factor float64, screenX, screenY float64) {
	if factor <= 0 {
		return
	}
	anchor := t.ScreenToModel(screenX, screenY)

	t.Window.Width /= factor
	t.Window.Height /= factor
	t.Window.X = anchor.X - (anchor.X-t.Window.X)/factor
	t.Window.Y = anchor.Y - (anchor.Y-t.Window.Y)/factor
	t.displayScale *= factor
}

// Pan translates the window by a screen-space delta, converted through the
// current per-axis scale. Positive deltas follow pointer drag direction:
// dragging right moves the window left. Window size never changes.
func (t *Transform) Pan(dxScreen, dyScreen float64) {
	t.Window.X -= dxScreen * t.Window.Width / t.ScreenW
	t.Window.Y -= dyScreen * t.Window.Height / t.ScreenH
}

// Resize adapts the window to a new container pixel size, holding the window
// center and the units-per-pixel scale fixed while the width/height track
// the new aspect ratio. This avoids distortion from a non-uniform stretch.
func (t *Transform) Resize(screenW, screenH float64) {
	if screenW <= 0 || screenH <= 0 {
		return
	}
	unitsPerPixel := t.Window.Width / t.ScreenW
	cx := t.Window.X + t.Window.Width/2
	cy := t.Window.Y + t.Window.Height/2

	t.ScreenW = screenW
	t.ScreenH = screenH
	t.Window.Width = screenW * unitsPerPixel
	t.Window.Height = screenH * unitsPerPixel
	t.Window.X = cx - t.Window.Width/2
	t.Window.Y = cy - t.Window.Height/2
}

// ScreenToModel converts a screen pixel coordinate to mat space.
func (t *Transform) ScreenToModel(screenX, screenY float64) model.Point {
	return model.Point{
		X: t.Window.X + screenX*t.Window.Width/t.ScreenW,
		Y: t.Window.Y + screenY*t.Window.Height/t.ScreenH,
	}
}

// ModelToScreen converts a mat-space point to screen pixels. It is the exact
// inverse of ScreenToModel up to floating-point precision.
func (t *Transform) ModelToScreen(p model.Point) (float64, float64) {
	return (p.X - t.Window.X) * t.ScreenW / t.Window.Width,
		(p.Y - t.Window.Y) * t.ScreenH / t.Window.Height
}

// DisplayScale returns the cumulative zoom factor relative to the last fit,
// for display purposes only. It has no effect on geometry.
func (t *Transform) DisplayScale() float64 {
	return t.displayScale
}
