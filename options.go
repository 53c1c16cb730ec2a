package matboard

import "github.com/tsawler/matboard/snap"

// editorOptions holds session configuration.
type editorOptions struct {
	screenW float64
	screenH float64
	snap    snap.Options
}

// defaultEditorOptions returns the default session configuration.
func defaultEditorOptions() editorOptions {
	return editorOptions{
		screenW: 800,
		screenH: 600,
		snap:    snap.DefaultOptions(),
	}
}

// ScreenSize sets the pixel size of the drawing surface and refits the view
// to the mat. Call it again whenever the surface is resized only if a full
// refit is wanted; use Resize to preserve the current view.
func (e *Editor) ScreenSize(w, h float64) *Editor {
	if w > 0 && h > 0 {
		e.opts.screenW = w
		e.opts.screenH = h
		e.transform.ScreenW = w
		e.transform.ScreenH = h
		e.transform.FitToBounds(e.doc.Mat)
	}
	return e
}

// Mat sets the mat dimensions in centimeters and refits the view.
func (e *Editor) Mat(widthCm, lengthCm float64) *Editor {
	if widthCm > 0 && lengthCm > 0 {
		e.doc.Mat.WidthCm = widthCm
		e.doc.Mat.LengthCm = lengthCm
		e.transform.FitToBounds(e.doc.Mat)
	}
	return e
}

// MatColor sets the mat background color (hex notation, e.g. "#2e7d32").
func (e *Editor) MatColor(color string) *Editor {
	e.doc.Mat.Color = color
	return e
}

// SnapOptions replaces the snap thresholds for this session.
func (e *Editor) SnapOptions(opts snap.Options) *Editor {
	e.opts.snap = opts
	e.snap = snap.NewEngine(opts)
	e.rebuildDrag()
	return e
}
