// Package matboard provides a fluent API for building and editing practice-mat
// layouts: a geometric document of rectangles, targets, markers, lines, arcs,
// annulus sectors and text labels positioned in centimeters on a mat.
//
// Basic usage:
//
//	ed := matboard.NewEditor()
//	id, err := ed.Create(model.KindSector)
//	if err != nil {
//	    // handle error
//	}
//	data, err := ed.SaveJSON()
//
// Loading an existing layout file (JSON, or an HTML export carrying an
// embedded layout):
//
//	ed, err := matboard.Open("practice-green.json")
//
// Interactive consumers size the editor to their drawing surface and feed it
// pointer events in screen pixels:
//
//	ed := matboard.NewEditor().ScreenSize(1280, 800)
//	if id, ok := ed.ElementAtScreen(x, y); ok {
//	    ed.Select(id)
//	    ed.BeginDrag(id, drag.HandleMove, x, y, false)
//	}
//
// For advanced use the lower-level model, view, snap, drag, layoutfile and
// render packages are also available.
package matboard

import (
	"github.com/tsawler/matboard/layoutfile"
	"github.com/tsawler/matboard/model"
	"github.com/tsawler/matboard/snap"
	"github.com/tsawler/matboard/view"
)

// NewEditor creates an editing session over a fresh document with the default
// mat, fitted to the default screen size. Configure it fluently:
//
//	ed := matboard.NewEditor().Mat(90, 300).ScreenSize(1024, 768)
func NewEditor() *Editor {
	return newEditor(model.NewDocument(), defaultEditorOptions())
}

// Open loads a layout file into a new editing session. The format is chosen
// by file extension, falling back to content sniffing: .json files parse
// directly, .html/.htm files are searched for an embedded layout document.
// The loaded session starts clean and unselected.
func Open(filename string) (*Editor, error) {
	doc, err := layoutfile.Open(filename)
	if err != nil {
		return nil, err
	}
	return newEditor(doc, defaultEditorOptions()), nil
}

// FromDocument wraps an existing document in an editing session. The document
// is used directly, not copied.
func FromDocument(doc *model.Document) *Editor {
	return newEditor(doc, defaultEditorOptions())
}

// Must is a helper that wraps a call to a function returning (T, error) and
// panics if the error is non-nil. It is intended for use in scripts or tests
// where error handling would be cumbersome.
//
// Example:
//
//	ed := matboard.Must(matboard.Open("layout.json"))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func newEditor(doc *model.Document, opts editorOptions) *Editor {
	ed := &Editor{
		doc:  doc,
		opts: opts,
		snap: snap.NewEngine(opts.snap),
	}
	ed.transform = view.New(doc.Mat, opts.screenW, opts.screenH)
	ed.rebuildDrag()
	return ed
}
