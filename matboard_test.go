package matboard

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/matboard/drag"
	"github.com/tsawler/matboard/layoutfile"
	"github.com/tsawler/matboard/model"
)

// ============================================================
// Session construction
// ============================================================

func TestNewEditorDefaults(t *testing.T) {
	ed := NewEditor()

	if ed.Document().Mat.WidthCm != 50 || ed.Document().Mat.LengthCm != 400 {
		t.Errorf("default mat = %vx%v, want 50x400",
			ed.Document().Mat.WidthCm, ed.Document().Mat.LengthCm)
	}
	if ed.Document().Len() != 0 {
		t.Errorf("new session not empty: %d elements", ed.Document().Len())
	}
	if ed.Dirty() {
		t.Error("new session should be clean")
	}
}

func TestFluentConfiguration(t *testing.T) {
	ed := NewEditor().Mat(90, 300).MatColor("#1b5e20").ScreenSize(1024, 768)

	if ed.Document().Mat.WidthCm != 90 || ed.Document().Mat.LengthCm != 300 {
		t.Errorf("mat = %vx%v, want 90x300",
			ed.Document().Mat.WidthCm, ed.Document().Mat.LengthCm)
	}
	if ed.Document().Mat.Color != "#1b5e20" {
		t.Errorf("mat color = %q", ed.Document().Mat.Color)
	}
	if ed.Transform().ScreenW != 1024 || ed.Transform().ScreenH != 768 {
		t.Errorf("screen = %vx%v, want 1024x768",
			ed.Transform().ScreenW, ed.Transform().ScreenH)
	}
}

// ============================================================
// Element operations
// ============================================================

func TestCreateSelectsElement(t *testing.T) {
	ed := NewEditor()

	id, err := ed.Create(model.KindCircle)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ed.Document().SelectedID() != id {
		t.Errorf("selected = %q, want %q", ed.Document().SelectedID(), id)
	}
	if !ed.Dirty() {
		t.Error("create should dirty the document")
	}
}

func TestCreateUnknownKind(t *testing.T) {
	ed := NewEditor()

	if _, err := ed.Create(model.KindUnknown); !errors.Is(err, model.ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestSectorAddAboveSharesBoundaryExactly(t *testing.T) {
	ed := NewEditor()
	srcID, err := ed.Create(model.KindSector)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	src, _ := ed.Document().Get(srcID)
	s1 := src.(*model.Sector)
	s1.Fill = "#c8e6c9"
	// Default sector: inner 40, outer 70.

	id, ok := ed.AddSectorAbove(srcID)
	if !ok {
		t.Fatal("AddSectorAbove failed")
	}
	el, _ := ed.Document().Get(id)
	s2 := el.(*model.Sector)

	if s2.InnerRadius != 70.0 {
		t.Errorf("inner radius = %v, want exactly 70.0", s2.InnerRadius)
	}
	if s2.OuterRadius != 100.0 {
		t.Errorf("outer radius = %v, want 100 (same band width)", s2.OuterRadius)
	}
	if s2.Center != s1.Center {
		t.Errorf("center = %+v, want %+v", s2.Center, s1.Center)
	}
	if s2.StartAngle != s1.StartAngle || s2.EndAngle != s1.EndAngle {
		t.Error("angles not copied from source")
	}
	if s2.Fill != "#c8e6c9" {
		t.Errorf("fill = %q, want copied styling", s2.Fill)
	}
	if ed.Document().SelectedID() != id {
		t.Error("new sector should be selected")
	}
}

func TestSectorAddBelowClampsAtZero(t *testing.T) {
	ed := NewEditor()
	srcID, _ := ed.Create(model.KindSector)
	ed.Document().Update(srcID, func(el model.Element) {
		s := el.(*model.Sector)
		s.InnerRadius = 20
		s.OuterRadius = 70
	})

	id, ok := ed.AddSectorBelow(srcID)
	if !ok {
		t.Fatal("AddSectorBelow failed")
	}
	el, _ := ed.Document().Get(id)
	s := el.(*model.Sector)

	if s.OuterRadius != 20 {
		t.Errorf("outer radius = %v, want 20", s.OuterRadius)
	}
	if s.InnerRadius != 0 {
		t.Errorf("inner radius = %v, want clamped to 0", s.InnerRadius)
	}
}

func TestStackRejectsNonSector(t *testing.T) {
	ed := NewEditor()
	id, _ := ed.Create(model.KindRect)

	if _, ok := ed.AddSectorAbove(id); ok {
		t.Error("AddSectorAbove accepted a rect")
	}
	if _, ok := ed.AddSectorBelow("missing"); ok {
		t.Error("AddSectorBelow accepted an unknown id")
	}
}

// ============================================================
// Pointer input
// ============================================================

func TestElementAtScreen(t *testing.T) {
	ed := NewEditor().ScreenSize(800, 600)
	id, _ := ed.Create(model.KindCircle) // center (25,50) r 10

	el, _ := ed.Document().Get(id)
	sx, sy := ed.Transform().ModelToScreen(el.Anchor())

	got, ok := ed.ElementAtScreen(sx, sy)
	if !ok || got != id {
		t.Errorf("ElementAtScreen = %q, %v; want %q", got, ok, id)
	}

	if _, ok := ed.ElementAtScreen(0, 0); ok {
		t.Error("hit reported at screen origin, far from any element")
	}
}

func TestDragThroughScreenCoordinates(t *testing.T) {
	ed := NewEditor().ScreenSize(800, 600)
	id, _ := ed.Create(model.KindMarker)

	el, _ := ed.Document().Get(id)
	start := el.Anchor()
	sx, sy := ed.Transform().ModelToScreen(start)

	if !ed.BeginDrag(id, drag.HandleMove, sx, sy, false) {
		t.Fatal("BeginDrag failed")
	}
	if !ed.Dragging() {
		t.Fatal("Dragging() = false during gesture")
	}

	// Move the pointer by the screen distance equal to +10cm in x.
	tx, ty := ed.Transform().ModelToScreen(start.Add(10, 0))
	if !ed.DragTo(tx, ty) {
		t.Fatal("DragTo failed")
	}
	ed.EndDrag()

	el, _ = ed.Document().Get(id)
	if math.Abs(el.Anchor().X-(start.X+10)) > 1e-9 {
		t.Errorf("anchor.X = %v, want %v", el.Anchor().X, start.X+10)
	}
	if ed.Dragging() {
		t.Error("gesture still active after EndDrag")
	}
}

func TestHandles(t *testing.T) {
	ed := NewEditor()
	id, _ := ed.Create(model.KindSector)

	hs := ed.Handles(id)
	want := []drag.Handle{
		drag.HandleMove, drag.HandleRadiusInner, drag.HandleRadiusOuter,
		drag.HandleAngleStart, drag.HandleAngleEnd,
	}
	if len(hs) != len(want) {
		t.Fatalf("handles = %v, want %v", hs, want)
	}
	for i := range want {
		if hs[i] != want[i] {
			t.Errorf("handles[%d] = %v, want %v", i, hs[i], want[i])
		}
	}

	if ed.Handles("missing") != nil {
		t.Error("handles for unknown id should be nil")
	}
}

// ============================================================
// Persistence
// ============================================================

func TestSaveJSONClearsDirty(t *testing.T) {
	ed := NewEditor()
	if _, err := ed.Create(model.KindRect); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !ed.Dirty() {
		t.Fatal("document should be dirty before save")
	}

	if _, err := ed.SaveJSON(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ed.Dirty() {
		t.Error("document still dirty after save")
	}
}

func TestSaveOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	ed := NewEditor().Mat(60, 200)
	id, _ := ed.Create(model.KindSector)
	if err := ed.SaveFile(path); err != nil {
		t.Fatalf("save file: %v", err)
	}

	loaded, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if loaded.Document().Mat.WidthCm != 60 || loaded.Document().Mat.LengthCm != 200 {
		t.Errorf("mat = %vx%v, want 60x200",
			loaded.Document().Mat.WidthCm, loaded.Document().Mat.LengthCm)
	}
	if _, ok := loaded.Document().Get(id); !ok {
		t.Errorf("element %q missing after round trip", id)
	}
	if loaded.Dirty() {
		t.Error("loaded session should be clean")
	}
	if loaded.Document().SelectedID() != "" {
		t.Error("loaded session should be unselected")
	}
}

func TestLoadJSONAllOrNothing(t *testing.T) {
	ed := NewEditor()
	id, _ := ed.Create(model.KindCircle)

	err := ed.LoadJSON([]byte(`{"mat": {`))
	var perr *layoutfile.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *layoutfile.ParseError", err)
	}
	if _, ok := ed.Document().Get(id); !ok {
		t.Error("failed load must leave the current document untouched")
	}
}

func TestLoadJSONReplacesDocument(t *testing.T) {
	ed := NewEditor()
	ed.Create(model.KindRect)

	err := ed.LoadJSON([]byte(`{
        "mat": {"width_cm": 80, "length_cm": 250},
        "markers": [{"id": "m1", "type": "ball_marker", "center_cm": {"x": 10, "y": 20}}]
    }`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ed.Document().Len() != 1 {
		t.Fatalf("len = %d, want 1", ed.Document().Len())
	}
	if ed.Document().Mat.WidthCm != 80 || ed.Document().Mat.LengthCm != 250 {
		t.Errorf("mat = %vx%v, want 80x250",
			ed.Document().Mat.WidthCm, ed.Document().Mat.LengthCm)
	}
	if _, ok := ed.Document().Get("m1"); !ok {
		t.Error("loaded marker missing")
	}
	if ed.Dirty() {
		t.Error("loaded document should be clean")
	}
}

func TestOpenHTMLExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.html")
	page := `<html><body>
<script type="application/json" id="mat-layout">
{"mat": {"width_cm": 45, "length_cm": 150}}
</script>
</body></html>`
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}

	ed, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if ed.Document().Mat.WidthCm != 45 {
		t.Errorf("mat width = %v, want 45", ed.Document().Mat.WidthCm)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %v, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}

// ============================================================
// Rendering
// ============================================================

func TestEditorSVG(t *testing.T) {
	ed := NewEditor()
	ed.Create(model.KindMarker)

	out := string(ed.SVG(10))
	if out == "" || out[:4] != "<svg" {
		t.Errorf("SVG output malformed: %q", out)
	}
}
