package view

import (
	"math"
	"testing"

	"github.com/tsawler/matboard/model"
)

const epsilon = 1e-9

func testMat() model.Mat {
	return model.Mat{WidthCm: 50, LengthCm: 400}
}

func TestFitToBoundsContainsMat(t *testing.T) {
	tests := []struct {
		name             string
		screenW, screenH float64
	}{
		{"portrait", 400, 800},
		{"landscape", 1200, 600},
		{"square", 500, 500},
		{"narrow strip", 200, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(testMat(), tt.screenW, tt.screenH)
			w := tr.Window

			// Mat plus padding must fit inside the window.
			if w.X > -FitPaddingCm+epsilon || w.Y > -FitPaddingCm+epsilon {
				t.Errorf("window origin %v,%v does not include padding", w.X, w.Y)
			}
			if w.X+w.Width < testMat().WidthCm+FitPaddingCm-epsilon {
				t.Errorf("window right edge %v excludes padded mat", w.X+w.Width)
			}
			if w.Y+w.Height < testMat().LengthCm+FitPaddingCm-epsilon {
				t.Errorf("window bottom edge %v excludes padded mat", w.Y+w.Height)
			}

			// Window aspect must match the container aspect.
			if math.Abs(w.Width/w.Height-tt.screenW/tt.screenH) > 1e-6 {
				t.Errorf("window aspect %v != container aspect %v",
					w.Width/w.Height, tt.screenW/tt.screenH)
			}

			// Padded bounds are centered.
			left := -FitPaddingCm - w.X
			right := w.X + w.Width - (testMat().WidthCm + FitPaddingCm)
			if math.Abs(left-right) > 1e-6 {
				t.Errorf("horizontal slack not centered: %v vs %v", left, right)
			}
		})
	}
}

func TestCoordinateInversion(t *testing.T) {
	tr := New(testMat(), 640, 960)
	tr.Zoom(1.7, 100, 200)
	tr.Pan(33, -81)

	points := []model.Point{
		{X: 0, Y: 0},
		{X: 25, Y: 50},
		{X: -30, Y: 430},
		{X: 12.345, Y: 67.89},
	}
	for _, p := range points {
		sx, sy := tr.ModelToScreen(p)
		back := tr.ScreenToModel(sx, sy)
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip %+v -> %+v", p, back)
		}
	}
}

func TestZoomAnchorInvariance(t *testing.T) {
	tr := New(testMat(), 800, 600)

	anchorX, anchorY := 250.0, 440.0
	before := tr.ScreenToModel(anchorX, anchorY)
	tr.Zoom(2.5, anchorX, anchorY)
	after := tr.ScreenToModel(anchorX, anchorY)

	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("anchor moved under zoom: %+v -> %+v", before, after)
	}

	if math.Abs(tr.DisplayScale()-2.5) > 1e-9 {
		t.Errorf("DisplayScale() = %v, want 2.5", tr.DisplayScale())
	}

	// Zooming back out restores the window size.
	w := tr.Window.Width
	tr.Zoom(1/2.5, anchorX, anchorY)
	if math.Abs(tr.Window.Width-w*2.5) > 1e-6 {
		t.Errorf("inverse zoom window width = %v, want %v", tr.Window.Width, w*2.5)
	}
}

func TestPanKeepsWindowSize(t *testing.T) {
	tr := New(testMat(), 800, 600)
	w, h := tr.Window.Width, tr.Window.Height
	x0 := tr.Window.X

	tr.Pan(80, -60)

	if tr.Window.Width != w || tr.Window.Height != h {
		t.Error("pan must never change window size")
	}
	wantDX := 80 * w / 800
	if math.Abs((x0-tr.Window.X)-wantDX) > 1e-9 {
		t.Errorf("pan dx = %v, want %v", x0-tr.Window.X, wantDX)
	}
}

func TestResizeHoldsCenterAndScale(t *testing.T) {
	tr := New(testMat(), 800, 600)
	tr.Zoom(2, 400, 300)

	cx := tr.Window.X + tr.Window.Width/2
	cy := tr.Window.Y + tr.Window.Height/2
	unitsPerPixel := tr.Window.Width / tr.ScreenW

	tr.Resize(1000, 500)

	if math.Abs(tr.Window.X+tr.Window.Width/2-cx) > 1e-9 ||
		math.Abs(tr.Window.Y+tr.Window.Height/2-cy) > 1e-9 {
		t.Error("resize must hold the window center")
	}
	if math.Abs(tr.Window.Width/tr.ScreenW-unitsPerPixel) > 1e-9 {
		t.Error("resize must hold the units-per-pixel scale")
	}
	if math.Abs(tr.Window.Width/tr.Window.Height-1000.0/500.0) > 1e-6 {
		t.Error("resize must adopt the new aspect ratio")
	}
}
