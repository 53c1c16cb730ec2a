package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/matboard/model"
)

// RasterOptions controls raster preview output.
type RasterOptions struct {
	// PixelsPerCm is the output resolution. Defaults to 4.
	PixelsPerCm float64
	// MarginCm is the blank margin around the mat. Defaults to 10.
	MarginCm float64
	// Background fills the area outside the mat. Defaults to white.
	Background color.Color
}

func (o RasterOptions) withDefaults() RasterOptions {
	if o.PixelsPerCm <= 0 {
		o.PixelsPerCm = 4
	}
	if o.MarginCm < 0 {
		o.MarginCm = 0
	} else if o.MarginCm == 0 {
		o.MarginCm = 10
	}
	if o.Background == nil {
		o.Background = color.White
	}
	return o
}

// Raster renders a preview image of the document. Elements draw in
// ascending z-order. Text rotation is not applied in raster output; labels
// draw horizontally at their anchor.
func Raster(doc *model.Document, opts RasterOptions) *image.RGBA {
	opts = opts.withDefaults()

	p := &painter{
		scale:   opts.PixelsPerCm,
		originX: -opts.MarginCm,
		originY: -opts.MarginCm,
	}
	w := int(math.Ceil((doc.Mat.WidthCm + 2*opts.MarginCm) * opts.PixelsPerCm))
	h := int(math.Ceil((doc.Mat.LengthCm + 2*opts.MarginCm) * opts.PixelsPerCm))
	p.img = image.NewRGBA(image.Rect(0, 0, w, h))

	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	matColor, ok := parseColor(doc.Mat.Color)
	if !ok {
		matColor = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	}
	p.fillRect(model.NewBBox(0, 0, doc.Mat.WidthCm, doc.Mat.LengthCm), matColor)

	for _, el := range drawOrder(doc) {
		p.element(el)
	}
	return p.img
}

type painter struct {
	img     *image.RGBA
	scale   float64
	originX float64
	originY float64
}

func (p *painter) element(el model.Element) {
	b := model.BaseOf(el)
	fill, hasFill := parseColor(b.Fill)
	stroke, hasStroke := parseColor(b.Stroke)
	width := math.Max(b.StrokeWidth, 0.2)

	switch v := el.(type) {
	case *model.Rect:
		bb := v.BoundingBox()
		if hasFill {
			p.fillRect(bb, fill)
		}
		if hasStroke {
			p.strokeSegment(model.Point{X: bb.Left(), Y: bb.Top()}, model.Point{X: bb.Right(), Y: bb.Top()}, width, stroke)
			p.strokeSegment(model.Point{X: bb.Right(), Y: bb.Top()}, model.Point{X: bb.Right(), Y: bb.Bottom()}, width, stroke)
			p.strokeSegment(model.Point{X: bb.Right(), Y: bb.Bottom()}, model.Point{X: bb.Left(), Y: bb.Bottom()}, width, stroke)
			p.strokeSegment(model.Point{X: bb.Left(), Y: bb.Bottom()}, model.Point{X: bb.Left(), Y: bb.Top()}, width, stroke)
		}
	case *model.Circle:
		p.circle(v.Center, v.Radius, fill, hasFill, stroke, hasStroke, width)
	case *model.Marker:
		p.circle(v.Center, v.Radius, fill, hasFill, stroke, hasStroke, width)
	case *model.Line:
		if hasStroke {
			p.strokeSegment(v.From, v.To, width, stroke)
		}
	case *model.Arc:
		if hasStroke {
			p.strokeArc(v.Center, v.Radius, v.StartAngle, v.EndAngle, width, stroke)
		}
	case *model.Sector:
		if hasFill {
			p.fillSector(v, fill)
		}
		if hasStroke {
			p.strokeArc(v.Center, v.InnerRadius, v.StartAngle, v.EndAngle, width, stroke)
			p.strokeArc(v.Center, v.OuterRadius, v.StartAngle, v.EndAngle, width, stroke)
			p.strokeSegment(model.PointAtAngle(v.Center, v.InnerRadius, v.StartAngle),
				model.PointAtAngle(v.Center, v.OuterRadius, v.StartAngle), width, stroke)
			p.strokeSegment(model.PointAtAngle(v.Center, v.InnerRadius, v.EndAngle),
				model.PointAtAngle(v.Center, v.OuterRadius, v.EndAngle), width, stroke)
		}
	case *model.Text:
		if hasFill {
			p.text(v, fill)
		}
	}
}

func (p *painter) toPixel(pt model.Point) (int, int) {
	return int(math.Round((pt.X - p.originX) * p.scale)),
		int(math.Round((pt.Y - p.originY) * p.scale))
}

func (p *painter) fillRect(bb model.BBox, c color.Color) {
	x0, y0 := p.toPixel(model.Point{X: bb.Left(), Y: bb.Top()})
	x1, y1 := p.toPixel(model.Point{X: bb.Right(), Y: bb.Bottom()})
	blendRect(p.img, image.Rect(x0, y0, x1, y1), c)
}

func (p *painter) circle(center model.Point, r float64, fill color.Color, hasFill bool,
	stroke color.Color, hasStroke bool, width float64) {
	if hasFill {
		p.fillDisc(center, r, fill)
	}
	if hasStroke {
		p.strokeArc(center, r, 0, 360, width, stroke)
	}
}

func (p *painter) fillDisc(center model.Point, r float64, c color.Color) {
	x0, y0 := p.toPixel(center.Add(-r, -r))
	x1, y1 := p.toPixel(center.Add(r, r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if p.modelDistance(x, y, center) <= r {
				blendPixel(p.img, x, y, c)
			}
		}
	}
}

func (p *painter) fillSector(s *model.Sector, c color.Color) {
	x0, y0 := p.toPixel(s.Center.Add(-s.OuterRadius, -s.OuterRadius))
	x1, y1 := p.toPixel(s.Center.Add(s.OuterRadius, s.OuterRadius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			pt := p.toModel(x, y)
			d := pt.Distance(s.Center)
			if d < s.InnerRadius || d > s.OuterRadius {
				continue
			}
			if sweepContains(model.AngleDegrees(s.Center, pt), s.StartAngle, s.EndAngle) {
				blendPixel(p.img, x, y, c)
			}
		}
	}
}

func (p *painter) strokeSegment(a, b model.Point, width float64, c color.Color) {
	steps := int(math.Ceil(a.Distance(b) * p.scale * 2))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p.dot(model.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}, width/2, c)
	}
}

func (p *painter) strokeArc(center model.Point, r, startDeg, endDeg, width float64, c color.Color) {
	sweep := model.NormalizeDegrees(endDeg - startDeg)
	if sweep == 0 {
		sweep = 360
	}
	arcLen := sweep / 360 * 2 * math.Pi * r
	steps := int(math.Ceil(arcLen * p.scale * 2))
	if steps < 8 {
		steps = 8
	}
	for i := 0; i <= steps; i++ {
		deg := startDeg + sweep*float64(i)/float64(steps)
		p.dot(model.PointAtAngle(center, r, deg), width/2, c)
	}
}

// dot paints a filled disc of the given model-space radius, at least one
// pixel.
func (p *painter) dot(center model.Point, r float64, c color.Color) {
	px, py := p.toPixel(center)
	pr := int(math.Ceil(r * p.scale))
	if pr < 1 {
		blendPixel(p.img, px, py, c)
		return
	}
	for y := py - pr; y <= py+pr; y++ {
		for x := px - pr; x <= px+pr; x++ {
			dx, dy := x-px, y-py
			if dx*dx+dy*dy <= pr*pr {
				blendPixel(p.img, x, y, c)
			}
		}
	}
}

func (p *painter) text(t *model.Text, c color.Color) {
	px, py := p.toPixel(t.Position)

	d := font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(t.Text)
	switch t.TextAnchor {
	case model.AnchorMiddle:
		px -= w.Round() / 2
	case model.AnchorEnd:
		px -= w.Round()
	}
	d.Dot = fixed.P(px, py)
	d.DrawString(t.Text)
}

func (p *painter) toModel(x, y int) model.Point {
	return model.Point{
		X: float64(x)/p.scale + p.originX,
		Y: float64(y)/p.scale + p.originY,
	}
}

func (p *painter) modelDistance(x, y int, pt model.Point) float64 {
	return p.toModel(x, y).Distance(pt)
}

// sweepContains reports whether deg lies on the positive sweep from start
// to end.
func sweepContains(deg, start, end float64) bool {
	deg = model.NormalizeDegrees(deg)
	start = model.NormalizeDegrees(start)
	end = model.NormalizeDegrees(end)
	if start == end {
		return true
	}
	if start < end {
		return deg >= start && deg <= end
	}
	return deg >= start || deg <= end
}

func blendRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			blendPixel(img, x, y, c)
		}
	}
}

// blendPixel writes a color with source-over alpha so translucent fills
// composite instead of overwrite.
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	draw.Draw(img, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

// parseColor understands #rgb, #rrggbb and #rrggbbaa colors. "none" and
// unparseable values report false.
func parseColor(s string) (color.Color, bool) {
	if s == "" || s == "none" || s[0] != '#' {
		return nil, false
	}
	hex := s[1:]
	var r, g, b, a uint8
	a = 0xff
	switch len(hex) {
	case 3:
		r = hexNibble(hex[0]) * 0x11
		g = hexNibble(hex[1]) * 0x11
		b = hexNibble(hex[2]) * 0x11
	case 6:
		r = hexByte(hex[0], hex[1])
		g = hexByte(hex[2], hex[3])
		b = hexByte(hex[4], hex[5])
	case 8:
		r = hexByte(hex[0], hex[1])
		g = hexByte(hex[2], hex[3])
		b = hexByte(hex[4], hex[5])
		a = hexByte(hex[6], hex[7])
	default:
		return nil, false
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, true
}

func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

func hexByte(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}
