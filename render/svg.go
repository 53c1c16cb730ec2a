// Package render produces non-interactive snapshots of a layout document:
// an SVG drawing and a raster preview image. Output is draw-order only;
// selection and handles are an editor concern and never rendered here.
package render

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/matboard/model"
)

// Dash patterns per line style, in centimeters.
const (
	dashPatternDashed = "1.2,0.8"
	dashPatternDotted = "0.25,0.6"
)

// SVG renders the document as an SVG drawing. The viewBox covers the mat
// plus the given margin (centimeters); coordinates map 1:1 to centimeters.
// Elements are drawn in ascending z-order, ties in insertion order.
func SVG(doc *model.Document, margin float64) []byte {
	var buf bytes.Buffer

	w := doc.Mat.WidthCm + 2*margin
	h := doc.Mat.LengthCm + 2*margin
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		num(-margin), num(-margin), num(w), num(h))

	matColor := doc.Mat.Color
	if matColor == "" {
		matColor = "#2e7d32"
	}
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(doc.Mat.WidthCm), num(doc.Mat.LengthCm), matColor)

	for _, el := range drawOrder(doc) {
		writeElement(&buf, el)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// drawOrder returns the elements sorted by z-order, keeping insertion order
// for equal values.
func drawOrder(doc *model.Document) []model.Element {
	els := make([]model.Element, len(doc.Elements()))
	copy(els, doc.Elements())
	sort.SliceStable(els, func(i, j int) bool {
		return els[i].ZOrder() < els[j].ZOrder()
	})
	return els
}

func writeElement(buf *bytes.Buffer, el model.Element) {
	b := model.BaseOf(el)

	switch v := el.(type) {
	case *model.Rect:
		// Corners are not normalized; derive min/max at draw time.
		bb := v.BoundingBox()
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
			num(bb.X), num(bb.Y), num(bb.Width), num(bb.Height), style(b, ""))
	case *model.Circle:
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s"%s/>`+"\n",
			num(v.Center.X), num(v.Center.Y), num(v.Radius), style(b, ""))
	case *model.Marker:
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s"%s/>`+"\n",
			num(v.Center.X), num(v.Center.Y), num(v.Radius), style(b, ""))
	case *model.Line:
		fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
			num(v.From.X), num(v.From.Y), num(v.To.X), num(v.To.Y),
			style(b, dashFor(v.LineStyle)))
	case *model.Arc:
		fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			arcPath(v.Center, v.Radius, v.StartAngle, v.EndAngle), b.Stroke, num(b.StrokeWidth))
	case *model.Sector:
		fmt.Fprintf(buf, `  <path d="%s"%s/>`+"\n",
			sectorPath(v), style(b, ""))
	case *model.Text:
		fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="%s"%s text-anchor="%s" fill="%s"%s>%s</text>`+"\n",
			num(v.Position.X), num(v.Position.Y), v.FontFamily, num(v.FontSize),
			fontStyleAttrs(v.FontStyle), v.TextAnchor, b.Fill, rotation(v), escapeText(v.Text))
	}
}

// arcPath builds the path for an open circular arc from startDeg to endDeg
// in the positive (screen-clockwise) direction.
func arcPath(center model.Point, r, startDeg, endDeg float64) string {
	start := model.PointAtAngle(center, r, startDeg)
	end := model.PointAtAngle(center, r, endDeg)
	large := 0
	if model.NormalizeDegrees(endDeg-startDeg) > 180 {
		large = 1
	}
	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s",
		num(start.X), num(start.Y), num(r), num(r), large, num(end.X), num(end.Y))
}

// sectorPath builds the closed path of an annulus sector: outer arc forward,
// inner arc back.
func sectorPath(s *model.Sector) string {
	outerStart := model.PointAtAngle(s.Center, s.OuterRadius, s.StartAngle)
	outerEnd := model.PointAtAngle(s.Center, s.OuterRadius, s.EndAngle)
	innerStart := model.PointAtAngle(s.Center, s.InnerRadius, s.StartAngle)
	innerEnd := model.PointAtAngle(s.Center, s.InnerRadius, s.EndAngle)

	large := 0
	if model.NormalizeDegrees(s.EndAngle-s.StartAngle) > 180 {
		large = 1
	}

	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s L %s %s A %s %s 0 %d 0 %s %s Z",
		num(outerStart.X), num(outerStart.Y),
		num(s.OuterRadius), num(s.OuterRadius), large, num(outerEnd.X), num(outerEnd.Y),
		num(innerEnd.X), num(innerEnd.Y),
		num(s.InnerRadius), num(s.InnerRadius), large, num(innerStart.X), num(innerStart.Y))
}

func style(b *model.Base, dash string) string {
	s := fmt.Sprintf(` fill="%s" stroke="%s" stroke-width="%s"`, b.Fill, b.Stroke, num(b.StrokeWidth))
	if dash != "" {
		s += fmt.Sprintf(` stroke-dasharray="%s"`, dash)
	}
	return s
}

func dashFor(ls model.LineStyle) string {
	switch ls {
	case model.LineDashed:
		return dashPatternDashed
	case model.LineDotted:
		return dashPatternDotted
	default:
		return ""
	}
}

func fontStyleAttrs(fs model.FontStyle) string {
	switch fs {
	case model.FontBold:
		return ` font-weight="bold"`
	case model.FontItalic:
		return ` font-style="italic"`
	case model.FontBoldItalic:
		return ` font-weight="bold" font-style="italic"`
	default:
		return ""
	}
}

func rotation(t *model.Text) string {
	if t.Rotation == 0 {
		return ""
	}
	return fmt.Sprintf(` transform="rotate(%s %s %s)"`,
		num(t.Rotation), num(t.Position.X), num(t.Position.Y))
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// num formats a coordinate compactly, trimming trailing zeros.
func num(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
