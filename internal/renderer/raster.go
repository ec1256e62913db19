package renderer

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/arandu/archdiagram/internal/scene"
)

// devPoint is a coordinate in device (pixel) space, y pointing down.
type devPoint struct {
	X, Y float64
}

// painter owns the raster during one Render call. It maps canvas
// coordinates (y-up, abstract units) to device pixels and provides the
// low-level drawing primitives. Every pixel write goes through blendPixel
// so alpha compositing behaves the same for all command variants.
type painter struct {
	img     *image.RGBA
	scale   float64
	padding float64
	canvasH float64
	faces   *faceCache
}

func (p *painter) device(pt scene.Point) devPoint {
	return devPoint{
		X: (pt.X + p.padding) * p.scale,
		Y: (p.canvasH - pt.Y + p.padding) * p.scale,
	}
}

// length converts a distance from canvas units to device pixels.
func (p *painter) length(u float64) float64 {
	return u * p.scale
}

// blendPixel composites c over the existing pixel (source-over).
func (p *painter) blendPixel(x, y int, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	b := p.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if c.A == 0xff {
		p.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		return
	}

	dst := p.img.RGBAAt(x, y)
	sa := uint32(c.A)
	ia := 255 - sa
	p.img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*sa + uint32(dst.R)*ia) / 255),
		G: uint8((uint32(c.G)*sa + uint32(dst.G)*ia) / 255),
		B: uint8((uint32(c.B)*sa + uint32(dst.B)*ia) / 255),
		A: uint8(sa + uint32(dst.A)*ia/255),
	})
}

// sdfRoundedRect is the signed distance from (px,py) to the boundary of the
// axis-aligned rounded rectangle with top-left (x0,y0), size w x h and
// corner radius r. Negative inside.
func sdfRoundedRect(px, py, x0, y0, w, h, r float64) float64 {
	cx := x0 + w/2
	cy := y0 + h/2
	qx := math.Abs(px-cx) - (w/2 - r)
	qy := math.Abs(py-cy) - (h/2 - r)
	ax := math.Max(qx, 0)
	ay := math.Max(qy, 0)
	return math.Hypot(ax, ay) + math.Min(math.Max(qx, qy), 0) - r
}

// paintRoundedRect fills and strokes a rounded rectangle given in device
// coordinates. Either color may be transparent to skip that part.
func (p *painter) paintRoundedRect(x0, y0, w, h, r, borderWidth float64, fill, border color.NRGBA) {
	if fill.A == 0 && border.A == 0 {
		return
	}
	r = math.Min(r, math.Min(w, h)/2)
	halfBW := borderWidth / 2
	pad := halfBW + 1

	for y := int(y0 - pad); y <= int(y0+h+pad); y++ {
		for x := int(x0 - pad); x <= int(x0+w+pad); x++ {
			d := sdfRoundedRect(float64(x)+0.5, float64(y)+0.5, x0, y0, w, h, r)
			if fill.A > 0 && d <= 0 {
				p.blendPixel(x, y, fill)
			}
			if border.A > 0 && borderWidth > 0 && math.Abs(d) <= halfBW {
				p.blendPixel(x, y, border)
			}
		}
	}
}

// paintCircle fills and/or strokes a circle given in device coordinates.
func (p *painter) paintCircle(cx, cy, r, strokeWidth float64, fill, stroke color.NRGBA) {
	if fill.A == 0 && stroke.A == 0 {
		return
	}
	halfSW := strokeWidth / 2
	pad := halfSW + 1

	for y := int(cy - r - pad); y <= int(cy+r+pad); y++ {
		for x := int(cx - r - pad); x <= int(cx+r+pad); x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) - r
			if fill.A > 0 && d <= 0 {
				p.blendPixel(x, y, fill)
			}
			if stroke.A > 0 && strokeWidth > 0 && math.Abs(d) <= halfSW {
				p.blendPixel(x, y, stroke)
			}
		}
	}
}

// fillPolygon paints the interior of a closed polygon (even-odd rule) using
// scanline filling, the vertices given in device coordinates.
func (p *painter) fillPolygon(pts []devPoint, fill color.NRGBA) {
	if fill.A == 0 || len(pts) < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, pt := range pts[1:] {
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}

	for y := int(minY); y <= int(maxY)+1; y++ {
		fy := float64(y) + 0.5
		var xs []float64
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= fy && b.Y > fy) || (b.Y <= fy && a.Y > fy) {
				t := (fy - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i] - 0.5)); float64(x)+0.5 <= xs[i+1]; x++ {
				p.blendPixel(x, y, fill)
			}
		}
	}
}

// strokePolyline draws a line of the given device-pixel width through pts.
// The stroke is first stamped into a coverage mask and then composited once
// per pixel, so translucent strokes do not darken where stamps overlap.
// The dash phase runs along the accumulated arc length, which keeps dashes
// continuous across the small segments of a sampled curve.
func (p *painter) strokePolyline(pts []devPoint, width float64, col color.NRGBA, dashed, closed bool) {
	if col.A == 0 || len(pts) < 2 {
		return
	}
	if closed {
		pts = append(append(make([]devPoint, 0, len(pts)+1), pts...), pts[0])
	}
	r := math.Max(width/2, 0.6)

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	rect := image.Rect(int(minX-r)-1, int(minY-r)-1, int(maxX+r)+2, int(maxY+r)+2).Intersect(p.img.Bounds())
	if rect.Empty() {
		return
	}
	mask := image.NewAlpha(rect)

	dashOn := math.Max(3*width, 6)
	dashOff := math.Max(2*width, 4)
	acc := 0.0

	for i := 0; i+1 < len(pts); i++ {
		a := pts[i]
		b := pts[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		if segLen == 0 {
			continue
		}
		steps := int(segLen/0.5) + 1
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			if dashed && math.Mod(acc+t*segLen, dashOn+dashOff) >= dashOn {
				continue
			}
			stampDisc(mask, a.X+t*(b.X-a.X), a.Y+t*(b.Y-a.Y), r)
		}
		acc += segLen
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if mask.AlphaAt(x, y).A > 0 {
				p.blendPixel(x, y, col)
			}
		}
	}
}

func stampDisc(mask *image.Alpha, cx, cy, r float64) {
	for y := int(cy - r); y <= int(cy+r)+1; y++ {
		for x := int(cx - r); x <= int(cx+r)+1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r && (image.Point{X: x, Y: y}).In(mask.Rect) {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
}

// paintArrowhead draws the two barbs of an arrow tip at 'to', oriented along
// the from->to direction.
func (p *painter) paintArrowhead(from, to devPoint, width float64, col color.NRGBA) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	size := math.Max(6, width*3.5)

	for _, barb := range []float64{angle + math.Pi*0.8, angle - math.Pi*0.8} {
		tip := devPoint{
			X: to.X + size*math.Cos(barb),
			Y: to.Y + size*math.Sin(barb),
		}
		p.strokePolyline([]devPoint{to, tip}, width, col, false, false)
	}
}

// drawText paints text at the given device anchor with the requested
// alignment. sizePx is the glyph size in device pixels.
func (p *painter) drawText(text string, anchor devPoint, sizePx float64, col color.NRGBA, hAlign, vAlign scene.Align, tf scene.Typeface) error {
	if text == "" || col.A == 0 {
		return nil
	}
	face, err := p.faces.face(tf, sizePx)
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(col),
		Face: face,
	}

	x := anchor.X
	width := fixedToFloat(d.MeasureString(text))
	switch hAlign {
	case scene.AlignLeft:
	case scene.AlignRight:
		x -= width
	default: // center
		x -= width / 2
	}

	y := anchor.Y
	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	switch vAlign {
	case scene.AlignTop:
		y += ascent
	case scene.AlignBottom:
		y -= descent
	default: // middle
		y += (ascent - descent) / 2
	}

	d.Dot = fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)}
	d.DrawString(text)
	return nil
}

func floatToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}

func fixedToFloat(i fixed.Int26_6) float64 {
	return float64(i) / 64
}

// quadBezierPoints samples a quadratic Bezier curve in canvas space.
func quadBezierPoints(start, control, end scene.Point, steps int) []scene.Point {
	pts := make([]scene.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		pts = append(pts, scene.Point{
			X: mt*mt*start.X + 2*mt*t*control.X + t*t*end.X,
			Y: mt*mt*start.Y + 2*mt*t*control.Y + t*t*end.Y,
		})
	}
	return pts
}
