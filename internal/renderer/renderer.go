// Package renderer rasterizes a scene description into a PNG image. It
// paints draw commands strictly in insertion order onto an RGBA surface and
// exports the result to disk. Rendering is a pure function of the scene and
// options: no randomness, no clock reads, so repeated runs produce
// byte-identical files.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/arandu/archdiagram/internal/scene"
)

// Options controls rasterization.
type Options struct {
	// Scale is the number of device pixels per canvas unit. Values <= 0
	// default to 1.
	Scale float64
	// Padding is a uniform margin in canvas units added on every side and
	// filled with the background color.
	Padding float64
	// Background fills the whole raster, padding included, before any
	// command paints. Empty defaults to white.
	Background string
}

// Surface is the rasterized drawing target produced by Render.
type Surface struct {
	img *image.RGBA
}

// Image exposes the underlying raster.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Render paints every command of the scene in list order onto a fresh
// surface. Commands are never reordered or culled; a transparent or
// empty-colored command still runs through the same code path and simply
// leaves no visible trace. The pixel dimensions are
// (canvas + 2*padding) * scale per axis, rounded to the nearest integer.
func Render(s *scene.Scene, opts Options) (*Surface, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	if opts.Padding < 0 {
		return nil, fmt.Errorf("padding must not be negative, got %g", opts.Padding)
	}

	width := int(math.Round((s.Width + 2*opts.Padding) * scale))
	height := int(math.Round((s.Height + 2*opts.Padding) * scale))
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	background := parseHex(s.Background, 1)
	if opts.Background != "" {
		background = parseHex(opts.Background, 1)
	}
	if background.A == 0 {
		background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	p := &painter{
		img:     img,
		scale:   scale,
		padding: opts.Padding,
		canvasH: s.Height,
		faces:   newFaceCache(),
	}

	for _, cmd := range s.Commands() {
		var err error
		switch c := cmd.(type) {
		case scene.GridLine:
			p.paintGridLine(c, s.Width, s.Height)
		case scene.Panel:
			p.paintPanel(c)
		case scene.Label:
			err = p.paintLabel(c)
		case scene.Marker:
			p.paintMarker(c)
		case scene.Polygon:
			p.paintPolygon(c)
		case scene.Connector:
			err = p.paintConnector(c)
		default:
			err = fmt.Errorf("unknown draw command type %T", cmd)
		}
		if err != nil {
			return nil, err
		}
	}

	return &Surface{img: img}, nil
}

func (p *painter) paintGridLine(g scene.GridLine, canvasW, canvasH float64) {
	var from, to scene.Point
	if g.Axis == scene.AxisVertical {
		from = scene.Point{X: g.Coord, Y: 0}
		to = scene.Point{X: g.Coord, Y: canvasH}
	} else {
		from = scene.Point{X: 0, Y: g.Coord}
		to = scene.Point{X: canvasW, Y: g.Coord}
	}
	// Grid lines are hairlines: one device pixel regardless of scale.
	p.strokePolyline([]devPoint{p.device(from), p.device(to)}, 1, parseHex(g.Color, g.Opacity), false, false)
}

func (p *painter) paintPanel(c scene.Panel) {
	topLeft := p.device(scene.Point{X: c.Pos.X, Y: c.Pos.Y + c.Height})
	p.paintRoundedRect(
		topLeft.X, topLeft.Y,
		p.length(c.Width), p.length(c.Height),
		p.length(c.CornerRadius), p.length(c.BorderWidth),
		parseHex(c.Fill, c.Opacity),
		parseHex(c.Border, c.Opacity),
	)
}

func (p *painter) paintLabel(c scene.Label) error {
	return p.drawText(c.Text, p.device(c.Pos), p.length(c.Size), parseHex(c.Color, c.Opacity), c.HAlign, c.VAlign, c.Face)
}

func (p *painter) paintMarker(c scene.Marker) {
	center := p.device(c.Center)
	fill := color.NRGBA{}
	if c.Filled {
		fill = parseHex(c.Fill, c.Opacity)
	}
	stroke := parseHex(c.Stroke, c.Opacity)
	strokeWidth := p.length(c.StrokeWidth)
	if stroke.A > 0 && strokeWidth <= 0 {
		strokeWidth = 1
	}
	p.paintCircle(center.X, center.Y, p.length(c.Radius), strokeWidth, fill, stroke)
}

func (p *painter) paintPolygon(c scene.Polygon) {
	dev := make([]devPoint, len(c.Vertices))
	for i, v := range c.Vertices {
		dev[i] = p.device(v)
	}
	if c.Filled {
		p.fillPolygon(dev, parseHex(c.Fill, c.Opacity))
	}
	stroke := parseHex(c.Stroke, c.Opacity)
	if stroke.A > 0 {
		width := p.length(c.StrokeWidth)
		if width <= 0 {
			width = 1
		}
		p.strokePolyline(dev, width, stroke, false, true)
	}
}

// Connector label placement, in canvas units above the anchor point.
const (
	connectorLabelRise = 1.5
	connectorLabelSize = 1.2
)

func (p *painter) paintConnector(c scene.Connector) error {
	path := connectorPath(c.Start, c.End, c.Curvature, p.scale)
	dev := make([]devPoint, len(path))
	for i, pt := range path {
		dev[i] = p.device(pt)
	}

	col := parseHex(c.Color, c.Opacity)
	width := math.Max(p.length(c.Width), 1)
	p.strokePolyline(dev, width, col, c.Dashed, false)
	p.paintArrowhead(dev[len(dev)-2], dev[len(dev)-1], width, col)

	if c.Label != "" {
		anchor := scene.Midpoint(c.Start, c.End, c.LabelOffset)
		anchor.Y += connectorLabelRise
		return p.drawText(c.Label, p.device(anchor), p.length(connectorLabelSize), col, scene.AlignCenter, scene.AlignBottom, scene.FaceRegular)
	}
	return nil
}

// connectorPath computes the canvas-space polyline for a connector. A zero
// curvature yields a straight segment. Otherwise the path is a quadratic
// arc whose control point sits perpendicular to the start-end chord at its
// midpoint, offset by curvature times the chord length; positive curvature
// bows to the left of the direction of travel.
func connectorPath(start, end scene.Point, curvature, scale float64) []scene.Point {
	dist := scene.Distance(start, end)
	if curvature == 0 || dist == 0 {
		return []scene.Point{start, end}
	}

	ux := (end.X - start.X) / dist
	uy := (end.Y - start.Y) / dist
	k := curvature * dist
	control := scene.Midpoint(start, end, 0.5).Add(scene.Point{X: -uy * k, Y: ux * k})

	steps := int(math.Max(16, dist*scale/3))
	return quadBezierPoints(start, control, end, steps)
}
