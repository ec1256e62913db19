package arandu

import (
	"fmt"
	"math"

	"github.com/arandu/archdiagram/internal/renderer"
	"github.com/arandu/archdiagram/internal/scene"
)

// Detail selects which of the two diagram layouts to build.
type Detail int

const (
	// DetailSimple is the tall poster layout: stacked layers, minimal text.
	DetailSimple Detail = iota
	// DetailFull is the wide landscape layout with ports, endpoints,
	// legend and technical notes.
	DetailFull
)

// ParseDetail maps a flag value to a Detail.
func ParseDetail(s string) (Detail, error) {
	switch s {
	case "simple":
		return DetailSimple, nil
	case "full", "detailed":
		return DetailFull, nil
	default:
		return 0, fmt.Errorf("unknown detail level %q (want simple or full)", s)
	}
}

// Build assembles the architecture diagram scene for the given system
// description, theme and detail level.
func Build(sys *System, th Theme, detail Detail) (*scene.Scene, error) {
	switch detail {
	case DetailSimple:
		return buildSimple(sys, th)
	case DetailFull:
		return buildFull(sys, th)
	default:
		return nil, fmt.Errorf("unknown detail level %d", detail)
	}
}

// sceneWriter appends commands to a scene and remembers the first error, so
// layout code can stay free of per-command error plumbing.
type sceneWriter struct {
	s   *scene.Scene
	err error
}

func (w *sceneWriter) add(cmd scene.Command) {
	if w.err != nil {
		return
	}
	w.err = w.s.Add(cmd)
}

// text adds a label, silently skipping empty strings so optional
// description fields never violate the non-empty text invariant.
func (w *sceneWriter) text(l scene.Label) {
	if l.Text == "" {
		return
	}
	w.add(l)
}

func (w *sceneWriter) arrow(preset scene.ConnectorPreset, start, end scene.Point, color, label string, labelOffset float64) {
	if w.err != nil {
		return
	}
	c, err := scene.NewConnector(preset, start, end, color, label, labelOffset)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.s.Add(c)
}

// panel adds a rounded panel filling the given rect.
func (w *sceneWriter) panel(r rect, fill, border string, borderWidth, cornerRadius, opacity float64) {
	w.add(scene.Panel{
		Pos: r.pos(), Width: r.W, Height: r.H,
		Fill: fill, Border: border, BorderWidth: borderWidth, CornerRadius: cornerRadius,
		Opacity: opacity,
	})
}

// grid lays a faint coordinate grid over the given region.
func (w *sceneWriter) grid(maxX, maxY, step float64, color string, opacity float64) {
	for x := 0.0; x <= maxX; x += step {
		w.add(scene.GridLine{Axis: scene.AxisVertical, Coord: x, Color: color, Opacity: opacity})
	}
	for y := 0.0; y <= maxY; y += step {
		w.add(scene.GridLine{Axis: scene.AxisHorizontal, Coord: y, Color: color, Opacity: opacity})
	}
}

// line draws a plain segment (no arrowhead) as a thin filled rectangle.
func (w *sceneWriter) line(a, b scene.Point, thickness float64, color string, opacity float64) {
	dist := scene.Distance(a, b)
	if dist == 0 {
		return
	}
	ox := -(b.Y - a.Y) / dist * thickness / 2
	oy := (b.X - a.X) / dist * thickness / 2
	w.add(scene.Polygon{
		Vertices: []scene.Point{
			a.Add(scene.Point{X: ox, Y: oy}),
			b.Add(scene.Point{X: ox, Y: oy}),
			b.Add(scene.Point{X: -ox, Y: -oy}),
			a.Add(scene.Point{X: -ox, Y: -oy}),
		},
		Fill:    color,
		Filled:  true,
		Opacity: opacity,
	})
}

// cornerAccent draws an L-shaped frame mark opening from corner along dx, dy.
func (w *sceneWriter) cornerAccent(corner scene.Point, dx, dy, size, thickness float64, color string, opacity float64) {
	w.line(corner, corner.Add(scene.Point{X: dx * size}), thickness, color, opacity)
	w.line(corner, corner.Add(scene.Point{Y: dy * size}), thickness, color, opacity)
}

// fileIcon draws a document shape: a rounded body with a folded top-right
// corner. foldDepth controls how far the fold cuts into the body.
func (w *sceneWriter) fileIcon(pos scene.Point, width, height, foldDepth float64, fill, edge, foldFill string, opacity float64) {
	w.add(scene.Panel{
		Pos: pos, Width: width, Height: height,
		Fill: fill, Border: edge, BorderWidth: 0.25, CornerRadius: 0.4,
		Opacity: opacity,
	})
	topRight := pos.Add(scene.Point{X: width, Y: height})
	w.add(scene.Polygon{
		Vertices: []scene.Point{
			topRight,
			topRight.Add(scene.Point{Y: -foldDepth}),
			topRight.Add(scene.Point{X: -foldDepth * 1.25}),
		},
		Fill: foldFill, Stroke: edge, StrokeWidth: 0.2,
		Filled: true, Opacity: 0.9,
	})
}

// buildSimple lays out the tall poster: model storage at the bottom, the
// desktop core in the middle, server and proxy above it and the client
// strip on top, with arrows following the launch order.
func buildSimple(sys *System, th Theme) (*scene.Scene, error) {
	ly := simpleLayout
	s, err := scene.New(ly.CanvasW, ly.CanvasH, th.Background)
	if err != nil {
		return nil, err
	}
	w := &sceneWriter{s: s}

	w.grid(ly.GridExtent, ly.GridExtent, 10, th.Grid, 0.15)

	// Model storage.
	w.panel(ly.Storage, th.Surface, th.Secondary, 0.4, 1, 0.9)
	for i, pos := range scene.StackedRow(ly.FileOrigin, ly.FileStep, len(sys.Models)) {
		body := renderer.LightenColor(th.Surface, 12+i*7)
		w.fileIcon(pos, 18, 10, 4, body, th.Secondary, th.Grid, 0.85)
		w.text(scene.Label{
			Pos: pos.Add(scene.Point{X: 9, Y: 4}), Text: "GGUF", Size: 1.5,
			Color: th.TextSoft, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
			Opacity: 0.8,
		})
	}
	w.text(scene.Label{
		Pos: ly.Storage.centerAt(ly.Storage.Y + 3), Text: "LOCAL MODEL REPOSITORY", Size: 1.8,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 0.9,
	})

	// Desktop core with inner glow.
	w.panel(ly.Core, th.SurfaceAlt, th.Primary, 0.6, 1.5, 0.95)
	w.panel(ly.Core.inset(2), "", th.PrimarySoft, 0.25, 1, 0.4)
	w.text(scene.Label{
		Pos: ly.Core.centerAt(ly.Core.Y + 22), Text: "ARANDU", Size: 3.2,
		Color: th.PrimarySoft, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 1,
	})
	for _, pos := range scene.StackedRow(ly.IconOrigin, ly.IconStep, 4) {
		w.panel(rect{X: pos.X, Y: pos.Y, W: 8, H: 8}, th.Grid, th.Secondary, 0.25, 0.5, 0.7)
	}

	// Inference server with a ringed-dish icon.
	w.panel(ly.ServerBox, th.SurfaceAlt, th.Secondary, 0.5, 1, 0.9)
	w.add(scene.Marker{Center: ly.ServerIcon, Radius: 6, Fill: th.Surface, Stroke: th.Secondary, StrokeWidth: 0.4, Filled: true, Opacity: 0.9})
	w.add(scene.Marker{Center: ly.ServerIcon, Radius: 3.5, Stroke: th.Primary, StrokeWidth: 0.3, Opacity: 0.7})
	w.add(scene.Marker{Center: ly.ServerIcon, Radius: 1.2, Fill: th.PrimarySoft, Filled: true, Opacity: 0.9})
	w.text(scene.Label{
		Pos: scene.Point{X: ly.ServerIcon.X, Y: ly.ServerBox.Y + 3}, Text: sys.Server.Name, Size: 2.2,
		Color: th.TextSoft, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 0.9,
	})
	w.text(scene.Label{
		Pos: scene.Point{X: ly.ServerIcon.X, Y: ly.ServerBox.Y - 1}, Text: fmt.Sprintf(":%d", sys.Server.Port), Size: 1.8,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.8,
	})

	// Proxy with a hexagon icon.
	w.panel(ly.ProxyBox, th.SurfaceAlt, th.Primary, 0.5, 1, 0.9)
	w.add(scene.Polygon{
		Vertices: scene.RegularPolygonVertices(ly.ProxyIcon, 5, 6, math.Pi/6),
		Fill:     th.Surface, Stroke: th.Primary, StrokeWidth: 0.4,
		Filled: true, Opacity: 0.9,
	})
	w.add(scene.Polygon{
		Vertices: scene.RegularPolygonVertices(ly.ProxyIcon, 2.5, 6, math.Pi/6),
		Stroke:   th.PrimarySoft, StrokeWidth: 0.3, Opacity: 0.6,
	})
	w.text(scene.Label{
		Pos: scene.Point{X: ly.ProxyIcon.X, Y: ly.ProxyBox.Y + 3}, Text: sys.Proxy.Name, Size: 2.2,
		Color: th.TextSoft, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 0.9,
	})
	w.text(scene.Label{
		Pos: scene.Point{X: ly.ProxyIcon.X, Y: ly.ProxyBox.Y - 1}, Text: fmt.Sprintf(":%d", sys.Proxy.Port), Size: 1.8,
		Color: th.Primary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.8,
	})

	// Client strip.
	w.panel(ly.ClientsBox, th.Surface, th.TextSoft, 0.3, 1, 0.7)
	clientCenters := scene.StackedRow(ly.ClientOrigin, ly.ClientStep, len(sys.Clients))
	for i, center := range clientCenters {
		client := sys.Clients[i]
		w.add(scene.Marker{Center: center, Radius: 5, Fill: th.Grid, Stroke: th.TextSoft, StrokeWidth: 0.3, Filled: true, Opacity: 0.85})
		w.text(scene.Label{
			Pos: center, Text: client.Badge, Size: 3,
			Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
			Face: scene.FaceBold, Opacity: 0.9,
		})
		w.text(scene.Label{
			Pos: scene.Point{X: center.X, Y: ly.ClientsBox.Y + 2}, Text: client.Name, Size: 1.5,
			Color: th.TextSoft, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
			Opacity: 0.8,
		})
	}

	// Flow arrows, bottom to top.
	w.arrow(scene.PresetSimple, ly.Storage.centerAt(ly.Storage.Y+ly.Storage.H), ly.Core.centerAt(ly.Core.Y), th.Secondary, "", 0.5)
	w.arrow(scene.PresetSimple, scene.Point{X: 35, Y: ly.Core.Y + ly.Core.H}, scene.Point{X: ly.ServerIcon.X, Y: ly.ServerBox.Y}, th.PrimarySoft, "", 0.5)
	w.arrow(scene.PresetSimple, scene.Point{X: 65, Y: ly.Core.Y + ly.Core.H}, scene.Point{X: ly.ProxyIcon.X, Y: ly.ProxyBox.Y}, th.Primary, "", 0.5)
	for _, center := range clientCenters {
		w.arrow(scene.PresetSimple, scene.Point{X: ly.ProxyIcon.X, Y: ly.ProxyBox.Y + ly.ProxyBox.H}, scene.Point{X: center.X, Y: ly.ClientsBox.Y - 5}, th.TextSoft, "", 0.5)
	}

	// In-flight data dots.
	dots := []scene.Point{{X: 40, Y: 55}, {X: 60, Y: 58}, {X: 45, Y: 85}, {X: 75, Y: 95}, {X: 35, Y: 105}}
	for i, pos := range dots {
		w.add(scene.Marker{Center: pos, Radius: 0.8, Fill: th.PrimarySoft, Filled: true, Opacity: 0.4 + float64(i)*0.1})
	}

	// Network crosshair next to the clients.
	w.line(scene.Point{X: 85, Y: 117}, scene.Point{X: 95, Y: 117}, 0.25, th.TextSoft, 0.5)
	w.line(scene.Point{X: 90, Y: 112}, scene.Point{X: 90, Y: 122}, 0.25, th.TextSoft, 0.5)

	w.cornerAccent(ly.AccentLeft, 1, -1, 3, 0.4, th.Primary, 0.6)
	w.cornerAccent(ly.AccentRight, -1, -1, 3, 0.4, th.Primary, 0.6)

	w.text(scene.Label{
		Pos: ly.Title, Text: sys.Title, Size: 4,
		Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 1,
	})
	w.text(scene.Label{
		Pos: ly.Subtitle, Text: sys.Subtitle, Size: 1.5,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.8,
	})
	w.text(scene.Label{
		Pos: ly.Footer, Text: sys.Footer, Size: 1.5,
		Color: th.TextSoft, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.6,
	})

	if w.err != nil {
		return nil, w.err
	}
	return s, nil
}
