package arandu

import (
	"fmt"
	"math"
	"strings"

	"github.com/arandu/archdiagram/internal/renderer"
	"github.com/arandu/archdiagram/internal/scene"
)

// Notes shown in the technical-details box of the full layout.
var techDetails = []string{
	"• Concurrent: Multiple clients OK",
	"• Sequential: One request at a time",
	"• Timeout: 5min request, 10s connect",
	"• Format: OpenAI-compatible JSON",
	"• Streaming: SSE for real-time",
}

// Per-client wire protocol shown on the proxy fan-out arrows.
var fanOutProtocols = []string{"SSE/HTTP", "HTTP", "REST"}

// buildFull lays out the wide landscape diagram: storage and the desktop on
// the left, server and proxy in the middle, clients on the upper right, plus
// a protocol legend and technical notes.
func buildFull(sys *System, th Theme) (*scene.Scene, error) {
	ly := fullLayout
	s, err := scene.New(ly.CanvasW, ly.CanvasH, th.Background)
	if err != nil {
		return nil, err
	}
	w := &sceneWriter{s: s}

	w.grid(ly.CanvasW, ly.CanvasH, 10, th.Grid, 0.1)

	buildFullStorage(w, sys, th)
	buildFullDesktop(w, sys, th)
	buildFullServer(w, sys, th)
	buildFullProxy(w, sys, th)
	clientCards := buildFullClients(w, sys, th)
	buildFullFlows(w, sys, th, clientCards)
	buildFullLegend(w, th)
	buildFullNotes(w, th)

	// Title block and footer.
	w.text(scene.Label{
		Pos: ly.Title, Text: sys.Title, Size: 5,
		Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 1,
	})
	w.text(scene.Label{
		Pos: ly.Subtitle, Text: sys.Subtitle, Size: 2.5,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.9,
	})
	w.text(scene.Label{
		Pos: ly.Footer, Text: fullFooter(sys), Size: 1.5,
		Color: th.Muted, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.7,
	})

	w.cornerAccent(ly.AccentLeft, 1, -1, 4, 0.5, th.Primary, 0.6)
	w.cornerAccent(ly.AccentRight, -1, -1, 4, 0.5, th.Primary, 0.6)

	if w.err != nil {
		return nil, w.err
	}
	return s, nil
}

func buildFullStorage(w *sceneWriter, sys *System, th Theme) {
	box := fullLayout.Storage
	w.panel(box, th.Surface, th.Secondary, 0.5, 1, 0.95)
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + box.H - 2), Text: "LOCAL MODEL STORAGE", Size: 2.5,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 0.9,
	})

	rows := scene.StackedRow(fullLayout.RowOrigin, fullLayout.RowStep, len(sys.Models))
	for i, pos := range rows {
		model := sys.Models[i]
		w.fileIcon(pos, 45, 4, 3, renderer.LightenColor(th.Surface, 10), th.Secondary, renderer.DarkenColor(th.Surface, 15), 0.9)
		w.text(scene.Label{
			Pos: pos.Add(scene.Point{X: 2, Y: 2}), Text: model.Name, Size: 1.5,
			Color: th.Text, HAlign: scene.AlignLeft, VAlign: scene.AlignMiddle,
			Face: scene.FaceMono, Opacity: 0.85,
		})
		w.text(scene.Label{
			Pos: pos.Add(scene.Point{X: 43, Y: 2}), Text: model.Size, Size: 1.4,
			Color: th.Muted, HAlign: scene.AlignRight, VAlign: scene.AlignMiddle,
			Opacity: 0.7,
		})
	}

	w.text(scene.Label{
		Pos: box.centerAt(box.Y + 2), Text: sys.StorageSummary(), Size: 1.8,
		Color: th.Muted, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.8,
	})
}

func buildFullDesktop(w *sceneWriter, sys *System, th Theme) {
	box := fullLayout.Desktop
	w.panel(box, th.SurfaceAlt, th.Primary, 0.7, 1.5, 0.98)
	w.panel(box.inset(2), "", th.Primary, 0.3, 1, 0.3)
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + box.H - 4), Text: "ARANDU DESKTOP", Size: 3.5,
		Color: th.Primary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 1,
	})

	// App icon grid, three rows of four.
	for _, rowOrigin := range scene.StackedRow(fullLayout.IconGridOrigin, fullLayout.IconRowStep, 3) {
		for _, pos := range scene.StackedRow(rowOrigin, fullLayout.IconColStep, 4) {
			w.panel(rect{X: pos.X, Y: pos.Y, W: 7, H: 7}, renderer.LightenColor(th.Surface, 10), th.Secondary, 0.25, 0.5, 0.7)
		}
	}

	// Network-serve widget.
	widget := fullLayout.Widget
	w.panel(widget, th.Surface, th.Primary, 0.4, 0.7, 0.95)
	w.text(scene.Label{
		Pos: widget.centerAt(widget.Y + 9), Text: "NETWORK SERVE", Size: 1.8,
		Color: th.Primary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 1,
	})
	w.text(scene.Label{
		Pos: widget.centerAt(widget.Y + 5), Text: "Status: ACTIVE", Size: 1.5,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 1,
	})
	w.text(scene.Label{
		Pos: widget.centerAt(widget.Y + 2), Text: sys.ServeAddr, Size: 1.5,
		Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceMono, Opacity: 1,
	})

	// Health indicators.
	statuses := []string{"Proxy: ON", "Server: RUNNING"}
	for i, pos := range scene.StackedRow(fullLayout.StatusAnchor, fullLayout.StatusStep, len(statuses)) {
		w.add(scene.Marker{Center: pos, Radius: 1.2, Fill: th.Status, Filled: true, Opacity: 0.9})
		w.text(scene.Label{
			Pos: pos.Add(scene.Point{X: 3}), Text: statuses[i], Size: 1.5,
			Color: th.Text, HAlign: scene.AlignLeft, VAlign: scene.AlignMiddle,
			Opacity: 0.8,
		})
	}
}

func buildFullServer(w *sceneWriter, sys *System, th Theme) {
	box := fullLayout.ServerBox
	icon := fullLayout.ServerIcon
	w.panel(box, th.Surface, th.Secondary, 0.6, 1, 0.95)
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + box.H - 3), Text: sys.Server.Name, Size: 2.5,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 0.9,
	})

	// Concentric dish rings around a solid core.
	w.add(scene.Marker{Center: icon, Radius: 10, Stroke: th.Secondary, StrokeWidth: 0.5, Opacity: 0.6})
	w.add(scene.Marker{Center: icon, Radius: 6, Stroke: th.Primary, StrokeWidth: 0.4, Opacity: 0.8})
	w.add(scene.Marker{Center: icon, Radius: 3, Fill: th.Primary, Filled: true, Opacity: 0.95})

	indicator := fullLayout.ModelIndicator
	w.panel(indicator, renderer.DarkenColor(th.Surface, 10), th.Primary, 0.3, 0.7, 0.9)
	w.text(scene.Label{
		Pos: indicator.center(), Text: "Active: " + sys.Server.ActiveModel, Size: 1.5,
		Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 0.9,
	})

	w.text(scene.Label{
		Pos: box.centerAt(box.Y + 8), Text: fmt.Sprintf("PORT %d", sys.Server.Port), Size: 2,
		Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceMono, Opacity: 1,
	})
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + 5), Text: sys.Server.Host, Size: 1.5,
		Color: th.Muted, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 1,
	})
}

func buildFullProxy(w *sceneWriter, sys *System, th Theme) {
	box := fullLayout.ProxyBox
	icon := fullLayout.ProxyIcon
	w.panel(box, th.Surface, th.Primary, 0.6, 1, 0.95)
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + box.H - 3), Text: sys.Proxy.Name, Size: 2.5,
		Color: th.Primary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 0.9,
	})

	w.add(scene.Polygon{
		Vertices: scene.RegularPolygonVertices(icon, 8, 6, math.Pi/6),
		Fill:     renderer.DarkenColor(th.Surface, 10), Stroke: th.Primary, StrokeWidth: 0.5,
		Filled: true, Opacity: 0.95,
	})
	w.add(scene.Polygon{
		Vertices: scene.RegularPolygonVertices(icon, 4, 6, math.Pi/6),
		Stroke:   th.Primary, StrokeWidth: 0.4, Opacity: 0.6,
	})

	endpoints := scene.StackedRow(fullLayout.EndpointOrigin, fullLayout.EndpointStep, len(sys.Proxy.Endpoints))
	for i, pos := range endpoints {
		w.text(scene.Label{
			Pos: pos, Text: sys.Proxy.Endpoints[i], Size: 1.2,
			Color: th.Text, HAlign: scene.AlignLeft, VAlign: scene.AlignMiddle,
			Face: scene.FaceMono, Opacity: 0.7,
		})
	}

	w.text(scene.Label{
		Pos: box.centerAt(box.Y + 8), Text: fmt.Sprintf("PORT %d", sys.Proxy.Port), Size: 2,
		Color: th.Primary, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceMono, Opacity: 1,
	})
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + 5), Text: sys.Proxy.Host, Size: 1.5,
		Color: th.Muted, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Opacity: 1,
	})
}

// buildFullClients draws the client cards and returns each card's bottom
// center so the fan-out arrows know where to land.
func buildFullClients(w *sceneWriter, sys *System, th Theme) []scene.Point {
	box := fullLayout.ClientsBox
	w.panel(box, th.Surface, th.Text, 0.4, 1, 0.8)
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + box.H - 3), Text: "EXTERNAL CLIENTS", Size: 2.5,
		Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 0.9,
	})

	cards := scene.StackedRow(fullLayout.CardOrigin, fullLayout.CardStep, len(sys.Clients))
	anchors := make([]scene.Point, len(cards))
	for i, pos := range cards {
		client := sys.Clients[i]
		cx := pos.X + fullLayout.CardW/2
		anchors[i] = scene.Point{X: cx, Y: pos.Y - 3}

		w.panel(rect{X: pos.X, Y: pos.Y, W: fullLayout.CardW, H: fullLayout.CardH},
			renderer.LightenColor(th.Surface, 10), th.Text, 0.3, 1, 0.9)
		logo := scene.Point{X: cx, Y: pos.Y + 15}
		w.add(scene.Marker{
			Center: logo, Radius: 5,
			Fill: renderer.DarkenColor(th.Secondary, 20), Stroke: th.Text, StrokeWidth: 0.4,
			Filled: true, Opacity: 1,
		})
		w.text(scene.Label{
			Pos: logo, Text: client.Badge, Size: 3.5,
			Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
			Face: scene.FaceBold, Opacity: 1,
		})
		w.text(scene.Label{
			Pos: scene.Point{X: cx, Y: pos.Y + 7}, Text: client.Name, Size: 1.8,
			Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
			Opacity: 1,
		})
		if client.Port > 0 {
			w.text(scene.Label{
				Pos: scene.Point{X: cx, Y: pos.Y + 3}, Text: fmt.Sprintf("Port: %d", client.Port), Size: 1.5,
				Color: th.Muted, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
				Face: scene.FaceMono, Opacity: 1,
			})
		}
		w.text(scene.Label{
			Pos: scene.Point{X: cx, Y: pos.Y}, Text: client.Note, Size: 1.2,
			Color: th.Secondary, HAlign: scene.AlignCenter, VAlign: scene.AlignBottom,
			Face: scene.FaceMono, Opacity: 1,
		})
	}
	return anchors
}

func buildFullFlows(w *sceneWriter, sys *System, th Theme, clientAnchors []scene.Point) {
	ly := fullLayout
	w.arrow(scene.PresetSimple,
		scene.Point{X: ly.Storage.X + ly.Storage.W, Y: 20},
		scene.Point{X: ly.Desktop.X, Y: 42},
		th.Secondary, "Load Model", 0.5)
	w.arrow(scene.PresetSimple,
		scene.Point{X: ly.Desktop.X + ly.Desktop.W, Y: 55},
		scene.Point{X: ly.ServerBox.X, Y: 50},
		th.Primary, fmt.Sprintf("Launch :%d", sys.Server.Port), 0.5)
	w.arrow(scene.PresetSimple,
		scene.Point{X: ly.Desktop.X + ly.Desktop.W, Y: 50},
		scene.Point{X: ly.ProxyBox.X, Y: 50},
		th.Primary, fmt.Sprintf("Start :%d", sys.Proxy.Port), 0.5)

	// Proxy and server exchange request and response.
	w.arrow(scene.PresetThick,
		scene.Point{X: ly.ProxyBox.X, Y: 35}, scene.Point{X: ly.ProxyBox.X - 5, Y: 35},
		th.Secondary, "HTTP", 0.5)
	w.arrow(scene.PresetThick,
		scene.Point{X: ly.ProxyBox.X - 5, Y: 33}, scene.Point{X: ly.ProxyBox.X, Y: 33},
		th.Secondary, "JSON", 0.5)

	// Fan out from the proxy to every client card.
	for i, anchor := range clientAnchors {
		start := scene.Point{X: ly.ProxyBox.X, Y: 60 - float64(i)*2}
		protocol := fanOutProtocols[i%len(fanOutProtocols)]
		w.arrow(scene.PresetDashed, start, anchor, th.Text, protocol, 0.3)
	}

	// In-flight packets on each hop.
	packets := []struct {
		pos   scene.Point
		color string
	}{
		{scene.Point{X: 65, Y: 30}, th.Text},
		{scene.Point{X: 110, Y: 52}, th.Primary},
		{scene.Point{X: 148, Y: 52}, th.Primary},
		{scene.Point{X: 155, Y: 34}, th.Secondary},
		{scene.Point{X: 158, Y: 68}, th.Text},
	}
	for _, p := range packets {
		w.add(scene.Marker{Center: p.pos, Radius: 1, Fill: p.color, Filled: true, Opacity: 0.6})
	}
}

func buildFullLegend(w *sceneWriter, th Theme) {
	box := fullLayout.Legend
	w.panel(box, th.Surface, th.Muted, 0.3, 1, 0.9)
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + box.H - 3), Text: "DATA FLOW", Size: 2.2,
		Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 1,
	})

	items := []struct {
		color, label, desc string
	}{
		{th.Secondary, "HTTP/TCP", "Transport"},
		{th.Primary, "Processing", "Server"},
		{th.Text, "OpenAI API", "Protocol"},
		{th.Alert, "Error/Warning", "State"},
	}
	for i, item := range items {
		y := box.Y + box.H - 8 - float64(i)*5
		w.add(scene.Marker{Center: scene.Point{X: box.X + 3, Y: y}, Radius: 1.2, Fill: item.color, Filled: true, Opacity: 0.9})
		w.text(scene.Label{
			Pos: scene.Point{X: box.X + 6, Y: y}, Text: item.label, Size: 1.8,
			Color: th.Text, HAlign: scene.AlignLeft, VAlign: scene.AlignMiddle,
			Face: scene.FaceBold, Opacity: 1,
		})
		w.text(scene.Label{
			Pos: scene.Point{X: box.X + 25, Y: y}, Text: item.desc, Size: 1.5,
			Color: th.Muted, HAlign: scene.AlignLeft, VAlign: scene.AlignMiddle,
			Opacity: 1,
		})
	}
}

func buildFullNotes(w *sceneWriter, th Theme) {
	box := fullLayout.Notes
	w.panel(box, th.Surface, th.Muted, 0.3, 1, 0.9)
	w.text(scene.Label{
		Pos: box.centerAt(box.Y + box.H - 3), Text: "TECHNICAL DETAILS", Size: 2.2,
		Color: th.Text, HAlign: scene.AlignCenter, VAlign: scene.AlignMiddle,
		Face: scene.FaceBold, Opacity: 1,
	})
	for i, detail := range techDetails {
		w.text(scene.Label{
			Pos: scene.Point{X: box.X + 2, Y: box.Y + box.H - 7 - float64(i)*4}, Text: detail, Size: 1.5,
			Color: th.Text, HAlign: scene.AlignLeft, VAlign: scene.AlignMiddle,
			Opacity: 0.85,
		})
	}
}

// fullFooter extends the base footer with port assignments and the names of
// the known clients.
func fullFooter(sys *System) string {
	parts := []string{}
	if sys.Footer != "" {
		parts = append(parts, sys.Footer)
	}
	parts = append(parts,
		fmt.Sprintf("Port %d (llama.cpp)", sys.Server.Port),
		fmt.Sprintf("Port %d (OpenAI Proxy)", sys.Proxy.Port),
	)

	var names []string
	for _, c := range sys.Clients {
		if c.Port > 0 {
			names = append(names, c.Name)
		}
	}
	if len(names) > 0 {
		parts = append(parts, strings.Join(names, "/")+" Compatible")
	}
	return strings.Join(parts, "  •  ")
}
