package arandu

import "github.com/arandu/archdiagram/internal/scene"

// rect is an axis-aligned region in canvas units, anchored bottom-left.
type rect struct {
	X, Y, W, H float64
}

func (r rect) pos() scene.Point {
	return scene.Point{X: r.X, Y: r.Y}
}

func (r rect) center() scene.Point {
	return scene.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// centerAt returns the point at the horizontal center of the rect, at
// absolute canvas height y.
func (r rect) centerAt(y float64) scene.Point {
	return scene.Point{X: r.X + r.W/2, Y: y}
}

// inset shrinks the rect by d on every side.
func (r rect) inset(d float64) rect {
	return rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// All layout geometry lives here so the drawing code reads as structure,
// not magic numbers.

// simpleLayout is the tall 100x130 poster.
var simpleLayout = struct {
	CanvasW, CanvasH float64
	GridExtent       float64

	Storage    rect
	FileOrigin scene.Point
	FileStep   scene.Point

	Core       rect
	IconOrigin scene.Point
	IconStep   scene.Point

	ServerBox  rect
	ServerIcon scene.Point
	ProxyBox   rect
	ProxyIcon  scene.Point

	ClientsBox   rect
	ClientOrigin scene.Point
	ClientStep   scene.Point

	Title, Subtitle, Footer scene.Point
	AccentLeft, AccentRight scene.Point
}{
	CanvasW:    100,
	CanvasH:    130,
	GridExtent: 100,

	Storage:    rect{X: 10, Y: 10, W: 80, H: 25},
	FileOrigin: scene.Point{X: 15, Y: 18},
	FileStep:   scene.Point{X: 25, Y: 5},

	Core:       rect{X: 20, Y: 42, W: 60, H: 28},
	IconOrigin: scene.Point{X: 28, Y: 48},
	IconStep:   scene.Point{X: 12},

	ServerBox:  rect{X: 15, Y: 80, W: 32, H: 20},
	ServerIcon: scene.Point{X: 31, Y: 90},
	ProxyBox:   rect{X: 53, Y: 80, W: 32, H: 20},
	ProxyIcon:  scene.Point{X: 69, Y: 90},

	ClientsBox:   rect{X: 12, Y: 108, W: 76, H: 18},
	ClientOrigin: scene.Point{X: 28, Y: 117},
	ClientStep:   scene.Point{X: 22},

	Title:       scene.Point{X: 50, Y: 127},
	Subtitle:    scene.Point{X: 50, Y: 124},
	Footer:      scene.Point{X: 50, Y: 4},
	AccentLeft:  scene.Point{X: 5, Y: 125},
	AccentRight: scene.Point{X: 95, Y: 125},
}

// fullLayout is the wide 200x120 landscape diagram.
var fullLayout = struct {
	CanvasW, CanvasH float64

	Storage   rect
	RowOrigin scene.Point
	RowStep   scene.Point

	Desktop        rect
	IconGridOrigin scene.Point
	IconRowStep    scene.Point
	IconColStep    scene.Point
	Widget         rect
	StatusAnchor   scene.Point
	StatusStep     scene.Point

	ServerBox      rect
	ServerIcon     scene.Point
	ModelIndicator rect

	ProxyBox       rect
	ProxyIcon      scene.Point
	EndpointOrigin scene.Point
	EndpointStep   scene.Point

	ClientsBox   rect
	CardOrigin   scene.Point
	CardStep     scene.Point
	CardW, CardH float64

	Legend rect
	Notes  rect

	Title, Subtitle, Footer scene.Point
	AccentLeft, AccentRight scene.Point
}{
	CanvasW: 200,
	CanvasH: 120,

	Storage:   rect{X: 5, Y: 5, W: 55, H: 20},
	RowOrigin: scene.Point{X: 10, Y: 18},
	RowStep:   scene.Point{Y: -5},

	Desktop:        rect{X: 70, Y: 35, W: 50, H: 50},
	IconGridOrigin: scene.Point{X: 75, Y: 65},
	IconRowStep:    scene.Point{Y: -10},
	IconColStep:    scene.Point{X: 10},
	Widget:         rect{X: 73, Y: 40, W: 20, H: 12},
	StatusAnchor:   scene.Point{X: 112, Y: 57},
	StatusStep:     scene.Point{Y: -4},

	ServerBox:      rect{X: 130, Y: 25, W: 35, H: 40},
	ServerIcon:     scene.Point{X: 147.5, Y: 50},
	ModelIndicator: rect{X: 133, Y: 37, W: 29, H: 6},

	ProxyBox:       rect{X: 170, Y: 25, W: 28, H: 40},
	ProxyIcon:      scene.Point{X: 184, Y: 50},
	EndpointOrigin: scene.Point{X: 172, Y: 39},
	EndpointStep:   scene.Point{Y: -3},

	ClientsBox: rect{X: 130, Y: 75, W: 68, H: 40},
	CardOrigin: scene.Point{X: 135, Y: 80},
	CardStep:   scene.Point{X: 23},
	CardW:      18,
	CardH:      22,

	Legend: rect{X: 5, Y: 85, W: 40, H: 30},
	Notes:  rect{X: 50, Y: 85, W: 45, H: 30},

	Title:       scene.Point{X: 100, Y: 117},
	Subtitle:    scene.Point{X: 100, Y: 113},
	Footer:      scene.Point{X: 100, Y: 2},
	AccentLeft:  scene.Point{X: 2, Y: 118},
	AccentRight: scene.Point{X: 198, Y: 118},
}
