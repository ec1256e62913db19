package renderer

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/arandu/archdiagram/internal/scene"
)

// testScene builds a small scene touching every command variant.
func testScene(t *testing.T) *scene.Scene {
	t.Helper()

	s, err := scene.New(100, 100, "#0a1628")
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}

	cmds := []scene.Command{
		scene.GridLine{Axis: scene.AxisHorizontal, Coord: 50, Color: "#1a3a52", Opacity: 0.15},
		scene.GridLine{Axis: scene.AxisVertical, Coord: 50, Color: "#1a3a52", Opacity: 0.15},
		scene.Panel{Pos: scene.Point{X: 10, Y: 10}, Width: 80, Height: 40, Fill: "#132639", Border: "#d4a84b", BorderWidth: 0.5, CornerRadius: 2, Opacity: 0.95},
		scene.Polygon{Vertices: scene.RegularPolygonVertices(scene.Point{X: 50, Y: 70}, 8, 6, 0), Fill: "#0d1f33", Stroke: "#d4a84b", StrokeWidth: 0.4, Filled: true, Opacity: 0.9},
		scene.Marker{Center: scene.Point{X: 50, Y: 70}, Radius: 3, Stroke: "#f0c674", StrokeWidth: 0.3, Opacity: 0.7},
		scene.Label{Pos: scene.Point{X: 50, Y: 30}, Text: "CORE", Size: 4, Color: "#f0c674", Opacity: 1},
		scene.Connector{Start: scene.Point{X: 20, Y: 90}, End: scene.Point{X: 80, Y: 90}, Color: "#e8eaed", Width: 0.4, Curvature: 0.1, Opacity: 0.8, Label: "HTTP", LabelOffset: 0.5},
		scene.Connector{Start: scene.Point{X: 20, Y: 85}, End: scene.Point{X: 80, Y: 85}, Color: "#e8eaed", Width: 0.25, Curvature: -0.1, Dashed: true, Opacity: 0.6},
	}
	for i, cmd := range cmds {
		if err := s.Add(cmd); err != nil {
			t.Fatalf("Add(%d) error = %v", i, err)
		}
	}
	return s
}

func TestRenderDeterminism(t *testing.T) {
	opts := Options{Scale: 2, Padding: 5}

	encode := func() []byte {
		surface, err := Render(testScene(t), opts)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, surface.Image()); err != nil {
			t.Fatalf("png.Encode() error = %v", err)
		}
		return buf.Bytes()
	}

	first := encode()
	second := encode()
	if !bytes.Equal(first, second) {
		t.Error("two renders of the same scene produced different bytes")
	}
}

func TestRenderPixelDimensions(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		padding float64
		want    int // per axis, canvas is 100x100
	}{
		{
			name:    "scale 2 padding 5",
			scale:   2,
			padding: 5,
			want:    220,
		},
		{
			name:  "unit scale no padding",
			scale: 1,
			want:  100,
		},
		{
			name: "zero scale defaults to 1",
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := scene.New(100, 100, "#ffffff")
			if err != nil {
				t.Fatalf("scene.New() error = %v", err)
			}
			surface, err := Render(s, Options{Scale: tt.scale, Padding: tt.padding})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			bounds := surface.Image().Bounds()
			if bounds.Dx() != tt.want || bounds.Dy() != tt.want {
				t.Errorf("surface size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.want, tt.want)
			}
		})
	}
}

func TestRenderNegativePadding(t *testing.T) {
	s, err := scene.New(100, 100, "#ffffff")
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}
	if _, err := Render(s, Options{Padding: -1}); err == nil {
		t.Error("Render() with negative padding should fail")
	}
}

func TestRenderLayerOrdering(t *testing.T) {
	s, err := scene.New(100, 100, "#ffffff")
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}

	panelFill := "#1e88e5"
	labelColor := "#e53935"
	if err := s.Add(scene.Panel{Pos: scene.Point{X: 10, Y: 10}, Width: 80, Height: 80, Fill: panelFill, Opacity: 1}); err != nil {
		t.Fatalf("Add(panel) error = %v", err)
	}
	if err := s.Add(scene.Label{Pos: scene.Point{X: 50, Y: 50}, Text: "X", Size: 30, Color: labelColor, Face: scene.FaceBold, Opacity: 1}); err != nil {
		t.Fatalf("Add(label) error = %v", err)
	}

	surface, err := Render(s, Options{Scale: 2})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := surface.Image()

	wantLabel := color.RGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
	wantPanel := color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}

	var labelPixels, panelPixels int
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			switch img.RGBAAt(x, y) {
			case wantLabel:
				labelPixels++
			case wantPanel:
				panelPixels++
			}
		}
	}

	// The label was added after the panel and must win at the overlap: its
	// glyph interior keeps the exact label color instead of being occluded.
	if labelPixels == 0 {
		t.Error("label painted after panel left no pixels of its own color")
	}
	if panelPixels == 0 {
		t.Error("panel fill missing around the label")
	}
}

func TestRenderEmptyAndInvisibleCommandsStillPaint(t *testing.T) {
	s, err := scene.New(50, 50, "#ffffff")
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}

	// Commands with empty colors or zero opacity are legal and must run
	// through the renderer without error.
	cmds := []scene.Command{
		scene.Panel{Pos: scene.Point{X: 5, Y: 5}, Width: 10, Height: 10, Opacity: 0},
		scene.Panel{Pos: scene.Point{X: 20, Y: 5}, Width: 10, Height: 10, Fill: "", Opacity: 1},
		scene.Marker{Center: scene.Point{X: 25, Y: 25}, Radius: 2, Opacity: 0},
		scene.Connector{Start: scene.Point{X: 0, Y: 0}, End: scene.Point{X: 50, Y: 50}, Opacity: 0},
	}
	for i, cmd := range cmds {
		if err := s.Add(cmd); err != nil {
			t.Fatalf("Add(%d) error = %v", i, err)
		}
	}

	if _, err := Render(s, Options{}); err != nil {
		t.Errorf("Render() error = %v", err)
	}
}

func TestConnectorPath(t *testing.T) {
	start := scene.Point{X: 0, Y: 0}
	end := scene.Point{X: 10, Y: 0}

	t.Run("zero curvature is a straight segment", func(t *testing.T) {
		path := connectorPath(start, end, 0, 2)
		if len(path) != 2 {
			t.Fatalf("path length = %d, want 2", len(path))
		}
		if path[0] != start || path[1] != end {
			t.Errorf("path = %v, want [%v %v]", path, start, end)
		}
	})

	t.Run("positive curvature bows left of travel", func(t *testing.T) {
		path := connectorPath(start, end, 0.1, 2)
		if len(path) < 3 {
			t.Fatalf("curved path has %d points, want several", len(path))
		}
		mid := path[len(path)/2]
		// Travelling +x, left is +y.
		if mid.Y <= 0 {
			t.Errorf("curve midpoint Y = %g, want > 0", mid.Y)
		}
	})

	t.Run("negative curvature bows the other way", func(t *testing.T) {
		path := connectorPath(start, end, -0.1, 2)
		mid := path[len(path)/2]
		if mid.Y >= 0 {
			t.Errorf("curve midpoint Y = %g, want < 0", mid.Y)
		}
	})

	t.Run("endpoints are preserved", func(t *testing.T) {
		path := connectorPath(start, end, 0.1, 2)
		if path[0] != start {
			t.Errorf("first point = %v, want %v", path[0], start)
		}
		if path[len(path)-1] != end {
			t.Errorf("last point = %v, want %v", path[len(path)-1], end)
		}
	})
}

func TestRenderBackgroundFillsPadding(t *testing.T) {
	s, err := scene.New(10, 10, "#0a1628")
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}
	surface, err := Render(s, Options{Scale: 1, Padding: 5})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img := surface.Image()
	want := color.RGBA{R: 0x0a, G: 0x16, B: 0x28, A: 0xff}
	// Corner pixel lies inside the padding margin.
	if got := img.RGBAAt(0, 0); got != want {
		t.Errorf("padding pixel = %v, want %v", got, want)
	}
}
