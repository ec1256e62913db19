package arandu

import (
	"strings"
	"testing"

	"github.com/arandu/archdiagram/internal/renderer"
	"github.com/arandu/archdiagram/internal/scene"
)

func TestParseDetail(t *testing.T) {
	tests := []struct {
		in      string
		want    Detail
		wantErr bool
	}{
		{in: "simple", want: DetailSimple},
		{in: "full", want: DetailFull},
		{in: "detailed", want: DetailFull},
		{in: "", wantErr: true},
		{in: "everything", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDetail(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDetail(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseDetail(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildCanvasSizes(t *testing.T) {
	tests := []struct {
		name       string
		detail     Detail
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "simple is a tall poster",
			detail:     DetailSimple,
			wantWidth:  100,
			wantHeight: 130,
		},
		{
			name:       "full is wide landscape",
			detail:     DetailFull,
			wantWidth:  200,
			wantHeight: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(DefaultSystem(), DefaultTheme(), tt.detail)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if s.Width != tt.wantWidth || s.Height != tt.wantHeight {
				t.Errorf("canvas = %gx%g, want %gx%g", s.Width, s.Height, tt.wantWidth, tt.wantHeight)
			}
			if s.Background != DefaultTheme().Background {
				t.Errorf("background = %q, want %q", s.Background, DefaultTheme().Background)
			}
			if s.Len() == 0 {
				t.Error("scene has no commands")
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	for _, detail := range []Detail{DetailSimple, DetailFull} {
		a, err := Build(DefaultSystem(), DefaultTheme(), detail)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		b, err := Build(DefaultSystem(), DefaultTheme(), detail)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if a.Len() != b.Len() {
			t.Errorf("detail %d: command counts differ, %d vs %d", detail, a.Len(), b.Len())
		}
	}
}

func TestBuildFullCarriesSystemText(t *testing.T) {
	sys := DefaultSystem()
	s, err := Build(sys, DefaultTheme(), DetailFull)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	labels := map[string]bool{}
	for _, cmd := range s.Commands() {
		if l, ok := cmd.(scene.Label); ok {
			labels[l.Text] = true
		}
	}

	for _, want := range []string{
		sys.Title,
		sys.Server.Name,
		sys.Proxy.Name,
		"PORT 8080",
		"PORT 8081",
		"Active: " + sys.Server.ActiveModel,
		sys.Models[0].Name,
		sys.Proxy.Endpoints[1],
		sys.Clients[0].Name,
		sys.ServeAddr,
	} {
		if !labels[want] {
			t.Errorf("full layout is missing label %q", want)
		}
	}
}

func TestBuildWithTrimmedSystem(t *testing.T) {
	// A description with a single model and client and blanked-out text
	// fields must still produce a renderable scene.
	sys := &System{
		Models:  []Model{{Name: "tiny.gguf", Size: "0.5 GB"}},
		Server:  Server{Name: "SERVER", Port: 1234},
		Proxy:   Proxy{Name: "PROXY", Port: 5678},
		Clients: []Client{{Name: "Only"}},
	}

	for _, detail := range []Detail{DetailSimple, DetailFull} {
		s, err := Build(sys, DefaultTheme(), detail)
		if err != nil {
			t.Fatalf("Build(detail %d) error = %v", detail, err)
		}
		if _, err := renderer.Render(s, renderer.Options{Scale: 1}); err != nil {
			t.Errorf("Render(detail %d) error = %v", detail, err)
		}
	}
}

func TestBuildRenderRoundTrip(t *testing.T) {
	s, err := Build(DefaultSystem(), DefaultTheme(), DetailFull)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	surface, err := renderer.Render(s, renderer.Options{Scale: 2, Padding: 5})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	bounds := surface.Image().Bounds()
	if bounds.Dx() != 420 || bounds.Dy() != 260 {
		t.Errorf("surface = %dx%d, want 420x260", bounds.Dx(), bounds.Dy())
	}
}

func TestFullFooter(t *testing.T) {
	sys := DefaultSystem()
	got := fullFooter(sys)

	for _, want := range []string{
		sys.Footer,
		"Port 8080 (llama.cpp)",
		"Port 8081 (OpenAI Proxy)",
		"Witsy/Cherry AI Compatible",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("footer %q is missing %q", got, want)
		}
	}
}
