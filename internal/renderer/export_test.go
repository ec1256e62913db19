package renderer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arandu/archdiagram/internal/scene"
)

func TestExport(t *testing.T) {
	s, err := scene.New(40, 40, "#ffffff")
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}
	if err := s.Add(scene.Panel{Pos: scene.Point{X: 5, Y: 5}, Width: 30, Height: 30, Fill: "#336699", Opacity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	surface, err := Render(s, Options{Scale: 2, Padding: 2})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	t.Run("writes a valid PNG file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.png")
		if err := Export(surface, path); err != nil {
			t.Fatalf("Export() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading exported file: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
			t.Error("exported file does not start with the PNG signature")
		}
	})

	t.Run("repeated exports are byte-identical", func(t *testing.T) {
		dir := t.TempDir()
		pathA := filepath.Join(dir, "a.png")
		pathB := filepath.Join(dir, "b.png")
		if err := Export(surface, pathA); err != nil {
			t.Fatalf("Export(a) error = %v", err)
		}
		if err := Export(surface, pathB); err != nil {
			t.Fatalf("Export(b) error = %v", err)
		}

		a, _ := os.ReadFile(pathA)
		b, _ := os.ReadFile(pathB)
		if !bytes.Equal(a, b) {
			t.Error("two exports of the same surface differ")
		}
	})

	t.Run("missing directory fails naming the path", func(t *testing.T) {
		path := "/nonexistent/dir/out.png"
		err := Export(surface, path)
		if err == nil {
			t.Fatal("Export() to missing directory should fail")
		}
		if !strings.Contains(err.Error(), "/nonexistent/dir") {
			t.Errorf("error %q does not name the failing location", err)
		}
	})

	t.Run("empty path fails", func(t *testing.T) {
		if err := Export(surface, ""); err == nil {
			t.Error("Export() with empty path should fail")
		}
	})
}
