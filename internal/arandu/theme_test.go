package arandu

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTheme(t *testing.T) {
	t.Run("partial file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.toml")
		src := "background = \"#101010\"\nprimary = \"#ff8800\"\n"
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		theme, err := LoadTheme(path)
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if theme.Background != "#101010" {
			t.Errorf("Background = %q", theme.Background)
		}
		if theme.Primary != "#ff8800" {
			t.Errorf("Primary = %q", theme.Primary)
		}
		if theme.Secondary != DefaultTheme().Secondary {
			t.Errorf("Secondary = %q, want default", theme.Secondary)
		}
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.toml")
		if err := os.WriteFile(path, []byte("tertiary = \"#000000\"\n"), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if _, err := LoadTheme(path); err == nil {
			t.Error("LoadTheme() should reject unknown keys")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadTheme("/nonexistent/theme.toml"); err == nil {
			t.Error("LoadTheme() should fail for a missing file")
		}
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.toml")
		if err := os.WriteFile(path, []byte("background = [unterminated\n"), 0644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if _, err := LoadTheme(path); err == nil {
			t.Error("LoadTheme() should fail on malformed TOML")
		}
	})
}

func TestDefaultThemeIsComplete(t *testing.T) {
	th := DefaultTheme()
	colors := map[string]string{
		"Background":  th.Background,
		"Grid":        th.Grid,
		"Surface":     th.Surface,
		"SurfaceAlt":  th.SurfaceAlt,
		"Primary":     th.Primary,
		"PrimarySoft": th.PrimarySoft,
		"Secondary":   th.Secondary,
		"Text":        th.Text,
		"TextSoft":    th.TextSoft,
		"Muted":       th.Muted,
		"Status":      th.Status,
		"Alert":       th.Alert,
	}
	for name, value := range colors {
		if len(value) != 7 || value[0] != '#' {
			t.Errorf("%s = %q, want #rrggbb", name, value)
		}
	}
}
