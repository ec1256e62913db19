package renderer

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/arandu/archdiagram/internal/validation"
)

// Export PNG-encodes the surface and writes it to path. The output
// directory is validated up front so a missing or unwritable location fails
// with an error naming the path before any encoding work happens. A failed
// export is terminal; there is no retry or partial output.
func Export(surface *Surface, path string) error {
	if err := validation.ValidateOutputPath(path); err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, surface.img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
