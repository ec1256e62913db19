package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arandu/archdiagram/internal/arandu"
	"github.com/arandu/archdiagram/internal/renderer"
)

const (
	defaultOutput  = "arandu-architecture.png"
	defaultScale   = 8   // device pixels per canvas unit
	defaultPadding = 2.5 // margin in canvas units
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output PNG path
	detail    string  // layout detail level: "simple" or "full"
	scale     float64 // device pixels per canvas unit
	padding   float64 // canvas-unit margin around the drawing
	theme     string  // optional TOML theme file
	system    string  // optional HCL system description file
	systemURL string  // optional system description URL
}

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		output:  defaultOutput,
		detail:  "simple",
		scale:   defaultScale,
		padding: defaultPadding,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the architecture diagram to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG path")
	cmd.Flags().StringVar(&opts.detail, "detail", opts.detail, "layout detail level: simple (default), full")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "device pixels per canvas unit")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "margin around the drawing, in canvas units")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TOML theme file overriding the default palette")
	cmd.Flags().StringVar(&opts.system, "system", "", "HCL system description file")
	cmd.Flags().StringVar(&opts.systemURL, "system-url", "", "URL of an HCL system description")

	return cmd
}

func runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	tracker := newProgress(logger)

	detail, err := arandu.ParseDetail(opts.detail)
	if err != nil {
		return err
	}
	if opts.system != "" && opts.systemURL != "" {
		return fmt.Errorf("--system and --system-url are mutually exclusive")
	}

	sys, err := loadSystem(ctx, opts)
	if err != nil {
		return err
	}

	theme := arandu.DefaultTheme()
	if opts.theme != "" {
		theme, err = arandu.LoadTheme(opts.theme)
		if err != nil {
			return err
		}
		logger.Debug("Loaded theme", "path", opts.theme)
	}

	s, err := arandu.Build(sys, theme, detail)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}
	logger.Debug("Built scene", "commands", s.Len(), "canvas", fmt.Sprintf("%gx%g", s.Width, s.Height))

	surface, err := renderer.Render(s, renderer.Options{
		Scale:   opts.scale,
		Padding: opts.padding,
	})
	if err != nil {
		return fmt.Errorf("failed to render scene: %w", err)
	}

	if err := renderer.Export(surface, opts.output); err != nil {
		return err
	}

	bounds := surface.Image().Bounds()
	tracker.done(fmt.Sprintf("Wrote %s (%dx%d)", opts.output, bounds.Dx(), bounds.Dy()))
	return nil
}

// loadSystem resolves the system description from flags, defaulting to the
// compiled-in deployment.
func loadSystem(ctx context.Context, opts *renderOpts) (*arandu.System, error) {
	logger := loggerFromContext(ctx)

	switch {
	case opts.system != "":
		logger.Debug("Loading system description", "path", opts.system)
		return arandu.LoadSystemFile(opts.system)
	case opts.systemURL != "":
		logger.Debug("Fetching system description", "url", opts.systemURL)
		return arandu.FetchSystem(ctx, opts.systemURL)
	default:
		return arandu.DefaultSystem(), nil
	}
}
