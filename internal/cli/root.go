package cli

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd builds the archdiagram command tree. The logger is created in
// PersistentPreRun once the --verbose flag is known and attached to the
// command context.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "archdiagram",
		Short:        "archdiagram renders the Arandu architecture as a PNG",
		Long:         `archdiagram draws the Arandu local AI stack (model storage, desktop, llama.cpp server, OpenAI proxy and its clients) as a deterministic PNG diagram.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("archdiagram %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())

	return root
}
