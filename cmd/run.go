package cmd

import (
	"fmt"

	"github.com/asheem/quizdeck/internal/app"
	"github.com/asheem/quizdeck/internal/content"
	"github.com/spf13/cobra"
)

// runApp opens the content library and launches the TUI.
func runApp(cmd *cobra.Command) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	return app.Run(lib)
}

// openLibrary resolves the content directory using --content (highest
// priority), then QUIZDECK_CONTENT, then the XDG data dir, then the
// content embedded in the binary.
func openLibrary(cmd *cobra.Command) (*content.Library, error) {
	dir, _ := cmd.Flags().GetString("content")
	lib, err := content.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("open content library: %w", err)
	}
	return lib, nil
}
