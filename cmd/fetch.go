package cmd

import (
	"fmt"

	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/packs"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download and install a content pack",
	Long: "Fetch a .tar.gz or .zip content pack, verify it, and install it\n" +
		"into the local content directory.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, _ := cmd.Flags().GetString("content")
		if dest == "" {
			var err error
			dest, err = content.DataDir()
			if err != nil {
				return fmt.Errorf("resolve content dir: %w", err)
			}
		}

		sum, _ := cmd.Flags().GetString("sha256")
		installer := packs.NewInstaller(dest)
		return installer.Install(cmd.Context(), &packs.InstallInput{
			URL:    args[0],
			SHA256: sum,
		}, func(p packs.InstallProgress) {
			fmt.Println(p.Message)
		})
	},
}

func init() {
	fetchCmd.Flags().String("sha256", "", "Expected hex digest of the archive")
}
