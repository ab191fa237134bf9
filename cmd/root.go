package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Terminal quiz and recall trainer",
	Long:  "Quizdeck — terminal app for working through quizzes, recall cards and fill-in-the-blank drills.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("content", "", "Path to a content directory (overrides QUIZDECK_CONTENT env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}
