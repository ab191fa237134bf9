package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List available subjects and their item counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Content format %s\n\n", lib.Format())
		for _, entry := range lib.Subjects() {
			subject, err := lib.LoadSubject(entry.Slug)
			if err != nil {
				fmt.Printf("%-16s %s (unreadable: %v)\n", entry.Slug, entry.Name, err)
				continue
			}
			fmt.Printf("%-16s %s — %d quiz, %d cards, %d cloze",
				subject.Slug, subject.Name,
				len(subject.Quiz), len(subject.Cards), len(subject.Cloze))
			if subject.Skipped > 0 {
				fmt.Printf(" (%d malformed skipped)", subject.Skipped)
			}
			fmt.Println()
		}
		return nil
	},
}
