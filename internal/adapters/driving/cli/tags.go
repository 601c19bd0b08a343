package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag vocabulary",
	Long:  `Prints every tag currently attached to at least one document.`,
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	names, err := documentService.TagNames(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No tags yet.")
		return nil
	}

	for _, name := range names {
		cmd.Println(tagStyle.Render("#" + name))
	}
	return nil
}
