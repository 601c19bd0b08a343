package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault/internal/core/ports/driving"
)

var (
	ingestTitle     string
	ingestMediaType string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest files into the vault",
	Long: `Stores each file's content under its hash, extracts its text, and
summarizes and tags it when a model is configured. Ingesting the same
content twice returns the existing document instead of duplicating it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "title for the document (single file only)")
	ingestCmd.Flags().StringVarP(&ingestMediaType, "media-type", "m", "", "media type override, e.g. application/pdf")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if ingestTitle != "" && len(args) > 1 {
		return errors.New("--title applies to a single file")
	}

	ctx := context.Background()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc, warnings, err := ingestService.Ingest(ctx, driving.IngestRequest{
			Data:      data,
			Filename:  filepath.Base(path),
			MediaType: ingestMediaType,
			Title:     ingestTitle,
		})
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		cmd.Printf("%s %s\n", titleStyle.Render(doc.Title), mutedStyle.Render("("+doc.ID+")"))
		cmd.Printf("  %s\n", renderTags(doc.Tags))
		if doc.Summary != "" {
			cmd.Printf("  %s\n", doc.Summary)
		}
		printWarnings(cmd, warnings)
		cmd.Println()
	}

	return nil
}
