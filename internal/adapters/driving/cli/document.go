package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `List, view, reprocess, or delete documents in the vault.`,
}

var (
	documentListOffset int
	documentListLimit  int
)

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print the document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentReprocessCmd = &cobra.Command{
	Use:   "reprocess [doc-id]",
	Short: "Re-run extraction, summarization, and tagging",
	Long: `Re-reads the stored bytes and replaces the document's summary and
tags, e.g. after configuring a model or installing an OCR binary.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentReprocess,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its stored content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentListCmd.Flags().IntVar(&documentListOffset, "offset", 0, "number of documents to skip")
	documentListCmd.Flags().IntVarP(&documentListLimit, "limit", "n", 10, "maximum number of documents")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentReprocessCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	docs, err := documentService.List(ctx, documentListOffset, documentListLimit)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents stored.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s %s\n", titleStyle.Render(docs[i].Title), mutedStyle.Render("("+docs[i].ID+")"))
		cmd.Printf("    %s\n", renderTags(docs[i].Tags))
		cmd.Printf("    %s, %d bytes, imported %s\n",
			docs[i].MediaType, docs[i].SizeBytes, docs[i].ImportedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	doc, err := documentService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:      %s\n", doc.Title)
	cmd.Printf("  Media type: %s\n", doc.MediaType)
	cmd.Printf("  Size:       %d bytes\n", doc.SizeBytes)
	cmd.Printf("  Hash:       %s\n", doc.ContentHash)
	cmd.Printf("  Tags:       %s\n", renderTags(doc.Tags))
	cmd.Printf("  Imported:   %s\n", doc.ImportedAt.Format("2006-01-02 15:04:05"))
	if doc.Summary != "" {
		cmd.Printf("\n  Summary: %s\n", doc.Summary)
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	content, err := documentService.GetContent(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content.Content)
	return nil
}

func runDocumentReprocess(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	doc, warnings, err := ingestService.Reprocess(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to reprocess document: %w", err)
	}

	cmd.Printf("Reprocessed %s %s\n", titleStyle.Render(doc.Title), mutedStyle.Render("("+doc.ID+")"))
	cmd.Printf("  %s\n", renderTags(doc.Tags))
	if doc.Summary != "" {
		cmd.Printf("  %s\n", doc.Summary)
	}
	printWarnings(cmd, warnings)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	if err := documentService.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
