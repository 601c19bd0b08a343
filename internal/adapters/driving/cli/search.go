package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

var (
	searchLimit  int
	searchAnswer bool
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find documents with a natural-language query",
	Long: `Asks the model which of your tags fit the query and returns the
documents carrying them, falling back to substring search when no model
is configured or no tags match.

With --answer, the matching documents are read and the model composes
a direct answer to the query from their content.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVarP(&searchAnswer, "answer", "a", false, "compose an answer from the matching documents")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()

	result, err := searchService.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchAnswer {
		if answerService == nil {
			return errors.New("answer service not configured")
		}
		answer, err := answerService.Answer(ctx, query, result.DocumentIDs)
		if err != nil {
			return fmt.Errorf("answer failed: %w", err)
		}
		if searchJSON {
			return outputJSON(cmd, answer)
		}
		return outputAnswer(cmd, answer)
	}

	if searchJSON {
		return outputJSON(cmd, result)
	}
	return outputSearchResults(cmd, result)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchResults(cmd *cobra.Command, result *domain.SearchResult) error {
	if len(result.RelevantTags) > 0 {
		cmd.Printf("Matched tags: %s\n\n", renderTags(result.RelevantTags))
	}

	if len(result.Documents) == 0 {
		cmd.Println("No results found.")
		printWarnings(cmd, result.Warnings)
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range result.Documents {
		doc := &result.Documents[i]
		cmd.Printf("  [%d] %s %s\n", i+1, titleStyle.Render(doc.Title), mutedStyle.Render("("+doc.ID+")"))
		cmd.Printf("      %s\n", renderTags(doc.Tags))
		if doc.Summary != "" {
			cmd.Printf("      %s\n", doc.Summary)
		}
		cmd.Println()
	}

	printWarnings(cmd, result.Warnings)
	return nil
}

func outputAnswer(cmd *cobra.Command, answer *domain.AnswerResult) error {
	cmd.Println(answerStyle.Render(answer.DirectAnswer))

	if len(answer.Documents) > 0 {
		titles := make([]string, len(answer.Documents))
		for i, doc := range answer.Documents {
			titles[i] = doc.Title
		}
		cmd.Printf("\n%s %s\n", mutedStyle.Render("From:"), strings.Join(titles, ", "))
	}

	printWarnings(cmd, answer.Warnings)
	return nil
}
