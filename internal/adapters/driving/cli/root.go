// Package cli implements the docvault command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault/internal/core/ports/driving"
	"github.com/docvault-labs/docvault/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Command-level service handles, wired once from main before Execute.
var (
	ingestService   driving.IngestService
	searchService   driving.SearchService
	answerService   driving.AnswerService
	documentService driving.DocumentService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Personal document vault with model-assisted retrieval",
	Long: `docvault stores your documents in a content-addressed local vault,
extracts their text, and tags and summarizes them with a language model
so you can find them again with plain questions.

All data stays on your machine. A model is optional: without one,
docvault still stores, extracts, and searches by substring.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services aggregates the driving ports the commands depend on.
type Services struct {
	Ingest   driving.IngestService
	Search   driving.SearchService
	Answer   driving.AnswerService
	Document driving.DocumentService
}

// SetServices wires the services into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingest
	searchService = s.Search
	answerService = s.Answer
	documentService = s.Document
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, which
// flows into long-running commands like watch and mcp serve.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
