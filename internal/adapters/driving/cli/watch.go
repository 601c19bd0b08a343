package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault/internal/adapters/driving/watch"
)

// watchDefaultDir is the configured inbox directory, set from main.
var watchDefaultDir string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch an inbox directory and ingest new files",
	Long: `Monitors a directory and ingests every file dropped into it. Files
already present are ingested on startup; content deduplication makes
repeated runs over the same inbox harmless.

Without an argument, the configured watch.inbox_dir is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// SetWatchDir sets the default inbox directory from configuration.
func SetWatchDir(dir string) {
	watchDefaultDir = dir
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := watchDefaultDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no inbox directory given; pass one or set watch.inbox_dir")
	}

	watcher, err := watch.NewWatcher(ingestService, dir)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)
	return watcher.Run(cmd.Context())
}
