package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/report"
	"github.com/pable/vbscout/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored transcripts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	list, err := db.ListTranscripts()
	if err != nil {
		return fmt.Errorf("list transcripts: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "No transcripts stored yet. Run 'vbscout parse <file.dvw>' to add one.")
		return nil
	}
	report.PrintTranscriptList(os.Stdout, list)
	return nil
}
