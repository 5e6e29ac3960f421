package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/storage"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <hash-prefix>",
	Short: "Remove one stored transcript and its events",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	tr, err := db.GetTranscriptByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query transcript: %w", err)
	}
	if tr == nil {
		fmt.Fprintf(os.Stderr, "No transcript found with hash prefix %q\n", args[0])
		return nil
	}
	if _, err := db.DeleteTranscript(tr.Hash); err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted %s (%s, %s)\n", tr.Hash[:12], tr.MatchLabel, tr.FileName)
	return nil
}
