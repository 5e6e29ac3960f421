package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/model"
	"github.com/pable/vbscout/internal/report"
	"github.com/pable/vbscout/internal/storage"
)

var showRotation string

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored transcript's events and tallies by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showRotation, "rotation", "", "only show one rotation (*z1..*z6)")
}

func runShow(cmd *cobra.Command, args []string) error {
	rots, err := selectedRotations(showRotation)
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return showTranscript(db, args[0], rots)
}

func showTranscript(db *storage.DB, prefix string, rots []model.Rotation) error {
	tr, err := db.GetTranscriptByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query transcript: %w", err)
	}
	if tr == nil {
		fmt.Fprintf(os.Stderr, "No transcript found with hash prefix %q\n", prefix)
		return nil
	}

	ev, err := db.LoadEvents(storage.EventFilter{Hashes: []string{tr.Hash}})
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	report.PrintTranscriptSummary(os.Stdout, *tr)
	report.PrintEventCounts(os.Stdout, ev)
	for _, rot := range rots {
		report.PrintRotationTally(os.Stdout, aggregator.TallyRotation(rot, ev))
	}
	return nil
}

// selectedRotations returns the single rotation named by s, or all six in
// display order when s is empty.
func selectedRotations(s string) ([]model.Rotation, error) {
	if s == "" {
		return model.Rotations, nil
	}
	rot, err := model.ParseRotation(s)
	if err != nil {
		return nil, err
	}
	return []model.Rotation{rot}, nil
}
