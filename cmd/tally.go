package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/report"
)

var (
	tallyEvents   eventFlags
	tallyRotation string
)

var tallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Per-rotation attack-option tallies across stored transcripts",
	Long: `Aggregate reception and transition events of every selected transcript and
print, per rotation, the full-pattern counts, the subgroup breakdowns of where
the set went, and the out-of-system position breakdowns.`,
	Args: cobra.NoArgs,
	RunE: runTally,
}

func init() {
	tallyEvents.register(tallyCmd)
	tallyCmd.Flags().StringVar(&tallyRotation, "rotation", "", "only show one rotation (*z1..*z6)")
}

func runTally(cmd *cobra.Command, args []string) error {
	rots, err := selectedRotations(tallyRotation)
	if err != nil {
		return err
	}
	db, ev, err := tallyEvents.load()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(ev.Receptions) == 0 && len(ev.Transitions) == 0 {
		fmt.Fprintln(os.Stdout, "No events match the selected filters.")
		return nil
	}
	report.PrintEventCounts(os.Stdout, ev)
	for _, rot := range rots {
		report.PrintRotationTally(os.Stdout, aggregator.TallyRotation(rot, ev))
	}
	return nil
}
