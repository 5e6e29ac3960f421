package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/model"
	"github.com/pable/vbscout/internal/report"
)

var (
	oddsEvents eventFlags
	oddsOH1    int
	oddsOH2    int
)

var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Outside-hitter set odds after in-system receptions",
	Long: `For each outside hitter, show per rotation how often the set went to the
outside after an in-system reception, split by whether that player passed.
Rotations come from the config file (set_odds.oh1 / set_odds.oh2).`,
	Args: cobra.NoArgs,
	RunE: runOdds,
}

func init() {
	oddsEvents.register(oddsCmd)
	oddsCmd.Flags().IntVar(&oddsOH1, "oh1", 0, "jersey number of the first outside hitter")
	oddsCmd.Flags().IntVar(&oddsOH2, "oh2", 0, "jersey number of the second outside hitter")
}

func runOdds(cmd *cobra.Command, args []string) error {
	tables, err := setOddsTables(oddsOH1, oddsOH2)
	if err != nil {
		return err
	}
	db, ev, err := oddsEvents.load()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, t := range tables(ev.Receptions) {
		report.PrintSetOdds(os.Stdout, t)
	}
	return nil
}

// setOddsTables validates the player numbers and rotation subsets up front and
// returns a function computing both tables once the receptions are loaded.
func setOddsTables(oh1, oh2 int) (func([]model.ReceptionEvent) []model.SetOddsTable, error) {
	oh1, oh2 = playerNumbers(oh1, oh2)
	if oh1 == 0 || oh2 == 0 {
		return nil, fmt.Errorf("both outside hitters are required: use --oh1 and --oh2 or set_odds in the config")
	}
	rots1, err := cfg.SetOdds.OH1.RotationLabels()
	if err != nil {
		return nil, fmt.Errorf("set_odds.oh1: %w", err)
	}
	rots2, err := cfg.SetOdds.OH2.RotationLabels()
	if err != nil {
		return nil, fmt.Errorf("set_odds.oh2: %w", err)
	}
	return func(recs []model.ReceptionEvent) []model.SetOddsTable {
		return []model.SetOddsTable{
			aggregator.SetOdds(oh1, rots1, recs),
			aggregator.SetOdds(oh2, rots2, recs),
		}
	}, nil
}
