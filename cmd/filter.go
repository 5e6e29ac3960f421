package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/model"
	"github.com/pable/vbscout/internal/storage"
)

// eventFlags selects the transcripts whose events feed a report: those where
// team is the home side, optionally narrowed to some opponents.
type eventFlags struct {
	team      string
	opponents []string
}

func (f *eventFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.team, "team", "", "home team to analyze (defaults to config 'team'; empty means all)")
	c.Flags().StringSliceVar(&f.opponents, "opponent", nil, "restrict to matches against these opponents (repeatable)")
}

func (f *eventFlags) filter() storage.EventFilter {
	team := f.team
	if team == "" {
		team = cfg.Team
	}
	return storage.EventFilter{HomeTeam: team, Opponents: f.opponents}
}

// load opens the database and returns the selected events. The caller closes db.
func (f *eventFlags) load() (*storage.DB, model.Events, error) {
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, model.Events{}, fmt.Errorf("open storage: %w", err)
	}
	ev, err := db.LoadEvents(f.filter())
	if err != nil {
		db.Close()
		return nil, model.Events{}, fmt.Errorf("load events: %w", err)
	}
	return db, ev, nil
}

// playerNumbers resolves the two outside hitters from flags, falling back to config.
func playerNumbers(oh1, oh2 int) (int, int) {
	if oh1 == 0 {
		oh1 = cfg.SetOdds.OH1.Number
	}
	if oh2 == 0 {
		oh2 = cfg.SetOdds.OH2.Number
	}
	return oh1, oh2
}
