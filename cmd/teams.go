package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/storage"
)

var teamsCmd = &cobra.Command{
	Use:   "teams [home-team]",
	Short: "List stored home teams and the opponents they faced",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTeams,
}

func runTeams(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	teams := args
	if len(teams) == 0 {
		teams, err = db.ListTeams()
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
	}
	if len(teams) == 0 {
		fmt.Fprintln(os.Stdout, "No transcripts stored yet.")
		return nil
	}
	for _, team := range teams {
		opps, err := db.ListOpponents(team)
		if err != nil {
			return fmt.Errorf("list opponents: %w", err)
		}
		fmt.Fprintf(os.Stdout, "%s (%d opponents)\n", team, len(opps))
		if len(opps) > 0 {
			fmt.Fprintf(os.Stdout, "  %s\n", strings.Join(opps, ", "))
		}
	}
	return nil
}
