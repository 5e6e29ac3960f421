package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/report"
	"github.com/pable/vbscout/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the transcript database",
	Long: `Run an arbitrary SQL query against the transcript database and print results as a table.

Schema overview:
  transcripts(hash, file_name, match_date, home_team, away_team, match_label,
    receptions, transitions, parsed_at)
  receptions(transcript_hash, seq, rotation, passer, grade, custom_code)
  transitions(transcript_hash, seq, rotation, attacker, custom_code)

Note: rotation is stored as the marker number, so *z1 is rotation = 1.
Example: SELECT grade, COUNT(*) FROM receptions WHERE rotation = 1 GROUP BY grade`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

