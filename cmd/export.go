package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/report"
)

var (
	exportEvents eventFlags
	exportOut    string
	exportOH1    int
	exportOH2    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write rotation tallies and set odds to an .xlsx workbook",
	Long: `Export the selected transcripts to a spreadsheet with one sheet per rotation
(tallies in A-F, breakdowns in H-L, reception raw data in N-R, transition raw
data in T-W) and a "Set Odds" sheet with one table per outside hitter.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportEvents.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "volleyball_analysis.xlsx", "output workbook path")
	exportCmd.Flags().IntVar(&exportOH1, "oh1", 0, "jersey number of the first outside hitter")
	exportCmd.Flags().IntVar(&exportOH2, "oh2", 0, "jersey number of the second outside hitter")
}

func runExport(cmd *cobra.Command, args []string) error {
	tables, err := setOddsTables(exportOH1, exportOH2)
	if err != nil {
		return err
	}
	db, ev, err := exportEvents.load()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(ev.Receptions) == 0 && len(ev.Transitions) == 0 {
		return fmt.Errorf("no events match the selected filters")
	}

	wb, err := report.BuildWorkbook(ev, aggregator.TallyAll(ev), tables(ev.Receptions)...)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer wb.Close()

	if dir := filepath.Dir(exportOut); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := wb.SaveAs(exportOut); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	slog.Debug("workbook written", "path", exportOut, "receptions", len(ev.Receptions), "transitions", len(ev.Transitions))
	fmt.Fprintf(os.Stdout, "Wrote %s (%d receptions, %d transitions)\n", exportOut, len(ev.Receptions), len(ev.Transitions))
	return nil
}
