package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/parser"
	"github.com/pable/vbscout/internal/report"
	"github.com/pable/vbscout/internal/storage"
)

var (
	parseTeam    string
	parseReplace bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.dvw>...",
	Short: "Parse scouting transcripts and store their events",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseTeam, "team", "", "only store transcripts where this team is home (defaults to config 'team')")
	parseCmd.Flags().BoolVar(&parseReplace, "replace", false, "re-parse transcripts that are already stored")
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	team := parseTeam
	if team == "" {
		team = cfg.Team
	}
	res, err := parseFiles(db, args, team, parseReplace, os.Stdout, os.Stderr)
	slog.Debug("parse finished", "files", len(args), "stored", res.stored, "filtered", res.filtered, "failed", res.failed)
	return err
}

type parseResult struct {
	stored   int
	known    int
	filtered int
	failed   int
}

// parseFiles stores each transcript in paths. A file that cannot be read is
// reported on errw and skipped; the batch fails only when no file could be read.
func parseFiles(db *storage.DB, paths []string, team string, replace bool, w, errw io.Writer) (parseResult, error) {
	var res parseResult
	warn := color.New(color.FgYellow)

	for _, path := range paths {
		fmt.Fprintf(w, "Parsing %s...\n", path)
		tr, err := parser.ReadTranscript(path)
		if err != nil {
			res.failed++
			warn.Fprintf(errw, "File %q skipped: %v\n", filepath.Base(path), err)
			slog.Warn("transcript unreadable", "file", path, "err", err)
			continue
		}

		if team != "" && tr.Header.HomeTeam != team {
			res.filtered++
			warn.Fprintf(errw, "File %q skipped: home team %q does not match selected team %q.\n",
				filepath.Base(path), tr.Header.HomeTeam, team)
			slog.Warn("transcript skipped", "file", path, "home", tr.Header.HomeTeam, "team", team)
			continue
		}

		exists, err := db.TranscriptExists(tr.Hash)
		if err != nil {
			return res, fmt.Errorf("check transcript: %w", err)
		}
		if exists && !replace {
			res.known++
			fmt.Fprintf(w, "Transcript %s already stored, skipping (use --replace to re-parse).\n\n", tr.Hash[:12])
			continue
		}

		if err := db.InsertTranscript(tr); err != nil {
			return res, fmt.Errorf("insert transcript: %w", err)
		}
		res.stored++

		summary, err := db.GetTranscriptByPrefix(tr.Hash)
		if err != nil || summary == nil {
			return res, fmt.Errorf("transcript not found after insert: %s", tr.Hash)
		}
		report.PrintTranscriptSummary(w, *summary)
		report.PrintEventCounts(w, tr.Events)
		fmt.Fprintln(w)
	}

	if res.failed > 0 && res.failed == len(paths) {
		return res, fmt.Errorf("no transcript could be read (%d files)", res.failed)
	}
	return res, nil
}
