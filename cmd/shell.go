package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/report"
	"github.com/pable/vbscout/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession holds the filter that tally/odds commands apply.
type shellSession struct {
	db        *storage.DB
	team      string
	opponents []string
}

func (s *shellSession) filter() storage.EventFilter {
	return storage.EventFilter{HomeTeam: s.team, Opponents: s.opponents}
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	s := &shellSession{db: db, team: cfg.Team}

	cGreeting.Println("vbscout shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("vbscout")
		if s.team != "" {
			cMuted.Printf("[%s]", s.team)
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			s.list()
		case "teams":
			s.teams()
		case "team":
			// Team names contain spaces.
			s.team = strings.Join(args, " ")
			s.opponents = nil
			cMuted.Printf("team filter: %q\n", s.team)
		case "vs":
			s.opponents = splitOpponents(strings.Join(args, " "))
			cMuted.Printf("opponent filter: %q\n", s.opponents)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <hash-prefix> [*zN]")
				continue
			}
			rot := ""
			if len(args) > 1 {
				rot = args[1]
			}
			s.show(args[0], rot)
		case "tally":
			rot := ""
			if len(args) > 0 {
				rot = args[0]
			}
			s.tally(rot)
		case "odds":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, "usage: odds <oh1> <oh2>")
				continue
			}
			oh1, err1 := strconv.Atoi(args[0])
			oh2, err2 := strconv.Atoi(args[1])
			if err1 != nil || err2 != nil {
				cError.Fprintln(os.Stderr, "player numbers must be integers")
				continue
			}
			s.odds(oh1, oh2)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored transcripts"},
		{"teams", "list home teams and their opponents"},
		{"team <name>", "set the home team filter (empty clears it)"},
		{"vs <name>[,<name>...]", "restrict to these opponents (empty clears it)"},
		{"show <hash-prefix> [*zN]", "show one transcript's tallies"},
		{"tally [*zN]", "aggregate tallies for the current filter"},
		{"odds <oh1> <oh2>", "outside-hitter set odds for the current filter"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-30s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func splitOpponents(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (s *shellSession) list() {
	list, err := s.db.ListTranscripts()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(list) == 0 {
		cMuted.Println("No transcripts stored yet.")
		return
	}
	report.PrintTranscriptList(os.Stdout, list)
}

func (s *shellSession) teams() {
	teams, err := s.db.ListTeams()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	for _, team := range teams {
		opps, err := s.db.ListOpponents(team)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		cHeader.Println(team)
		cMuted.Printf("  %s\n", strings.Join(opps, ", "))
	}
}

func (s *shellSession) show(prefix, rot string) {
	rots, err := selectedRotations(rot)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if err := showTranscript(s.db, prefix, rots); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func (s *shellSession) tally(rot string) {
	rots, err := selectedRotations(rot)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	ev, err := s.db.LoadEvents(s.filter())
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(ev.Receptions) == 0 && len(ev.Transitions) == 0 {
		cMuted.Println("No events match the current filter.")
		return
	}
	for _, r := range rots {
		report.PrintRotationTally(os.Stdout, aggregator.TallyRotation(r, ev))
	}
}

func (s *shellSession) odds(oh1, oh2 int) {
	tables, err := setOddsTables(oh1, oh2)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	ev, err := s.db.LoadEvents(s.filter())
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	for _, t := range tables(ev.Receptions) {
		report.PrintSetOdds(os.Stdout, t)
	}
}
