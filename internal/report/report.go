package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/vbscout/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// PrintTranscriptSummary prints a one-line summary header for a stored transcript.
func PrintTranscriptSummary(w io.Writer, s model.TranscriptSummary) {
	fmt.Fprintf(w, "\nMatch: %s  |  Home: %s  |  Away: %s  |  Receptions: %d  |  Transitions: %d  |  Hash: %s\n\n",
		s.MatchLabel, s.HomeTeam, s.AwayTeam, s.Receptions, s.Transitions, shortHash(s.Hash))
}

// PrintTranscriptList prints one row per stored transcript.
func PrintTranscriptList(w io.Writer, list []model.TranscriptSummary) {
	table := newTable(w)
	table.Header("HASH", "DATE", "HOME", "AWAY", "REC", "TRANS", "FILE")
	for _, s := range list {
		table.Append(
			shortHash(s.Hash),
			s.MatchDate,
			s.HomeTeam,
			s.AwayTeam,
			strconv.Itoa(s.Receptions),
			strconv.Itoa(s.Transitions),
			s.FileName,
		)
	}
	table.Render()
}

// PrintEventCounts prints how many events of each grade and kind fell in each rotation.
func PrintEventCounts(w io.Writer, ev model.Events) {
	type counts struct{ perfect, good, excellent, poor, transIn, transOOS int }
	byRot := make(map[model.Rotation]*counts)
	for _, rot := range model.Rotations {
		byRot[rot] = &counts{}
	}
	for _, r := range ev.Receptions {
		c, ok := byRot[r.Rotation]
		if !ok {
			continue
		}
		switch r.Grade {
		case model.GradePerfect:
			c.perfect++
		case model.GradeGood:
			c.good++
		case model.GradeExcellent:
			c.excellent++
		case model.GradePoor:
			c.poor++
		}
	}
	for _, t := range ev.Transitions {
		c, ok := byRot[t.Rotation]
		if !ok {
			continue
		}
		if len(t.Code) == 1 {
			c.transOOS++
		} else {
			c.transIn++
		}
	}

	table := newTable(w)
	table.Header("ROTATION", "MARKER", "R#", "R+", "R!", "R-", "TR_IN", "TR_OOS")
	for _, rot := range model.Rotations {
		c := byRot[rot]
		table.Append(
			rot.Label(),
			rot.Marker(),
			strconv.Itoa(c.perfect),
			strconv.Itoa(c.good),
			strconv.Itoa(c.excellent),
			strconv.Itoa(c.poor),
			strconv.Itoa(c.transIn),
			strconv.Itoa(c.transOOS),
		)
	}
	table.Render()
}

// PrintRotationTally prints every tally block of one rotation: pattern counts
// and subgroup breakdowns for in-system categories, then position breakdowns
// for out-of-system categories. Empty blocks print a dash.
func PrintRotationTally(w io.Writer, rt model.RotationTally) {
	fmt.Fprintf(w, "\n=== %s (%s) ===\n", rt.Rotation.Label(), rt.Rotation.Marker())

	for _, cat := range model.PatternCategories {
		pt := rt.Patterns[cat]
		fmt.Fprintf(w, "\n%s (%d)\n", cat, pt.Total())
		if len(pt.Counts) == 0 {
			fmt.Fprintln(w, "  -")
			continue
		}
		printPatternCounts(w, pt)
		printSubgroups(w, pt)
	}

	for _, cat := range model.PositionCategories {
		pt := rt.Positions[cat]
		fmt.Fprintf(w, "\n%s (%d)\n", cat, pt.Total())
		if len(pt.Counts) == 0 {
			fmt.Fprintln(w, "  -")
			continue
		}
		printPositionBreakdown(w, pt)
	}
}

func printPatternCounts(w io.Writer, pt model.PatternTally) {
	table := newTable(w)
	table.Header("OH", "MB", "OPP/S", "BR", "SET TO", "COUNT")
	for _, c := range pt.Counts {
		p := c.Pattern
		table.Append(p.OH.Text, p.MB.Text, p.OPPS.Text, p.BR.Text, p.SetTo.Text, strconv.Itoa(c.Count))
	}
	table.Render()
}

func printSubgroups(w io.Writer, pt model.PatternTally) {
	table := newTable(w)
	table.Header("OH", "MB", "OPP/S", "BR", "TOTAL", "→OH", "→MB", "→OPP/S", "→BR")
	for _, sg := range pt.Subgroups {
		row := []any{sg.Options[0].Text, sg.Options[1].Text, sg.Options[2].Text, sg.Options[3].Text, strconv.Itoa(sg.Total)}
		for _, pos := range model.Positions {
			row = append(row, fmt.Sprintf("%d (%.2f)", sg.Counts[pos], sg.Fractions[pos]))
		}
		table.Append(row...)
	}
	table.Render()
}

func printPositionBreakdown(w io.Writer, pt model.PositionTally) {
	b := pt.Breakdown
	table := newTable(w)
	header := []any{"TOTAL"}
	row := []any{strconv.Itoa(b.Total)}
	for _, pos := range model.Positions {
		header = append(header, pos.String())
		row = append(row, fmt.Sprintf("%d (%.2f)", b.Counts[pos], b.Fractions[pos]))
	}
	table.Header(header...)
	table.Append(row...)
	table.Render()
}

// PrintSetOdds prints one set-odds table: per rotation, how often the outside
// hitter was set after the player's in-system pass versus anyone else's.
func PrintSetOdds(w io.Writer, t model.SetOddsTable) {
	fmt.Fprintf(w, "\n#%d - Odds of Getting Set After a #%d Reception\n", t.Player, t.Player)
	table := newTable(w)
	table.Header("ROT", "WAS SET", "NOT SET", "WAS SET %", "OTHER WAS SET", "OTHER NOT SET", "OTHER WAS SET %")
	rows := append(append([]model.SetOddsRow{}, t.Rows...), t.Total)
	for _, r := range rows {
		table.Append(
			r.Label,
			strconv.Itoa(r.Player.WasSet),
			strconv.Itoa(r.Player.NotSet),
			fmt.Sprintf("%.2f", r.Player.Rate()),
			strconv.Itoa(r.Others.WasSet),
			strconv.Itoa(r.Others.NotSet),
			fmt.Sprintf("%.2f", r.Others.Rate()),
		)
	}
	table.Render()
}

// PrintRows prints an arbitrary result set, e.g. from a raw SQL query.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		vals := make([]any, len(row))
		for i, v := range row {
			vals[i] = v
		}
		table.Append(vals...)
	}
	table.Render()
}
