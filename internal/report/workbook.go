package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pable/vbscout/internal/model"
)

// SetOddsSheet is the name of the workbook sheet holding the set-odds tables.
const SetOddsSheet = "Set Odds"

// Workbook column layout of a rotation sheet.
const (
	colTally      = 1  // A..F
	colBreakdown  = 8  // H..L
	colReception  = 14 // N..R
	colTransition = 20 // T..W
)

// BuildWorkbook renders one sheet per rotation (tallies, breakdowns and the raw
// events behind them) followed by a "Set Odds" sheet with one table per player.
func BuildWorkbook(ev model.Events, tallies []model.RotationTally, odds ...model.SetOddsTable) (*excelize.File, error) {
	f := excelize.NewFile()
	first := true
	for _, rt := range tallies {
		sheet := rt.Rotation.Label()
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", sheet, err)
		}
		s := sheetWriter{f: f, name: sheet}
		s.tallies(rt)
		s.breakdowns(rt)
		s.rawReceptions(rt.Rotation, ev.Receptions)
		s.rawTransitions(rt.Rotation, ev.Transitions)
		if s.err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", sheet, s.err)
		}
	}

	if first {
		if err := f.SetSheetName("Sheet1", SetOddsSheet); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := f.NewSheet(SetOddsSheet); err != nil {
		return nil, fmt.Errorf("new sheet %s: %w", SetOddsSheet, err)
	}
	pct, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("0.00")})
	if err != nil {
		return nil, fmt.Errorf("new style: %w", err)
	}
	s := sheetWriter{f: f, name: SetOddsSheet, pctStyle: pct}
	row := 1
	for _, t := range odds {
		row = s.setOdds(t, row)
	}
	if s.err != nil {
		return nil, fmt.Errorf("write sheet %s: %w", SetOddsSheet, s.err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func strPtr(s string) *string { return &s }

// sheetWriter remembers the first write error so the layout code reads top to bottom.
type sheetWriter struct {
	f        *excelize.File
	name     string
	pctStyle int
	err      error
}

func (s *sheetWriter) set(col, row int, v any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellValue(s.name, cell, v)
}

func (s *sheetWriter) setRow(col, row int, vals ...any) {
	for i, v := range vals {
		s.set(col+i, row, v)
	}
}

func (s *sheetWriter) setPct(col, row int, v float64) {
	s.set(col, row, v)
	if s.err != nil {
		return
	}
	cell, _ := excelize.CoordinatesToCellName(col, row)
	s.err = s.f.SetCellStyle(s.name, cell, cell, s.pctStyle)
}

// tallies writes the frequency tables down columns A..F.
func (s *sheetWriter) tallies(rt model.RotationTally) {
	row := 1
	patternBlock := func(pt model.PatternTally) {
		s.set(colTally, row, string(pt.Category))
		row++
		if len(pt.Counts) == 0 {
			return
		}
		s.setRow(colTally, row, "OH", "MB", "OPP/S", "BR", "Set To", "Count")
		row++
		for _, c := range pt.Counts {
			p := c.Pattern
			s.setRow(colTally, row, p.OH.Text, p.MB.Text, p.OPPS.Text, p.BR.Text, p.SetTo.Text, c.Count)
			row++
		}
		row++
	}
	positionBlock := func(pt model.PositionTally) {
		s.set(colTally, row, string(pt.Category))
		row++
		if len(pt.Counts) == 0 {
			return
		}
		s.setRow(colTally, row, "Position", "Count")
		row++
		for _, c := range pt.Counts {
			s.setRow(colTally, row, string(c.Label), c.Count)
			row++
		}
		row++
	}

	patternBlock(rt.Patterns[model.CatReceptionPerfect])
	patternBlock(rt.Patterns[model.CatReceptionGood])
	patternBlock(rt.Patterns[model.CatReceptionExcellent])
	positionBlock(rt.Positions[model.CatReceptionOOS])
	patternBlock(rt.Patterns[model.CatTransitionInSystem])
	positionBlock(rt.Positions[model.CatTransitionOOS])
}

// breakdowns writes per-subgroup and per-position breakdowns down columns H..L.
// Each block is a label row, a count row led by the total, and a fraction row.
func (s *sheetWriter) breakdowns(rt model.RotationTally) {
	row := 1
	block := func(labels [4]string, b model.Breakdown) {
		for i, l := range labels {
			s.set(colBreakdown+1+i, row+1, l)
		}
		s.set(colBreakdown, row+2, b.Total)
		for i := range labels {
			s.set(colBreakdown+1+i, row+2, b.Counts[i])
			s.set(colBreakdown+1+i, row+3, fmt.Sprintf("%.2f", b.Fractions[i]))
		}
		row += 5
	}

	for _, cat := range model.PatternCategories {
		pt := rt.Patterns[cat]
		s.set(colBreakdown, row, string(cat))
		if len(pt.Subgroups) == 0 {
			row += 2
			continue
		}
		for _, sg := range pt.Subgroups {
			var labels [4]string
			for i, l := range sg.Options {
				labels[i] = l.Text
			}
			block(labels, sg.Breakdown)
		}
	}
	for _, cat := range model.PositionCategories {
		s.set(colBreakdown, row, string(cat))
		var labels [4]string
		for i, pos := range model.Positions {
			labels[i] = pos.String()
		}
		block(labels, rt.Positions[cat].Breakdown)
	}
}

func (s *sheetWriter) rawReceptions(rot model.Rotation, recs []model.ReceptionEvent) {
	s.set(colReception, 1, "Reception Raw Data")
	s.setRow(colReception, 2, "Match Name", "Rotation", "Passer #", "Pass Grade", "Custom Code")
	row := 3
	for _, r := range recs {
		if r.Rotation != rot {
			continue
		}
		s.setRow(colReception, row, r.Match, r.Rotation.Marker(), r.Passer, string(r.Grade), r.Code)
		row++
	}
}

func (s *sheetWriter) rawTransitions(rot model.Rotation, trans []model.TransitionEvent) {
	s.set(colTransition, 1, "Transition Raw Data")
	s.setRow(colTransition, 2, "Match Name", "Rotation", "Attacker #", "Custom Code")
	row := 3
	for _, t := range trans {
		if t.Rotation != rot {
			continue
		}
		s.setRow(colTransition, row, t.Match, t.Rotation.Marker(), t.Attacker, t.Code)
		row++
	}
}

// setOdds writes one set-odds table starting at row and returns the row where
// the next table should start.
func (s *sheetWriter) setOdds(t model.SetOddsTable, row int) int {
	n := t.Player
	s.set(1, row, fmt.Sprintf("#%d - Odds of Getting Set After a #%d Reception", n, n))
	s.set(2, row+1, fmt.Sprintf("After #%d Passed In System", n))
	s.set(6, row+1, fmt.Sprintf("After Someone Other #%d Passed In System", n))
	for _, col := range []int{2, 6} {
		s.setRow(col, row+2, fmt.Sprintf("#%d Was Set", n), fmt.Sprintf("#%d Not Set", n), fmt.Sprintf("#%d Was Set %%", n))
	}

	row += 3
	for _, r := range append(append([]model.SetOddsRow{}, t.Rows...), t.Total) {
		s.set(1, row, r.Label)
		s.setRow(2, row, r.Player.WasSet, r.Player.NotSet)
		s.setPct(4, row, r.Player.Rate())
		s.setRow(6, row, r.Others.WasSet, r.Others.NotSet)
		s.setPct(8, row, r.Others.Rate())
		row++
	}
	return row + 1
}
