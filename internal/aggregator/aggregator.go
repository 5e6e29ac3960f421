package aggregator

import (
	"sort"

	"github.com/pable/vbscout/internal/decoder"
	"github.com/pable/vbscout/internal/model"
)

// TallyAll computes a RotationTally for every rotation, in display order.
func TallyAll(ev model.Events) []model.RotationTally {
	out := make([]model.RotationTally, 0, len(model.Rotations))
	for _, rot := range model.Rotations {
		out = append(out, TallyRotation(rot, ev))
	}
	return out
}

// TallyRotation builds every tally block for one rotation. Events from other
// rotations are ignored; codes that fail to decode are left out of the block
// they would have been counted in.
func TallyRotation(rot model.Rotation, ev model.Events) model.RotationTally {
	var perfect, good, excellent, poor []string
	for _, r := range ev.Receptions {
		if r.Rotation != rot {
			continue
		}
		switch r.Grade {
		case model.GradePerfect:
			perfect = append(perfect, r.Code)
			good = append(good, r.Code)
		case model.GradeGood:
			good = append(good, r.Code)
		case model.GradeExcellent:
			excellent = append(excellent, r.Code)
		case model.GradePoor:
			poor = append(poor, r.Code)
		}
	}

	var transIn, transOOS []string
	for _, t := range ev.Transitions {
		if t.Rotation != rot {
			continue
		}
		switch len(t.Code) {
		case decoder.InSystemCodeLen:
			transIn = append(transIn, t.Code)
		case 1:
			transOOS = append(transOOS, t.Code)
		}
	}

	return model.RotationTally{
		Rotation: rot,
		Patterns: map[model.Category]model.PatternTally{
			model.CatReceptionPerfect:   TallyPatterns(model.CatReceptionPerfect, perfect),
			model.CatReceptionGood:      TallyPatterns(model.CatReceptionGood, good),
			model.CatReceptionExcellent: TallyPatterns(model.CatReceptionExcellent, excellent),
			model.CatTransitionInSystem: TallyPatterns(model.CatTransitionInSystem, transIn),
		},
		Positions: map[model.Category]model.PositionTally{
			model.CatReceptionOOS:  TallyPositions(model.CatReceptionOOS, poor),
			model.CatTransitionOOS: TallyPositions(model.CatTransitionOOS, transOOS),
		},
	}
}

// TallyPatterns decodes each in-system code and counts the resulting patterns.
// Counts and subgroups are sorted by label text.
func TallyPatterns(cat model.Category, codes []string) model.PatternTally {
	// Keyed by decoded label, not display text: back-row W and an unknown A
	// both read "A" but stay separate rows.
	counts := make(map[model.Pattern]int)
	for _, code := range codes {
		if p, ok := decoder.DecodeInSystem(code); ok {
			counts[p]++
		}
	}

	t := model.PatternTally{Category: cat}
	groups := make(map[model.Options]*model.Breakdown)
	for p, n := range counts {
		t.Counts = append(t.Counts, model.PatternCount{Pattern: p, Count: n})

		g := groups[p.Options()]
		if g == nil {
			g = &model.Breakdown{}
			groups[p.Options()] = g
		}
		g.Total += n
		g.Counts[p.SetPosition] += n
	}
	sort.Slice(t.Counts, func(i, j int) bool {
		return patternLess(t.Counts[i].Pattern, t.Counts[j].Pattern)
	})

	for opts, g := range groups {
		g.Fractions = fractions(g.Counts, g.Total)
		t.Subgroups = append(t.Subgroups, model.SubgroupBreakdown{Options: opts, Breakdown: *g})
	}
	sort.Slice(t.Subgroups, func(i, j int) bool {
		return optionsLess(t.Subgroups[i].Options, t.Subgroups[j].Options)
	})
	return t
}

// TallyPositions decodes each out-of-system code and counts labels. The
// breakdown covers the four canonical positions only, so RS appears in Counts
// but not in Breakdown.
func TallyPositions(cat model.Category, codes []string) model.PositionTally {
	counts := make(map[model.OOSLabel]int)
	for _, code := range codes {
		if l, ok := decoder.DecodeOutOfSystem(code); ok {
			counts[l]++
		}
	}

	t := model.PositionTally{Category: cat}
	for l, n := range counts {
		t.Counts = append(t.Counts, model.LabelCount{Label: l, Count: n})
		if pos, ok := l.Position(); ok {
			t.Breakdown.Total += n
			t.Breakdown.Counts[pos] += n
		}
	}
	sort.Slice(t.Counts, func(i, j int) bool { return t.Counts[i].Label < t.Counts[j].Label })
	t.Breakdown.Fractions = fractions(t.Breakdown.Counts, t.Breakdown.Total)
	return t
}

func fractions(counts [4]int, total int) [4]float64 {
	var out [4]float64
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(total)
	}
	return out
}

func patternLess(a, b model.Pattern) bool {
	if optionsLess(a.Options(), b.Options()) {
		return true
	}
	if optionsLess(b.Options(), a.Options()) {
		return false
	}
	if a.SetTo.Text != b.SetTo.Text {
		return a.SetTo.Text < b.SetTo.Text
	}
	return a.SetPosition < b.SetPosition
}

func optionsLess(a, b model.Options) bool {
	for i := range a {
		if a[i].Text != b[i].Text {
			return a[i].Text < b[i].Text
		}
		// Back-row W and an unknown A both read "A".
		if a[i].Raw != b[i].Raw {
			return a[i].Raw < b[i].Raw
		}
	}
	return false
}
