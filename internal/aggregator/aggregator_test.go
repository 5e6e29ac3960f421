package aggregator

import (
	"math"
	"testing"

	"github.com/pable/vbscout/internal/model"
)

// rec builds a reception event in match "m".
func rec(rot model.Rotation, passer int, grade model.Grade, code string) model.ReceptionEvent {
	return model.ReceptionEvent{Match: "m", Rotation: rot, Passer: passer, Grade: grade, Code: code}
}

// trans builds a transition event in match "m".
func trans(rot model.Rotation, attacker int, code string) model.TransitionEvent {
	return model.TransitionEvent{Match: "m", Rotation: rot, Attacker: attacker, Code: code}
}

const floatTol = 1e-9

// ---- Reception buckets ----

func TestTallyRotation_GradeBuckets(t *testing.T) {
	ev := model.Events{Receptions: []model.ReceptionEvent{
		rec(model.RotationZ1, 7, model.GradePerfect, "GAR88"),
		rec(model.RotationZ1, 7, model.GradePerfect, "GAR88"),
		rec(model.RotationZ1, 5, model.GradeGood, "GAR8G"),
		rec(model.RotationZ1, 5, model.GradeExcellent, "IC5MC"),
		rec(model.RotationZ1, 5, model.GradePerfect, "GARWZ"), // no set target: excluded
		rec(model.RotationZ6, 7, model.GradePerfect, "GAR88"), // other rotation
	}}

	rt := TallyRotation(model.RotationZ1, ev)

	perfect := rt.Patterns[model.CatReceptionPerfect]
	if perfect.Total() != 2 || len(perfect.Counts) != 1 {
		t.Fatalf("R#: total=%d entries=%d, want 2/1", perfect.Total(), len(perfect.Counts))
	}
	if got := perfect.Counts[0].Pattern.SetTo.Text; got != "Bic/Pipe" {
		t.Errorf("R# set target = %q, want Bic/Pipe", got)
	}

	good := rt.Patterns[model.CatReceptionGood]
	if good.Total() != 3 {
		t.Errorf("R# or R+: total=%d, want 3", good.Total())
	}
	if len(good.Subgroups) != 1 {
		t.Fatalf("R# or R+: expected one subgroup, got %d", len(good.Subgroups))
	}
	sg := good.Subgroups[0]
	if sg.Total != 3 || sg.Counts[model.PosBR] != 2 || sg.Counts[model.PosOH] != 1 {
		t.Errorf("subgroup counts = %+v", sg.Breakdown)
	}
	if math.Abs(sg.Fractions[model.PosBR]-2.0/3.0) > floatTol {
		t.Errorf("BR fraction = %f, want 0.667", sg.Fractions[model.PosBR])
	}

	excellent := rt.Patterns[model.CatReceptionExcellent]
	if excellent.Total() != 1 || excellent.Counts[0].Pattern.SetPosition != model.PosMB {
		t.Errorf("R!: unexpected tally %+v", excellent.Counts)
	}
}

func TestTallyRotation_OutOfSystemReception(t *testing.T) {
	ev := model.Events{Receptions: []model.ReceptionEvent{
		rec(model.RotationZ2, 3, model.GradePoor, "M"),
		rec(model.RotationZ2, 3, model.GradePoor, "M"),
		rec(model.RotationZ2, 3, model.GradePoor, "5"),
		rec(model.RotationZ2, 3, model.GradePoor, "8"),
		rec(model.RotationZ2, 3, model.GradePoor, "9"),
		rec(model.RotationZ2, 3, model.GradePoor, "X"),
	}}

	pt := TallyRotation(model.RotationZ2, ev).Positions[model.CatReceptionOOS]

	want := []model.LabelCount{
		{Label: model.OOSBackRow, Count: 2},
		{Label: model.OOSMiddle, Count: 2},
		{Label: model.OOSRightSide, Count: 1},
	}
	if len(pt.Counts) != len(want) {
		t.Fatalf("counts = %+v, want %+v", pt.Counts, want)
	}
	for i := range want {
		if pt.Counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, pt.Counts[i], want[i])
		}
	}
	b := pt.Breakdown
	if b.Total != 4 || b.Counts[model.PosMB] != 2 || b.Counts[model.PosOPPS] != 0 || b.Counts[model.PosBR] != 2 {
		t.Errorf("breakdown = %+v", b)
	}
}

func TestTallyPositions_RightSideLeftOutOfBreakdown(t *testing.T) {
	pt := TallyPositions(model.CatReceptionOOS, []string{"5", "5", "4"})

	if pt.Total() != 3 {
		t.Errorf("label total = %d, want 3", pt.Total())
	}
	b := pt.Breakdown
	if b.Total != 1 || b.Counts[model.PosOH] != 1 || b.Counts[model.PosOPPS] != 0 {
		t.Errorf("breakdown = %+v", b)
	}
	if b.Fractions[model.PosOH] != 1 || b.Fractions[model.PosOPPS] != 0 {
		t.Errorf("fractions = %v", b.Fractions)
	}
}

func TestTallyPositions_OnlyRightSide(t *testing.T) {
	pt := TallyPositions(model.CatTransitionOOS, []string{"5"})

	if len(pt.Counts) != 1 || pt.Counts[0] != (model.LabelCount{Label: model.OOSRightSide, Count: 1}) {
		t.Errorf("counts = %+v", pt.Counts)
	}
	if pt.Breakdown != (model.Breakdown{}) {
		t.Errorf("breakdown = %+v, want zero", pt.Breakdown)
	}
}

func TestTallyPatterns_EqualTextDifferentRawStaySeparate(t *testing.T) {
	// Back-row W is "A"; back-row A is unknown and also reads "A".
	pt := TallyPatterns(model.CatReceptionPerfect, []string{"G35WW", "G35AA"})

	if len(pt.Counts) != 2 {
		t.Fatalf("counts = %+v, want 2 rows", pt.Counts)
	}
	for _, c := range pt.Counts {
		if c.Pattern.SetTo.Text != "A" || c.Pattern.SetPosition != model.PosBR || c.Count != 1 {
			t.Errorf("row = %+v", c)
		}
	}
	if pt.Counts[0].Pattern.BR.Known || !pt.Counts[1].Pattern.BR.Known {
		t.Errorf("expected unknown A before back-row W: %+v", pt.Counts)
	}
	if len(pt.Subgroups) != 2 {
		t.Errorf("subgroups = %+v", pt.Subgroups)
	}
}

// ---- Transitions ----

func TestTallyRotation_TransitionsSplitByCodeLength(t *testing.T) {
	ev := model.Events{Transitions: []model.TransitionEvent{
		trans(model.RotationZ3, 11, "GA57G"),
		trans(model.RotationZ3, 11, "GA57G"),
		trans(model.RotationZ3, 11, "GA57Q"), // undecodable
		trans(model.RotationZ3, 4, "4"),
		trans(model.RotationZ3, 4, "7"),
		trans(model.RotationZ4, 4, "7"),
	}}

	rt := TallyRotation(model.RotationZ3, ev)
	in := rt.Patterns[model.CatTransitionInSystem]
	if in.Total() != 2 {
		t.Errorf("in-system total = %d, want 2", in.Total())
	}
	oos := rt.Positions[model.CatTransitionOOS]
	if oos.Total() != 2 || oos.Breakdown.Counts[model.PosOH] != 1 || oos.Breakdown.Counts[model.PosBR] != 1 {
		t.Errorf("oos tally = %+v", oos)
	}
}

// ---- Invariants ----

func TestTallyPatterns_SumNeverExceedsInput(t *testing.T) {
	codes := []string{"GAR88", "GAR8Z", "IC5MC", "XXXXX", "GGG7G", "RAA8A", "41S94", "00000"}
	pt := TallyPatterns(model.CatReceptionPerfect, codes)
	if pt.Total() > len(codes) {
		t.Fatalf("tally total %d exceeds input %d", pt.Total(), len(codes))
	}
	// GAR8Z fails; every other code decodes (XXXXX and 00000 set to OH).
	if pt.Total() != len(codes)-1 {
		t.Errorf("tally total = %d, want %d", pt.Total(), len(codes)-1)
	}
}

func TestTallyPatterns_FractionsSumToOne(t *testing.T) {
	codes := []string{"GAR88", "GAR8G", "GAR8A", "GAR8R", "GAR8R", "RAA8A", "RAA8R"}
	pt := TallyPatterns(model.CatReceptionGood, codes)
	for _, sg := range pt.Subgroups {
		if sg.Total == 0 {
			t.Errorf("empty subgroup %v", sg.Options)
			continue
		}
		sum := 0.0
		for _, f := range sg.Fractions {
			sum += f
		}
		if math.Abs(sum-1) > floatTol {
			t.Errorf("subgroup %v fractions sum to %f", sg.Options, sum)
		}
	}
}

func TestTallyPatterns_DuplicateLabelsAttributedByPosition(t *testing.T) {
	// MB A and back-row W both read "A"; the set position keeps them apart.
	pt := TallyPatterns(model.CatReceptionPerfect, []string{"GA5WA", "GA5WW"})
	if len(pt.Counts) != 2 {
		t.Fatalf("expected two distinct patterns, got %+v", pt.Counts)
	}
	if len(pt.Subgroups) != 1 {
		t.Fatalf("expected one subgroup, got %d", len(pt.Subgroups))
	}
	sg := pt.Subgroups[0]
	if sg.Counts[model.PosMB] != 1 || sg.Counts[model.PosBR] != 1 {
		t.Errorf("counts = %v", sg.Counts)
	}
	if pt.Counts[0].Pattern.SetPosition != model.PosMB {
		t.Errorf("expected MB pattern first, got %s", pt.Counts[0].Pattern.SetPosition)
	}
}

func TestEmptyTalliesHaveZeroFractions(t *testing.T) {
	rt := TallyRotation(model.RotationZ5, model.Events{})
	for _, cat := range model.PositionCategories {
		b := rt.Positions[cat].Breakdown
		if b.Total != 0 {
			t.Errorf("%s: total = %d", cat, b.Total)
		}
		for i, f := range b.Fractions {
			if f != 0 {
				t.Errorf("%s: fraction[%d] = %f, want 0", cat, i, f)
			}
		}
	}
	for _, cat := range model.PatternCategories {
		if n := len(rt.Patterns[cat].Counts); n != 0 {
			t.Errorf("%s: %d entries, want 0", cat, n)
		}
	}
}

func TestTallyPatterns_SortedByLabel(t *testing.T) {
	pt := TallyPatterns(model.CatReceptionPerfect, []string{"RA588", "GA588", "IA588", "GA58G", "2A582"})
	prev := ""
	for _, c := range pt.Counts {
		oh := c.Pattern.OH.Text
		if oh < prev {
			t.Errorf("patterns out of order: %q after %q", oh, prev)
		}
		prev = oh
	}
	if pt.Counts[0].Pattern.OH.Text != "2" {
		t.Errorf("expected \"2\" first, got %q", pt.Counts[0].Pattern.OH.Text)
	}
	// Same options, different set target: Bic/Pipe sorts before Go.
	if pt.Counts[1].Pattern.SetTo.Text != "Bic/Pipe" || pt.Counts[2].Pattern.SetTo.Text != "Go" {
		t.Errorf("unexpected order within Go subgroup: %+v", pt.Counts[1:3])
	}
}

func TestTallyAll_DisplayOrder(t *testing.T) {
	all := TallyAll(model.Events{})
	if len(all) != 6 {
		t.Fatalf("expected 6 rotations, got %d", len(all))
	}
	want := []model.Rotation{model.RotationZ1, model.RotationZ6, model.RotationZ5, model.RotationZ4, model.RotationZ3, model.RotationZ2}
	for i, rt := range all {
		if rt.Rotation != want[i] {
			t.Errorf("rotation[%d] = %s, want %s", i, rt.Rotation, want[i])
		}
	}
}
