package aggregator

import (
	"math"
	"testing"

	"github.com/pable/vbscout/internal/model"
)

func TestSetOdds_SplitsByPasser(t *testing.T) {
	receptions := []model.ReceptionEvent{
		// *z1: #7 passes twice, set to OH once.
		rec(model.RotationZ1, 7, model.GradePerfect, "GAR8G"),
		rec(model.RotationZ1, 7, model.GradeGood, "GAR88"),
		// *z1: someone else passes, OH set.
		rec(model.RotationZ1, 12, model.GradeExcellent, "GAR8G"),
		// Ignored: R- grade, undecodable, rotation not requested.
		rec(model.RotationZ1, 7, model.GradePoor, "4"),
		rec(model.RotationZ1, 7, model.GradePerfect, "GAR8Z"),
		rec(model.RotationZ6, 7, model.GradePerfect, "GAR8G"),
		// *z3: #7 passes, not set.
		rec(model.RotationZ3, 7, model.GradePerfect, "GAR8A"),
	}

	table := SetOdds(7, DefaultOH1Rotations, receptions)

	if table.Player != 7 {
		t.Errorf("Player = %d", table.Player)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}

	r1 := table.Rows[0]
	if r1.Label != "Rot 1" || r1.Rotation != model.RotationZ1 {
		t.Errorf("row 0 = %s/%s", r1.Label, r1.Rotation)
	}
	if r1.Player != (model.SetSplit{WasSet: 1, NotSet: 1}) {
		t.Errorf("row 0 player split = %+v", r1.Player)
	}
	if r1.Others != (model.SetSplit{WasSet: 1}) {
		t.Errorf("row 0 others split = %+v", r1.Others)
	}

	r5 := table.Rows[1]
	if r5.Label != "Rot 5" || r5.Player != (model.SetSplit{NotSet: 1}) {
		t.Errorf("row 1 = %+v", r5)
	}

	r6 := table.Rows[2]
	if r6.Player.Total() != 0 || r6.Player.Rate() != 0 || r6.Others.Rate() != 0 {
		t.Errorf("empty row should have zero rates: %+v", r6)
	}

	if table.Total.Label != "Tot" {
		t.Errorf("total label = %q", table.Total.Label)
	}
	if table.Total.Player != (model.SetSplit{WasSet: 1, NotSet: 2}) {
		t.Errorf("total player split = %+v", table.Total.Player)
	}
	if math.Abs(table.Total.Player.Rate()-1.0/3.0) > floatTol {
		t.Errorf("total player rate = %f", table.Total.Player.Rate())
	}
	if table.Total.Others.Rate() != 1 {
		t.Errorf("total others rate = %f", table.Total.Others.Rate())
	}
}

func TestSetOdds_RowOrderFollowsInput(t *testing.T) {
	table := SetOdds(9, DefaultOH2Rotations, nil)
	want := []string{"Rot 2", "Rot 3", "Rot 4"}
	for i, row := range table.Rows {
		if row.Label != want[i] {
			t.Errorf("row %d = %q, want %q", i, row.Label, want[i])
		}
	}
	if table.Total.Player.Total() != 0 || table.Total.Others.Total() != 0 {
		t.Errorf("expected empty totals, got %+v", table.Total)
	}
}

func TestSetOdds_SetTargetIsPositionNotText(t *testing.T) {
	// OH 'A' is unknown and reads "A"; the set goes to back-row W, which also
	// reads "A". Only a set to the OH position counts.
	receptions := []model.ReceptionEvent{
		rec(model.RotationZ1, 7, model.GradePerfect, "A35WW"),
		rec(model.RotationZ1, 7, model.GradePerfect, "A35WA"),
	}

	table := SetOdds(7, DefaultOH1Rotations, receptions)

	if got := table.Rows[0].Player; got != (model.SetSplit{WasSet: 1, NotSet: 1}) {
		t.Errorf("player split = %+v, want one set and one not set", got)
	}
}
