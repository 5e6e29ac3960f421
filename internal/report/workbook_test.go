package report

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/model"
)

func sampleEvents() model.Events {
	return model.Events{
		Receptions: []model.ReceptionEvent{
			{Match: "10.05 Cal", Rotation: model.RotationZ1, Passer: 7, Grade: model.GradePerfect, Code: "GAR88"},
			{Match: "10.05 Cal", Rotation: model.RotationZ1, Passer: 12, Grade: model.GradePoor, Code: "M"},
			{Match: "10.05 Cal", Rotation: model.RotationZ6, Passer: 5, Grade: model.GradeGood, Code: "GAR8G"},
		},
		Transitions: []model.TransitionEvent{
			{Match: "10.05 Cal", Rotation: model.RotationZ1, Attacker: 11, Code: "9"},
		},
	}
}

func buildSample(t *testing.T) *excelize.File {
	t.Helper()
	ev := sampleEvents()
	f, err := BuildWorkbook(ev, aggregator.TallyAll(ev),
		aggregator.SetOdds(7, aggregator.DefaultOH1Rotations, ev.Receptions),
		aggregator.SetOdds(12, aggregator.DefaultOH2Rotations, ev.Receptions),
	)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s, %s): %v", sheet, cell, err)
	}
	return v
}

func TestBuildWorkbook_Sheets(t *testing.T) {
	f := buildSample(t)
	want := []string{"Rotation 1", "Rotation 2", "Rotation 3", "Rotation 4", "Rotation 5", "Rotation 6", SetOddsSheet}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildWorkbook_RotationSheet(t *testing.T) {
	f := buildSample(t)
	const sheet = "Rotation 1"

	cases := map[string]string{
		// Tallies.
		"A1": "Reception R#",
		"A2": "OH",
		"F2": "Count",
		"A3": "Go",
		"B3": "A",
		"C3": "Red",
		"D3": "Bic/Pipe",
		"E3": "Bic/Pipe",
		"F3": "1",
		"A5": "Reception R# or R+",
		// Breakdowns.
		"H1": "Reception R#",
		"I2": "Go",
		"L2": "Bic/Pipe",
		"H3": "1",
		"I3": "0",
		"L3": "1",
		"I4": "0.00",
		"L4": "1.00",
		// Raw data.
		"N1": "Reception Raw Data",
		"N3": "10.05 Cal",
		"O3": "*z1",
		"P3": "7",
		"Q3": "R#",
		"R3": "GAR88",
		"P4": "12",
		"R4": "M",
		"T1": "Transition Raw Data",
		"V2": "Attacker #",
		"V3": "11",
		"W3": "9",
	}
	for cell, want := range cases {
		if got := cellValue(t, f, sheet, cell); got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
	// The *z6 reception stays on its own sheet.
	if got := cellValue(t, f, sheet, "N5"); got != "" {
		t.Errorf("N5 = %q, want empty", got)
	}
	if got := cellValue(t, f, "Rotation 2", "P3"); got != "5" {
		t.Errorf("Rotation 2 P3 = %q, want 5", got)
	}
}

func TestBuildWorkbook_SetOddsSheet(t *testing.T) {
	f := buildSample(t)

	cases := map[string]string{
		"A1":  "#7 - Odds of Getting Set After a #7 Reception",
		"B2":  "After #7 Passed In System",
		"F2":  "After Someone Other #7 Passed In System",
		"B3":  "#7 Was Set",
		"D3":  "#7 Was Set %",
		"A4":  "Rot 1",
		"B4":  "0",
		"C4":  "1",
		"A5":  "Rot 5",
		"A6":  "Rot 6",
		"A7":  "Tot",
		"C7":  "1",
		"A9":  "#12 - Odds of Getting Set After a #12 Reception",
		"A12": "Rot 2",
		"F12": "1",
		"G12": "0",
		"A15": "Tot",
	}
	for cell, want := range cases {
		if got := cellValue(t, f, SetOddsSheet, cell); got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestBuildWorkbook_NoRotations(t *testing.T) {
	f, err := BuildWorkbook(model.Events{}, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != SetOddsSheet {
		t.Errorf("sheets = %v", got)
	}
}
