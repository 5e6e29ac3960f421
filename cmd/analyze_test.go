package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/model"
)

func TestBuildTallyContext(t *testing.T) {
	ev := model.Events{
		Receptions: []model.ReceptionEvent{
			{Match: "10.05 Cal", Rotation: model.RotationZ1, Passer: 7, Grade: model.GradePerfect, Code: "GAR8G"},
			{Match: "10.05 Cal", Rotation: model.RotationZ1, Passer: 9, Grade: model.GradePoor, Code: "M"},
		},
	}
	odds := []model.SetOddsTable{aggregator.SetOdds(7, aggregator.DefaultOH1Rotations, ev.Receptions)}

	out, err := buildTallyContext("Stanford", []string{"Cal"}, aggregator.TallyAll(ev), odds)
	if err != nil {
		t.Fatalf("buildTallyContext: %v", err)
	}

	var doc struct {
		HomeTeam  string                    `json:"home_team"`
		Rotations []rotationEntry           `json:"rotations"`
		SetOdds   map[string][]setOddsEntry `json:"set_odds"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if doc.HomeTeam != "Stanford" || len(doc.Rotations) != 6 {
		t.Fatalf("unexpected doc: %s", out)
	}

	r1 := doc.Rotations[0]
	if r1.Marker != "*z1" {
		t.Errorf("first rotation = %s", r1.Marker)
	}
	perfect := r1.Patterns[string(model.CatReceptionPerfect)]
	if len(perfect) != 1 || perfect[0].SetTo != "Go" || perfect[0].Count != 1 {
		t.Errorf("R# patterns = %+v", perfect)
	}
	oos := r1.OutOfSystem[string(model.CatReceptionOOS)]
	if oos.Total != 1 || oos.Share["MB"] != 1 {
		t.Errorf("R- breakdown = %+v", oos)
	}

	rows := doc.SetOdds["#7"]
	if len(rows) != 4 || rows[0].PlayerSet != 1 || rows[0].PlayerRate != 1 || rows[3].Rotation != "Tot" {
		t.Errorf("set odds = %+v", rows)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{0: 0, 1.0 / 3.0: 0.33, 2.0 / 3.0: 0.67, 1: 1}
	for in, want := range cases {
		if got := round2(in); got != want {
			t.Errorf("round2(%f) = %f, want %f", in, got, want)
		}
	}
}

func TestAnalysisPrompt(t *testing.T) {
	got := analysisPrompt("Stanford vs Cal", `{"k":1}`, "where does the set go in rotation 1?")
	for _, want := range []string{"SCOPE: Stanford vs Cal\n", "DATA:\n{\"k\":1}", "QUESTION: where does the set go in rotation 1?"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	if k, err := resolveAPIKey("flag-key"); err != nil || k != "flag-key" {
		t.Errorf("flag: got %q, %v", k, err)
	}
	if k, err := resolveAPIKey(""); err != nil || k != "env-key" {
		t.Errorf("env: got %q, %v", k, err)
	}

	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := resolveAPIKey(""); err == nil {
		t.Error("expected an error with no key")
	}
}
