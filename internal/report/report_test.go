package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/model"
)

func TestPrintRotationTally(t *testing.T) {
	ev := sampleEvents()
	var buf bytes.Buffer
	PrintRotationTally(&buf, aggregator.TallyRotation(model.RotationZ1, ev))
	out := buf.String()

	for _, want := range []string{
		"Rotation 1 (*z1)",
		"Reception R# (1)",
		"Bic/Pipe",
		"1 (1.00)",
		"Reception R! (0)",
		"Transition OOS TR (1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSetOdds(t *testing.T) {
	ev := sampleEvents()
	var buf bytes.Buffer
	PrintSetOdds(&buf, aggregator.SetOdds(12, aggregator.DefaultOH2Rotations, ev.Receptions))
	out := buf.String()

	for _, want := range []string{"#12 - Odds of Getting Set After a #12 Reception", "Rot 2", "Tot", "1.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTranscriptList(t *testing.T) {
	var buf bytes.Buffer
	PrintTranscriptList(&buf, []model.TranscriptSummary{
		{Hash: "0123456789abcdef", MatchDate: "10.05", HomeTeam: "Stanford", AwayTeam: "Cal", Receptions: 3, FileName: "a.dvw"},
	})
	out := buf.String()
	if !strings.Contains(out, "0123456789ab") || strings.Contains(out, "0123456789abc") {
		t.Errorf("expected hash shortened to 12 chars:\n%s", out)
	}
	if !strings.Contains(out, "Stanford") {
		t.Errorf("missing home team:\n%s", out)
	}
}
