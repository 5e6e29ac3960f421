package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/model"
	"github.com/pable/vbscout/internal/report"
)

const analyzeSystemPrompt = `You are a volleyball scouting analyst. You are given per-rotation tallies
extracted from scouting transcripts of the home team's matches and a question from a coach.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers and the rotation they come from.
- If the sample is too small to answer confidently, say so explicitly.
- Be concise and actionable: what should the coach expect the opponent-facing offense to do.

Glossary:
- Rotations are labelled "Rotation 1".."Rotation 6" (scouting markers *z1, *z6, *z5, *z4, *z3, *z2).
- Reception grades: R# perfect, R+ good, R! excellent (all in-system), R- out of system.
- A pattern lists the attack option called for each position (OH outside, MB middle,
  OPP/S opposite or setter, BR back row) and where the set actually went ("set_to").
- Subgroup breakdowns give, for one combination of options, how often each position got the set.
- Out-of-system breakdowns give the share of sets to OH, MB, OPP/S and BR after a bad pass
  or in transition.
- Set odds: after an in-system pass, how often the outside hitter was set, split by whether
  that outside hitter made the pass.`

var (
	analyzeEvents eventFlags
	analyzeModel  string
	analyzeAPIKey string
	analyzeOH1    int
	analyzeOH2    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "AI-powered grounded analysis of the tallies (requires ANTHROPIC_API_KEY)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeEvents.register(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Anthropic model to use (defaults to config analyze.model)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeOH1, "oh1", 0, "include set odds for this outside hitter")
	analyzeCmd.Flags().IntVar(&analyzeOH2, "oh2", 0, "include set odds for this outside hitter")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	db, ev, err := analyzeEvents.load()
	if err != nil {
		return err
	}
	defer db.Close()
	if len(ev.Receptions) == 0 && len(ev.Transitions) == 0 {
		return fmt.Errorf("no events match the selected filters")
	}

	var odds []model.SetOddsTable
	if oh1, oh2 := playerNumbers(analyzeOH1, analyzeOH2); oh1 != 0 && oh2 != 0 {
		tables, err := setOddsTables(oh1, oh2)
		if err != nil {
			return err
		}
		odds = tables(ev.Receptions)
	}

	f := analyzeEvents.filter()
	contextJSON, err := buildTallyContext(f.HomeTeam, f.Opponents, aggregator.TallyAll(ev), odds)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	apiKey, err := resolveAPIKey(analyzeAPIKey)
	if err != nil {
		return err
	}
	modelID := analyzeModel
	if modelID == "" {
		modelID = cfg.Analyze.Model
	}
	scope := report.AnalysisScope(f.HomeTeam, f.Opponents)
	slog.Debug("analyze request", "model", modelID, "scope", scope, "context_bytes", len(contextJSON))

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	report.PrintAnalysisHeader(os.Stdout, scope, modelID)
	stats, err := streamAnalysis(cmd.Context(), &client, modelID, analysisPrompt(scope, contextJSON, question),
		func(text string) { fmt.Fprint(os.Stdout, text) })
	if err != nil {
		return err
	}
	report.PrintAnalysisFooter(os.Stdout, stats)
	return nil
}

type patternEntry struct {
	OH    string `json:"oh"`
	MB    string `json:"mb"`
	OPPS  string `json:"opp_s"`
	BR    string `json:"br"`
	SetTo string `json:"set_to"`
	Count int    `json:"count"`
}

type breakdownEntry struct {
	Options []string           `json:"options,omitempty"`
	Total   int                `json:"total"`
	Share   map[string]float64 `json:"share"`
}

type rotationEntry struct {
	Rotation    string                      `json:"rotation"`
	Marker      string                      `json:"marker"`
	Patterns    map[string][]patternEntry   `json:"patterns"`
	Subgroups   map[string][]breakdownEntry `json:"subgroups"`
	OutOfSystem map[string]breakdownEntry   `json:"out_of_system"`
}

type setOddsEntry struct {
	Rotation    string  `json:"rotation"`
	PlayerSet   int     `json:"player_passed_was_set"`
	PlayerTotal int     `json:"player_passed_total"`
	PlayerRate  float64 `json:"player_passed_rate"`
	OthersSet   int     `json:"others_passed_was_set"`
	OthersTotal int     `json:"others_passed_total"`
	OthersRate  float64 `json:"others_passed_rate"`
}

// buildTallyContext serialises the rotation tallies and set odds into compact JSON.
func buildTallyContext(team string, opponents []string, tallies []model.RotationTally, odds []model.SetOddsTable) (string, error) {
	rotations := make([]rotationEntry, 0, len(tallies))
	for _, rt := range tallies {
		e := rotationEntry{
			Rotation:    rt.Rotation.Label(),
			Marker:      rt.Rotation.Marker(),
			Patterns:    make(map[string][]patternEntry),
			Subgroups:   make(map[string][]breakdownEntry),
			OutOfSystem: make(map[string]breakdownEntry),
		}
		for _, cat := range model.PatternCategories {
			pt := rt.Patterns[cat]
			for _, c := range pt.Counts {
				p := c.Pattern
				e.Patterns[string(cat)] = append(e.Patterns[string(cat)], patternEntry{
					OH: p.OH.Text, MB: p.MB.Text, OPPS: p.OPPS.Text, BR: p.BR.Text,
					SetTo: p.SetTo.Text, Count: c.Count,
				})
			}
			for _, sg := range pt.Subgroups {
				b := breakdownJSON(sg.Breakdown)
				for _, l := range sg.Options {
					b.Options = append(b.Options, l.Text)
				}
				e.Subgroups[string(cat)] = append(e.Subgroups[string(cat)], b)
			}
		}
		for _, cat := range model.PositionCategories {
			e.OutOfSystem[string(cat)] = breakdownJSON(rt.Positions[cat].Breakdown)
		}
		rotations = append(rotations, e)
	}

	setOdds := make(map[string][]setOddsEntry, len(odds))
	for _, t := range odds {
		key := fmt.Sprintf("#%d", t.Player)
		for _, r := range append(append([]model.SetOddsRow{}, t.Rows...), t.Total) {
			setOdds[key] = append(setOdds[key], setOddsEntry{
				Rotation:    r.Label,
				PlayerSet:   r.Player.WasSet,
				PlayerTotal: r.Player.Total(),
				PlayerRate:  round2(r.Player.Rate()),
				OthersSet:   r.Others.WasSet,
				OthersTotal: r.Others.Total(),
				OthersRate:  round2(r.Others.Rate()),
			})
		}
	}

	doc := map[string]interface{}{
		"subject":   "rotation tallies",
		"home_team": team,
		"opponents": opponents,
		"rotations": rotations,
	}
	if len(setOdds) > 0 {
		doc["set_odds"] = setOdds
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

func breakdownJSON(b model.Breakdown) breakdownEntry {
	share := make(map[string]float64, len(model.Positions))
	for _, pos := range model.Positions {
		share[pos.String()] = round2(b.Fractions[pos])
	}
	return breakdownEntry{Total: b.Total, Share: share}
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	// Use integer arithmetic to avoid floating-point drift.
	return float64(int(v*100+0.5)) / 100
}

const analyzeMaxTokens = 1500

// analysisPrompt is the user turn: the scope line, the tally JSON, then the question.
func analysisPrompt(scope, dataJSON, question string) string {
	return fmt.Sprintf("SCOPE: %s\n\nDATA:\n%s\n\nQUESTION: %s", scope, dataJSON, question)
}

func resolveAPIKey(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
}

// streamAnalysis sends the prompt and hands each text delta to onText as it
// arrives. The returned stats come from the accumulated message.
func streamAnalysis(ctx context.Context, client *anthropic.Client, modelID, prompt string, onText func(string)) (report.AnalysisStats, error) {
	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: analyzeMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: analyzeSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	defer stream.Close()

	var msg anthropic.Message
	for stream.Next() {
		evt := stream.Current()
		if err := msg.Accumulate(evt); err != nil {
			return report.AnalysisStats{}, fmt.Errorf("accumulate response: %w", err)
		}
		if delta, ok := evt.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
			if text, ok := delta.Delta.AsAny().(anthropic.TextDelta); ok {
				onText(text.Text)
			}
		}
	}
	if err := stream.Err(); err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return report.AnalysisStats{}, fmt.Errorf("API authentication failed: check your API key")
		}
		return report.AnalysisStats{}, fmt.Errorf("stream response: %w", err)
	}
	return report.AnalysisStats{
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
		Truncated:    msg.StopReason == anthropic.StopReasonMaxTokens,
	}, nil
}
