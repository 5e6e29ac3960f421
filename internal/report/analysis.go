package report

import (
	"fmt"
	"io"
	"strings"
)

// AnalysisStats describes a finished model answer.
type AnalysisStats struct {
	InputTokens  int64
	OutputTokens int64
	Truncated    bool
}

// AnalysisScope names the transcripts an answer is grounded on.
func AnalysisScope(team string, opponents []string) string {
	if team == "" {
		team = "all teams"
	}
	if len(opponents) == 0 {
		return team
	}
	return team + " vs " + strings.Join(opponents, ", ")
}

// PrintAnalysisHeader opens an answer block.
func PrintAnalysisHeader(w io.Writer, scope, modelID string) {
	fmt.Fprintf(w, "\n=== Analysis: %s (%s) ===\n\n", scope, modelID)
}

// PrintAnalysisFooter closes an answer block with token usage.
func PrintAnalysisFooter(w io.Writer, s AnalysisStats) {
	fmt.Fprintln(w)
	if s.Truncated {
		fmt.Fprintln(w, "[answer truncated at the token limit]")
	}
	fmt.Fprintf(w, "--- %d tokens in, %d tokens out ---\n", s.InputTokens, s.OutputTokens)
}
