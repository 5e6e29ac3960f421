package model

import "fmt"

// Rotation identifies one of the six rotation markers (*z1..*z6) in a transcript.
type Rotation int

const (
	RotationNone Rotation = 0
	RotationZ1   Rotation = 1
	RotationZ2   Rotation = 2
	RotationZ3   Rotation = 3
	RotationZ4   Rotation = 4
	RotationZ5   Rotation = 5
	RotationZ6   Rotation = 6
)

// Rotations lists the markers in display order. The scouting format numbers
// zones by setter position, so *z6 is the second rotation and *z2 the last.
var Rotations = []Rotation{RotationZ1, RotationZ6, RotationZ5, RotationZ4, RotationZ3, RotationZ2}

// Marker returns the raw transcript marker, e.g. "*z1".
func (r Rotation) Marker() string {
	if !r.Valid() {
		return ""
	}
	return fmt.Sprintf("*z%d", int(r))
}

// Label returns the display label, e.g. "Rotation 2" for *z6.
func (r Rotation) Label() string {
	for i, rot := range Rotations {
		if rot == r {
			return fmt.Sprintf("Rotation %d", i+1)
		}
	}
	return "No Rotation"
}

func (r Rotation) String() string {
	if !r.Valid() {
		return "-"
	}
	return r.Marker()
}

// Valid reports whether r is one of the six markers.
func (r Rotation) Valid() bool {
	return r >= RotationZ1 && r <= RotationZ6
}

// ParseRotation accepts "*z3", "z3" or "3".
func ParseRotation(s string) (Rotation, error) {
	n := 0
	switch {
	case len(s) == 3 && s[0] == '*' && s[1] == 'z':
		n = int(s[2] - '0')
	case len(s) == 2 && s[0] == 'z':
		n = int(s[1] - '0')
	case len(s) == 1:
		n = int(s[0] - '0')
	}
	r := Rotation(n)
	if !r.Valid() {
		return RotationNone, fmt.Errorf("invalid rotation %q (want *z1..*z6)", s)
	}
	return r, nil
}

// Grade is a two-character pass grade.
type Grade string

const (
	GradePoor      Grade = "R-"
	GradePerfect   Grade = "R#"
	GradeGood      Grade = "R+"
	GradeExcellent Grade = "R!"
)

// InSystem reports whether the grade carries a five-character in-system code.
func (g Grade) InSystem() bool {
	return g == GradePerfect || g == GradeGood || g == GradeExcellent
}

// ---- Events emitted by the scanner ----

// ReceptionEvent is a graded serve reception with its attack code.
type ReceptionEvent struct {
	Match    string
	Rotation Rotation
	Passer   int
	Grade    Grade
	Code     string
}

// TransitionEvent is an attack following a dig or freeball.
type TransitionEvent struct {
	Match    string
	Rotation Rotation
	Attacker int
	Code     string
}

// Events holds both event streams of one or more transcripts, each in transcript order.
// The two slices are independent; their lengths need not match.
type Events struct {
	Receptions  []ReceptionEvent
	Transitions []TransitionEvent
}

// Append adds the events of other to e.
func (e *Events) Append(other Events) {
	e.Receptions = append(e.Receptions, other.Receptions...)
	e.Transitions = append(e.Transitions, other.Transitions...)
}

// ---- Transcript metadata ----

const (
	PlaceholderDate = "01.01"
	PlaceholderHome = "Unknown Home"
	PlaceholderAway = "Unknown Away"
)

// MatchHeader is extracted once per transcript.
type MatchHeader struct {
	Date     string // "month.day"
	HomeTeam string
	AwayTeam string
}

// Label is the match identity shown on every event, e.g. "10.05 Cal".
func (h MatchHeader) Label() string {
	return h.Date + " " + h.AwayTeam
}

// Transcript is one parsed .dvw file.
type Transcript struct {
	Hash     string
	FileName string
	Header   MatchHeader
	Events   Events
}

// TranscriptSummary is a lightweight record for list/show commands.
type TranscriptSummary struct {
	Hash        string
	FileName    string
	MatchDate   string
	HomeTeam    string
	AwayTeam    string
	MatchLabel  string
	Receptions  int
	Transitions int
	ParsedAt    string
}
