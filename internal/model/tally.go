package model

// Position is one of the four attack options tracked by an in-system code.
type Position int

const (
	PosOH Position = iota
	PosMB
	PosOPPS
	PosBR
)

// Positions lists the four options in code order.
var Positions = []Position{PosOH, PosMB, PosOPPS, PosBR}

func (p Position) String() string {
	switch p {
	case PosOH:
		return "OH"
	case PosMB:
		return "MB"
	case PosOPPS:
		return "OPP/S"
	case PosBR:
		return "BR"
	default:
		return "?"
	}
}

// Label is a decoded option. A code missing from its table decodes to an
// unknown label whose Text is the raw character itself.
type Label struct {
	Raw   byte
	Text  string
	Known bool
}

func (l Label) String() string { return l.Text }

// Pattern is a decoded five-character in-system code.
type Pattern struct {
	OH, MB, OPPS, BR Label
	SetTo            Label
	SetPosition      Position
}

// Option returns the label of position pos.
func (p Pattern) Option(pos Position) Label {
	switch pos {
	case PosMB:
		return p.MB
	case PosOPPS:
		return p.OPPS
	case PosBR:
		return p.BR
	default:
		return p.OH
	}
}

// Options returns the four option labels, ignoring the set target.
func (p Pattern) Options() Options {
	return Options{p.OH, p.MB, p.OPPS, p.BR}
}

// Options is the subgroup key of a pattern: the four option labels in code order.
type Options [4]Label

// OOSLabel is the single-character fallback recorded on out-of-system plays.
type OOSLabel string

const (
	OOSOutside   OOSLabel = "OH"
	OOSRightSide OOSLabel = "RS"
	OOSMiddle    OOSLabel = "MB"
	OOSBackRow   OOSLabel = "BR"
)

// Position maps the label onto the canonical four positions. RS has no
// canonical position and reports false.
func (l OOSLabel) Position() (Position, bool) {
	switch l {
	case OOSOutside:
		return PosOH, true
	case OOSMiddle:
		return PosMB, true
	case OOSBackRow:
		return PosBR, true
	}
	return 0, false
}

// Category names a tally block.
type Category string

const (
	CatReceptionPerfect   Category = "Reception R#"
	CatReceptionGood      Category = "Reception R# or R+"
	CatReceptionExcellent Category = "Reception R!"
	CatReceptionOOS       Category = "Reception R-"
	CatTransitionInSystem Category = "Transition In-System"
	CatTransitionOOS      Category = "Transition OOS TR"
)

// PatternCategories are tallied by full pattern, in presentation order.
var PatternCategories = []Category{
	CatReceptionPerfect, CatReceptionGood, CatReceptionExcellent, CatTransitionInSystem,
}

// PositionCategories are tallied by out-of-system label, in presentation order.
var PositionCategories = []Category{CatReceptionOOS, CatTransitionOOS}

// ---- Aggregated tallies ----

// PatternCount is one row of a pattern frequency table.
type PatternCount struct {
	Pattern Pattern
	Count   int
}

// LabelCount is one row of an out-of-system label frequency table.
type LabelCount struct {
	Label OOSLabel
	Count int
}

// Breakdown holds how often the set went to each of the four positions.
type Breakdown struct {
	Total     int
	Counts    [4]int
	Fractions [4]float64
}

// SubgroupBreakdown is a Breakdown for one set of option labels.
type SubgroupBreakdown struct {
	Options Options
	Breakdown
}

// PatternTally is a full-pattern frequency table with per-subgroup breakdowns.
type PatternTally struct {
	Category  Category
	Counts    []PatternCount
	Subgroups []SubgroupBreakdown
}

// Total returns the number of tallied events.
func (t PatternTally) Total() int {
	n := 0
	for _, c := range t.Counts {
		n += c.Count
	}
	return n
}

// PositionTally is an out-of-system label frequency table.
type PositionTally struct {
	Category  Category
	Counts    []LabelCount
	Breakdown Breakdown
}

// Total returns the number of tallied events.
func (t PositionTally) Total() int {
	n := 0
	for _, c := range t.Counts {
		n += c.Count
	}
	return n
}

// RotationTally holds every tally block of one rotation.
type RotationTally struct {
	Rotation  Rotation
	Patterns  map[Category]PatternTally
	Positions map[Category]PositionTally
}

// ---- Set odds ----

// SetSplit counts in-system receptions after which the outside hitter was or was not set.
type SetSplit struct {
	WasSet int
	NotSet int
}

func (s SetSplit) Total() int { return s.WasSet + s.NotSet }

// Rate returns WasSet as a fraction of all receptions in the split.
func (s SetSplit) Rate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.WasSet) / float64(s.Total())
}

func (s *SetSplit) add(o SetSplit) {
	s.WasSet += o.WasSet
	s.NotSet += o.NotSet
}

// RotationLabel pairs a rotation with the label used for it in the set-odds table.
type RotationLabel struct {
	Rotation Rotation
	Label    string
}

// SetOddsRow is one rotation (or the total) of a set-odds table.
type SetOddsRow struct {
	Label    string
	Rotation Rotation
	Player   SetSplit // the designated player passed
	Others   SetSplit // anyone else passed
}

// Add accumulates o into r.
func (r *SetOddsRow) Add(o SetOddsRow) {
	r.Player.add(o.Player)
	r.Others.add(o.Others)
}

// SetOddsTable is the set-odds report for one outside hitter.
type SetOddsTable struct {
	Player int
	Rows   []SetOddsRow
	Total  SetOddsRow
}
