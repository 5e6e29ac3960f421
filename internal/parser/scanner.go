package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pable/vbscout/internal/decoder"
	"github.com/pable/vbscout/internal/model"
)

var (
	rotationMarker  = regexp.MustCompile(`\*z(\d+)`)
	receptionMarker = regexp.MustCompile(`\*\d{2}R[^;]*;`)
	digMarker       = regexp.MustCompile(`\*\d{2}[DF]`)
	attackMarker    = regexp.MustCompile(`\*(\d{2})A`)
)

// Cursor is the scanner state. It remembers the rotation in effect after the
// current line and after each of the two previous lines, and whether those
// lines carried a dig or free-ball marker. The reception rule reads the current
// slot; the transition rule reads the slot two lines back.
type Cursor struct {
	rotations [3]model.Rotation
	digs      [3]bool
}

// Advance returns the cursor after consuming line. c is not modified.
func (c Cursor) Advance(line string) Cursor {
	next := Cursor{
		rotations: [3]model.Rotation{c.rotations[0], c.rotations[0], c.rotations[1]},
		digs:      [3]bool{digMarker.MatchString(line), c.digs[0], c.digs[1]},
	}
	if r, ok := lineRotation(line); ok {
		next.rotations[0] = r
	}
	return next
}

// Rotation returns the rotation in effect after the current line.
func (c Cursor) Rotation() model.Rotation { return c.rotations[0] }

// LookBack returns the rotation in effect after the line two positions back and
// whether that line carried a dig or free-ball marker.
func (c Cursor) LookBack() (model.Rotation, bool) { return c.rotations[2], c.digs[2] }

// Step consumes one line and returns the advanced cursor together with the
// events that line produced.
func Step(c Cursor, line, match string) (Cursor, model.Events) {
	next := c.Advance(line)
	var out model.Events
	if rot := next.Rotation(); rot.Valid() {
		out.Receptions = receptions(line, match, rot)
	}
	if t, ok := transition(next, line, match); ok {
		out.Transitions = append(out.Transitions, t)
	}
	return next, out
}

// Scan folds Step over all lines of a transcript. Events are returned in
// transcript order, tagged with match.
func Scan(lines []string, match string) model.Events {
	var (
		cur Cursor
		all model.Events
	)
	for _, line := range lines {
		var ev model.Events
		cur, ev = Step(cur, line, match)
		all.Append(ev)
	}
	return all
}

// lineRotation returns the first *zN marker on the line with N in 1..6.
func lineRotation(line string) (model.Rotation, bool) {
	for _, m := range rotationMarker.FindAllStringSubmatch(line, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if r := model.Rotation(n); r.Valid() {
			return r, true
		}
	}
	return model.RotationNone, false
}

func receptions(line, match string, rot model.Rotation) []model.ReceptionEvent {
	var out []model.ReceptionEvent
	for _, m := range receptionMarker.FindAllString(line, -1) {
		// *DDR?X... : the grade is the skill letter plus the evaluation two bytes later.
		if len(m) < 6 {
			continue
		}
		grade := model.Grade(string([]byte{m[3], m[5]}))
		code := customCode(strings.TrimSuffix(m, ";"))
		if !keepReception(grade, code) {
			continue
		}
		out = append(out, model.ReceptionEvent{
			Match:    match,
			Rotation: rot,
			Passer:   playerNumber(m[1:3]),
			Grade:    grade,
			Code:     code,
		})
	}
	return out
}

func keepReception(grade model.Grade, code string) bool {
	switch {
	case grade == model.GradePoor:
		return decoder.IsOutOfSystemCode(code)
	case grade.InSystem():
		return decoder.IsInSystemCode(code)
	}
	return false
}

func transition(c Cursor, line, match string) (model.TransitionEvent, bool) {
	rot, dug := c.LookBack()
	if !dug || !rot.Valid() {
		return model.TransitionEvent{}, false
	}
	m := attackMarker.FindStringSubmatch(line)
	if m == nil {
		return model.TransitionEvent{}, false
	}
	field, _, _ := strings.Cut(line, ";")
	code := customCode(field)
	if !decoder.IsInSystemCode(code) && !decoder.IsOutOfSystemCode(code) {
		return model.TransitionEvent{}, false
	}
	return model.TransitionEvent{
		Match:    match,
		Rotation: rot,
		Attacker: playerNumber(m[1]),
		Code:     code,
	}, true
}

// customCode returns the last '~'-separated segment of s.
func customCode(s string) string {
	if i := strings.LastIndexByte(s, '~'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// playerNumber parses a two-digit jersey number. The markers only match
// digits, so the conversion cannot fail in practice.
func playerNumber(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
