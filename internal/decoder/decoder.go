// Package decoder maps raw positional codes from scouting transcripts onto
// attack-option labels. All functions are pure; the tables are read-only.
package decoder

import (
	"strings"

	"github.com/pable/vbscout/internal/model"
)

// InSystemCodeLen is the length of an in-system code: four option characters
// followed by the character of the option that was set.
const InSystemCodeLen = 5

// OutOfSystemCodes are the single characters accepted as out-of-system codes.
const OutOfSystemCodes = "45789M"

// DecodeInSystem decodes a five-character in-system code. It returns false if
// the code is not five ASCII alphanumerics or if its fifth character matches
// none of the first four. When several positions share the fifth character,
// the first in OH, MB, OPP/S, BR order wins.
func DecodeInSystem(code string) (model.Pattern, bool) {
	if !IsInSystemCode(code) {
		return model.Pattern{}, false
	}
	p := model.Pattern{
		OH:   OutsideLabel(code[0]),
		MB:   MiddleLabel(code[1]),
		OPPS: OppositeLabel(code[2]),
		BR:   BackRowLabel(code[3]),
	}
	set := code[4]
	for i, pos := range model.Positions {
		if code[i] == set {
			p.SetPosition = pos
			p.SetTo = p.Option(pos)
			return p, true
		}
	}
	return model.Pattern{}, false
}

// DecodeOutOfSystem maps a single-character out-of-system code to its label.
func DecodeOutOfSystem(code string) (model.OOSLabel, bool) {
	if len(code) != 1 {
		return "", false
	}
	switch code[0] {
	case '4':
		return model.OOSOutside, true
	case '5':
		return model.OOSRightSide, true
	case 'M':
		return model.OOSMiddle, true
	case '7', '8', '9':
		return model.OOSBackRow, true
	}
	return "", false
}

// IsInSystemCode reports whether code has the shape of an in-system code.
func IsInSystemCode(code string) bool {
	if len(code) != InSystemCodeLen {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !isAlnum(code[i]) {
			return false
		}
	}
	return true
}

// IsOutOfSystemCode reports whether code is one of the accepted single characters.
func IsOutOfSystemCode(code string) bool {
	return len(code) == 1 && strings.IndexByte(OutOfSystemCodes, code[0]) >= 0
}

// OutsideLabel decodes one outside-hitter option character.
func OutsideLabel(c byte) model.Label {
	o := outsideOption(c)
	return label(c, o != OutsideUnknown, o.String())
}

// MiddleLabel decodes one middle-blocker option character.
func MiddleLabel(c byte) model.Label {
	o := middleOption(c)
	return label(c, o != MiddleUnknown, o.String())
}

// OppositeLabel decodes one opposite/setter option character.
func OppositeLabel(c byte) model.Label {
	o := oppositeOption(c)
	return label(c, o != OppositeUnknown, o.String())
}

// BackRowLabel decodes one back-row option character.
func BackRowLabel(c byte) model.Label {
	o := backRowOption(c)
	return label(c, o != BackRowUnknown, o.String())
}

func label(raw byte, known bool, text string) model.Label {
	if !known {
		return model.Label{Raw: raw, Text: string(raw)}
	}
	return model.Label{Raw: raw, Text: text, Known: true}
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
