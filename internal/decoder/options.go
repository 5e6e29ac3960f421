package decoder

// Each attack-option table is a closed enumeration. The zero value of every
// enum means the code is not in that table.

// OutsideOption is an outside hitter's attack option.
type OutsideOption int

const (
	OutsideUnknown OutsideOption = iota
	OutsideGo
	Outside4OOS
	OutsideRed
	Outside5OOS
	OutsideRip
	Outside2
	OutsideBoy
)

var outsideLabels = [...]string{
	OutsideGo:   "Go",
	Outside4OOS: "4 OOS",
	OutsideRed:  "Red",
	Outside5OOS: "5 OOS",
	OutsideRip:  "Rip",
	Outside2:    "2",
	OutsideBoy:  "Boy",
}

func outsideOption(c byte) OutsideOption {
	switch c {
	case 'G':
		return OutsideGo
	case '4':
		return Outside4OOS
	case 'R':
		return OutsideRed
	case '5':
		return Outside5OOS
	case 'I':
		return OutsideRip
	case '2':
		return Outside2
	case 'Y':
		return OutsideBoy
	}
	return OutsideUnknown
}

func (o OutsideOption) String() string { return outsideLabels[o] }

// MiddleOption is a middle blocker's attack option.
type MiddleOption int

const (
	MiddleUnknown MiddleOption = iota
	Middle3
	Middle1Fix
	MiddleA
	MiddlePushA
	MiddleCSlide
	Middle2
	MiddleGo
	MiddleRed
	MiddleNone
)

var middleLabels = [...]string{
	Middle3:      "3",
	Middle1Fix:   "1/Fix",
	MiddleA:      "A",
	MiddlePushA:  "Push A",
	MiddleCSlide: "C/Slide",
	Middle2:      "2",
	MiddleGo:     "Go",
	MiddleRed:    "Red",
	MiddleNone:   "None",
}

func middleOption(c byte) MiddleOption {
	switch c {
	case '3':
		return Middle3
	case '1':
		return Middle1Fix
	case 'A':
		return MiddleA
	case 'B':
		return MiddlePushA
	case 'C':
		return MiddleCSlide
	case '2':
		return Middle2
	case 'G':
		return MiddleGo
	case 'R':
		return MiddleRed
	case 'E':
		return MiddleNone
	}
	return MiddleUnknown
}

func (o MiddleOption) String() string { return middleLabels[o] }

// OppositeOption is the opposite's (or setter's) attack option.
type OppositeOption int

const (
	OppositeUnknown OppositeOption = iota
	OppositeGo
	Opposite4OOS
	OppositeRed
	Opposite5OOS
	OppositeRip
	Opposite2
	OppositeBoy
	OppositeA
	OppositeDump
)

var oppositeLabels = [...]string{
	OppositeGo:   "Go",
	Opposite4OOS: "4 OOS",
	OppositeRed:  "Red",
	Opposite5OOS: "5 OOS",
	OppositeRip:  "Rip",
	Opposite2:    "2",
	OppositeBoy:  "Boy",
	OppositeA:    "A",
	OppositeDump: "Dump",
}

func oppositeOption(c byte) OppositeOption {
	switch c {
	case 'G':
		return OppositeGo
	case '4':
		return Opposite4OOS
	case 'R':
		return OppositeRed
	case '5':
		return Opposite5OOS
	case 'I':
		return OppositeRip
	case '2':
		return Opposite2
	case 'Y':
		return OppositeBoy
	case 'A':
		return OppositeA
	case 'S':
		return OppositeDump
	}
	return OppositeUnknown
}

func (o OppositeOption) String() string { return oppositeLabels[o] }

// BackRowOption is the back-row attack option.
type BackRowOption int

const (
	BackRowUnknown BackRowOption = iota
	BackRowBicPipe
	BackRowGap
	BackRowSkyD
	BackRowA
	BackRowMB
	BackRowNone
)

var backRowLabels = [...]string{
	BackRowBicPipe: "Bic/Pipe",
	BackRowGap:     "Gap",
	BackRowSkyD:    "Sky/D",
	BackRowA:       "A",
	BackRowMB:      "MB",
	BackRowNone:    "None",
}

func backRowOption(c byte) BackRowOption {
	switch c {
	case '8':
		return BackRowBicPipe
	case '7':
		return BackRowGap
	case '9':
		return BackRowSkyD
	case 'W':
		return BackRowA
	case 'M':
		return BackRowMB
	case '0':
		return BackRowNone
	}
	return BackRowUnknown
}

func (o BackRowOption) String() string { return backRowLabels[o] }
