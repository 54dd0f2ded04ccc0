package formation

import "strings"

// Position is a canonical position token a raw roster label resolves to.
type Position string

const (
	PositionGK  Position = "GK"
	PositionRB  Position = "RB"
	PositionRWB Position = "RWB"
	PositionCB  Position = "CB"
	PositionLB  Position = "LB"
	PositionLWB Position = "LWB"
	PositionSW  Position = "SW"
	PositionDM  Position = "DM"
	PositionCM  Position = "CM"
	PositionAM  Position = "AM"
	PositionRM  Position = "RM"
	PositionLM  Position = "LM"
	PositionRW  Position = "RW"
	PositionLW  Position = "LW"
	PositionCF  Position = "CF"
	PositionST  Position = "ST"
	PositionSS  Position = "SS"
)

// FallbackPosition is used for empty or unrecognized labels.
const FallbackPosition = PositionCM

// Line groups positions into the rows of a pitch layout.
type Line string

const (
	LineGoalkeeper Line = "GK"
	LineDefense    Line = "DEF"
	LineMidfield   Line = "MID"
	LineAttack     Line = "ATT"
)

const unrankedPosition = 99

var positionAliases = map[string]Position{
	"GOALKEEPER": PositionGK,
	"RCB":        PositionCB,
	"LCB":        PositionCB,
	"RDM":        PositionDM,
	"LDM":        PositionDM,
	"RCM":        PositionCM,
	"LCM":        PositionCM,
	"CAM":        PositionAM,
	"LF":         PositionLW,
	"RF":         PositionRW,
	"STRIKER":    PositionST,
}

var defensePositions = map[Position]struct{}{
	PositionRB:  {},
	PositionRWB: {},
	PositionCB:  {},
	PositionLB:  {},
	PositionLWB: {},
	PositionSW:  {},
}

var midfieldPositions = map[Position]struct{}{
	PositionDM: {},
	PositionCM: {},
	PositionAM: {},
	PositionRM: {},
	PositionLM: {},
}

var attackPositions = map[Position]struct{}{
	PositionRW: {},
	PositionLW: {},
	PositionCF: {},
	PositionST: {},
	PositionSS: {},
}

// positionRank orders players inside a line from the right flank to the left.
var positionRank = map[Position]int{
	PositionRB:  1,
	PositionRWB: 2,
	PositionCB:  3,
	PositionSW:  4,
	PositionLB:  5,
	PositionLWB: 6,
	PositionRM:  1,
	PositionDM:  2,
	PositionCM:  3,
	PositionAM:  4,
	PositionLM:  5,
	PositionRW:  1,
	PositionSS:  2,
	PositionCF:  3,
	PositionST:  4,
	PositionLW:  5,
}

var linePriority = map[Line]int{
	LineDefense:  1,
	LineMidfield: 2,
	LineAttack:   3,
}

// NormalizePosition maps a free-form roster label to a canonical token.
// Only the part before the first "/" is considered, so "CM/AM" resolves to CM.
// It never fails: unknown or empty labels resolve to FallbackPosition.
func NormalizePosition(raw string) Position {
	token := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if token == "" {
		return FallbackPosition
	}
	if idx := strings.IndexByte(token, '/'); idx >= 0 {
		token = token[:idx]
	}

	if alias, ok := positionAliases[token]; ok {
		return alias
	}

	pos := Position(token)
	if pos == PositionGK {
		return PositionGK
	}
	if isKnownOutfield(pos) {
		return pos
	}

	return FallbackPosition
}

// LineOf classifies a token into its pitch line. Unknown tokens land in midfield.
func LineOf(pos Position) Line {
	switch {
	case pos == PositionGK:
		return LineGoalkeeper
	case inSet(defensePositions, pos):
		return LineDefense
	case inSet(midfieldPositions, pos):
		return LineMidfield
	case inSet(attackPositions, pos):
		return LineAttack
	default:
		return LineMidfield
	}
}

// Rank returns the in-line sort rank of a token; unranked tokens sort last.
func Rank(pos Position) int {
	if rank, ok := positionRank[pos]; ok {
		return rank
	}
	return unrankedPosition
}

func (p Position) String() string {
	return string(p)
}

func (l Line) String() string {
	return string(l)
}

func isKnownOutfield(pos Position) bool {
	return inSet(defensePositions, pos) || inSet(midfieldPositions, pos) || inSet(attackPositions, pos)
}

func inSet(set map[Position]struct{}, pos Position) bool {
	_, ok := set[pos]
	return ok
}

func priorityOf(line Line) int {
	if p, ok := linePriority[line]; ok {
		return p
	}
	return linePriority[LineMidfield]
}
