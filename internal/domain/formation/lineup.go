package formation

import (
	"sort"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
)

// MaxStarters is the size of a starting lineup.
const MaxStarters = 11

// EmptyFormation labels the lineup of an empty roster.
const EmptyFormation = "0-0-0"

// Slot is a roster player placed on the pitch. The embedded player passes
// through unchanged; Position and Line may differ from the raw label when the
// player was relabeled to fill a slot.
type Slot struct {
	player.Player
	NormalizedPosition Position
	Line               Line
}

// Lines are the pitch rows of a lineup, each ordered for display.
// DefensiveMidfield is only populated by the target-formation policy.
type Lines struct {
	Goalkeeper        []Slot
	Defense           []Slot
	DefensiveMidfield []Slot
	Midfield          []Slot
	Attack            []Slot
}

// Lineup is a derived starting XI view. It is recomputed from the roster on
// every request and never stored.
type Lineup struct {
	Formation string
	Policy    Policy
	Lines     Lines
}

// Count returns the number of placed players across every line.
func (l Lineup) Count() int {
	return len(l.Lines.Goalkeeper) +
		len(l.Lines.Defense) +
		len(l.Lines.DefensiveMidfield) +
		len(l.Lines.Midfield) +
		len(l.Lines.Attack)
}

// HasDefensiveMidfieldLine reports whether the lineup publishes a separate dm row.
func (l Lineup) HasDefensiveMidfieldLine() bool {
	return l.Policy == PolicyTargetFormation
}

// SortLine orders a row by position rank, then by case-sensitive name.
// The input slice is not modified.
func SortLine(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := Rank(out[i].NormalizedPosition), Rank(out[j].NormalizedPosition)
		if ri != rj {
			return ri < rj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func newSlot(p player.Player) Slot {
	pos := NormalizePosition(p.Position)
	return Slot{
		Player:             p,
		NormalizedPosition: pos,
		Line:               LineOf(pos),
	}
}

func (s Slot) relabel(pos Position) Slot {
	s.NormalizedPosition = pos
	s.Line = LineOf(pos)
	return s
}

func startingXI(players []player.Player) []player.Player {
	if len(players) > MaxStarters {
		return players[:MaxStarters]
	}
	return players
}

func emptyLineup(policy Policy) Lineup {
	lines := Lines{
		Goalkeeper: []Slot{},
		Defense:    []Slot{},
		Midfield:   []Slot{},
		Attack:     []Slot{},
	}
	if policy == PolicyTargetFormation {
		lines.DefensiveMidfield = []Slot{}
	}
	return Lineup{Formation: EmptyFormation, Policy: policy, Lines: lines}
}
