package formation

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
)

// BuildForFormation fits the first eleven players into the target formation.
//
// The first goalkeeper becomes the keeper; without one the first player is
// relabeled GK. The rest are ordered defense, midfield, attack and sliced
// greedily into the shape's defense, dm, midfield and attack counts, so a
// natural attacker may fill a defensive slot when the roster is short of
// defenders. Players beyond the shape's total are kept in the attack row.
func BuildForFormation(players []player.Player, spec string) Lineup {
	xi := startingXI(players)
	if len(xi) == 0 {
		return emptyLineup(PolicyTargetFormation)
	}

	shape := ParseShape(spec)

	outfield := make([]Slot, 0, len(xi))
	for _, p := range xi {
		outfield = append(outfield, newSlot(p))
	}

	gkIdx := 0
	for i, s := range outfield {
		if s.Line == LineGoalkeeper {
			gkIdx = i
			break
		}
	}
	keeper := outfield[gkIdx].relabel(PositionGK)
	outfield = append(outfield[:gkIdx:gkIdx], outfield[gkIdx+1:]...)

	sort.SliceStable(outfield, func(i, j int) bool {
		pi, pj := priorityOf(outfield[i].Line), priorityOf(outfield[j].Line)
		if pi != pj {
			return pi < pj
		}
		return Rank(outfield[i].NormalizedPosition) < Rank(outfield[j].NormalizedPosition)
	})

	defense, rest := take(outfield, shape.Defense)
	dm, rest := take(rest, shape.DefensiveMidfield)
	midfield, rest := take(rest, shape.Midfield)
	attack, rest := take(rest, shape.Attack)
	attack = append(attack, rest...)

	return Lineup{
		Formation: formationLabel(spec),
		Policy:    PolicyTargetFormation,
		Lines: Lines{
			Goalkeeper:        []Slot{keeper},
			Defense:           SortLine(defense),
			DefensiveMidfield: SortLine(dm),
			Midfield:          SortLine(midfield),
			Attack:            SortLine(attack),
		},
	}
}

// BuildNatural places the first eleven players by their own position and
// derives the formation label from the resulting row sizes.
//
// Only the first goalkeeper keeps the GK slot; later goalkeepers play as
// center backs. Without a goalkeeper the first defender is moved in goal,
// falling back to the first midfielder and then the first attacker.
func BuildNatural(players []player.Player) Lineup {
	xi := startingXI(players)
	if len(xi) == 0 {
		return emptyLineup(PolicyNatural)
	}

	var keeper *Slot
	defense := make([]Slot, 0, len(xi))
	midfield := make([]Slot, 0, len(xi))
	attack := make([]Slot, 0, len(xi))

	for _, p := range xi {
		s := newSlot(p)
		switch s.Line {
		case LineGoalkeeper:
			if keeper == nil {
				k := s
				keeper = &k
				continue
			}
			defense = append(defense, s.relabel(PositionCB))
		case LineDefense:
			defense = append(defense, s)
		case LineAttack:
			attack = append(attack, s)
		default:
			midfield = append(midfield, s)
		}
	}

	if keeper == nil {
		var borrowed Slot
		switch {
		case len(defense) > 0:
			borrowed, defense = defense[0], defense[1:]
		case len(midfield) > 0:
			borrowed, midfield = midfield[0], midfield[1:]
		case len(attack) > 0:
			borrowed, attack = attack[0], attack[1:]
		default:
			borrowed = newSlot(xi[0])
		}
		k := borrowed.relabel(PositionGK)
		keeper = &k
	}

	defense = SortLine(defense)
	midfield = SortLine(midfield)
	attack = SortLine(attack)

	return Lineup{
		Formation: fmt.Sprintf("%d-%d-%d", len(defense), len(midfield), len(attack)),
		Policy:    PolicyNatural,
		Lines: Lines{
			Goalkeeper: []Slot{*keeper},
			Defense:    defense,
			Midfield:   midfield,
			Attack:     attack,
		},
	}
}

func take(slots []Slot, n int) ([]Slot, []Slot) {
	if n <= 0 {
		return []Slot{}, slots
	}
	if n > len(slots) {
		n = len(slots)
	}
	head := make([]Slot, n)
	copy(head, slots[:n])
	return head, slots[n:]
}
