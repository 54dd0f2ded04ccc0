package formation

import (
	"strconv"
	"strings"
)

// DefaultFormation is used when no target formation is supplied.
const DefaultFormation = "4-3-3"

// Shape holds the outfield counts per line of a target formation.
// The goalkeeper is implicit.
type Shape struct {
	Defense           int
	DefensiveMidfield int
	Midfield          int
	Attack            int
}

// DefaultShape is the 4-3-3 fallback for unusable formation specs.
func DefaultShape() Shape {
	return Shape{Defense: 4, DefensiveMidfield: 0, Midfield: 3, Attack: 3}
}

// Outfield returns the number of outfield slots the shape describes.
func (s Shape) Outfield() int {
	return s.Defense + s.DefensiveMidfield + s.Midfield + s.Attack
}

// ParseShape reads "D-M-A" or "D-DM-M-A". A two part "D-M" keeps the default
// attack count. Anything else, including negative or non-numeric parts,
// resolves to DefaultShape.
func ParseShape(spec string) Shape {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultShape()
	}

	rawParts := strings.Split(spec, "-")
	if len(rawParts) < 2 || len(rawParts) > 4 {
		return DefaultShape()
	}

	parts := make([]int, 0, len(rawParts))
	for _, raw := range rawParts {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return DefaultShape()
		}
		parts = append(parts, n)
	}

	switch len(parts) {
	case 4:
		return Shape{Defense: parts[0], DefensiveMidfield: parts[1], Midfield: parts[2], Attack: parts[3]}
	case 3:
		return Shape{Defense: parts[0], Midfield: parts[1], Attack: parts[2]}
	default:
		return Shape{Defense: parts[0], Midfield: parts[1], Attack: DefaultShape().Attack}
	}
}

// formationLabel returns the label a target-formation lineup is published under.
func formationLabel(spec string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultFormation
	}
	return spec
}
