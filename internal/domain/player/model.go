package player

import (
	"strconv"
	"strings"
)

// Stats is display-only international record data.
type Stats struct {
	Caps    int
	Goals   int
	Assists int
}

// Player is one roster entry of a national team. Position is the raw label
// supplied by the roster source and may be empty, a synonym, or a
// slash-separated list of alternatives.
type Player struct {
	Number    int
	Name      string
	Position  string
	Nation    string
	Club      string
	Overall   int
	Potential int
	Age       int
	Value     string
	Stats     *Stats

	Attributes *Attributes
	Playstyles []string
}

// Attributes are provider ratings shown on a player profile. They never
// influence lineup placement.
type Attributes struct {
	Acceleration    int
	SprintSpeed     int
	Dribbling       int
	Finishing       int
	ShortPassing    int
	LongPassing     int
	Reactions       int
	HeadingAccuracy int

	TotalAttacking   int
	TotalSkill       int
	TotalMovement    int
	TotalPower       int
	TotalMentality   int
	TotalDefending   int
	TotalGoalkeeping int
}

func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// Clone returns a copy that shares no pointers or slices with p.
func (p Player) Clone() Player {
	if p.Stats != nil {
		stats := *p.Stats
		p.Stats = &stats
	}
	if p.Attributes != nil {
		attrs := *p.Attributes
		p.Attributes = &attrs
	}
	if p.Playstyles != nil {
		p.Playstyles = append([]string(nil), p.Playstyles...)
	}
	return p
}

// CompactPlaystyles drops blank entries and trims the rest. It returns nil
// when nothing is left.
func CompactPlaystyles(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Key identifies a player inside one rendered lineup. Jersey numbers alone are
// not unique across every roster source.
func (p Player) Key() string {
	return strconv.Itoa(p.Number) + "-" + p.Name
}
