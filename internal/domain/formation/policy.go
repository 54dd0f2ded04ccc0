package formation

import (
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
)

// Policy selects how a roster is fitted into pitch rows.
type Policy string

const (
	// PolicyTargetFormation fills the team's textbook shape, moving players
	// out of their natural line when needed. This is the shipped default.
	PolicyTargetFormation Policy = "target"
	// PolicyNatural keeps every player in their natural line and reports
	// whatever shape results.
	PolicyNatural Policy = "natural"
)

var policyAliases = map[string]Policy{
	"target":    PolicyTargetFormation,
	"formation": PolicyTargetFormation,
	"natural":   PolicyNatural,
}

// ParsePolicy resolves a policy name case-insensitively.
func ParsePolicy(raw string) (Policy, bool) {
	p, ok := policyAliases[strings.ToLower(strings.TrimSpace(raw))]
	return p, ok
}

func (p Policy) String() string {
	return string(p)
}

// Build dispatches to the builder for policy. The formation spec is ignored
// by the natural policy. Unknown policies use the target formation.
func Build(players []player.Player, policy Policy, spec string) Lineup {
	if policy == PolicyNatural {
		return BuildNatural(players)
	}
	return BuildForFormation(players, spec)
}
