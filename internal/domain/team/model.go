package team

import (
	"fmt"
	"strings"
)

// Confederation is the continental body a national team plays under.
type Confederation string

const (
	ConfederationAFC      Confederation = "AFC"
	ConfederationCAF      Confederation = "CAF"
	ConfederationCONCACAF Confederation = "CONCACAF"
	ConfederationCONMEBOL Confederation = "CONMEBOL"
	ConfederationOFC      Confederation = "OFC"
	ConfederationUEFA     Confederation = "UEFA"
)

// DefaultRecentForm is reported until live results are wired in.
const DefaultRecentForm = "W-D-W-L-W"

// Team is a national team qualified for the tournament.
type Team struct {
	Name           string
	Confederation  Confederation
	FIFARank       int
	WorldCupTitles int
	RecentForm     string
	FlagCode       string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.FIFARank < 0 {
		return fmt.Errorf("team fifa rank must be >= 0")
	}
	if t.WorldCupTitles < 0 {
		return fmt.Errorf("team world cup titles must be >= 0")
	}

	return nil
}

// Formation returns the team's preferred formation spec.
func (t Team) Formation() string {
	return FormationFor(t.Name)
}

// NormalizeName folds a user supplied team name into its lookup key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
