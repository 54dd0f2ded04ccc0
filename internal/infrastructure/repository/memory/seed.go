package memory

import (
	"fmt"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
)

var (
	startingPositions = []string{"GK", "RB", "CB", "CB", "LB", "DM", "CM", "AM", "RW", "ST", "LW"}
	benchPositions    = []string{"GK", "RB", "CB", "LB", "DM", "CM", "CM", "AM", "RW", "LW", "ST", "ST"}
)

func SeedTeams() []team.Team {
	return team.Catalogue()
}

// SeedRosters generates a placeholder squad for every catalogue team: eleven
// starters followed by a twelve man bench.
func SeedRosters() map[string][]player.Player {
	teams := team.Catalogue()
	out := make(map[string][]player.Player, len(teams))
	for _, t := range teams {
		out[t.Name] = SeedRoster(t.Name)
	}
	return out
}

func SeedRoster(teamName string) []player.Player {
	players := make([]player.Player, 0, len(startingPositions)+len(benchPositions))
	number := 1
	for _, positions := range [][]string{startingPositions, benchPositions} {
		for _, pos := range positions {
			players = append(players, seedPlayer(teamName, number, pos))
			number++
		}
	}
	return players
}

func seedPlayer(teamName string, number int, position string) player.Player {
	goals := 0
	switch position {
	case "ST", "RW", "LW":
		goals = max(1, number/3)
	}

	assists := 0
	switch position {
	case "AM", "CM", "RW", "LW":
		assists = number / 4
	}

	return player.Player{
		Number:   number,
		Name:     fmt.Sprintf("%s Player %d", teamName, number),
		Position: position,
		Nation:   teamName,
		Club:     fmt.Sprintf("Club %d", ((number-1)%6)+1),
		Stats: &player.Stats{
			Caps:    10 + number*2,
			Goals:   goals,
			Assists: assists,
		},
	}
}
