package team

import "github.com/riskibarqy/darkscore-api/internal/domain/formation"

// preferredFormations holds each side's usual shape.
var preferredFormations = map[string]string{
	// 4-3-3
	"spain":       "4-3-3",
	"brazil":      "4-3-3",
	"netherlands": "4-3-3",
	"portugal":    "4-3-3",
	"morocco":     "4-3-3",
	"colombia":    "4-3-3",
	"japan":       "4-3-3",
	"ecuador":     "4-3-3",
	"norway":      "4-3-3",
	"algeria":     "4-3-3",
	"scotland":    "4-3-3",
	"tunisia":     "4-3-3",
	"ivory coast": "4-3-3",
	"uzbekistan":  "4-3-3",
	"cape verde":  "4-3-3",
	"ghana":       "4-3-3",
	// 4-2-3-1
	"argentina":    "4-2-3-1",
	"france":       "4-2-3-1",
	"england":      "4-2-3-1",
	"belgium":      "4-2-3-1",
	"germany":      "4-2-3-1",
	"croatia":      "4-2-3-1",
	"switzerland":  "4-2-3-1",
	"mexico":       "4-2-3-1",
	"senegal":      "4-2-3-1",
	"iran":         "4-2-3-1",
	"south korea":  "4-2-3-1",
	"austria":      "4-2-3-1",
	"canada":       "4-2-3-1",
	"panama":       "4-2-3-1",
	"egypt":        "4-2-3-1",
	"south africa": "4-2-3-1",
	"jordan":       "4-2-3-1",
	"saudi arabia": "4-2-3-1",
	"curaçao":      "4-2-3-1",
	"haiti":        "4-2-3-1",
	"new zealand":  "4-2-3-1",
	// 4-4-2
	"united states": "4-4-2",
	"uruguay":       "4-4-2",
	"australia":     "4-4-2",
	"paraguay":      "4-4-2",
	"qatar":         "4-4-2",
}

// FormationFor returns the preferred formation for a team name, or the
// default 4-3-3 for teams without an entry.
func FormationFor(name string) string {
	if spec, ok := preferredFormations[NormalizeName(name)]; ok {
		return spec
	}
	return formation.DefaultFormation
}
