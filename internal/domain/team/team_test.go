package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	teams := Catalogue()
	require.Len(t, teams, 42)

	seen := make(map[string]struct{}, len(teams))
	for i, tm := range teams {
		require.NoError(t, tm.Validate())
		assert.Equal(t, i+1, tm.FIFARank, tm.Name)
		assert.Equal(t, DefaultRecentForm, tm.RecentForm)
		assert.NotEmpty(t, tm.FlagCode)

		key := NormalizeName(tm.Name)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate team %s", tm.Name)
		seen[key] = struct{}{}

		_, ok := preferredFormations[key]
		assert.True(t, ok, "no formation for %s", tm.Name)
	}

	teams[0].Name = "mutated"
	assert.Equal(t, "Spain", Catalogue()[0].Name)
}

func TestFormationFor(t *testing.T) {
	assert.Equal(t, "4-3-3", FormationFor("Spain"))
	assert.Equal(t, "4-2-3-1", FormationFor("  argentina "))
	assert.Equal(t, "4-4-2", FormationFor("UNITED STATES"))
	assert.Equal(t, "4-2-3-1", FormationFor("Curaçao"))
	assert.Equal(t, "4-3-3", FormationFor("Italy"))
	assert.Equal(t, "4-3-3", FormationFor(""))
}

func TestValidate(t *testing.T) {
	assert.Error(t, Team{}.Validate())
	assert.Error(t, Team{Name: "X", FIFARank: -1}.Validate())
	assert.NoError(t, Team{Name: "X"}.Validate())
}
