package memory

import (
	"testing"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRoster(t *testing.T) {
	players := SeedRoster("Spain")
	require.Len(t, players, 23)

	assert.Equal(t, "Spain Player 1", players[0].Name)
	assert.Equal(t, "GK", players[0].Position)
	assert.Equal(t, "Club 1", players[0].Club)
	assert.Equal(t, 12, players[0].Stats.Caps)

	st := players[9]
	assert.Equal(t, 10, st.Number)
	assert.Equal(t, "ST", st.Position)
	assert.Equal(t, 3, st.Stats.Goals)
	assert.Equal(t, 0, st.Stats.Assists)
	assert.Equal(t, "Club 4", st.Club)

	am := players[7]
	assert.Equal(t, "AM", am.Position)
	assert.Equal(t, 0, am.Stats.Goals)
	assert.Equal(t, 2, am.Stats.Assists)

	rw := players[8]
	assert.Equal(t, 3, rw.Stats.Goals)
	assert.Equal(t, 2, rw.Stats.Assists)

	bench := players[11]
	assert.Equal(t, 12, bench.Number)
	assert.Equal(t, "GK", bench.Position)
}

func TestTeamRepository(t *testing.T) {
	repo := NewTeamRepository(SeedTeams())

	teams, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, teams, 42)

	got, ok, err := repo.GetByName(t.Context(), "  south KOREA ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "South Korea", got.Name)

	_, ok, err = repo.GetByName(t.Context(), "Atlantis")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlayerRepository_ReturnsCopies(t *testing.T) {
	repo := NewPlayerRepository(map[string][]player.Player{"Japan": SeedRoster("Japan")})

	first, err := repo.ListByTeam(t.Context(), "japan")
	require.NoError(t, err)
	require.Len(t, first, 23)

	first[0].Name = "changed"
	first[0].Stats.Caps = 0

	second, err := repo.ListByTeam(t.Context(), "Japan")
	require.NoError(t, err)
	assert.Equal(t, "Japan Player 1", second[0].Name)
	assert.Equal(t, 12, second[0].Stats.Caps)

	missing, err := repo.ListByTeam(t.Context(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
