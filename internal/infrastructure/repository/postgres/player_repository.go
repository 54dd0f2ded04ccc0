package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	qb "github.com/riskibarqy/darkscore-api/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"team_name",
	"sort_order",
	"number",
	"name",
	"position",
	"nation",
	"club",
	"overall",
	"potential",
	"age",
	"market_value",
	"caps",
	"goals",
	"assists",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// ListByTeam returns the roster in sort_order; the first eleven rows are the
// starting XI.
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamName string) ([]player.Player, error) {
	key := team.NormalizeName(teamName)
	if key == "" {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.EqFold("team_name", key),
			qb.IsNull("deleted_at"),
		).
		OrderBy("sort_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	p := player.Player{
		Number:    row.Number,
		Name:      row.Name,
		Position:  row.Position,
		Nation:    row.Nation,
		Club:      row.Club,
		Overall:   nullInt64ToInt(row.Overall),
		Potential: nullInt64ToInt(row.Potential),
		Age:       nullInt64ToInt(row.Age),
		Value:     nullStringToString(row.MarketValue),
	}
	if row.Caps.Valid || row.Goals.Valid || row.Assists.Valid {
		p.Stats = &player.Stats{
			Caps:    nullInt64ToInt(row.Caps),
			Goals:   nullInt64ToInt(row.Goals),
			Assists: nullInt64ToInt(row.Assists),
		}
	}
	return p
}
