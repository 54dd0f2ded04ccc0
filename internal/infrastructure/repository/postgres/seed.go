package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/darkscore-api/internal/domain/team"
	"github.com/riskibarqy/darkscore-api/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/darkscore-api/internal/platform/querybuilder"
)

type teamSeedModel struct {
	Name           string `db:"name"`
	Confederation  string `db:"confederation"`
	FIFARank       int    `db:"fifa_rank"`
	WorldCupTitles int    `db:"world_cup_titles"`
	RecentForm     string `db:"recent_form"`
	FlagCode       string `db:"flag_code"`
}

type playerSeedModel struct {
	TeamName  string `db:"team_name"`
	SortOrder int    `db:"sort_order"`
	Number    int    `db:"number"`
	Name      string `db:"name"`
	Position  string `db:"position"`
	Nation    string `db:"nation"`
	Club      string `db:"club"`
	Caps      int    `db:"caps"`
	Goals     int    `db:"goals"`
	Assists   int    `db:"assists"`
}

// BootstrapSeed loads the team catalogue and placeholder rosters into an
// empty database. It is a no-op once any team row exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	query, args, err := qb.Count("teams").Where(qb.IsNull("deleted_at")).ToSQL()
	if err != nil {
		return fmt.Errorf("build count teams query: %w", err)
	}

	var count int
	if err := db.GetContext(ctx, &count, query, args...); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}
	return seedCatalogue(ctx, db, false)
}

// RefreshSeed rewrites catalogue metadata for existing teams and replaces
// their rosters with the generated ones. Prior roster rows are soft deleted.
func RefreshSeed(ctx context.Context, db *sqlx.DB) error {
	return seedCatalogue(ctx, db, true)
}

func seedCatalogue(ctx context.Context, db *sqlx.DB, refresh bool) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		if err := seedTeam(ctx, tx, t, refresh); err != nil {
			return err
		}
		if err := seedRoster(ctx, tx, t.Name, refresh); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func seedTeam(ctx context.Context, tx *sqlx.Tx, t team.Team, refresh bool) error {
	model := teamSeedModel{
		Name:           t.Name,
		Confederation:  string(t.Confederation),
		FIFARank:       t.FIFARank,
		WorldCupTitles: t.WorldCupTitles,
		RecentForm:     t.RecentForm,
		FlagCode:       t.FlagCode,
	}
	query, args, err := qb.InsertModel("teams", model, "ON CONFLICT (name) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build seed team %s query: %w", t.Name, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed team %s: %w", t.Name, err)
	}
	if !refresh {
		return nil
	}

	query, args, err = qb.Update("teams").
		Set("confederation", model.Confederation).
		Set("fifa_rank", model.FIFARank).
		Set("world_cup_titles", model.WorldCupTitles).
		Set("recent_form", model.RecentForm).
		Set("flag_code", model.FlagCode).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("name", model.Name), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build refresh team %s query: %w", t.Name, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("refresh team %s: %w", t.Name, err)
	}
	return nil
}

func seedRoster(ctx context.Context, tx *sqlx.Tx, teamName string, refresh bool) error {
	if refresh {
		query, args, err := qb.Update("players").
			SetExpr("deleted_at", "NOW()").
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("team_name", teamName), qb.IsNull("deleted_at")).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build retire roster %s query: %w", teamName, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("retire roster %s: %w", teamName, err)
		}
	}

	roster := memory.SeedRoster(teamName)
	rows := make([]playerSeedModel, 0, len(roster))
	for idx, p := range roster {
		row := playerSeedModel{
			TeamName:  teamName,
			SortOrder: idx,
			Number:    p.Number,
			Name:      p.Name,
			Position:  p.Position,
			Nation:    p.Nation,
			Club:      p.Club,
		}
		if p.Stats != nil {
			row.Caps, row.Goals, row.Assists = p.Stats.Caps, p.Stats.Goals, p.Stats.Assists
		}
		rows = append(rows, row)
	}
	query, args, err := qb.InsertModels("players", rows, "")
	if err != nil {
		return fmt.Errorf("build seed roster %s query: %w", teamName, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed roster %s: %w", teamName, err)
	}
	return nil
}
