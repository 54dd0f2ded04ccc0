package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq("confederation", "UEFA"), IsNull("deleted_at")).
		OrderBy("fifa_rank").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM teams WHERE confederation = $1 AND deleted_at IS NULL ORDER BY fifa_rank LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "UEFA" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EqFoldAndLiteral(t *testing.T) {
	query, args, err := Select("name").
		From("players").
		Where(EqFold("team_name", " Brazil "), EqFoldLiteral("club", "Nott'm Forest")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT name FROM players WHERE lower(team_name) = $1 AND lower(club) = 'nott''m forest'"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "brazil" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("players").
		Columns("team_name", "name").
		Values("Brazil", "Brazil Player 1").
		Values("Brazil", "Brazil Player 2").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (team_name, name) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "Brazil Player 2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Name     string `db:"name"`
		FIFARank int    `db:"fifa_rank"`
		Skip     string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("teams", row{Name: "Japan", FIFARank: 17, Skip: "x", internal: "y"}, "ON CONFLICT (name) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO teams (name, fifa_rank) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Japan" || args[1] != 17 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("teams", (*row)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("teams", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		SetExpr("deleted_at", "NOW()").
		Set("club", "Club 1").
		Where(Eq("team_name", "Japan"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET deleted_at = NOW(), club = $1 WHERE team_name = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Club 1" || args[1] != "Japan" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestEqFold(t *testing.T) {
	query, args, err := Select("name").
		From("teams").
		Where(EqFold("name", "  South KOREA "), IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT name FROM teams WHERE lower(name) = $1 AND deleted_at IS NULL LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "south korea" {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, args, err = Select("name").From("teams").Where(EqFoldLiteral("name", "Côte D'Ivoire")).ToSQL()
	if err != nil {
		t.Fatalf("build literal select query: %v", err)
	}
	wantQuery = "SELECT name FROM teams WHERE lower(name) = 'côte d''ivoire'"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %+v", args)
	}
}

func TestCount(t *testing.T) {
	query, _, err := Count("teams").Where(IsNull("deleted_at")).ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}
	if want := "SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL"; query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		TeamName  string `db:"team_name"`
		SortOrder int    `db:"sort_order"`
	}

	query, args, err := InsertModels("players", []row{
		{TeamName: "Japan", SortOrder: 0},
		{TeamName: "Japan", SortOrder: 1},
	}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO players (team_name, sort_order) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("players", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
