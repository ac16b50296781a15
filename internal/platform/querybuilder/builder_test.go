package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("summoners").
		Where(Eq("region", "EUW"), IsNull("revision_date")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM summoners WHERE region = $1 AND revision_date IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "EUW" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_AnyAndForUpdate(t *testing.T) {
	ids := []int64{1, 2, 3}
	query, args, err := Select("match_id").
		From("matches").
		Where(Eq("region", "NA"), Any("match_id", ids)).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT match_id FROM matches WHERE region = $1 AND match_id = ANY($2) FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("summoners").
		Columns("region", "summoner_id").
		Values("KR", int64(7)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO summoners (region, summoner_id) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "KR" || args[1] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		LeagueID int64  `db:"league_id"`
		PlayerID string `db:"player_or_team_id"`
		skipped  string
	}

	query, args, err := InsertModels("league_entries", []row{
		{LeagueID: 1, PlayerID: "10"},
		{LeagueID: 1, PlayerID: "11"},
	}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO league_entries (league_id, player_or_team_id) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "11" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("league_entries", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("summoners").
		Set("name", "new").
		SetExpr("last_update", "NOW()").
		Where(Eq("id", int64(1))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE summoners SET name = $1, last_update = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new" || args[1] != int64(1) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("league_entries").
		Where(Eq("league_id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM league_entries WHERE league_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("league_entries").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestExprBindsInOrder(t *testing.T) {
	query, args, err := Update("task_dispatches").
		SetExpr("attempts", "attempts + ?", 1).
		Where(Eq("handle", "h-1"), Expr("updated_at < ? AND status <> ?", "t", "succeeded")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE task_dispatches SET attempts = attempts + $1 WHERE handle = $2 AND updated_at < $3 AND status <> $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != 1 || args[3] != "succeeded" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("summoners", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *struct {
		ID int64 `db:"id"`
	}
	if _, _, err := InsertModel("summoners", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
